// internal/session/outcome_test.go
package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smurfs/mathic-client/internal/models"
)

func finished(winner *models.Identity, aCards, bCards []int) *models.Session {
	return newSnapshot(models.StatusFinished, nil, winner, aCards, bCards)
}

func TestResolveOutcomeExplicitWinnerIsAuthoritative(t *testing.T) {
	// Explicit winner wins over the all-exhausted heuristic: bob's hand is
	// dead, but the server names bob the winner.
	snap := finished(&bob, []int{1, 2}, []int{0, 0})

	got, err := ResolveOutcome(snap, bob.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOpponentSurrendered, got, "winner over a live opposing hand means the opponent conceded")

	got, err = ResolveOutcome(snap, alice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalLoss, got)
}

func TestResolveOutcomeExplicitWinnerByExhaustion(t *testing.T) {
	snap := finished(&alice, []int{1, 2}, []int{0, 0})

	got, err := ResolveOutcome(snap, alice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalWin, got)

	got, err = ResolveOutcome(snap, bob.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalLoss, got)
}

func TestResolveOutcomeAllExhaustedHeuristic(t *testing.T) {
	// No explicit winner: the participant whose hand is all-zero loses.
	snap := finished(nil, []int{0, 0}, []int{1, 3})

	got, err := ResolveOutcome(snap, alice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalLoss, got)

	got, err = ResolveOutcome(snap, bob.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalWin, got)
}

func TestResolveOutcomePartiallyExhaustedHandIsNoLoss(t *testing.T) {
	// [0,3] is not all-zero, so it is not a loss; such a session should not
	// even be terminal without a winner.
	snap := finished(nil, []int{1, 1}, []int{0, 3})
	_, err := ResolveOutcome(snap, alice.ID, false)
	assert.ErrorIs(t, err, models.ErrConsistency)
}

func TestResolveOutcomeSurrenderFlag(t *testing.T) {
	// No explicit winner yet, local surrender recorded: the other side wins.
	snap := finished(nil, []int{1, 2}, []int{2, 1})

	got, err := ResolveOutcome(snap, alice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalSurrendered, got)
}

func TestResolveOutcomeSurrenderWithExplicitWinner(t *testing.T) {
	snap := finished(&bob, []int{1, 2}, []int{2, 1})

	got, err := ResolveOutcome(snap, alice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLocalSurrendered, got)
}

func TestResolveOutcomeConsistencyErrors(t *testing.T) {
	t.Run("both hands exhausted, no winner", func(t *testing.T) {
		snap := finished(nil, []int{0, 0}, []int{0, 0})
		_, err := ResolveOutcome(snap, alice.ID, false)
		assert.ErrorIs(t, err, models.ErrConsistency)
	})

	t.Run("winner is not a participant", func(t *testing.T) {
		ghost := models.Identity{ID: 77}
		snap := finished(&ghost, []int{0, 0}, []int{1, 1})
		_, err := ResolveOutcome(snap, alice.ID, false)
		assert.ErrorIs(t, err, models.ErrConsistency)
	})

	t.Run("server names surrendered side as winner", func(t *testing.T) {
		snap := finished(&alice, []int{1, 1}, []int{1, 1})
		_, err := ResolveOutcome(snap, alice.ID, true)
		assert.ErrorIs(t, err, models.ErrConsistency)
	})

	t.Run("non-terminal session", func(t *testing.T) {
		snap := inProgress(alice, []int{1, 1}, []int{1, 1})
		_, err := ResolveOutcome(snap, alice.ID, false)
		assert.ErrorIs(t, err, models.ErrConsistency)
	})

	t.Run("local id not a participant", func(t *testing.T) {
		snap := finished(&alice, []int{1, 1}, []int{0, 0})
		_, err := ResolveOutcome(snap, 123, false)
		assert.ErrorIs(t, err, models.ErrConsistency)
	})
}

func TestResolveOutcomeDeterministic(t *testing.T) {
	snap := finished(&alice, []int{1, 2}, []int{0, 0})
	first, err := ResolveOutcome(snap, alice.ID, false)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ResolveOutcome(snap, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
