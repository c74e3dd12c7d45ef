// internal/cli/output_test.go
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smurfs/mathic-client/internal/models"
)

const testSessionID = "3f0a1a52-4f8b-4c4e-9f2e-0d6a91a7c001"

func boardSnapshot(status models.SessionStatus, turn, winner *models.Identity) *models.Session {
	return &models.Session{
		GameID:       testSessionID,
		Player1:      &models.Identity{ID: 1, UserName: "alice"},
		Player2:      &models.Identity{ID: 2, UserName: "bob"},
		Status:       status,
		Player1Cards: []int{2, 3},
		Player2Cards: []int{0, 1},
		CurrentTurn:  turn,
		Winner:       winner,
	}
}

func TestRenderSessionParticipantView(t *testing.T) {
	snap := boardSnapshot(models.StatusInProgress, &models.Identity{ID: 1, UserName: "alice"}, nil)

	out := renderSession(snap, 1)
	assert.Contains(t, out, "bob: [0: -] [1: 1]")
	assert.Contains(t, out, "--- your turn ---")
	assert.Contains(t, out, "alice: [0: 2] [1: 3]")

	out = renderSession(snap, 2)
	assert.Contains(t, out, "--- opponent's turn ---")
}

func TestRenderSessionSpectatorSeesBoard(t *testing.T) {
	snap := boardSnapshot(models.StatusInProgress, &models.Identity{ID: 1, UserName: "alice"}, nil)

	// A viewer who is not a participant still gets the full board, with
	// player1's hand at the bottom and the turn owner named.
	out := renderSession(snap, 0)
	assert.NotContains(t, out, "waiting for a second participant")
	assert.Contains(t, out, "bob: [0: -] [1: 1]")
	assert.Contains(t, out, "--- alice's turn ---")
	assert.Contains(t, out, "alice: [0: 2] [1: 3]")
}

func TestRenderSessionSpectatorFinished(t *testing.T) {
	winner := &models.Identity{ID: 1, UserName: "alice"}
	snap := boardSnapshot(models.StatusFinished, nil, winner)
	snap.Player2Cards = []int{0, 0}

	out := renderSession(snap, 0)
	assert.Contains(t, out, "--- game over ---")
	assert.Contains(t, out, "alice: [0: 2] [1: 3]")
}

func TestRenderSessionWaitingForOpponent(t *testing.T) {
	snap := boardSnapshot(models.StatusNew, nil, nil)
	snap.Player2 = nil
	snap.Player2Cards = nil

	// Both the lone participant and an outside viewer see the waiting line
	// until a second participant joins.
	assert.Contains(t, renderSession(snap, 1), "waiting for a second participant")
	assert.Contains(t, renderSession(snap, 0), "waiting for a second participant")
}
