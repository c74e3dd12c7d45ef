// internal/cli/output.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smurfs/mathic-client/internal/models"
	"github.com/smurfs/mathic-client/internal/session"
)

// renderSession prints one board view from the local participant's
// perspective: opponent on top, local hand below, turn marker between. A
// viewer who is not a participant gets the spectator view instead.
func renderSession(snap *models.Session, localID int64) string {
	if snap == nil {
		return "loading...\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "session %s  [%s]\n", snap.GameID, snap.Status)

	if snap.ParticipantByID(localID) == nil {
		renderSpectator(&b, snap)
		return b.String()
	}

	opp := snap.OpponentOf(localID)
	if opp == nil {
		fmt.Fprintf(&b, "waiting for a second participant...\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s: %s\n", opp.UserName, renderHand(snap.CardsOf(opp.ID)))
	switch {
	case snap.IsFinished():
		fmt.Fprintf(&b, "  --- game over ---\n")
	case snap.IsLocalTurn(localID):
		fmt.Fprintf(&b, "  --- your turn ---\n")
	default:
		fmt.Fprintf(&b, "  --- opponent's turn ---\n")
	}
	local := snap.ParticipantByID(localID)
	name := "you"
	if local != nil && local.UserName != "" {
		name = local.UserName
	}
	fmt.Fprintf(&b, "  %s: %s\n", name, renderHand(snap.CardsOf(localID)))
	return b.String()
}

// renderSpectator shows the board without a local perspective: player2 on
// top, player1 below, the turn owner named on the divider.
func renderSpectator(b *strings.Builder, snap *models.Session) {
	if snap.Player2 == nil {
		fmt.Fprintf(b, "waiting for a second participant...\n")
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", snap.Player2.UserName, renderHand(snap.Player2Cards))
	switch {
	case snap.IsFinished():
		fmt.Fprintf(b, "  --- game over ---\n")
	case snap.CurrentTurn != nil:
		fmt.Fprintf(b, "  --- %s's turn ---\n", snap.CurrentTurn.UserName)
	default:
		fmt.Fprintf(b, "  --- not started ---\n")
	}
	if snap.Player1 != nil {
		fmt.Fprintf(b, "  %s: %s\n", snap.Player1.UserName, renderHand(snap.Player1Cards))
	}
}

func renderHand(cards []int) string {
	if len(cards) == 0 {
		return "(no cards)"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c == 0 {
			parts[i] = fmt.Sprintf("[%d: -]", i)
		} else {
			parts[i] = fmt.Sprintf("[%d: %d]", i, c)
		}
	}
	return strings.Join(parts, " ")
}

// renderOutcome prints the terminal display fact, or the unresolved-outcome
// notice when the terminal snapshot is contradictory.
func renderOutcome(snap *models.Session, localID int64, surrendered bool) string {
	outcome, err := session.ResolveOutcome(snap, localID, surrendered)
	if err != nil {
		if errors.Is(err, models.ErrConsistency) {
			return fmt.Sprintf("outcome unresolved: %v\n", err)
		}
		return fmt.Sprintf("outcome error: %v\n", err)
	}
	switch outcome {
	case session.OutcomeLocalWin:
		return "you win!\n"
	case session.OutcomeLocalLoss:
		return "you lose.\n"
	case session.OutcomeOpponentSurrendered:
		return "your opponent surrendered, you win!\n"
	case session.OutcomeLocalSurrendered:
		return "you surrendered.\n"
	}
	return string(outcome) + "\n"
}
