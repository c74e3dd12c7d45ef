// internal/session/outcome.go
package session

import (
	"fmt"

	"github.com/smurfs/mathic-client/internal/models"
)

// Outcome is the display fact derived from a terminal session.
type Outcome string

const (
	OutcomeLocalWin            Outcome = "LOCAL_WIN"
	OutcomeLocalLoss           Outcome = "LOCAL_LOSS"
	OutcomeOpponentSurrendered Outcome = "OPPONENT_SURRENDERED"
	OutcomeLocalSurrendered    Outcome = "LOCAL_SURRENDERED"
)

// ResolveOutcome derives the outcome of a terminal session for the local
// participant. Precedence: an explicit winner from the snapshot is strictly
// authoritative, then the locally recorded surrender flag, then the
// all-exhausted-hand rule. Contradictory terminal states are reported as
// consistency errors, never silently resolved to a guessed winner.
func ResolveOutcome(snap *models.Session, localID int64, localSurrendered bool) (Outcome, error) {
	if snap == nil || !snap.IsFinished() {
		return "", fmt.Errorf("%w: outcome requested for non-terminal session", models.ErrConsistency)
	}
	opp := snap.OpponentOf(localID)
	if opp == nil {
		return "", fmt.Errorf("%w: local id %d is not a participant", models.ErrConsistency, localID)
	}

	if snap.Winner != nil {
		if !snap.IsParticipant(snap.Winner.ID) {
			return "", fmt.Errorf("%w: winner id %d matches neither participant", models.ErrConsistency, snap.Winner.ID)
		}
		if snap.Winner.ID == localID {
			if localSurrendered {
				return "", fmt.Errorf("%w: server names surrendered participant as winner", models.ErrConsistency)
			}
			// A rule-engine win exhausts the loser's hand; a winner over a
			// live hand means the opponent gave up.
			if !models.AllExhausted(snap.CardsOf(opp.ID)) {
				return OutcomeOpponentSurrendered, nil
			}
			return OutcomeLocalWin, nil
		}
		if localSurrendered {
			return OutcomeLocalSurrendered, nil
		}
		return OutcomeLocalLoss, nil
	}

	if localSurrendered {
		return OutcomeLocalSurrendered, nil
	}

	localOut := models.AllExhausted(snap.CardsOf(localID))
	oppOut := models.AllExhausted(snap.CardsOf(opp.ID))
	switch {
	case localOut && oppOut:
		return "", fmt.Errorf("%w: both hands exhausted with no explicit winner", models.ErrConsistency)
	case localOut:
		return OutcomeLocalLoss, nil
	case oppOut:
		return OutcomeLocalWin, nil
	default:
		return "", fmt.Errorf("%w: finished session with no winner and no exhausted hand", models.ErrConsistency)
	}
}
