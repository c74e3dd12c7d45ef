// internal/session/machine.go
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/smurfs/mathic-client/internal/models"
)

// Phase is the derived state of the turn machine. Transitions between
// snapshot-driven phases happen only when a snapshot is applied; the
// IDLE/SELECTED toggle is the one purely local, reversible transition.
type Phase string

const (
	PhaseLoading            Phase = "LOADING"
	PhaseWaitingForOpponent Phase = "WAITING_FOR_OPPONENT"
	PhaseActiveIdle         Phase = "ACTIVE_IDLE"
	PhaseActiveSelected     Phase = "ACTIVE_SELECTED"
	PhaseFinished           Phase = "FINISHED"
)

// Submitter sends one validated intent upstream and returns the updated
// snapshot. Implementations send exactly once and never retry.
type Submitter interface {
	SubmitMove(ctx context.Context, intent models.Intent) (*models.Session, error)
	SubmitSplit(ctx context.Context, intent models.Intent) (*models.Session, error)
	SubmitSurrender(ctx context.Context, intent models.Intent) (*models.Session, error)
}

// Machine is the turn state machine: it consumes snapshots and local player
// intents, enforces per-action legality, and hands validated intents to the
// submitter. At most one intent is in flight per session; the card values
// themselves are never mutated optimistically, every post-action view waits
// for the authoritative snapshot.
type Machine struct {
	store  *Store
	sub    Submitter
	local  models.Identity
	logger *logrus.Logger

	// OnSubmit, when set, is called after a submission is accepted upstream.
	// Called without any lock held.
	OnSubmit func(models.Intent)

	mu       sync.Mutex
	inFlight bool
}

// NewMachine builds a machine over the given store and submitter.
func NewMachine(store *Store, sub Submitter, local models.Identity, logger *logrus.Logger) *Machine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Machine{store: store, sub: sub, local: local, logger: logger}
}

// Store exposes the underlying state store for read-only views.
func (m *Machine) Store() *Store {
	return m.store
}

// Phase derives the current machine phase from the store.
func (m *Machine) Phase() Phase {
	snap := m.store.Snapshot()
	if snap == nil {
		return PhaseLoading
	}
	switch snap.Status {
	case models.StatusFinished:
		return PhaseFinished
	case models.StatusInProgress:
		if _, staged := m.store.Selection(); staged {
			return PhaseActiveSelected
		}
		return PhaseActiveIdle
	default:
		return PhaseWaitingForOpponent
	}
}

// HandleSnapshot feeds a fetched or pushed snapshot into the store. The last
// snapshot received wins; there is no field-level merge.
func (m *Machine) HandleSnapshot(snap *models.Session) error {
	return m.store.ApplySnapshot(snap)
}

// InFlight reports whether a submission is outstanding. Input is disabled
// while this is true.
func (m *Machine) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// acquire marks a submission in flight, rejecting a second one locally.
func (m *Machine) acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return models.ErrSubmissionPending
	}
	m.inFlight = true
	return nil
}

func (m *Machine) release() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// SelectCard stages the local card at index as the source of a move. Legal
// only in ACTIVE_IDLE, on the local turn, on a non-exhausted card.
func (m *Machine) SelectCard(index int) error {
	if m.InFlight() {
		return models.ErrSubmissionPending
	}
	return m.store.StageSelection(index)
}

// ClearSelection reverses SelectCard, returning to ACTIVE_IDLE.
func (m *Machine) ClearSelection() {
	m.store.ClearSelection()
}

// TargetCard completes the staged move against the opponent card at target
// and submits it. On success the returned snapshot is applied, which also
// clears the selection; on failure snapshot and selection stay untouched.
func (m *Machine) TargetCard(ctx context.Context, target int) error {
	source, staged := m.store.Selection()
	if !staged {
		return fmt.Errorf("%w: no card selected", models.ErrIllegalAction)
	}

	opp := m.store.OpponentCards()
	if target < 0 || target >= len(opp) {
		return fmt.Errorf("%w: target index %d out of range", models.ErrIllegalAction, target)
	}
	if opp[target] == 0 {
		return fmt.Errorf("%w: target card %d is exhausted", models.ErrIllegalAction, target)
	}

	snap := m.store.Snapshot()
	intent := models.NewMoveIntent(snap.GameID, m.local, source, target)
	return m.submit(ctx, intent, m.sub.SubmitMove)
}

// Split submits a split intent. Legal only in ACTIVE_IDLE on the local turn,
// and only when the two card values differ by more than one. Any hand size
// other than two makes split permanently illegal.
func (m *Machine) Split(ctx context.Context) error {
	snap := m.store.Snapshot()
	if snap == nil {
		return fmt.Errorf("%w: no session loaded", models.ErrIllegalAction)
	}
	if snap.Status != models.StatusInProgress {
		return fmt.Errorf("%w: session is %s", models.ErrIllegalAction, snap.Status)
	}
	if !snap.IsLocalTurn(m.local.ID) {
		return fmt.Errorf("%w: not your turn", models.ErrIllegalAction)
	}
	if _, staged := m.store.Selection(); staged {
		return fmt.Errorf("%w: cannot split with a card selected", models.ErrIllegalAction)
	}
	if !SplitLegal(m.store.LocalCards()) {
		return fmt.Errorf("%w: split requires two cards differing by more than one", models.ErrIllegalAction)
	}

	intent := models.NewSplitIntent(snap.GameID, m.local)
	return m.submit(ctx, intent, m.sub.SubmitSplit)
}

// SplitLegal reports whether a hand is eligible for a split: exactly two
// cards whose values differ by more than one.
func SplitLegal(cards []int) bool {
	if len(cards) != 2 {
		return false
	}
	diff := cards[0] - cards[1]
	if diff < 0 {
		diff = -diff
	}
	return diff > 1
}

// Surrender submits a surrender intent. Legal at any time before FINISHED,
// regardless of whose turn it is. The local identity is recorded as the one
// who surrendered for display purposes; the authoritative winner still comes
// from the terminal snapshot once it arrives.
func (m *Machine) Surrender(ctx context.Context) error {
	snap := m.store.Snapshot()
	if snap == nil {
		return fmt.Errorf("%w: no session loaded", models.ErrIllegalAction)
	}
	if snap.IsFinished() {
		return fmt.Errorf("%w: session already finished", models.ErrIllegalAction)
	}

	if err := m.acquire(); err != nil {
		return err
	}
	defer m.release()

	m.store.MarkSurrendered()

	intent := models.NewSurrenderIntent(snap.GameID, m.local)
	updated, err := m.sub.SubmitSurrender(ctx, intent)
	if err != nil {
		m.store.ClearSurrendered()
		m.logger.WithError(err).Warn("surrender submission failed")
		return err
	}
	if m.OnSubmit != nil {
		m.OnSubmit(intent)
	}
	return m.store.ApplySnapshot(updated)
}

// submitFunc is the shape shared by the submitter's move and split calls.
type submitFunc func(ctx context.Context, intent models.Intent) (*models.Session, error)

// submit guards one outbound intent: in-flight gating, the network call
// outside any lock, and applying the authoritative response. Failures leave
// snapshot and selection untouched so input can simply re-enable.
func (m *Machine) submit(ctx context.Context, intent models.Intent, send submitFunc) error {
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.release()

	updated, err := send(ctx, intent)
	if err != nil {
		m.logger.WithFields(logrus.Fields{
			"kind":    intent.Kind,
			"session": intent.SessionID,
		}).WithError(err).Warn("submission failed")
		return err
	}
	if m.OnSubmit != nil {
		m.OnSubmit(intent)
	}
	return m.store.ApplySnapshot(updated)
}
