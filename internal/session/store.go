// internal/session/store.go
package session

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/smurfs/mathic-client/internal/models"
)

// noSelection marks an empty staged selection.
const noSelection = -1

// Store owns the single authoritative in-memory session snapshot plus the
// locally staged selection. The server is always correct: ApplySnapshot is a
// whole-value replace, never a field-level merge, so stale and fresh fields
// can never mix.
type Store struct {
	mu sync.Mutex

	localID     int64
	current     *models.Session
	selection   int
	surrendered bool
	closed      bool

	logger *logrus.Logger

	// OnApply, when set, is invoked with a copy of every accepted snapshot
	// after it has been applied. Used for journaling and view refresh.
	OnApply func(*models.Session)
}

// NewStore creates a store bound to the local participant id.
func NewStore(localID int64, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		localID:   localID,
		selection: noSelection,
		logger:    logger,
	}
}

// LocalID returns the bound participant id.
func (s *Store) LocalID() int64 {
	return s.localID
}

// ApplySnapshot replaces the authoritative session with the given snapshot
// and unconditionally clears the staged selection. Snapshots arriving after
// Close, or for a different session id, are discarded. A snapshot whose
// currentTurn references neither participant is rejected as inconsistent.
func (s *Store) ApplySnapshot(snap *models.Session) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", models.ErrConsistency)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.WithField("session", snap.GameID).Debug("discarding snapshot after teardown")
		return nil
	}
	if s.current != nil && s.current.GameID != snap.GameID {
		s.mu.Unlock()
		s.logger.WithFields(logrus.Fields{
			"have": s.current.GameID,
			"got":  snap.GameID,
		}).Warn("discarding snapshot for foreign session")
		return fmt.Errorf("%w: snapshot for session %s, store owns %s", models.ErrConsistency, snap.GameID, s.current.GameID)
	}
	if snap.CurrentTurn != nil && !snap.IsParticipant(snap.CurrentTurn.ID) {
		s.mu.Unlock()
		return fmt.Errorf("%w: currentTurn id %d matches neither participant", models.ErrConsistency, snap.CurrentTurn.ID)
	}

	applied := snap.Clone()
	s.current = applied
	s.selection = noSelection
	hook := s.OnApply
	s.mu.Unlock()

	if hook != nil {
		hook(applied.Clone())
	}
	return nil
}

// StageSelection stages the local participant's card at index as the source
// half of a move. Illegal attempts leave the store untouched and report why.
func (s *Store) StageSelection(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.current == nil:
		return fmt.Errorf("%w: no session loaded", models.ErrIllegalAction)
	case s.current.Status != models.StatusInProgress:
		return fmt.Errorf("%w: session is %s", models.ErrIllegalAction, s.current.Status)
	case !s.current.IsLocalTurn(s.localID):
		return fmt.Errorf("%w: not your turn", models.ErrIllegalAction)
	case s.selection != noSelection:
		return fmt.Errorf("%w: a card is already selected", models.ErrIllegalAction)
	}

	cards := s.current.CardsOf(s.localID)
	if index < 0 || index >= len(cards) {
		return fmt.Errorf("%w: card index %d out of range", models.ErrIllegalAction, index)
	}
	if cards[index] == 0 {
		return fmt.Errorf("%w: card %d is exhausted", models.ErrIllegalAction, index)
	}

	s.selection = index
	return nil
}

// ClearSelection unconditionally empties the staged selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = noSelection
}

// Selection returns the staged card index, if any.
func (s *Store) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == noSelection {
		return 0, false
	}
	return s.selection, true
}

// Snapshot returns a copy of the current session, or nil before the first
// snapshot lands.
func (s *Store) Snapshot() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// LocalCards returns a copy of the local participant's hand.
func (s *Store) LocalCards() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return append([]int(nil), s.current.CardsOf(s.localID)...)
}

// OpponentCards returns a copy of the opponent's hand.
func (s *Store) OpponentCards() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	opp := s.current.OpponentOf(s.localID)
	if opp == nil {
		return nil
	}
	return append([]int(nil), s.current.CardsOf(opp.ID)...)
}

// IsLocalTurn reports whether it is the local participant's turn.
func (s *Store) IsLocalTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsLocalTurn(s.localID)
}

// IsFinished reports whether the session has reached its terminal status.
func (s *Store) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsFinished()
}

// MarkSurrendered records that the local participant surrendered. The flag
// only feeds outcome display until the authoritative winner arrives.
func (s *Store) MarkSurrendered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surrendered = true
}

// ClearSurrendered undoes MarkSurrendered after a failed submission.
func (s *Store) ClearSurrendered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surrendered = false
}

// Surrendered reports the locally recorded surrender flag.
func (s *Store) Surrendered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surrendered
}

// Close tears the store down. Any snapshot arriving afterwards is discarded,
// never applied.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
