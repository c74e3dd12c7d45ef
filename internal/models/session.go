// internal/models/session.go
package models

// SessionStatus tracks the lifecycle of a game session as reported by the server.
type SessionStatus string

const (
	StatusNew        SessionStatus = "NEW"
	StatusWaiting    SessionStatus = "WAITING"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusFinished   SessionStatus = "FINISHED"
)

// Identity is a participant reference. Equality is always by ID; display
// names are not stable and must never be used for comparison.
type Identity struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
}

// Same reports whether both identities reference the same participant.
func (u *Identity) Same(other *Identity) bool {
	if u == nil || other == nil {
		return false
	}
	return u.ID == other.ID
}

// Session is a full snapshot of one game session as delivered by the server,
// either from the one-shot fetch or from the push channel. A snapshot is
// always complete; there is no partial-delta form.
type Session struct {
	GameID       string        `json:"gameId"`
	Player1      *Identity     `json:"player1"`
	Player2      *Identity     `json:"player2"`
	Status       SessionStatus `json:"status"`
	Player1Cards []int         `json:"player1Cards"`
	Player2Cards []int         `json:"player2Cards"`
	CurrentTurn  *Identity     `json:"currentTurn"`
	Winner       *Identity     `json:"winner"`
}

// SessionInfo is the abbreviated listing row returned by the lobby endpoint.
type SessionInfo struct {
	GameID  string        `json:"gameId"`
	Player1 *Identity     `json:"player1"`
	Status  SessionStatus `json:"status"`
}

// IsFinished reports whether the session has reached its terminal status.
func (s *Session) IsFinished() bool {
	return s.Status == StatusFinished
}

// HasBothPlayers reports whether a second participant has joined.
func (s *Session) HasBothPlayers() bool {
	return s.Player1 != nil && s.Player2 != nil
}

// IsParticipant reports whether the given id belongs to either participant.
func (s *Session) IsParticipant(id int64) bool {
	return (s.Player1 != nil && s.Player1.ID == id) || (s.Player2 != nil && s.Player2.ID == id)
}

// ParticipantByID returns the participant with the given id, or nil.
func (s *Session) ParticipantByID(id int64) *Identity {
	if s.Player1 != nil && s.Player1.ID == id {
		return s.Player1
	}
	if s.Player2 != nil && s.Player2.ID == id {
		return s.Player2
	}
	return nil
}

// OpponentOf returns the other participant relative to the given id, or nil
// if the id is not a participant or the opponent has not joined yet.
func (s *Session) OpponentOf(id int64) *Identity {
	if s.Player1 != nil && s.Player1.ID == id {
		return s.Player2
	}
	if s.Player2 != nil && s.Player2.ID == id {
		return s.Player1
	}
	return nil
}

// CardsOf returns the card sequence belonging to the given participant id,
// or nil if the id is not a participant.
func (s *Session) CardsOf(id int64) []int {
	if s.Player1 != nil && s.Player1.ID == id {
		return s.Player1Cards
	}
	if s.Player2 != nil && s.Player2.ID == id {
		return s.Player2Cards
	}
	return nil
}

// IsLocalTurn reports whether it is the given participant's turn.
func (s *Session) IsLocalTurn(id int64) bool {
	return s.CurrentTurn != nil && s.CurrentTurn.ID == id
}

// Clone returns a deep copy of the session so callers can hold a snapshot
// without aliasing the store's authoritative copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		GameID: s.GameID,
		Status: s.Status,
	}
	if s.Player1 != nil {
		p := *s.Player1
		out.Player1 = &p
	}
	if s.Player2 != nil {
		p := *s.Player2
		out.Player2 = &p
	}
	if s.CurrentTurn != nil {
		p := *s.CurrentTurn
		out.CurrentTurn = &p
	}
	if s.Winner != nil {
		p := *s.Winner
		out.Winner = &p
	}
	if s.Player1Cards != nil {
		out.Player1Cards = append([]int(nil), s.Player1Cards...)
	}
	if s.Player2Cards != nil {
		out.Player2Cards = append([]int(nil), s.Player2Cards...)
	}
	return out
}

// AllExhausted reports whether every card value in the hand is zero. An empty
// or missing hand is not considered exhausted.
func AllExhausted(cards []int) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if c != 0 {
			return false
		}
	}
	return true
}
