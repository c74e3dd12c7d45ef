// internal/models/intent.go
package models

// IntentKind identifies an outbound player action.
type IntentKind string

const (
	IntentMove      IntentKind = "move"
	IntentSplit     IntentKind = "split"
	IntentSurrender IntentKind = "surrender"
)

// Intent is a validated local action bound for the server. It is created on
// confirmed user input, sent exactly once, and discarded when the response
// arrives; it is never retried.
type Intent struct {
	Kind      IntentKind `json:"kind"`
	SessionID string     `json:"gameId"`
	Actor     Identity   `json:"player"`

	// Source and Target are only meaningful for move intents: Source indexes
	// the actor's own hand, Target the opponent's.
	Source int `json:"cardIndex"`
	Target int `json:"targetIndex"`
}

// NewMoveIntent builds a move intent for the given card indices.
func NewMoveIntent(sessionID string, actor Identity, source, target int) Intent {
	return Intent{Kind: IntentMove, SessionID: sessionID, Actor: actor, Source: source, Target: target}
}

// NewSplitIntent builds a split intent.
func NewSplitIntent(sessionID string, actor Identity) Intent {
	return Intent{Kind: IntentSplit, SessionID: sessionID, Actor: actor}
}

// NewSurrenderIntent builds a surrender intent.
func NewSurrenderIntent(sessionID string, actor Identity) Intent {
	return Intent{Kind: IntentSurrender, SessionID: sessionID, Actor: actor}
}
