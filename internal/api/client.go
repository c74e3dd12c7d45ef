// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smurfs/mathic-client/internal/middleware"
	"github.com/smurfs/mathic-client/internal/models"
)

// Client is the HTTP side of the runtime: the one-shot snapshot fetch, the
// lobby operations, and action submission. Every method issues exactly one
// request and never retries; retrying is the caller's decision.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// New creates an API client for the game service.
func New(baseURL, token string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: middleware.LogTransport(logger, nil),
		},
	}
}

// SetToken updates the bearer credential used on every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// RejectionError is a request the service accepted but refused on rule
// grounds: not the caller's turn, session finished, illegal indices. The
// local state is resynchronized by the next snapshot, never guessed.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("server rejected request (HTTP %d): %s", e.Status, e.Message)
}

// do performs one request and maps failures onto the shared error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", models.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", models.ErrTransport, method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s %s returned %d", models.ErrUnauthorized, method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &RejectionError{Status: resp.StatusCode, Message: rejectionMessage(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// rejectionMessage pulls a human-readable reason out of an error body,
// tolerating both {"message": ...} payloads and bare text.
func rejectionMessage(body []byte) string {
	var wrapped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	return strings.TrimSpace(string(body))
}

// validateSessionID rejects malformed session ids before any request is made.
func validateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid session id %q", models.ErrIllegalAction, id)
	}
	return nil
}

// Fetch pulls the full authoritative snapshot for a session. This is the
// one-shot pull performed at session-open time; all later updates arrive via
// the push channel or a submission response.
func (c *Client) Fetch(ctx context.Context, sessionID string) (*models.Session, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	var s models.Session
	if err := c.do(ctx, http.MethodGet, "/game/"+sessionID+"/data", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create opens a new session with the caller as first participant.
func (c *Client) Create(ctx context.Context) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/game/start", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type connectRequest struct {
	GameID string `json:"gameId"`
}

// Join installs the caller as second participant of the given session.
func (c *Client) Join(ctx context.Context, sessionID string) (*models.Session, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/game/connect", connectRequest{GameID: sessionID}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// JoinRandom joins the first open session the service can find.
func (c *Client) JoinRandom(ctx context.Context) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/game/connect/random", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Begin asks the service to start the session. Only the first participant
// may do this, and only once a second participant is present; violations
// come back as a RejectionError.
func (c *Client) Begin(ctx context.Context, sessionID string) (*models.Session, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/game/start-game/"+sessionID, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns the abbreviated lobby listing of joinable sessions.
func (c *Client) List(ctx context.Context) ([]models.SessionInfo, error) {
	var infos []models.SessionInfo
	if err := c.do(ctx, http.MethodGet, "/game/all", nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

type movePayload struct {
	GameID      string          `json:"gameId"`
	Player      models.Identity `json:"player"`
	CardIndex   int             `json:"cardIndex"`
	TargetIndex int             `json:"targetIndex"`
}

type actorPayload struct {
	GameID string          `json:"gameId"`
	Player models.Identity `json:"player"`
}

// SubmitMove sends a move intent and returns the updated snapshot.
func (c *Client) SubmitMove(ctx context.Context, intent models.Intent) (*models.Session, error) {
	var s models.Session
	payload := movePayload{
		GameID:      intent.SessionID,
		Player:      intent.Actor,
		CardIndex:   intent.Source,
		TargetIndex: intent.Target,
	}
	if err := c.do(ctx, http.MethodPost, "/game/gameplay", payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SubmitSplit sends a split intent and returns the updated snapshot.
func (c *Client) SubmitSplit(ctx context.Context, intent models.Intent) (*models.Session, error) {
	var s models.Session
	payload := actorPayload{GameID: intent.SessionID, Player: intent.Actor}
	if err := c.do(ctx, http.MethodPost, "/game/split", payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SubmitSurrender sends a surrender intent and returns the terminal snapshot.
func (c *Client) SubmitSurrender(ctx context.Context, intent models.Intent) (*models.Session, error) {
	if err := validateSessionID(intent.SessionID); err != nil {
		return nil, err
	}
	var s models.Session
	if err := c.do(ctx, http.MethodPut, "/game/"+intent.SessionID+"/surrender", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
