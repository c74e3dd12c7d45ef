// internal/push/subscriber.go
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/smurfs/mathic-client/internal/middleware"
	"github.com/smurfs/mathic-client/internal/models"
)

// EventType classifies events arriving on the push channel.
type EventType string

const (
	// EventSnapshot carries a full session snapshot from the progress topic.
	EventSnapshot EventType = "snapshot"
	// EventStarted is the one-shot lifecycle signal that the session began.
	EventStarted EventType = "started"
)

// Event is one push delivery. Session is set for snapshot events and, when
// the broker includes a body, for started events too.
type Event struct {
	Type    EventType
	Session *models.Session
}

// Subscriber holds one websocket subscription to a session's progress and
// lifecycle topics. Events are delivered on the Events channel until Close
// is called or the connection drops; the channel is then closed.
type Subscriber struct {
	conn      *websocket.Conn
	logger    *logrus.Logger
	url       string
	sessionID string
	events    chan Event
	cancel    context.CancelFunc
}

// Subscribe dials the broker, performs the STOMP handshake, subscribes to
// the session's topics and starts the read loop. The given context bounds
// the whole subscription: cancelling it tears the channel down.
func Subscribe(ctx context.Context, wsURL, token, sessionID string, logger *logrus.Logger) (*Subscriber, error) {
	dialCtx, dialCancel := context.WithTimeout(ctx, 15*time.Second)
	defer dialCancel()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.Dial(dialCtx, wsURL, &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: push dial: %v", models.ErrTransport, err)
	}

	s := &Subscriber{
		conn:      conn,
		logger:    logger,
		url:       wsURL,
		sessionID: sessionID,
		events:    make(chan Event, 16),
	}

	if err := s.handshake(dialCtx, token); err != nil {
		conn.Close(websocket.StatusProtocolError, "handshake failed")
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.readLoop(loopCtx)

	middleware.LogWebSocketConnect(logger, wsURL, sessionID)
	return s, nil
}

// handshake performs CONNECT/CONNECTED and the two SUBSCRIBE frames. No game
// state is surfaced until the first snapshot lands, from either channel.
func (s *Subscriber) handshake(ctx context.Context, token string) error {
	host := "localhost"
	if u, err := url.Parse(s.url); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	connect := &frame{
		Command: cmdConnect,
		Headers: map[string]string{
			"accept-version": "1.2",
			"host":           host,
			"heart-beat":     "0,0",
		},
	}
	if token != "" {
		connect.Headers["Authorization"] = "Bearer " + token
	}
	if err := s.write(ctx, connect); err != nil {
		return err
	}

	reply, err := s.read(ctx)
	if err != nil {
		return err
	}
	if reply.Command != cmdConnected {
		return fmt.Errorf("%w: broker answered %s instead of CONNECTED", models.ErrTransport, reply.Command)
	}

	subs := []struct {
		id          string
		destination string
	}{
		{"sub-0", "/topic/game-progress/" + s.sessionID},
		{"sub-1", "/topic/game-start/" + s.sessionID},
	}
	for _, sub := range subs {
		err := s.write(ctx, &frame{
			Command: cmdSubscribe,
			Headers: map[string]string{
				"id":          sub.id,
				"destination": sub.destination,
				"ack":         "auto",
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Subscriber) write(ctx context.Context, f *frame) error {
	if err := s.conn.Write(ctx, websocket.MessageText, marshalFrame(f)); err != nil {
		return fmt.Errorf("%w: push write: %v", models.ErrTransport, err)
	}
	return nil
}

func (s *Subscriber) read(ctx context.Context) (*frame, error) {
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: push read: %v", models.ErrTransport, err)
		}
		f, err := parseFrame(data)
		if err != nil {
			return nil, err
		}
		if f == nil {
			// heartbeat
			continue
		}
		return f, nil
	}
}

// readLoop converts broker frames into Events until the connection drops or
// the context is cancelled. It owns the events channel and closes it on exit,
// so consumers can range over Events.
func (s *Subscriber) readLoop(ctx context.Context) {
	defer close(s.events)

	for {
		f, err := s.read(ctx)
		if err != nil {
			middleware.LogWebSocketDisconnect(s.logger, s.url, s.sessionID, ctx.Err())
			return
		}

		switch f.Command {
		case cmdMessage:
			ev, ok := s.decodeMessage(f)
			if !ok {
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				middleware.LogWebSocketDisconnect(s.logger, s.url, s.sessionID, ctx.Err())
				return
			}
		case cmdError:
			s.logger.WithFields(logrus.Fields{
				"session": s.sessionID,
				"message": f.header("message"),
			}).Warn("broker reported error")
		default:
			s.logger.WithField("command", f.Command).Debug("ignoring broker frame")
		}
	}
}

// decodeMessage maps a MESSAGE frame onto an Event by destination topic.
func (s *Subscriber) decodeMessage(f *frame) (Event, bool) {
	dest := f.header("destination")

	var ev Event
	switch {
	case dest == "/topic/game-progress/"+s.sessionID:
		ev.Type = EventSnapshot
	case dest == "/topic/game-start/"+s.sessionID:
		ev.Type = EventStarted
	default:
		s.logger.WithField("destination", dest).Debug("ignoring message for unknown topic")
		return Event{}, false
	}

	if len(f.Body) == 0 {
		if ev.Type == EventSnapshot {
			s.logger.WithField("session", s.sessionID).Warn("dropping empty push payload")
			return Event{}, false
		}
		return ev, true
	}

	var snap models.Session
	if err := json.Unmarshal(f.Body, &snap); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session": s.sessionID,
			"error":   err,
		}).Warn("dropping undecodable push payload")
		if ev.Type == EventSnapshot {
			return Event{}, false
		}
		return ev, true
	}
	ev.Session = &snap
	return ev, true
}

// Events returns the delivery channel. It is closed on teardown; events that
// would arrive after teardown are discarded, never applied.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Close sends a best-effort DISCONNECT, drops the connection and stops the
// read loop.
func (s *Subscriber) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.conn.Write(ctx, websocket.MessageText, marshalFrame(&frame{
		Command: cmdDisconnect,
		Headers: map[string]string{},
	}))

	if s.cancel != nil {
		s.cancel()
	}
	_ = s.conn.Close(websocket.StatusNormalClosure, "leaving session")
}
