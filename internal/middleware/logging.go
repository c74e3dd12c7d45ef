// internal/middleware/logging.go

package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// loggingTransport wraps an http.RoundTripper and logs every outbound
// request with Logrus: method, path, duration and response status.
type loggingTransport struct {
	base   http.RoundTripper
	logger *logrus.Logger
}

// LogTransport returns an http.RoundTripper that logs outbound requests.
// A nil base falls back to http.DefaultTransport.
func LogTransport(logger *logrus.Logger, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)

	fields := logrus.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"duration": time.Since(start),
	}
	if err != nil {
		fields["error"] = err
		t.logger.WithFields(fields).Warn("HTTP request failed")
		return nil, err
	}
	fields["status"] = resp.StatusCode
	t.logger.WithFields(fields).Debug("HTTP request")
	return resp, nil
}

// LogWebSocketConnect logs a message when the push channel connects.
func LogWebSocketConnect(logger *logrus.Logger, url string, sessionID string) {
	logger.WithFields(logrus.Fields{
		"url":     url,
		"session": sessionID,
	}).Info("push channel connected")
}

// LogWebSocketDisconnect logs a message when the push channel disconnects.
func LogWebSocketDisconnect(logger *logrus.Logger, url string, sessionID string, err error) {
	fields := logrus.Fields{
		"url":     url,
		"session": sessionID,
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("push channel disconnected")
}
