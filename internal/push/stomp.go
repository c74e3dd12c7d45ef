// internal/push/stomp.go
package push

import (
	"bytes"
	"fmt"
	"sort"
)

// STOMP command subset spoken with the broker. Snapshots ride on MESSAGE
// frames; everything else is connection lifecycle.
const (
	cmdConnect    = "CONNECT"
	cmdConnected  = "CONNECTED"
	cmdSubscribe  = "SUBSCRIBE"
	cmdMessage    = "MESSAGE"
	cmdError      = "ERROR"
	cmdDisconnect = "DISCONNECT"
)

// frame is one STOMP 1.2 frame: a command line, header lines, a blank line,
// then a NUL-terminated body.
type frame struct {
	Command string
	Headers map[string]string
	Body    []byte
}

// header returns the value for a header key, or "".
func (f *frame) header(key string) string {
	return f.Headers[key]
}

// marshalFrame encodes a frame for the wire. Headers are written in sorted
// key order so the encoding is deterministic.
func marshalFrame(f *frame) []byte {
	var buf bytes.Buffer
	buf.WriteString(f.Command)
	buf.WriteByte('\n')

	keys := make([]string, 0, len(f.Headers))
	for k := range f.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteByte(':')
		buf.WriteString(f.Headers[k])
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(0)
	return buf.Bytes()
}

// parseFrame decodes a single frame from one websocket message. A bare
// newline is a broker heartbeat and parses to nil.
func parseFrame(data []byte) (*frame, error) {
	data = bytes.TrimSuffix(data, []byte{0})
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	// Some brokers terminate lines with CRLF; bodies here are JSON, so a
	// blanket normalization is safe.
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	head, body, found := bytes.Cut(data, []byte("\n\n"))
	if !found {
		return nil, fmt.Errorf("malformed frame: missing header terminator")
	}

	lines := bytes.Split(head, []byte("\n"))
	f := &frame{
		Command: string(bytes.TrimSuffix(lines[0], []byte("\r"))),
		Headers: make(map[string]string),
		Body:    body,
	}
	if f.Command == "" {
		return nil, fmt.Errorf("malformed frame: empty command")
	}

	for _, line := range lines[1:] {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 {
			continue
		}
		k, v, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		// First occurrence wins, per the STOMP spec.
		if _, exists := f.Headers[string(k)]; !exists {
			f.Headers[string(k)] = string(v)
		}
	}
	return f, nil
}
