// internal/push/stomp_test.go
package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalFrame(t *testing.T) {
	f := &frame{
		Command: cmdSubscribe,
		Headers: map[string]string{
			"id":          "sub-0",
			"destination": "/topic/game-progress/abc",
		},
	}
	got := marshalFrame(f)
	assert.Equal(t, "SUBSCRIBE\ndestination:/topic/game-progress/abc\nid:sub-0\n\n\x00", string(got))
}

func TestParseFrameRoundTrip(t *testing.T) {
	in := &frame{
		Command: cmdMessage,
		Headers: map[string]string{
			"destination":  "/topic/game-progress/abc",
			"subscription": "sub-0",
		},
		Body: []byte(`{"gameId":"abc"}`),
	}

	out, err := parseFrame(marshalFrame(in))
	require.NoError(t, err)
	assert.Equal(t, cmdMessage, out.Command)
	assert.Equal(t, "/topic/game-progress/abc", out.header("destination"))
	assert.Equal(t, in.Body, out.Body)
}

func TestParseFrameHeartbeat(t *testing.T) {
	f, err := parseFrame([]byte("\n"))
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestParseFrameCarriageReturns(t *testing.T) {
	f, err := parseFrame([]byte("CONNECTED\r\nversion:1.2\r\n\r\n\x00"))
	require.NoError(t, err)
	assert.Equal(t, cmdConnected, f.Command)
	assert.Equal(t, "1.2", f.header("version"))
}

func TestParseFrameFirstHeaderWins(t *testing.T) {
	f, err := parseFrame([]byte("MESSAGE\ndestination:/topic/a\ndestination:/topic/b\n\nbody\x00"))
	require.NoError(t, err)
	assert.Equal(t, "/topic/a", f.header("destination"))
}

func TestParseFrameMalformed(t *testing.T) {
	_, err := parseFrame([]byte("MESSAGE\nno-terminator"))
	assert.Error(t, err)
}
