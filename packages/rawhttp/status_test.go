package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusLine(t *testing.T) {
	raw := []byte("HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n")

	sl, ok := ParseStatusLine(raw)
	require.True(t, ok)
	assert.Equal(t, "HTTP/1.1", sl.Proto)
	assert.Equal(t, 404, sl.Code)
	assert.Equal(t, "Not Found", sl.Reason)
}

func TestParseStatusLine_NoReason(t *testing.T) {
	sl, ok := ParseStatusLine([]byte("HTTP/1.0 200\r\n\r\n"))
	require.True(t, ok)
	assert.Equal(t, 200, sl.Code)
	assert.Empty(t, sl.Reason)
}

func TestParseStatusLine_TruncatedLine(t *testing.T) {
	// Peer closed before finishing the first line.
	sl, ok := ParseStatusLine([]byte("HTTP/1.1 500 Internal"))
	require.True(t, ok)
	assert.Equal(t, 500, sl.Code)
	assert.Equal(t, "Internal", sl.Reason)
}

func TestParseStatusLine_NotHTTP(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not an http response at all"},
		{"non numeric code", "HTTP/1.1 abc Bad\r\n"},
		{"missing code", "HTTP/1.1\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseStatusLine([]byte(tt.raw))
			assert.False(t, ok)
		})
	}
}
