// Package transport performs single-shot TCP exchanges: one connection,
// one write, reads until the peer closes or goes quiet, then close. It
// knows nothing about HTTP; callers hand it request bytes and get back
// whatever the peer sent.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// DefaultTimeout bounds connection setup and each individual read.
	DefaultTimeout = 5 * time.Second
	// DefaultChunkSize is the receive buffer size per read.
	DefaultChunkSize = 4096
)

type Transport struct {
	timeout   time.Duration
	chunkSize int
}

type Option func(*Transport)

func New(opts ...Option) *Transport {
	t := &Transport{
		timeout:   DefaultTimeout,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

func WithChunkSize(n int) Option {
	return func(t *Transport) {
		t.chunkSize = n
	}
}

// RoundTrip dials addr, writes payload, and accumulates response bytes
// until the peer closes the connection or a read sits idle past the
// timeout. A timed-out read is not an error: peers that omit
// Connection: close simply hold the socket open, and whatever arrived
// before the deadline is the response. Dial failures and mid-transfer
// I/O errors are returned to the caller; the connection is closed on
// every path.
func (t *Transport) RoundTrip(addr string, payload []byte) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", addr, t.timeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, fmt.Errorf("setting write deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("writing to %s: %w", addr, err)
	}

	var response []byte
	buf := make([]byte, t.chunkSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
			return response, fmt.Errorf("setting read deadline: %w", err)
		}

		n, err := conn.Read(buf)
		if n > 0 {
			response = append(response, buf[:n]...)
		}
		if err == nil {
			continue
		}

		if errors.Is(err, io.EOF) {
			return response, nil
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			// Peer kept the connection open; treat what we have as the
			// complete response.
			return response, nil
		}
		return response, fmt.Errorf("reading from %s: %w", addr, err)
	}
}
