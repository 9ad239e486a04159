package scenario

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
	"github.com/abdul-hamid-achik/wirecheck/packages/transport"
)

// fakeExchanger replays canned outcomes in call order.
type fakeExchanger struct {
	responses [][]byte
	errs      []error
	calls     [][]byte
	addrs     []string
}

func (f *fakeExchanger) RoundTrip(addr string, payload []byte) ([]byte, error) {
	i := len(f.calls)
	f.calls = append(f.calls, payload)
	f.addrs = append(f.addrs, addr)

	var raw []byte
	var err error
	if i < len(f.responses) {
		raw = f.responses[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return raw, err
}

func testScenarios(n int) []*Scenario {
	scenarios := make([]*Scenario, n)
	for i := range scenarios {
		scenarios[i] = &Scenario{
			Name: string(rune('a' + i)),
			Request: rawhttp.NewRequest("GET", "/").
				AddHeader("Host", testHostport).
				AddHeader("Connection", "close"),
		}
	}
	return scenarios
}

func TestRunner_Run(t *testing.T) {
	fake := &fakeExchanger{
		responses: [][]byte{
			[]byte("HTTP/1.1 200 OK\r\n\r\none"),
			[]byte("HTTP/1.1 200 OK\r\n\r\ntwo"),
		},
	}

	cfg := &Config{Host: "localhost", Port: 8080, Pause: time.Millisecond}
	runner := NewRunner(cfg, WithExchanger(fake))

	var reported []string
	run := runner.Run(testScenarios(2), func(r *Result) {
		reported = append(reported, r.Scenario.Name)
	})

	require.Len(t, run.Results, 2)
	assert.Equal(t, 2, run.Completed)
	assert.Zero(t, run.Failed)
	assert.Equal(t, []string{"a", "b"}, reported)
	assert.Equal(t, "one", string(run.Results[0].Raw[len(run.Results[0].Raw)-3:]))

	for _, addr := range fake.addrs {
		assert.Equal(t, "localhost:8080", addr)
	}
}

func TestRunner_FailureDoesNotAbortRemaining(t *testing.T) {
	fake := &fakeExchanger{
		responses: [][]byte{nil, []byte("HTTP/1.1 200 OK\r\n\r\n"), []byte("HTTP/1.1 200 OK\r\n\r\n")},
		errs:      []error{errors.New("connection refused"), nil, nil},
	}

	runner := NewRunner(&Config{Host: "localhost", Port: 8080, Pause: time.Millisecond},
		WithExchanger(fake))

	run := runner.Run(testScenarios(3), nil)

	require.Len(t, run.Results, 3, "a failed scenario must not stop the run")
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 2, run.Completed)
	assert.Error(t, run.Results[0].Err)
	assert.NoError(t, run.Results[1].Err)
}

func TestRunner_RunOneSendsExactRequestBytes(t *testing.T) {
	fake := &fakeExchanger{}
	runner := NewRunner(&Config{Host: "h", Port: 1}, WithExchanger(fake))

	sc := &Scenario{
		Name:    "invalid",
		Request: rawhttp.NewRequest("INVALID", "/test").AddHeader("Host", "h:1"),
	}
	result := runner.RunOne(sc)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, sc.Request.Bytes(), fake.calls[0])
	assert.Equal(t, sc.Request.Bytes(), result.RequestBytes)
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", cfg.Addr())
}

// End-to-end: a catalogue scenario delivered through the real transport
// to a stub peer comes back byte-for-byte.
func TestRunner_EndToEnd(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nConnection: close\r\n\r\n<html>ok</html>"

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				buf := make([]byte, 4096)
				_, _ = c.Read(buf)
				_, _ = c.Write([]byte(response))
			}(conn)
		}
	}()

	tcpAddr := ln.Addr().(*net.TCPAddr)
	cfg := &Config{
		Host:    tcpAddr.IP.String(),
		Port:    tcpAddr.Port,
		Timeout: 2 * time.Second,
		Pause:   time.Millisecond,
	}
	runner := NewRunner(cfg, WithExchanger(transport.New(transport.WithTimeout(cfg.Timeout))))

	sc := &Scenario{
		Name: "get-static-file",
		Request: rawhttp.NewRequest("GET", "/test.html").
			AddHeader("Host", cfg.Addr()).
			AddHeader("Connection", "close"),
	}

	result := runner.RunOne(sc)
	require.NoError(t, result.Err)
	assert.Equal(t, response, string(result.Raw))

	sl, ok := result.StatusLine()
	require.True(t, ok)
	assert.Equal(t, 200, sl.Code)
}
