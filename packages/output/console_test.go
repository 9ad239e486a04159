package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

func sampleResult() *scenario.Result {
	sc := &scenario.Scenario{
		Name:        "get-static-file",
		Description: "GET a static file",
		Request: rawhttp.NewRequest("GET", "/test.html").
			AddHeader("Host", "localhost:8080").
			AddHeader("Connection", "close"),
	}
	return &scenario.Result{
		Scenario:     sc,
		RequestBytes: sc.Request.Bytes(),
		Raw:          []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"ok\":true}"),
		Duration:     12 * time.Millisecond,
	}
}

func TestConsoleFormatter_FormatResult(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	r := sampleResult()
	f.FormatResult(r)
	out := buf.String()

	assert.Contains(t, out, "Scenario: get-static-file")
	assert.Contains(t, out, "GET a static file")
	assert.Contains(t, out, "GET /test.html HTTP/1.1")
	assert.Contains(t, out, "HTTP/1.1 200 OK")
	assert.Contains(t, out, fmt.Sprintf("(%d bytes, 12ms)", len(r.Raw)))
}

func TestConsoleFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatResult(sampleResult())
	out := buf.String()

	assert.Contains(t, out, "Status: HTTP/1.1 200 OK")
	assert.Contains(t, out, "valid JSON")
}

func TestConsoleFormatter_Error(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	r := sampleResult()
	r.Raw = nil
	r.Err = errors.New("connecting to localhost:8080: connection refused")
	f.FormatResult(r)

	assert.Contains(t, buf.String(), "connection refused")
}

func TestConsoleFormatter_EmptyResponse(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	r := sampleResult()
	r.Raw = nil
	f.FormatResult(r)

	assert.Contains(t, buf.String(), "no response before timeout")
}

func TestConsoleFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatSummary(&scenario.RunResult{
		Results:   make([]*scenario.Result, 3),
		Completed: 2,
		Failed:    1,
		Duration:  1500 * time.Millisecond,
	})
	out := buf.String()

	assert.Contains(t, out, "2 completed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "3 total")
}

func TestDecodeLossy(t *testing.T) {
	assert.Equal(t, "plain ascii", DecodeLossy([]byte("plain ascii")))
	assert.Equal(t, "héllo", DecodeLossy([]byte("héllo")))

	// One replacement character per undecodable byte.
	got := DecodeLossy([]byte{'a', 0xff, 0xfe, 'b'})
	assert.Equal(t, "a��b", got)

	// A truncated multi-byte sequence is replaced byte by byte.
	truncated := []byte("é")[:1]
	assert.Equal(t, "x�", DecodeLossy(append([]byte("x"), truncated...)))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatHeader("dev", "localhost:8080")
	f.FormatResult(sampleResult())

	failed := sampleResult()
	failed.Raw = nil
	failed.Err = errors.New("connection refused")
	f.FormatResult(failed)

	require.NoError(t, f.Flush(2*time.Second))
	out := buf.String()

	assert.Contains(t, out, `"target": "localhost:8080"`)
	assert.Contains(t, out, `"statusCode": 200`)
	assert.Contains(t, out, `"completed": 1`)
	assert.Contains(t, out, `"failed": 1`)
	assert.Contains(t, out, `"error": "connection refused"`)
	assert.True(t, strings.Contains(out, "GET /test.html HTTP/1.1"))
}
