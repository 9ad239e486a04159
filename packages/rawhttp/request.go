package rawhttp

import (
	"bytes"
	"strconv"
)

const crlf = "\r\n"

// DefaultVersion is the protocol token used unless a request overrides it.
const DefaultVersion = "HTTP/1.1"

// Header is a single name/value pair. Headers are kept as a slice, not a
// map, because wire order matters for the servers under test and
// duplicates must survive.
type Header struct {
	Name  string
	Value string
}

// Request describes one raw request. Every field is written to the wire
// verbatim: an empty Version or an unregistered Method token is a valid
// input, not an error.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers []Header
	Body    []byte
}

func NewRequest(method, target string) *Request {
	return &Request{
		Method:  method,
		Target:  target,
		Version: DefaultVersion,
	}
}

// SetVersion overrides the protocol token. An empty string produces a
// request line without a version, which real servers should reject.
func (r *Request) SetVersion(version string) *Request {
	r.Version = version
	return r
}

// AddHeader appends a header. It never deduplicates or reorders.
func (r *Request) AddHeader(name, value string) *Request {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
	return r
}

func (r *Request) SetBody(body []byte) *Request {
	r.Body = body
	return r
}

// SetTextBody sets the body and appends Content-Type and a byte-exact
// Content-Length header for it.
func (r *Request) SetTextBody(contentType string, body []byte) *Request {
	r.AddHeader("Content-Type", contentType)
	r.AddHeader("Content-Length", strconv.Itoa(len(body)))
	r.Body = body
	return r
}

// Bytes serializes the request. The output is the three request-line
// tokens joined by single spaces (even when a token is empty), CRLF,
// each header in insertion order, a blank line, then the raw body with
// no trailing terminator. The result is a pure function of the request:
// calling Bytes twice yields identical output.
func (r *Request) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(r.Method)
	buf.WriteByte(' ')
	buf.WriteString(r.Target)
	buf.WriteByte(' ')
	buf.WriteString(r.Version)
	buf.WriteString(crlf)

	for _, h := range r.Headers {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteString(crlf)
	}

	buf.WriteString(crlf)
	buf.Write(r.Body)
	return buf.Bytes()
}

// String renders the request for display.
func (r *Request) String() string {
	return string(r.Bytes())
}
