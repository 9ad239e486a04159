package rawhttp

import (
	"bytes"
	"strconv"
	"strings"
)

// StatusLine is the parsed first line of a response. The harness never
// needs this to operate; it exists so displays and the history store can
// label an exchange without parsing the rest of the response.
type StatusLine struct {
	Proto  string
	Code   int
	Reason string
}

// ParseStatusLine extracts the status line from raw response bytes. It
// returns false when the peer sent something that does not look like an
// HTTP response, which for this harness is an observation, not an error.
func ParseStatusLine(raw []byte) (StatusLine, bool) {
	end := bytes.Index(raw, []byte(crlf))
	if end < 0 {
		// A peer may close before finishing the first line; accept a
		// bare LF or no terminator at all.
		if end = bytes.IndexByte(raw, '\n'); end < 0 {
			end = len(raw)
		}
	}
	line := strings.TrimRight(string(raw[:end]), "\r\n")

	if !strings.HasPrefix(line, "HTTP/") {
		return StatusLine{}, false
	}

	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		return StatusLine{}, false
	}

	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return StatusLine{}, false
	}

	sl := StatusLine{Proto: fields[0], Code: code}
	if len(fields) == 3 {
		sl.Reason = fields[2]
	}
	return sl, true
}
