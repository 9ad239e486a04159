// Package rawhttp builds HTTP/1.1 request bytes by hand.
//
// Unlike net/http, nothing here validates or normalizes anything: the
// point is to put exact, possibly malformed, byte sequences on the wire
// to see how a server reacts. It covers:
//   - Raw request serialization with ordered headers
//   - multipart/form-data body encoding with byte-exact lengths
//   - A minimal status-line extractor for display purposes
package rawhttp
