package rawhttp

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrBoundaryCollision is returned when a part's content contains the
// boundary token, which would make the framing ambiguous.
var ErrBoundaryCollision = errors.New("boundary token occurs in part content")

// Part is one section of a multipart/form-data body. ContentType is
// emitted only when set; FilePart and FieldPart apply the conventional
// defaults.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// FilePart builds a file section with the text/plain default content type.
func FilePart(name, filename string, content []byte) Part {
	return Part{
		Name:        name,
		Filename:    filename,
		ContentType: "text/plain",
		Content:     content,
	}
}

// FieldPart builds a plain form field section with no content type line.
func FieldPart(name, value string) Part {
	return Part{Name: name, Content: []byte(value)}
}

// NewBoundary returns a boundary token that cannot collide with
// realistic content.
func NewBoundary() string {
	return "wirecheck-" + uuid.NewString()
}

// MultipartContentType returns the Content-Type header value matching a
// body encoded with the given boundary.
func MultipartContentType(boundary string) string {
	return "multipart/form-data; boundary=" + boundary
}

// EncodeMultipart serializes parts into a multipart/form-data body.
// Each part is framed as:
//
//	--BOUNDARY
//	Content-Disposition: form-data; name="..."[; filename="..."]
//	[Content-Type: ...]
//
//	<content>
//
// with CRLF line endings throughout and a closing --BOUNDARY-- line.
// The returned slice's len is the exact byte count to advertise in
// Content-Length, including for multi-byte content.
//
// Encoding fails if the boundary appears inside any part's content,
// since the peer could not tell content from framing.
func EncodeMultipart(boundary string, parts []Part) ([]byte, error) {
	if boundary == "" {
		boundary = NewBoundary()
	}

	var buf bytes.Buffer
	for _, p := range parts {
		if bytes.Contains(p.Content, []byte(boundary)) {
			return nil, fmt.Errorf("part %q: %w", p.Name, ErrBoundaryCollision)
		}

		buf.WriteString("--")
		buf.WriteString(boundary)
		buf.WriteString(crlf)

		buf.WriteString(`Content-Disposition: form-data; name="`)
		buf.WriteString(p.Name)
		buf.WriteString(`"`)
		if p.Filename != "" {
			buf.WriteString(`; filename="`)
			buf.WriteString(p.Filename)
			buf.WriteString(`"`)
		}
		buf.WriteString(crlf)

		if p.ContentType != "" {
			buf.WriteString("Content-Type: ")
			buf.WriteString(p.ContentType)
			buf.WriteString(crlf)
		}

		buf.WriteString(crlf)
		buf.Write(p.Content)
		buf.WriteString(crlf)
	}

	buf.WriteString("--")
	buf.WriteString(boundary)
	buf.WriteString("--")
	buf.WriteString(crlf)

	return buf.Bytes(), nil
}
