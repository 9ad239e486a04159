package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
)

// UploadBoundary is the fixed boundary used by the built-in upload
// scenarios, matching what browsers emit so servers see familiar input.
const UploadBoundary = "----WebKitFormBoundary7MA4YWxkTrZu0gW"

// Suite names accepted by the CLI.
const (
	SuiteParser = "parser"
	SuiteUpload = "upload"
	SuiteAll    = "all"
)

// Suite returns the named built-in catalogue. The hostport value is
// only used for Host headers; the runner decides where to connect.
func Suite(name, hostport string) ([]*Scenario, error) {
	switch name {
	case SuiteParser:
		return ParserSuite(hostport), nil
	case SuiteUpload:
		return UploadSuite(hostport)
	case SuiteAll:
		upload, err := UploadSuite(hostport)
		if err != nil {
			return nil, err
		}
		return append(ParserSuite(hostport), upload...), nil
	default:
		return nil, fmt.Errorf("unknown suite %q (want %s, %s or %s)", name, SuiteParser, SuiteUpload, SuiteAll)
	}
}

// ParserSuite exercises request-line, header and body parsing, including
// two requests a correct server must reject.
func ParserSuite(hostport string) []*Scenario {
	formBody := []byte("name=John&email=john@example.com&message=Hello")
	jsonBody := []byte(`{"name": "Test", "value": 123, "active": true}`)

	return []*Scenario{
		{
			Name:        "get-static-file",
			Description: "GET a static file",
			Request: rawhttp.NewRequest("GET", "/test.html").
				AddHeader("Host", hostport).
				AddHeader("User-Agent", "wirecheck/1.0").
				AddHeader("Accept", "text/html").
				AddHeader("Connection", "close"),
		},
		{
			Name:        "get-query-string",
			Description: "GET with a query string",
			Request: rawhttp.NewRequest("GET", "/api/search?q=test&limit=10").
				AddHeader("Host", hostport).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "post-form",
			Description: "POST a form-encoded body",
			Request: rawhttp.NewRequest("POST", "/api/submit").
				AddHeader("Host", hostport).
				SetTextBody("application/x-www-form-urlencoded", formBody).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "post-json",
			Description: "POST a JSON body",
			Request: rawhttp.NewRequest("POST", "/api/data").
				AddHeader("Host", hostport).
				SetTextBody("application/json", jsonBody).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "delete-with-auth",
			Description: "DELETE with a bearer Authorization header",
			Request: rawhttp.NewRequest("DELETE", "/api/items/123").
				AddHeader("Host", hostport).
				AddHeader("Authorization", "Bearer token123").
				AddHeader("Connection", "close"),
		},
		{
			Name:        "get-root",
			Description: "GET the root path (directory listing expected)",
			Request: rawhttp.NewRequest("GET", "/").
				AddHeader("Host", hostport).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "get-missing",
			Description: "GET a nonexistent path (404 expected)",
			Request: rawhttp.NewRequest("GET", "/nonexistent/file.html").
				AddHeader("Host", hostport).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "get-many-headers",
			Description: "GET with a browser-sized header set",
			Request: rawhttp.NewRequest("GET", "/test.html").
				AddHeader("Host", hostport).
				AddHeader("User-Agent", "wirecheck/1.0").
				AddHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
				AddHeader("Accept-Language", "en-US,en;q=0.5").
				AddHeader("Accept-Encoding", "gzip, deflate").
				AddHeader("DNT", "1").
				AddHeader("Connection", "close").
				AddHeader("Upgrade-Insecure-Requests", "1").
				AddHeader("Cache-Control", "max-age=0"),
		},
		{
			Name:        "invalid-method",
			Description: "Unregistered method token (405 expected)",
			Request: rawhttp.NewRequest("INVALID", "/test").
				AddHeader("Host", hostport).
				AddHeader("Connection", "close"),
		},
		{
			Name:        "missing-version",
			Description: "Request line without an HTTP version (400 expected)",
			Request: rawhttp.NewRequest("GET", "/test").
				SetVersion("").
				AddHeader("Host", hostport),
		},
	}
}

// UploadSuite exercises multipart/form-data upload with one and two file
// parts. The encode error path is unreachable with the fixed contents
// here but still surfaced rather than swallowed.
func UploadSuite(hostport string) ([]*Scenario, error) {
	small, err := uploadScenario(hostport, "upload-small-file",
		"Upload a small text file",
		[]rawhttp.Part{
			rawhttp.FilePart("file", "hello.txt", []byte("Hello, World!\nThis is a test file.")),
		})
	if err != nil {
		return nil, err
	}

	larger, err := uploadScenario(hostport, "upload-larger-file",
		"Upload a larger text file",
		[]rawhttp.Part{
			rawhttp.FilePart("file", "large.txt", []byte(strings.Repeat("Line 1\n", 100))),
		})
	if err != nil {
		return nil, err
	}

	multi, err := uploadScenario(hostport, "upload-multiple-files",
		"Upload two files in one request",
		[]rawhttp.Part{
			rawhttp.FilePart("file1", "test1.txt", []byte("This is the first test file")),
			rawhttp.FilePart("file2", "test2.txt", []byte("This is the second test file")),
		})
	if err != nil {
		return nil, err
	}

	return []*Scenario{small, larger, multi}, nil
}

func uploadScenario(hostport, name, description string, parts []rawhttp.Part) (*Scenario, error) {
	body, err := rawhttp.EncodeMultipart(UploadBoundary, parts)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	req := rawhttp.NewRequest("POST", "/upload").
		AddHeader("Host", hostport).
		AddHeader("Content-Type", rawhttp.MultipartContentType(UploadBoundary)).
		AddHeader("Content-Length", strconv.Itoa(len(body))).
		AddHeader("Connection", "close").
		SetBody(body)

	return &Scenario{Name: name, Description: description, Request: req}, nil
}
