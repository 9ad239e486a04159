package scenario

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
)

const testHostport = "localhost:8080"

func TestParserSuite(t *testing.T) {
	scenarios := ParserSuite(testHostport)
	require.Len(t, scenarios, 10)

	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
	}
	assert.Equal(t, []string{
		"get-static-file",
		"get-query-string",
		"post-form",
		"post-json",
		"delete-with-auth",
		"get-root",
		"get-missing",
		"get-many-headers",
		"invalid-method",
		"missing-version",
	}, names)
}

func TestParserSuite_EveryScenarioNamesTheHost(t *testing.T) {
	for _, sc := range ParserSuite(testHostport) {
		found := false
		for _, h := range sc.Request.Headers {
			if h.Name == "Host" {
				found = true
				assert.Equal(t, testHostport, h.Value, sc.Name)
			}
		}
		assert.True(t, found, "%s has no Host header", sc.Name)
	}
}

func TestParserSuite_MalformedScenarios(t *testing.T) {
	scenarios := ParserSuite(testHostport)
	byName := map[string]*Scenario{}
	for _, sc := range scenarios {
		byName[sc.Name] = sc
	}

	invalid := byName["invalid-method"]
	require.NotNil(t, invalid)
	assert.Equal(t, "INVALID", invalid.Request.Method)
	assert.True(t, strings.HasPrefix(string(invalid.Request.Bytes()), "INVALID /test HTTP/1.1\r\n"))

	missing := byName["missing-version"]
	require.NotNil(t, missing)
	assert.Empty(t, missing.Request.Version)
	assert.True(t, strings.HasPrefix(string(missing.Request.Bytes()), "GET /test \r\n"))
}

func TestParserSuite_BodiesCarryExactContentLength(t *testing.T) {
	for _, sc := range ParserSuite(testHostport) {
		if len(sc.Request.Body) == 0 {
			continue
		}
		var got string
		for _, h := range sc.Request.Headers {
			if h.Name == "Content-Length" {
				got = h.Value
			}
		}
		assert.Equal(t, fmt.Sprintf("%d", len(sc.Request.Body)), got, sc.Name)
	}
}

func TestUploadSuite(t *testing.T) {
	scenarios, err := UploadSuite(testHostport)
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	for _, sc := range scenarios {
		assert.Equal(t, "POST", sc.Request.Method)
		assert.Equal(t, "/upload", sc.Request.Target)

		var contentType, contentLength string
		for _, h := range sc.Request.Headers {
			switch h.Name {
			case "Content-Type":
				contentType = h.Value
			case "Content-Length":
				contentLength = h.Value
			}
		}

		assert.Equal(t, rawhttp.MultipartContentType(UploadBoundary), contentType, sc.Name)
		assert.Equal(t, fmt.Sprintf("%d", len(sc.Request.Body)), contentLength, sc.Name)
		assert.True(t, strings.HasSuffix(string(sc.Request.Body), "--"+UploadBoundary+"--\r\n"), sc.Name)
	}
}

func TestUploadSuite_MultiFileParts(t *testing.T) {
	scenarios, err := UploadSuite(testHostport)
	require.NoError(t, err)

	multi := scenarios[2]
	body := string(multi.Request.Body)

	assert.Equal(t, "upload-multiple-files", multi.Name)
	assert.Contains(t, body, `name="file1"; filename="test1.txt"`)
	assert.Contains(t, body, `name="file2"; filename="test2.txt"`)
	assert.Contains(t, body, "This is the first test file")
	assert.Contains(t, body, "This is the second test file")
	assert.Equal(t, 2, strings.Count(body, "Content-Disposition:"))
}

func TestSuite(t *testing.T) {
	all, err := Suite(SuiteAll, testHostport)
	require.NoError(t, err)
	assert.Len(t, all, 13)

	parser, err := Suite(SuiteParser, testHostport)
	require.NoError(t, err)
	assert.Len(t, parser, 10)

	upload, err := Suite(SuiteUpload, testHostport)
	require.NoError(t, err)
	assert.Len(t, upload, 3)

	_, err = Suite("bogus", testHostport)
	assert.Error(t, err)
}
