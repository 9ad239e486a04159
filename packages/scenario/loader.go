package scenario

import (
	"fmt"
	"os"
	"strconv"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/wirecheck/packages/rawhttp"
)

// catalogFile is the on-disk shape of a custom scenario catalogue.
type catalogFile struct {
	Scenarios []*catalogScenario `yaml:"scenarios"`
}

type catalogScenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Method      string          `yaml:"method"`
	Target      string          `yaml:"target"`
	Version     *string         `yaml:"version"`
	Headers     []catalogHeader `yaml:"headers"`
	Body        string          `yaml:"body"`
	Multipart   *multipartSpec  `yaml:"multipart"`
}

type catalogHeader struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type multipartSpec struct {
	Boundary string     `yaml:"boundary"`
	Parts    []partSpec `yaml:"parts"`
}

type partSpec struct {
	Name        string `yaml:"name"`
	Filename    string `yaml:"filename"`
	ContentType string `yaml:"content_type"`
	Content     string `yaml:"content"`
}

// Load reads a YAML catalogue. The file author controls the wire bytes:
// headers go out exactly as listed, and a raw body never gets an implied
// Content-Length, so deliberately broken requests stay broken. Multipart
// bodies are the one exception; their boundary may be generated, so the
// matching Content-Type and byte-exact Content-Length headers are
// appended automatically.
//
// An absent version field means HTTP/1.1; an explicitly empty one means
// a request line with no version token.
func Load(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}

	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("catalogue %s defines no scenarios", path)
	}

	scenarios := make([]*Scenario, 0, len(file.Scenarios))
	for i, cs := range file.Scenarios {
		sc, err := cs.build()
		if err != nil {
			return nil, fmt.Errorf("catalogue %s, scenario %d: %w", path, i+1, err)
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, nil
}

func (cs *catalogScenario) build() (*Scenario, error) {
	if cs.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if cs.Method == "" || cs.Target == "" {
		return nil, fmt.Errorf("%q: method and target are required", cs.Name)
	}
	if cs.Multipart != nil && cs.Body != "" {
		return nil, fmt.Errorf("%q: body and multipart are mutually exclusive", cs.Name)
	}

	req := rawhttp.NewRequest(cs.Method, cs.Target)
	if cs.Version != nil {
		req.SetVersion(*cs.Version)
	}

	for _, h := range cs.Headers {
		req.AddHeader(h.Name, h.Value)
	}

	switch {
	case cs.Multipart != nil:
		boundary := cs.Multipart.Boundary
		if boundary == "" {
			boundary = rawhttp.NewBoundary()
		}

		parts := make([]rawhttp.Part, 0, len(cs.Multipart.Parts))
		for _, p := range cs.Multipart.Parts {
			part := rawhttp.Part{
				Name:        p.Name,
				Filename:    p.Filename,
				ContentType: p.ContentType,
				Content:     []byte(p.Content),
			}
			if part.ContentType == "" && part.Filename != "" {
				part.ContentType = "text/plain"
			}
			parts = append(parts, part)
		}

		body, err := rawhttp.EncodeMultipart(boundary, parts)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", cs.Name, err)
		}

		req.AddHeader("Content-Type", rawhttp.MultipartContentType(boundary))
		req.AddHeader("Content-Length", strconv.Itoa(len(body)))
		req.SetBody(body)

	case cs.Body != "":
		req.SetBody([]byte(cs.Body))
	}

	return &Scenario{
		Name:        cs.Name,
		Description: cs.Description,
		Request:     req,
	}, nil
}

// ValidateFile checks a catalogue against the embedded JSON schema and
// returns the list of violations, empty when the file is well-formed.
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validating catalogue %s: %w", path, err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// Draft-07 schema for catalogue files. Version has no minLength on
// purpose: an empty version is how a malformed request line is asked for.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["scenarios"],
  "additionalProperties": false,
  "properties": {
    "scenarios": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "method", "target"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "method": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "version": {"type": "string"},
          "body": {"type": "string"},
          "headers": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "value"],
              "additionalProperties": false,
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "value": {"type": "string"}
              }
            }
          },
          "multipart": {
            "type": "object",
            "required": ["parts"],
            "additionalProperties": false,
            "properties": {
              "boundary": {"type": "string", "minLength": 1},
              "parts": {
                "type": "array",
                "minItems": 1,
                "items": {
                  "type": "object",
                  "required": ["name", "content"],
                  "additionalProperties": false,
                  "properties": {
                    "name": {"type": "string", "minLength": 1},
                    "filename": {"type": "string"},
                    "content_type": {"type": "string"},
                    "content": {"type": "string"}
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`
