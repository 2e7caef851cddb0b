package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes the JSON object a structured request must return: a flat
// object whose fields are all required strings. That is the only shape the
// tutor asks for, and it is the subset every provider's JSON mode accepts.
//
// A Schema must not be copied after first use.
type Schema struct {
	// Name identifies the schema to providers that want one. Kebab-case,
	// e.g. "interview-question".
	Name        string
	Description string
	Fields      []Field

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

// Field is one required string property of a Schema.
type Field struct {
	Name        string
	Description string
}

// FieldNames returns the property names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Definition renders the schema as a JSON Schema document.
func (s *Schema) Definition() map[string]any {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		p := map[string]any{"type": "string"}
		if f.Description != "" {
			p["description"] = f.Description
		}
		props[f.Name] = p
	}
	def := map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             s.FieldNames(),
		"additionalProperties": false,
	}
	if s.Description != "" {
		def["description"] = s.Description
	}
	return def
}

// Validate checks raw against the schema and returns the bare JSON object.
// Markdown code fences some models wrap JSON in are removed first. Failures
// are reported as *ErrInvalidResponse carrying the original content.
func (s *Schema) Validate(raw json.RawMessage) (json.RawMessage, error) {
	body := stripCodeFence(raw)

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := s.compile()
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", s.Name, err)}
	}
	return body, nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps of []string.
		b, err := json.Marshal(s.Definition())
		if err != nil {
			s.compileErr = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			s.compileErr = err
			return
		}

		url := "schema://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.compileErr = err
			return
		}
		s.compiled, s.compileErr = c.Compile(url)
	})
	return s.compiled, s.compileErr
}

// stripCodeFence unwraps ```json ... ``` blocks.
func stripCodeFence(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		return bytes.TrimSpace(raw)
	}
	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
