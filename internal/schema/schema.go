// Package schema validates a tracker document against its JSON Schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "tracker_data.schema.json"

// Document is the JSON Schema of the persisted tracker document.
const Document = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Daily Proof tracker document",
  "type": "object",
  "propertyNames": {
    "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"
  },
  "additionalProperties": {
    "type": "object",
    "required": ["tasks"],
    "properties": {
      "tasks": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "text", "completed"],
          "properties": {
            "id": {"type": "integer"},
            "text": {"type": "string"},
            "completed": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

// Issue is a single schema violation.
type Issue struct {
	// Path is the JSON pointer of the offending value, "/" for the root.
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Compile compiles the embedded document schema.
func Compile() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(Document)); err != nil {
		return nil, fmt.Errorf("loading document schema: %w", err)
	}
	sch, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling document schema: %w", err)
	}
	return sch, nil
}

// Validate checks raw document bytes. It returns an error only when the
// bytes are not JSON at all; schema violations are returned as issues
// sorted by path.
func Validate(data []byte) ([]Issue, error) {
	sch, err := Compile()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("document is not valid JSON: %w", err)
	}

	err = sch.Validate(v)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}

	var issues []Issue
	collect(&issues, ve)
	sort.SliceStable(issues, func(a, b int) bool {
		return issues[a].Path < issues[b].Path
	})
	return issues, nil
}

func collect(issues *[]Issue, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		*issues = append(*issues, Issue{Path: path, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collect(issues, cause)
	}
}
