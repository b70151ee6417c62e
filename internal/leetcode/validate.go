package leetcode

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const responseSchemaURL = "schema://leetcode-question.json"

const responseSchema = `{
  "type": "object",
  "properties": {
    "data": {
      "type": ["object", "null"],
      "properties": {
        "question": {
          "type": ["object", "null"],
          "required": ["questionFrontendId", "title", "titleSlug", "difficulty", "topicTags"],
          "properties": {
            "questionFrontendId": {"type": "string", "pattern": "^[0-9]+$"},
            "title": {"type": "string", "minLength": 1},
            "titleSlug": {"type": "string", "minLength": 1},
            "difficulty": {"enum": ["Easy", "Medium", "Hard"]},
            "content": {"type": ["string", "null"]},
            "topicTags": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name"],
                "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}
              }
            },
            "isPaidOnly": {"type": "boolean"}
          }
        }
      }
    },
    "errors": {"type": "array"}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func responseValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(responseSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(responseSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(responseSchemaURL)
	})
	return compiledSchema, compileErr
}

// validatePayload checks raw against the question response schema.
// Returns *ErrInvalidResponse on failure.
func validatePayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := responseValidator()
	if err != nil {
		return &ErrInvalidResponse{Body: raw, Err: err}
	}
	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidResponse{Body: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
