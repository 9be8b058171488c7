package mapping

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-formatter/internal/types"
)

// templateSchemaJSON is the JSON Schema every template document must satisfy
// before it is unmarshaled.
const templateSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "slots"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "slots": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "label"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {
            "type": "string",
            "enum": ["EMPLOYMENT", "EDUCATION", "SKILLS", "SUMMARY",
                     "PROJECTS", "CERTIFICATIONS", "ACHIEVEMENTS", "LANGUAGES"]
          },
          "required": {"type": "boolean"}
        }
      }
    }
  }
}`

// Slot is one target placeholder in a template.
type Slot struct {
	ID       string             `json:"id" validate:"required"`
	Label    types.SectionLabel `json:"label" validate:"required"`
	Required bool               `json:"required"`
}

// TemplateSchema declares the slots a template expects to be filled.
type TemplateSchema struct {
	Name  string `json:"name" validate:"required"`
	Slots []Slot `json:"slots" validate:"min=1,dive"`
}

var validate = validator.New()

// LoadSchema parses and validates a template schema document. The document
// is checked against the JSON Schema first, so errors carry field paths.
func LoadSchema(data []byte) (*TemplateSchema, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate template schema: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("invalid template schema: %s", strings.Join(details, "; "))
	}

	var schema TemplateSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse template schema: %w", err)
	}
	if err := validate.Struct(&schema); err != nil {
		return nil, fmt.Errorf("invalid template schema: %w", err)
	}
	return &schema, nil
}
