// Package schemas provides JSON Schema validation for structured LLM payloads.
// Schemas are embedded at compile time.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed classification.json
var classificationSchema []byte

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateClassification checks a raw classifier payload against the
// classification schema. A nil return means the shape is acceptable.
func ValidateClassification(payload []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(classificationSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate payload: %w", err)
	}

	if !result.Valid() {
		ve := &ValidationError{}
		for _, resultErr := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   resultErr.Field(),
				Message: resultErr.Description(),
			})
		}
		return ve
	}

	return nil
}
