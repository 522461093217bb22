// internal/dataset/schema.go
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidRecord is returned when a record or dataset file fails schema validation.
var ErrInvalidRecord = errors.New("invalid dataset record")

// recordSchema describes one dataset record.
func recordSchema() map[string]any {
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type":     "object",
		"required": []string{"prompt", "framework", "code", "result"},
		"properties": map[string]any{
			"prompt":    str,
			"framework": map[string]any{"type": "string", "minLength": 1},
			"code":      str,
			"result":    str,
		},
	}
}

// fileSchema describes a whole dataset file.
func fileSchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": recordSchema(),
	}
}

// ValidateRecord checks r against the record schema.
func ValidateRecord(r Record) error {
	return validate(gojsonschema.NewGoLoader(recordSchema()), gojsonschema.NewGoLoader(r))
}

// ValidateDocument checks raw dataset JSON against the file schema.
func ValidateDocument(data []byte) error {
	return validate(gojsonschema.NewGoLoader(fileSchema()), gojsonschema.NewBytesLoader(data))
}

func validate(schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(errs, ", "))
}
