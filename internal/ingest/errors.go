package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a source holds no header or records at all.
var ErrEmptyInput = errors.New("course source is empty")

// SchemaError reports required columns missing from a course source.
// Normalization yields no courses when it is returned.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("course source is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
