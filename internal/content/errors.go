package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no active document exists for a type or when
// an id does not resolve. Public read handlers map it to a 404 fallback.
var ErrNotFound = errors.New("content not found")

// FieldError is a single field-level validation failure, serialized into the
// {errors: [{field, message}]} response envelope.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors for one request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
