package content

import (
	"reflect"
	"strings"
	"unicode"
)

// Validate checks the declarative rules of the type against a request body:
// required fields must be non-empty trimmed strings, required-array fields
// must be arrays. Element shape inside arrays is not deeply validated.
func (t Type) Validate(doc Document) *ValidationError {
	var fields []FieldError
	for _, f := range t.Required {
		v, ok := doc[f]
		if !ok {
			fields = append(fields, FieldError{Field: f, Message: "Invalid value"})
			continue
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			fields = append(fields, FieldError{Field: f, Message: "Invalid value"})
		}
	}
	for _, f := range t.RequiredArrays {
		v, ok := doc[f]
		if !ok || !isArray(v) {
			fields = append(fields, FieldError{Field: f, Message: capitalize(f) + " must be an array"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// isArray accepts any slice representation ([]interface{}, bson.A, typed slices).
func isArray(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
