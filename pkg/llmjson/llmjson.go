// Package llmjson decodes JSON produced by text-generation models into typed values
// and validates the result against struct tags.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidJSON means the model text could not be parsed as JSON at all.
	ErrInvalidJSON = errors.New("invalid JSON in generated text")
	// ErrSchema means the JSON parsed but does not have the expected shape.
	ErrSchema = errors.New("generated JSON does not match schema")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Clean strips surrounding whitespace and markdown code fences.
func Clean(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// Decode parses text into T and validates it. context names the payload in error messages.
func Decode[T any](text, context string) (T, error) {
	var out T
	cleaned := Clean(text)
	if cleaned == "" {
		return out, fmt.Errorf("%s: %w: empty text", context, ErrInvalidJSON)
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return out, fmt.Errorf("%s: %w: %v", context, ErrSchema, err)
		}
		return out, fmt.Errorf("%s: %w: %v", context, ErrInvalidJSON, err)
	}
	if err := Validate(out); err != nil {
		return out, fmt.Errorf("%s: %w", context, err)
	}
	return out, nil
}

// DecodeList accepts either a bare JSON array or an object wrapping the array. The array is
// looked up under keys first; an object whose only array field has another name is accepted
// too, since JSON-object response modes let the model pick the wrapper key.
func DecodeList[T any](text, context string, keys ...string) ([]T, error) {
	cleaned := Clean(text)
	if strings.HasPrefix(cleaned, "{") {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", context, ErrInvalidJSON, err)
		}
		raw, ok := listField(wrapper, keys)
		if !ok {
			return nil, fmt.Errorf("%s: %w: no list under keys %v", context, ErrSchema, keys)
		}
		cleaned = string(raw)
	}

	items, err := Decode[[]T](cleaned, context)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w: empty list", context, ErrSchema)
	}
	return items, nil
}

func listField(wrapper map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if raw, ok := wrapper[k]; ok {
			return raw, true
		}
	}

	var (
		only  json.RawMessage
		found int
	)
	for _, raw := range wrapper {
		if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
			only = raw
			found++
		}
	}
	return only, found == 1
}

// Validate runs struct-tag validation on v. Slices are validated element by element;
// values that are not structs pass through.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if err := Validate(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrSchema, err)
}
