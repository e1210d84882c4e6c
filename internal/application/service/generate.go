package service

import (
	"context"
	"errors"

	"github.com/khoahotran/educursus/pkg/llmjson"
)

// GenerateJSON runs one JSON generation call and decodes the text into T. Decode failures
// are reported as generation errors so callers handle a single error family.
func GenerateJSON[T any](ctx context.Context, gen TextGenerator, prompt, label string) (T, error) {
	var zero T
	text, err := gen.Generate(ctx, prompt, GenerateOptions{JSON: true})
	if err != nil {
		return zero, err
	}
	out, err := llmjson.Decode[T](text, label)
	if err != nil {
		return zero, decodeError(err)
	}
	return out, nil
}

// GenerateList is GenerateJSON for list payloads that models may wrap in an object.
func GenerateList[T any](ctx context.Context, gen TextGenerator, prompt, label string, keys ...string) ([]T, error) {
	text, err := gen.Generate(ctx, prompt, GenerateOptions{JSON: true})
	if err != nil {
		return nil, err
	}
	out, err := llmjson.DecodeList[T](text, label, keys...)
	if err != nil {
		return nil, decodeError(err)
	}
	return out, nil
}

func decodeError(err error) error {
	kind := ErrInvalidJSON
	if errors.Is(err, llmjson.ErrSchema) {
		kind = llmjson.ErrSchema
	}
	return NewGenerationError("decode", kind, err)
}
