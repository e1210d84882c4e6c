package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/khoahotran/educursus/pkg/llmjson"
)

var (
	// ErrGeneration is the base of every text-generation failure.
	ErrGeneration = errors.New("text generation failed")
	// ErrRequestFailed covers transport errors, non-2xx statuses and a disabled provider.
	ErrRequestFailed = errors.New("generation request failed")
	// ErrEmptyText means the response carried no text.
	ErrEmptyText = errors.New("generation response has no text")
	// ErrInvalidJSON means JSON output was requested but the text is not JSON.
	ErrInvalidJSON = llmjson.ErrInvalidJSON
)

// GenerationError reports which provider failed and why. It matches ErrGeneration, its
// Kind sentinel and the underlying cause with errors.Is.
type GenerationError struct {
	Provider string
	Kind     error
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
}

func (e *GenerationError) Unwrap() []error {
	errs := []error{ErrGeneration, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewGenerationError(provider string, kind, err error) *GenerationError {
	return &GenerationError{Provider: provider, Kind: kind, Err: err}
}

type GenerateOptions struct {
	// JSON asks the provider for a JSON document instead of free text.
	JSON bool
}

// TextGenerator sends one prompt to a generative model and returns the text of the first
// candidate. Errors wrap ErrGeneration.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
