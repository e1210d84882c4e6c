package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/token"
)

const (
	KeyProfile  = "educursus-profile"
	KeyProgress = "educursus-progress"
	KeyTokens   = "educursus-tokens"
)

var ErrInvalidDocument = errors.New("invalid state document")

// Document is the full per-student state under its three storage keys.
// A nil Profile means onboarding has not been completed.
type Document struct {
	Profile  *profile.Profile  `json:"educursus-profile"`
	Progress progress.Progress `json:"educursus-progress"`
	Tokens   []token.Token     `json:"educursus-tokens"`
}

// Parse decodes and validates a document. Unknown keys and wrongly typed values reject
// the whole document.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidDocument)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.normalize()
	return &doc, nil
}

func (d *Document) Validate() error {
	if d.Profile != nil {
		if err := d.Profile.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, KeyProfile, err)
		}
	}
	for skill := range d.Progress {
		if skill == "" {
			return fmt.Errorf("%w: %s: empty skill name", ErrInvalidDocument, KeyProgress)
		}
	}
	for i, t := range d.Tokens {
		if t.Project == "" || t.Date == "" {
			return fmt.Errorf("%w: %s[%d]: project and date are required", ErrInvalidDocument, KeyTokens, i)
		}
	}
	return nil
}

func (d *Document) normalize() {
	if d.Profile != nil {
		d.Profile.Normalize()
	}
	if d.Progress == nil {
		d.Progress = progress.Progress{}
	}
	if d.Tokens == nil {
		d.Tokens = []token.Token{}
	}
}

type Repository interface {
	// Replace overwrites all three keys atomically.
	Replace(ctx context.Context, studentID uuid.UUID, doc *Document) error
}
