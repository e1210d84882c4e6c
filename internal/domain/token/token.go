package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout renders dates as M/D/YYYY.
const DateLayout = "1/2/2006"

// Token is a certificate of a completed mini-project.
type Token struct {
	Project string `json:"project"`
	Phase   string `json:"phase"`
	Date    string `json:"date"`
}

var ErrProjectRequired = errors.New("project title is required")

func New(project, phase string, now time.Time) (Token, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return Token{}, ErrProjectRequired
	}
	return Token{
		Project: project,
		Phase:   strings.TrimSpace(phase),
		Date:    now.Format(DateLayout),
	}, nil
}

type Repository interface {
	List(ctx context.Context, studentID uuid.UUID) ([]Token, error)
	Append(ctx context.Context, studentID uuid.UUID, t Token) error
	// ReplaceAll swaps the full list, used by state import.
	ReplaceAll(ctx context.Context, studentID uuid.UUID, tokens []Token) error
}
