package skill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxLevel is the top of the 0..10 self-assessment scale.
const MaxLevel = 10

var (
	ErrInvalidSkill = errors.New("skill name is required")
	ErrInvalidLevel = fmt.Errorf("skill level must be between 0 and %d", MaxLevel)
)

// Levels maps a skill key such as "python" or "data_visualization" to its current level.
type Levels map[string]int

// Key normalizes a skill name to the form used by career paths: lower case with
// underscores, so "Data Visualization" and "data-visualization" share a level.
func Key(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t' || r == '\n'
	})
	return strings.Join(fields, "_")
}

// Normalize returns a copy with every key passed through Key. Levels of keys that collide
// keep the highest value.
func (l Levels) Normalize() Levels {
	out := make(Levels, len(l))
	for name, level := range l {
		k := Key(name)
		if cur, ok := out[k]; !ok || level > cur {
			out[k] = level
		}
	}
	return out
}

func (l Levels) Validate() error {
	for name, level := range l {
		if name == "" {
			return ErrInvalidSkill
		}
		if level < 0 || level > MaxLevel {
			return fmt.Errorf("%w: %s=%d", ErrInvalidLevel, name, level)
		}
	}
	return nil
}

// Merge returns l overlaid with over.
func (l Levels) Merge(over Levels) Levels {
	out := make(Levels, len(l)+len(over))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Raise returns a copy with each named skill increased by step, capped at MaxLevel.
func (l Levels) Raise(skills []string, step int) Levels {
	out := l.Merge(nil)
	for _, s := range skills {
		k := Key(s)
		out[k] = min(MaxLevel, out[k]+step)
	}
	return out
}

// Result is one graded assessment attempt.
type Result struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"-"`
	AssessmentID string    `json:"assessment_id"`
	Score        int       `json:"score"`
	Passed       bool      `json:"passed"`
	XP           int       `json:"xp"`
	Badge        string    `json:"badge,omitempty"`
	Feedback     []string  `json:"feedback"`
	Levels       Levels    `json:"current_skills"`
	CompletedAt  time.Time `json:"completed_at"`
}

type Repository interface {
	// GetLevels returns an empty map for students who never recorded a skill.
	GetLevels(ctx context.Context, studentID uuid.UUID) (Levels, error)
	SaveLevels(ctx context.Context, studentID uuid.UUID, l Levels) error
	// SaveResult stores the attempt and the levels it produced in one step.
	SaveResult(ctx context.Context, r *Result) error
	ListResults(ctx context.Context, studentID uuid.UUID) ([]Result, error)
}
