package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	MinAge = 10
	MaxAge = 100
)

// Profile is the onboarding result. JSON keys follow the educursus-profile document format.
type Profile struct {
	Name                string   `json:"name"`
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	Stream              string   `json:"stream"`
	Interests           []string `json:"interests"`
	CareerInterests     []string `json:"careerInterests"`
	LearningStyle       string   `json:"learningStyle"`
	WorkEnv             string   `json:"workEnv"`
	ProjectExperience   string   `json:"projectExperience"`
	TeamPreference      string   `json:"teamPreference"`
	ProblemSolvingStyle string   `json:"problemSolvingStyle"`
	LongTermGoal        string   `json:"longTermGoal"`
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNameRequired    = errors.New("name is required")
	ErrAgeOutOfRange   = errors.New("age must be between 10 and 100")
	ErrStreamRequired  = errors.New("stream is required")
	ErrNoInterests     = errors.New("at least one interest is required")
	ErrLearningStyle   = errors.New("learning style is required")
	ErrWorkEnvRequired = errors.New("work environment is required")
	ErrGoalRequired    = errors.New("long-term goal is required")
)

// Validate checks the fields a completed onboarding must have.
func (p *Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return ErrNameRequired
	case p.Age < MinAge || p.Age > MaxAge:
		return ErrAgeOutOfRange
	case p.Stream == "":
		return ErrStreamRequired
	case len(p.Interests) == 0:
		return ErrNoInterests
	case p.LearningStyle == "":
		return ErrLearningStyle
	case p.WorkEnv == "":
		return ErrWorkEnvRequired
	case strings.TrimSpace(p.LongTermGoal) == "":
		return ErrGoalRequired
	}
	return nil
}

// Normalize trims text fields and replaces nil slices so the stored document is stable.
func (p *Profile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.LongTermGoal = strings.TrimSpace(p.LongTermGoal)
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.CareerInterests == nil {
		p.CareerInterests = []string{}
	}
}

// Keywords returns the lower-cased terms used to match the profile against careers.
func (p *Profile) Keywords() []string {
	var words []string
	for _, group := range [][]string{p.Interests, p.CareerInterests, {p.LongTermGoal, p.Stream}} {
		for _, s := range group {
			for _, w := range strings.FieldsFunc(strings.ToLower(s), isSeparator) {
				if len(w) > 2 {
					words = append(words, w)
				}
			}
		}
	}
	return words
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

// Summary renders the profile as plain text for prompts and embeddings.
func (p *Profile) Summary() string {
	var b strings.Builder
	b.WriteString("Name: " + p.Name + "\n")
	b.WriteString("Stream: " + p.Stream + "\n")
	b.WriteString("Interests: " + strings.Join(p.Interests, ", ") + "\n")
	b.WriteString("Career interests: " + strings.Join(p.CareerInterests, ", ") + "\n")
	b.WriteString("Learning style: " + p.LearningStyle + "\n")
	b.WriteString("Preferred work environment: " + p.WorkEnv + "\n")
	b.WriteString("Project experience: " + p.ProjectExperience + "\n")
	b.WriteString("Team preference: " + p.TeamPreference + "\n")
	b.WriteString("Problem solving: " + p.ProblemSolvingStyle + "\n")
	b.WriteString("Long-term goal: " + p.LongTermGoal)
	return b.String()
}

type Repository interface {
	GetByStudentID(ctx context.Context, studentID uuid.UUID) (*Profile, error)
	// Save replaces the stored profile wholesale.
	Save(ctx context.Context, studentID uuid.UUID, p *Profile) error
}
