package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("onboarding session not found")
	ErrSessionCompleted = errors.New("onboarding session already completed")
	ErrStepMismatch     = errors.New("answer does not match the current step")
	ErrInvalidAnswer    = errors.New("invalid answer")
)

// Answer is the value submitted for one question. Text carries text, number and radio
// answers; Choices carries the full selection of a checkbox question.
type Answer struct {
	Text    string   `json:"text,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Session walks a student through the questionnaire one step at a time.
type Session struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Step      int       `json:"step"`
	Draft     Profile   `json:"draft"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(studentID uuid.UUID) *Session {
	s := &Session{
		ID:        uuid.New(),
		StudentID: studentID,
		UpdatedAt: time.Now().UTC(),
	}
	s.Draft.Normalize()
	return s
}

// Current returns the question awaiting an answer; ok is false once every step is answered.
func (s *Session) Current() (q Question, ok bool) {
	if s.Completed || s.Step >= len(questions) {
		return Question{}, false
	}
	return questions[s.Step], true
}

// Progress is the share of the questionnaire reached, as shown on the progress bar.
func (s *Session) Progress() float64 {
	step := min(s.Step, len(questions)-1)
	return float64(step+1) / float64(len(questions)) * 100
}

// Answer records the value for step and advances. After the last step the session is
// completed and the draft must pass Validate.
func (s *Session) Answer(step int, a Answer) error {
	q, ok := s.Current()
	if !ok {
		return ErrSessionCompleted
	}
	if step != s.Step {
		return fmt.Errorf("%w: expected step %d, got %d", ErrStepMismatch, s.Step, step)
	}
	if err := s.apply(q, a); err != nil {
		return err
	}

	s.Step++
	s.UpdatedAt = time.Now().UTC()
	if s.Step == len(questions) {
		s.Draft.Normalize()
		if err := s.Draft.Validate(); err != nil {
			s.Step--
			return fmt.Errorf("%w: %w", ErrInvalidAnswer, err)
		}
		s.Completed = true
	}
	return nil
}

func (s *Session) apply(q Question, a Answer) error {
	text := strings.TrimSpace(a.Text)

	switch q.Type {
	case TypeText:
		if text == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidAnswer, q.Key)
		}
	case TypeNumber:
		if _, err := strconv.Atoi(text); err != nil {
			return fmt.Errorf("%w: %s must be a whole number", ErrInvalidAnswer, q.Key)
		}
	case TypeRadio:
		if !q.hasOption(text) {
			return fmt.Errorf("%w: %q is not an option for %s", ErrInvalidAnswer, text, q.Key)
		}
	case TypeCheckbox:
		seen := make(map[string]bool, len(a.Choices))
		for _, c := range a.Choices {
			if !q.hasOption(c) {
				return fmt.Errorf("%w: %q is not an option for %s", ErrInvalidAnswer, c, q.Key)
			}
			seen[c] = true
		}
		if len(seen) == 0 && !q.Optional {
			return fmt.Errorf("%w: pick at least one option for %s", ErrInvalidAnswer, q.Key)
		}
		// keep questionnaire order and drop duplicates
		choices := []string{}
		for _, o := range q.Options {
			if seen[o] {
				choices = append(choices, o)
			}
		}
		return s.setList(q.Key, choices)
	}
	return s.setText(q.Key, text)
}

func (s *Session) setText(key, v string) error {
	d := &s.Draft
	switch key {
	case "name":
		d.Name = v
	case "age":
		age, _ := strconv.Atoi(v)
		if age < MinAge || age > MaxAge {
			return fmt.Errorf("%w: %w", ErrInvalidAnswer, ErrAgeOutOfRange)
		}
		d.Age = age
	case "stream":
		d.Stream = v
	case "projectExperience":
		d.ProjectExperience = v
	case "teamPreference":
		d.TeamPreference = v
	case "problemSolvingStyle":
		d.ProblemSolvingStyle = v
	case "learningStyle":
		d.LearningStyle = v
	case "workEnv":
		d.WorkEnv = v
	case "longTermGoal":
		d.LongTermGoal = v
	default:
		return fmt.Errorf("%w: unknown field %s", ErrInvalidAnswer, key)
	}
	return nil
}

func (s *Session) setList(key string, v []string) error {
	switch key {
	case "interests":
		s.Draft.Interests = v
	case "careerInterests":
		s.Draft.CareerInterests = v
	default:
		return fmt.Errorf("%w: unknown field %s", ErrInvalidAnswer, key)
	}
	return nil
}

// SessionStore keeps in-flight onboarding sessions.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, studentID uuid.UUID) (*Session, error)
	Delete(ctx context.Context, studentID uuid.UUID) error
}
