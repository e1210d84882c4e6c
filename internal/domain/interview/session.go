package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxQuestionScore = 10
	// MasterThreshold is the final score that earns the interview badge.
	MasterThreshold = 80
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrSessionNotFound   = errors.New("interview session not found")
	ErrSessionFinished   = errors.New("interview session already finished")
	ErrEmptyAnswer       = errors.New("answer must not be empty")
)

type Result struct {
	Score          int      `json:"score"`
	QuestionScores []int    `json:"question_scores"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
	Badge          string   `json:"badge,omitempty"`
}

type Session struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   uuid.UUID  `json:"student_id"`
	InterviewID string     `json:"interview_id"`
	Current     int        `json:"current"`
	Answers     []string   `json:"answers"`
	Result      *Result    `json:"result,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewSession(studentID uuid.UUID, interviewID string) (*Session, error) {
	if _, ok := Find(interviewID); !ok {
		return nil, ErrInterviewNotFound
	}
	return &Session{
		ID:          uuid.New(),
		StudentID:   studentID,
		InterviewID: interviewID,
		Answers:     []string{},
		StartedAt:   time.Now().UTC(),
	}, nil
}

func (s *Session) Finished() bool {
	return s.Result != nil
}

// Answer records the answer to the current question. Answering the last question scores
// the session.
func (s *Session) Answer(text string) error {
	if s.Finished() {
		return ErrSessionFinished
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyAnswer
	}
	iv, ok := Find(s.InterviewID)
	if !ok {
		return ErrInterviewNotFound
	}

	s.Answers = append(s.Answers, text)
	s.Current++
	if s.Current >= len(iv.Questions) {
		res := Evaluate(iv, s.Answers)
		s.Result = &res
		now := time.Now().UTC()
		s.CompletedAt = &now
	}
	return nil
}

// ScoreAnswer awards two points per expected keyword found in the answer, capped at 10.
func ScoreAnswer(q Question, answer string) int {
	lower := strings.ToLower(answer)
	matches := 0
	for _, kw := range q.ExpectedKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches++
		}
	}
	return min(maxQuestionScore, matches*2)
}

// Evaluate scores answers against the interview questions. Missing answers score zero.
func Evaluate(iv Interview, answers []string) Result {
	res := Result{
		QuestionScores: make([]int, len(iv.Questions)),
		Suggestions:    []string{},
	}
	if len(iv.Questions) == 0 {
		res.Feedback = feedbackFor(0)
		return res
	}

	total := 0
	for i, q := range iv.Questions {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		score := ScoreAnswer(q, answer)
		res.QuestionScores[i] = score
		total += score
		if score < 5 {
			res.Suggestions = append(res.Suggestions, fmt.Sprintf("Question %d: Consider including more technical details about %s", i+1, strings.Join(q.ExpectedKeywords, ", ")))
		}
	}

	res.Score = int(math.Round(float64(total) / float64(len(iv.Questions)*maxQuestionScore) * 100))
	res.Feedback = feedbackFor(res.Score)
	if res.Score >= MasterThreshold {
		res.Badge = iv.ID + " Interview Master"
	}
	return res
}

func feedbackFor(score int) string {
	switch {
	case score >= 80:
		return "Excellent! You demonstrate strong knowledge in this area."
	case score >= 60:
		return "Good performance! Focus on the areas mentioned in feedback to improve."
	default:
		return "Keep practicing! Review the fundamental concepts and try again."
	}
}

type Repository interface {
	Save(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id, studentID uuid.UUID) (*Session, error)
}
