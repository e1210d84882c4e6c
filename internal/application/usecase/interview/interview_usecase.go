package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/interview"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("interview_usecase")

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 10
	defaultLevel         = "intermediate"
)

type InterviewUseCase struct {
	sessionRepo interview.Repository
	publisher   service.EventPublisher
	generator   service.TextGenerator
	logger      logger.Logger
}

func NewInterviewUseCase(repo interview.Repository, pub service.EventPublisher, gen service.TextGenerator, log logger.Logger) *InterviewUseCase {
	return &InterviewUseCase{
		sessionRepo: repo,
		publisher:   pub,
		generator:   gen,
		logger:      log,
	}
}

// Summary is a catalog entry without its questions.
type Summary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	CareerPath    string `json:"career_path"`
	Difficulty    string `json:"difficulty"`
	Duration      int    `json:"duration"`
	QuestionCount int    `json:"question_count"`
}

func (uc *InterviewUseCase) ExecuteList() []Summary {
	catalog := interview.Catalog()
	out := make([]Summary, len(catalog))
	for i, iv := range catalog {
		out[i] = Summary{
			ID:            iv.ID,
			Title:         iv.Title,
			Description:   iv.Description,
			CareerPath:    iv.CareerPath,
			Difficulty:    iv.Difficulty,
			Duration:      iv.Duration,
			QuestionCount: len(iv.Questions),
		}
	}
	return out
}

// SessionOutput is the session plus the question awaiting an answer, if any.
type SessionOutput struct {
	Session  *interview.Session  `json:"session"`
	Question *interview.Question `json:"question,omitempty"`
	Total    int                 `json:"total"`
}

type StartInput struct {
	StudentID uuid.UUID
	PathID    string
}

func (uc *InterviewUseCase) ExecuteStart(ctx context.Context, input StartInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "StartInterview")
	defer span.End()
	span.SetAttributes(attribute.String("path_id", input.PathID))

	sess, err := interview.NewSession(input.StudentID, input.PathID)
	if err != nil {
		return nil, apperror.NewNotFound("interview", input.PathID)
	}
	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save interview session", err)
	}
	return output(sess), nil
}

type AnswerInput struct {
	StudentID uuid.UUID
	SessionID uuid.UUID
	Answer    string
}

// ExecuteAnswer records the answer to the current question. The last answer scores the
// session and announces the completion for XP.
func (uc *InterviewUseCase) ExecuteAnswer(ctx context.Context, input AnswerInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "AnswerInterview")
	defer span.End()

	sess, err := uc.find(ctx, input.SessionID, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := sess.Answer(input.Answer); err != nil {
		switch {
		case errors.Is(err, interview.ErrEmptyAnswer):
			return nil, apperror.NewInvalidInput(err.Error(), err)
		case errors.Is(err, interview.ErrSessionFinished):
			return nil, apperror.NewAppError(apperror.ErrConflict, "Interview already finished", err.Error(), err)
		}
		return nil, apperror.NewInternal("failed to record answer", err)
	}

	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save interview session", err)
	}

	if sess.Finished() {
		res := sess.Result
		span.SetAttributes(attribute.Int("score", res.Score))
		e := gamification.NewInterviewCompleted(sess.StudentID, sess.InterviewID, res.Score, res.Badge)
		go func() {
			if err := uc.publisher.PublishGamificationEvent(context.Background(), e); err != nil {
				uc.logger.Error("Failed to publish Kafka 'interview_completed' event", err, zap.String("session_id", sess.ID.String()))
			}
		}()
	}
	return output(sess), nil
}

type GetInput struct {
	StudentID uuid.UUID
	SessionID uuid.UUID
}

func (uc *InterviewUseCase) ExecuteGet(ctx context.Context, input GetInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "GetInterview")
	defer span.End()

	sess, err := uc.find(ctx, input.SessionID, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return output(sess), nil
}

type QuestionsInput struct {
	CareerPath string
	Level      string
	Count      int
}

type QuestionsOutput struct {
	Questions []interview.GeneratedQuestion `json:"questions"`
	Fallback  bool                          `json:"fallback"`
}

// ExecuteGenerateQuestions asks the model for practice questions. When generation fails it
// serves the catalog questions for the path, or a single mock question for unknown paths.
func (uc *InterviewUseCase) ExecuteGenerateQuestions(ctx context.Context, input QuestionsInput) (*QuestionsOutput, error) {
	ctx, span := tracer.Start(ctx, "GenerateQuestions")
	defer span.End()

	input.CareerPath = strings.TrimSpace(input.CareerPath)
	if input.CareerPath == "" {
		return nil, apperror.NewInvalidInput("career path is required", nil)
	}
	if input.Level == "" {
		input.Level = defaultLevel
	}
	if input.Count <= 0 {
		input.Count = defaultQuestionCount
	}
	input.Count = min(input.Count, maxQuestionCount)

	text, err := prompt.Render(prompt.InterviewQuestions, input)
	if err != nil {
		return nil, apperror.NewInternal("failed to build interview prompt", err)
	}
	questions, err := service.GenerateList[interview.GeneratedQuestion](ctx, uc.generator, text, "interview questions", "questions")
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Interview question generation failed, serving mock questions", zap.String("career_path", input.CareerPath), zap.Error(err))
		return &QuestionsOutput{Questions: interview.MockGeneratedQuestions(input.CareerPath, input.Level), Fallback: true}, nil
	}
	return &QuestionsOutput{Questions: questions}, nil
}

func (uc *InterviewUseCase) find(ctx context.Context, id, studentID uuid.UUID) (*interview.Session, error) {
	sess, err := uc.sessionRepo.FindByID(ctx, id, studentID)
	if err != nil {
		if errors.Is(err, interview.ErrSessionNotFound) {
			return nil, apperror.NewNotFound("interview session", id.String())
		}
		return nil, apperror.NewInternal("failed to load interview session", err)
	}
	return sess, nil
}

func output(sess *interview.Session) *SessionOutput {
	iv, _ := interview.Find(sess.InterviewID)
	out := &SessionOutput{Session: sess, Total: len(iv.Questions)}
	if !sess.Finished() && sess.Current < len(iv.Questions) {
		q := iv.Questions[sess.Current]
		// hide the answer key while the interview runs
		q.ExpectedKeywords = nil
		q.SampleAnswer = ""
		out.Question = &q
	}
	return out
}
