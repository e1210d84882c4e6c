package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("onboarding_usecase")

type OnboardingUseCase struct {
	sessions    profile.SessionStore
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewOnboardingUseCase(sessions profile.SessionStore, repo profile.Repository, log logger.Logger) *OnboardingUseCase {
	return &OnboardingUseCase{
		sessions:    sessions,
		profileRepo: repo,
		logger:      log,
	}
}

// SessionOutput describes where the student is in the questionnaire. Question is nil and
// Profile is set once the last answer completed onboarding.
type SessionOutput struct {
	Session  *profile.Session
	Question *profile.Question
	Progress float64
	Total    int
	Profile  *profile.Profile
}

func (uc *OnboardingUseCase) ExecuteQuestions() []profile.Question {
	return profile.Questions()
}

type StartInput struct {
	StudentID uuid.UUID
}

// ExecuteStart begins a fresh questionnaire, discarding any unfinished one.
func (uc *OnboardingUseCase) ExecuteStart(ctx context.Context, input StartInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "Start")
	defer span.End()

	sess := profile.NewSession(input.StudentID)
	if err := uc.sessions.Save(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save onboarding session", err)
	}
	return output(sess), nil
}

type AnswerInput struct {
	StudentID uuid.UUID
	Step      int
	Answer    profile.Answer
}

// ExecuteAnswer records one answer. The answer to the last question validates the draft
// and persists it as the student's profile, replacing any previous one.
func (uc *OnboardingUseCase) ExecuteAnswer(ctx context.Context, input AnswerInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "Answer")
	defer span.End()
	span.SetAttributes(attribute.Int("step", input.Step))

	sess, err := uc.sessions.Get(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, profile.ErrSessionNotFound) {
			return nil, apperror.NewNotFound("onboarding session", input.StudentID.String())
		}
		return nil, apperror.NewInternal("failed to load onboarding session", err)
	}

	if err := sess.Answer(input.Step, input.Answer); err != nil {
		span.RecordError(err)
		return nil, mapAnswerError(err)
	}

	if !sess.Completed {
		if err := uc.sessions.Save(ctx, sess); err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to save onboarding session", err)
		}
		return output(sess), nil
	}

	p := sess.Draft
	if err := uc.profileRepo.Save(ctx, input.StudentID, &p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save profile", err)
	}
	if err := uc.sessions.Delete(ctx, input.StudentID); err != nil {
		uc.logger.Warn("Failed to delete completed onboarding session", zap.String("student_id", input.StudentID.String()), zap.Error(err))
	}
	uc.logger.Info("Onboarding completed", zap.String("student_id", input.StudentID.String()))

	out := output(sess)
	out.Profile = &p
	return out, nil
}

func output(sess *profile.Session) *SessionOutput {
	out := &SessionOutput{
		Session:  sess,
		Progress: sess.Progress(),
		Total:    len(profile.Questions()),
	}
	if q, ok := sess.Current(); ok {
		out.Question = &q
	}
	return out
}

func mapAnswerError(err error) error {
	switch {
	case errors.Is(err, profile.ErrSessionCompleted):
		return apperror.NewAppError(apperror.ErrConflict, "Onboarding already completed", err.Error(), err)
	case errors.Is(err, profile.ErrStepMismatch):
		return apperror.NewAppError(apperror.ErrConflict, "Answer is out of order", err.Error(), err)
	case errors.Is(err, profile.ErrInvalidAnswer):
		return apperror.NewInvalidInput(err.Error(), err)
	}
	return apperror.NewInternal("failed to record answer", err)
}
