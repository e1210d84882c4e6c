package profile

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	extractor   service.TextExtractor
	generator   service.TextGenerator
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, extractor service.TextExtractor, gen service.TextGenerator, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		extractor:   extractor,
		generator:   gen,
		logger:      log,
	}
}

type GetProfileInput struct {
	StudentID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	p, err := uc.profileRepo.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.StudentID.String())
		}
		return nil, apperror.NewInternal("get profile failed", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	StudentID uuid.UUID
	Profile   profile.Profile
}

// ExecuteUpdateProfile replaces the stored profile with a validated copy of the input.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	p := input.Profile
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.profileRepo.Save(ctx, input.StudentID, &p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("update profile failed", err)
	}
	return &GetProfileOutput{Profile: &p}, nil
}

// ResumeSuggestion is what the model proposes after reading a resume.
type ResumeSuggestion struct {
	Interests       []string `json:"interests"`
	CareerInterests []string `json:"careerInterests"`
	LongTermGoal    string   `json:"longTermGoal" validate:"required"`
}

type ImportResumeInput struct {
	StudentID uuid.UUID
	Filename  string
	File      io.Reader
	Size      int64
}

type ImportResumeOutput struct {
	Text       string            `json:"text"`
	Suggestion *ResumeSuggestion `json:"suggestion,omitempty"`
	Profile    *profile.Profile  `json:"profile,omitempty"`
	// Applied is true when the suggestion was merged into a stored profile.
	Applied  bool `json:"applied"`
	Fallback bool `json:"fallback"`
}

// ExecuteImportResume extracts the resume text and asks the model for onboarding answers.
// Suggestions are merged into an existing profile; without one they are only returned.
// A failed generation leaves everything unchanged and returns the text alone.
func (uc *ProfileUseCase) ExecuteImportResume(ctx context.Context, input ImportResumeInput) (*ImportResumeOutput, error) {
	ctx, span := tracer.Start(ctx, "ImportResume")
	defer span.End()

	text, err := uc.extractor.ExtractText(ctx, input.Filename, input.File, input.Size)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInvalidInput("cannot read resume", err)
	}
	if text == "" {
		return nil, apperror.NewInvalidInput("resume contains no text", nil)
	}
	out := &ImportResumeOutput{Text: text}

	promptText, err := prompt.Render(prompt.ResumeProfile, map[string]any{
		"InterestOptions": optionsFor("interests"),
		"CareerOptions":   optionsFor("careerInterests"),
		"Resume":          text,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to build resume prompt", err)
	}

	s, err := service.GenerateJSON[ResumeSuggestion](ctx, uc.generator, promptText, "resume profile")
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Resume analysis failed, returning extracted text only", zap.String("student_id", input.StudentID.String()), zap.Error(err))
		out.Fallback = true
		return out, nil
	}
	s.Interests = keepOptions(s.Interests, optionsFor("interests"))
	s.CareerInterests = keepOptions(s.CareerInterests, optionsFor("careerInterests"))
	out.Suggestion = &s

	current, err := uc.profileRepo.GetByStudentID(ctx, input.StudentID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return out, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("get profile failed", err)
	}

	merged := *current
	if len(s.Interests) > 0 {
		merged.Interests = s.Interests
	}
	if len(s.CareerInterests) > 0 {
		merged.CareerInterests = s.CareerInterests
	}
	merged.LongTermGoal = s.LongTermGoal
	merged.Normalize()
	if err := merged.Validate(); err != nil {
		uc.logger.Warn("Resume suggestion does not produce a valid profile", zap.Error(err))
		return out, nil
	}
	if err := uc.profileRepo.Save(ctx, input.StudentID, &merged); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("update profile failed", err)
	}
	out.Profile = &merged
	out.Applied = true
	return out, nil
}

func optionsFor(key string) []string {
	for _, q := range profile.Questions() {
		if q.Key == key {
			return q.Options
		}
	}
	return nil
}

// keepOptions filters picked down to known options, in option order.
func keepOptions(picked, options []string) []string {
	out := []string{}
	for _, o := range options {
		if slices.Contains(picked, o) {
			out = append(out, o)
		}
	}
	return out
}
