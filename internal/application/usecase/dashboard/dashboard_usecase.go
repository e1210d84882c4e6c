package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/internal/domain/token"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("dashboard_usecase")

// FallbackAnalysis is shown when the profile analysis cannot be generated.
const FallbackAnalysis = "Sorry, I couldn't generate an analysis at this moment."

type DashboardUseCase struct {
	studentRepo  student.Repository
	profileRepo  profile.Repository
	progressRepo progress.Repository
	roadmapRepo  roadmap.Repository
	tokenRepo    token.Repository
	generator    service.TextGenerator
	logger       logger.Logger
}

type Deps struct {
	Students  student.Repository
	Profiles  profile.Repository
	Progress  progress.Repository
	Roadmaps  roadmap.Repository
	Tokens    token.Repository
	Generator service.TextGenerator
}

func NewDashboardUseCase(d Deps, log logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		studentRepo:  d.Students,
		profileRepo:  d.Profiles,
		progressRepo: d.Progress,
		roadmapRepo:  d.Roadmaps,
		tokenRepo:    d.Tokens,
		generator:    d.Generator,
		logger:       log,
	}
}

type AnalysisOutput struct {
	Analysis string `json:"analysis"`
	Fallback bool   `json:"fallback"`
}

// ExecuteAnalyze produces a short encouraging read of the profile.
func (uc *DashboardUseCase) ExecuteAnalyze(ctx context.Context, studentID uuid.UUID) (*AnalysisOutput, error) {
	ctx, span := tracer.Start(ctx, "Analyze")
	defer span.End()

	p, err := uc.profileRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", studentID.String())
		}
		return nil, apperror.NewInternal("get profile failed", err)
	}

	text, err := prompt.Render(prompt.DashboardAnalysis, p)
	if err != nil {
		return nil, apperror.NewInternal("failed to build analysis prompt", err)
	}
	analysis, err := uc.generator.Generate(ctx, text, service.GenerateOptions{})
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Profile analysis failed", zap.String("student_id", studentID.String()), zap.Error(err))
		return &AnalysisOutput{Analysis: FallbackAnalysis, Fallback: true}, nil
	}
	return &AnalysisOutput{Analysis: strings.TrimSpace(analysis)}, nil
}

type SummaryOutput struct {
	Name            string           `json:"name"`
	Profile         *profile.Profile `json:"profile,omitempty"`
	Level           string           `json:"level"`
	CompletedSkills int              `json:"completed_skills"`
	Percentage      int              `json:"percentage"`
	Tokens          int              `json:"tokens"`
	XP              int              `json:"xp"`
	XPLevel         string           `json:"xp_level"`
	Badges          []string         `json:"badges"`
}

// ExecuteSummary gathers the dashboard figures. A student without a profile still gets a
// summary, named after the account.
func (uc *DashboardUseCase) ExecuteSummary(ctx context.Context, studentID uuid.UUID) (*SummaryOutput, error) {
	ctx, span := tracer.Start(ctx, "Summary")
	defer span.End()

	s, err := uc.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, student.ErrStudentNotFound) {
			return nil, apperror.NewNotFound("student", studentID.String())
		}
		return nil, apperror.NewInternal("failed to load student", err)
	}
	out := &SummaryOutput{Name: s.Name, XP: s.XP, XPLevel: s.Level, Badges: s.Badges}

	p, err := uc.profileRepo.GetByStudentID(ctx, studentID)
	switch {
	case err == nil:
		out.Profile = p
		out.Name = p.Name
	case !errors.Is(err, profile.ErrProfileNotFound):
		return nil, apperror.NewInternal("get profile failed", err)
	}

	prog, err := uc.progressRepo.Get(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load progress", err)
	}
	roadmaps, err := uc.roadmapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list roadmaps", err)
	}
	skillSets := make([][]string, len(roadmaps))
	for i, rm := range roadmaps {
		skillSets[i] = rm.Skills()
	}
	tokens, err := uc.tokenRepo.List(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list tokens", err)
	}

	out.Level = progress.Level(prog)
	out.CompletedSkills = prog.CompletedCount()
	out.Percentage = progress.Percentage(skillSets, prog)
	out.Tokens = len(tokens)
	return out, nil
}
