package progress

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("progress_usecase")

type ProgressUseCase struct {
	progressRepo progress.Repository
	roadmapRepo  roadmap.Repository
	logger       logger.Logger
}

func NewProgressUseCase(pr progress.Repository, rr roadmap.Repository, log logger.Logger) *ProgressUseCase {
	return &ProgressUseCase{
		progressRepo: pr,
		roadmapRepo:  rr,
		logger:       log,
	}
}

type ProgressOutput struct {
	Progress   progress.Progress `json:"progress"`
	Percentage int               `json:"percentage"`
	Level      string            `json:"level"`
	Completed  int               `json:"completed"`
}

type ToggleInput struct {
	StudentID uuid.UUID
	Skill     string
}

type ToggleOutput struct {
	Skill     string `json:"skill"`
	Completed bool   `json:"completed"`
	ProgressOutput
}

// ExecuteToggle flips one skill and persists the whole map.
func (uc *ProgressUseCase) ExecuteToggle(ctx context.Context, input ToggleInput) (*ToggleOutput, error) {
	ctx, span := tracer.Start(ctx, "Toggle")
	defer span.End()

	skill := strings.TrimSpace(input.Skill)
	if skill == "" {
		return nil, apperror.NewInvalidInput("skill is required", nil)
	}
	span.SetAttributes(attribute.String("skill", skill))

	p, err := uc.progressRepo.Get(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load progress", err)
	}
	done := p.Toggle(skill)
	if err := uc.progressRepo.Save(ctx, input.StudentID, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save progress", err)
	}

	summary, err := uc.summarize(ctx, input.StudentID, p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ToggleOutput{Skill: skill, Completed: done, ProgressOutput: *summary}, nil
}

func (uc *ProgressUseCase) ExecuteGet(ctx context.Context, studentID uuid.UUID) (*ProgressOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProgress")
	defer span.End()

	p, err := uc.progressRepo.Get(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load progress", err)
	}
	return uc.summarize(ctx, studentID, p)
}

func (uc *ProgressUseCase) summarize(ctx context.Context, studentID uuid.UUID, p progress.Progress) (*ProgressOutput, error) {
	roadmaps, err := uc.roadmapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list roadmaps", err)
	}
	skillSets := make([][]string, len(roadmaps))
	for i, rm := range roadmaps {
		skillSets[i] = rm.Skills()
	}
	return &ProgressOutput{
		Progress:   p,
		Percentage: progress.Percentage(skillSets, p),
		Level:      progress.Level(p),
		Completed:  p.CompletedCount(),
	}, nil
}
