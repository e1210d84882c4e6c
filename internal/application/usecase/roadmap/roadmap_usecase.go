package roadmap

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("roadmap_usecase")

type RoadmapUseCase struct {
	roadmapRepo roadmap.Repository
	cache       service.Cache
	generator   service.TextGenerator
	cacheTTL    time.Duration
	logger      logger.Logger
}

func NewRoadmapUseCase(repo roadmap.Repository, cache service.Cache, gen service.TextGenerator, cacheTTL time.Duration, log logger.Logger) *RoadmapUseCase {
	return &RoadmapUseCase{
		roadmapRepo: repo,
		cache:       cache,
		generator:   gen,
		cacheTTL:    cacheTTL,
		logger:      log,
	}
}

type GetRoadmapInput struct {
	StudentID uuid.UUID
	CareerID  string
}

// ExecuteGet returns the student's roadmap for a career, generating it on first request.
// Generated phases are shared across students through the cache; a failed generation
// stores the data-scientist mock roadmap for this student only.
func (uc *RoadmapUseCase) ExecuteGet(ctx context.Context, input GetRoadmapInput) (*roadmap.Roadmap, error) {
	ctx, span := tracer.Start(ctx, "GetRoadmap")
	defer span.End()
	span.SetAttributes(attribute.String("career_id", input.CareerID))

	if strings.TrimSpace(input.CareerID) == "" {
		return nil, apperror.NewInvalidInput("career id is required", nil)
	}

	existing, err := uc.roadmapRepo.Get(ctx, input.StudentID, input.CareerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, roadmap.ErrRoadmapNotFound) {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load roadmap", err)
	}

	title := uc.careerTitle(ctx, input.StudentID, input.CareerID)
	rm := &roadmap.Roadmap{
		StudentID: input.StudentID,
		CareerID:  input.CareerID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	var phases []roadmap.Phase
	if err := uc.cache.Get(ctx, service.RoadmapKey(input.CareerID), &phases); err == nil && len(phases) > 0 {
		rm.Phases = phases
	} else {
		phases, err := uc.generatePhases(ctx, title)
		if err != nil {
			span.RecordError(err)
			uc.logger.Warn("Roadmap generation failed, serving mock roadmap", zap.String("career_id", input.CareerID), zap.Error(err))
			rm.Phases = roadmap.MockPhases()
			rm.Fallback = true
		} else {
			rm.Phases = phases
			if err := uc.cache.Set(ctx, service.RoadmapKey(input.CareerID), phases, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache roadmap", zap.Error(err))
			}
		}
	}

	if err := uc.roadmapRepo.Save(ctx, rm); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save roadmap", err)
	}
	return rm, nil
}

func (uc *RoadmapUseCase) generatePhases(ctx context.Context, title string) ([]roadmap.Phase, error) {
	text, err := prompt.Render(prompt.Roadmap, map[string]any{"Title": title})
	if err != nil {
		return nil, err
	}
	phases, err := service.GenerateList[roadmap.Phase](ctx, uc.generator, text, "roadmap", "phases", "roadmap")
	if err != nil {
		return nil, err
	}
	phases = roadmap.Normalize(phases)
	if len(phases) == 0 {
		return nil, service.NewGenerationError("decode", service.ErrEmptyText, errors.New("no usable phases"))
	}
	return phases, nil
}

// careerTitle resolves a career id to a title using the student's last suggestions, then
// the built-in catalog, then the id itself.
func (uc *RoadmapUseCase) careerTitle(ctx context.Context, studentID uuid.UUID, careerID string) string {
	var suggested []career.Career
	if err := uc.cache.Get(ctx, service.SuggestionsKey(studentID), &suggested); err == nil {
		for _, c := range suggested {
			if c.ID == careerID {
				return c.Title
			}
		}
	}
	for _, c := range career.MockCareers {
		if c.ID == careerID {
			return c.Title
		}
	}
	return titleFromID(careerID)
}

// titleFromID turns "ñandu-expert" into "Ñandu Expert". Invalid UTF-8 is replaced so the
// title always stores as text.
func titleFromID(id string) string {
	words := strings.FieldsFunc(strings.ToValidUTF8(id, "\uFFFD"), func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func (uc *RoadmapUseCase) ExecuteListGenerated(ctx context.Context, studentID uuid.UUID) ([]*roadmap.Roadmap, error) {
	ctx, span := tracer.Start(ctx, "ListGenerated")
	defer span.End()

	list, err := uc.roadmapRepo.ListByStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list roadmaps", err)
	}
	return list, nil
}

type MiniProjectInput struct {
	StudentID uuid.UUID
	CareerID  string
	Phase     string
	// Skills defaults to the phase's skills in the student's roadmap.
	Skills []string
}

type MiniProjectOutput struct {
	Project  roadmap.MiniProject `json:"project"`
	Fallback bool                `json:"fallback"`
}

func (uc *RoadmapUseCase) ExecuteMiniProject(ctx context.Context, input MiniProjectInput) (*MiniProjectOutput, error) {
	ctx, span := tracer.Start(ctx, "MiniProject")
	defer span.End()

	input.Phase = strings.TrimSpace(input.Phase)
	if input.Phase == "" {
		return nil, apperror.NewInvalidInput("phase is required", nil)
	}

	title := ""
	rm, err := uc.roadmapRepo.Get(ctx, input.StudentID, input.CareerID)
	switch {
	case err == nil:
		title = rm.Title
		if len(input.Skills) == 0 {
			for _, p := range rm.Phases {
				if p.Name == input.Phase {
					input.Skills = p.Skills
				}
			}
		}
	case errors.Is(err, roadmap.ErrRoadmapNotFound):
		title = uc.careerTitle(ctx, input.StudentID, input.CareerID)
	default:
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load roadmap", err)
	}
	if len(input.Skills) == 0 {
		return nil, apperror.NewInvalidInput("skills are required for phase "+input.Phase, nil)
	}

	text, err := prompt.Render(prompt.MiniProject, map[string]any{
		"CareerTitle": title,
		"Skills":      input.Skills,
		"Phase":       input.Phase,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to build mini project prompt", err)
	}

	project, err := service.GenerateJSON[roadmap.MiniProject](ctx, uc.generator, text, "mini project")
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Mini project generation failed", zap.String("phase", input.Phase), zap.Error(err))
		return &MiniProjectOutput{Project: roadmap.FallbackProject(input.Phase), Fallback: true}, nil
	}
	project.Phase = input.Phase
	return &MiniProjectOutput{Project: project}, nil
}
