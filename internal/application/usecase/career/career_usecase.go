package career

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("career_usecase")

const (
	suggestionsTTL   = 7 * 24 * time.Hour
	defaultMatchSize = 3
)

const (
	MatchByEmbedding = "embedding"
	MatchByKeyword   = "keyword"
)

type CareerUseCase struct {
	profileRepo profile.Repository
	roadmapRepo roadmap.Repository
	careerRepo  career.Repository
	skillRepo   skill.Repository
	generator   service.TextGenerator
	embedder    service.EmbeddingService
	cache       service.Cache
	logger      logger.Logger
}

func NewCareerUseCase(
	pr profile.Repository,
	rr roadmap.Repository,
	cr career.Repository,
	sr skill.Repository,
	gen service.TextGenerator,
	em service.EmbeddingService,
	cache service.Cache,
	log logger.Logger,
) *CareerUseCase {
	return &CareerUseCase{
		profileRepo: pr,
		roadmapRepo: rr,
		careerRepo:  cr,
		skillRepo:   sr,
		generator:   gen,
		embedder:    em,
		cache:       cache,
		logger:      log,
	}
}

type SuggestInput struct {
	StudentID uuid.UUID
}

type SuggestOutput struct {
	Careers  []career.Career `json:"careers"`
	Fallback bool            `json:"fallback"`
}

// ExecuteSuggest asks the model for three careers fitting the student's profile. New
// suggestions invalidate the roadmaps generated for the previous ones.
func (uc *CareerUseCase) ExecuteSuggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error) {
	ctx, span := tracer.Start(ctx, "Suggest")
	defer span.End()

	p, err := uc.loadProfile(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.roadmapRepo.DeleteByStudent(ctx, input.StudentID); err != nil {
		uc.logger.Error("Failed to reset roadmaps", err, zap.String("student_id", input.StudentID.String()))
	}

	out := &SuggestOutput{}
	careers, err := uc.generateSuggestions(ctx, p)
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Career suggestion failed, serving mock careers", zap.String("student_id", input.StudentID.String()), zap.Error(err))
		careers = append([]career.Career(nil), career.MockCareers...)
		out.Fallback = true
	}
	out.Careers = careers
	span.SetAttributes(attribute.Bool("fallback", out.Fallback))

	if err := uc.cache.Set(ctx, service.SuggestionsKey(input.StudentID), careers, suggestionsTTL); err != nil {
		uc.logger.Warn("Failed to cache suggestions", zap.Error(err))
	}
	return out, nil
}

func (uc *CareerUseCase) generateSuggestions(ctx context.Context, p *profile.Profile) ([]career.Career, error) {
	text, err := prompt.Render(prompt.CareerSuggestions, p)
	if err != nil {
		return nil, err
	}
	careers, err := service.GenerateList[career.Career](ctx, uc.generator, text, "career suggestions", "careers", "suggestions")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(careers))
	out := make([]career.Career, 0, len(careers))
	for _, c := range careers {
		c.ID = slug(c.ID)
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, service.NewGenerationError("decode", service.ErrEmptyText, errors.New("no usable careers"))
	}
	return out, nil
}

func (uc *CareerUseCase) ExecuteListPaths() []career.Path {
	return career.Paths()
}

func (uc *CareerUseCase) ExecuteGetPath(id string) (*career.Path, error) {
	p, err := career.FindPath(id)
	if err != nil {
		return nil, apperror.NewNotFound("career path", id)
	}
	return &p, nil
}

type SkillGapInput struct {
	StudentID     uuid.UUID
	PathID        string
	CurrentSkills map[string]int
}

// ExecuteSkillGap compares the student's stored skill levels, overlaid with any levels
// sent in the request, against the path's requirements.
func (uc *CareerUseCase) ExecuteSkillGap(ctx context.Context, input SkillGapInput) (*career.GapAnalysis, error) {
	ctx, span := tracer.Start(ctx, "SkillGap")
	defer span.End()

	p, err := career.FindPath(input.PathID)
	if err != nil {
		return nil, apperror.NewNotFound("career path", input.PathID)
	}
	over := skill.Levels(input.CurrentSkills).Normalize()
	if err := over.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	stored, err := uc.skillRepo.GetLevels(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load skill levels", err)
	}
	gap := career.AnalyzeGap(stored.Merge(over), p)
	return &gap, nil
}

type SimulateInput struct {
	PathID      string
	Constraints career.Constraints
}

func (uc *CareerUseCase) ExecuteSimulate(input SimulateInput) (*career.Simulation, error) {
	p, err := career.FindPath(input.PathID)
	if err != nil {
		return nil, apperror.NewNotFound("career path", input.PathID)
	}
	sim := career.Simulate(p, input.Constraints)
	return &sim, nil
}

type MatchInput struct {
	StudentID uuid.UUID
	Limit     int
}

type MatchOutput struct {
	Careers []career.Ranked `json:"careers"`
	Method  string          `json:"method"`
}

// ExecuteMatch ranks the career catalog against the profile by embedding similarity,
// falling back to keyword overlap when embeddings are unavailable.
func (uc *CareerUseCase) ExecuteMatch(ctx context.Context, input MatchInput) (*MatchOutput, error) {
	ctx, span := tracer.Start(ctx, "Match")
	defer span.End()

	if input.Limit <= 0 {
		input.Limit = defaultMatchSize
	}
	p, err := uc.loadProfile(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ranked, err := uc.matchByEmbedding(ctx, p, input.Limit)
	if err == nil && len(ranked) > 0 {
		return &MatchOutput{Careers: ranked, Method: MatchByEmbedding}, nil
	}
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Embedding match failed, ranking by keywords", zap.Error(err))
	}

	catalog, listErr := uc.careerRepo.List(ctx)
	if listErr != nil || len(catalog) == 0 {
		catalog = career.MockCareers
	}
	return &MatchOutput{Careers: RankByKeywords(p.Keywords(), catalog, input.Limit), Method: MatchByKeyword}, nil
}

func (uc *CareerUseCase) matchByEmbedding(ctx context.Context, p *profile.Profile, limit int) ([]career.Ranked, error) {
	if err := uc.SeedEmbeddings(ctx, false); err != nil {
		return nil, err
	}
	vec, err := uc.embedder.GenerateEmbeddings(ctx, p.Summary())
	if err != nil {
		return nil, fmt.Errorf("embed profile: %w", err)
	}
	return uc.careerRepo.SearchByEmbedding(ctx, vec, limit)
}

// SeedEmbeddings stores embeddings for the built-in careers. Unless force is set it does
// nothing when the catalog already has entries.
func (uc *CareerUseCase) SeedEmbeddings(ctx context.Context, force bool) error {
	if !force {
		existing, err := uc.careerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list careers: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
	}
	for _, c := range career.MockCareers {
		vec, err := uc.embedder.GenerateEmbeddings(ctx, c.Title+". "+c.Description)
		if err != nil {
			return fmt.Errorf("embed career %s: %w", c.ID, err)
		}
		if err := uc.careerRepo.UpsertEmbedding(ctx, c, vec); err != nil {
			return fmt.Errorf("store career %s: %w", c.ID, err)
		}
	}
	uc.logger.Info("Career embeddings seeded", zap.Int("count", len(career.MockCareers)))
	return nil
}

// RankByKeywords scores each career by the share of keywords found in its title or
// description, keeping catalog order for ties.
func RankByKeywords(keywords []string, catalog []career.Career, limit int) []career.Ranked {
	unique := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		unique[k] = true
	}

	ranked := make([]career.Ranked, 0, len(catalog))
	for _, c := range catalog {
		text := strings.ToLower(c.Title + " " + c.Description)
		hits := 0
		for k := range unique {
			if strings.Contains(text, k) {
				hits++
			}
		}
		var score float64
		if len(unique) > 0 {
			score = math.Round(float64(hits)/float64(len(unique))*100) / 100
		}
		ranked = append(ranked, career.Ranked{Career: c, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (uc *CareerUseCase) loadProfile(ctx context.Context, studentID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", studentID.String())
		}
		return nil, apperror.NewInternal("get profile failed", err)
	}
	return p, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}), "-")
}
