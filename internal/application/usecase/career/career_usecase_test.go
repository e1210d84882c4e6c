package career

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/application/usecase/usecasetest"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type fixture struct {
	uc       *CareerUseCase
	profiles *usecasetest.ProfileRepo
	roadmaps *usecasetest.RoadmapRepo
	careers  *usecasetest.CareerRepo
	skills   *usecasetest.SkillRepo
	cache    *usecasetest.Cache
	student  uuid.UUID
}

func newFixture(t *testing.T, gen *usecasetest.Generator, em *usecasetest.Embedder) *fixture {
	t.Helper()
	f := &fixture{
		profiles: usecasetest.NewProfileRepo(),
		roadmaps: usecasetest.NewRoadmapRepo(),
		careers:  usecasetest.NewCareerRepo(),
		skills:   usecasetest.NewSkillRepo(),
		cache:    usecasetest.NewCache(),
		student:  uuid.New(),
	}
	f.uc = NewCareerUseCase(f.profiles, f.roadmaps, f.careers, f.skills, gen, em, f.cache, logger.NewNopLogger())

	p := &profile.Profile{
		Name:            "Asha",
		Age:             17,
		Stream:          "Science",
		Interests:       []string{"Computer Science"},
		CareerInterests: []string{"Cloud Solutions Architect"},
		LearningStyle:   "By Doing (Practical)",
		WorkEnv:         "Large Tech Company",
		LongTermGoal:    "Run secure infrastructure",
	}
	require.NoError(t, f.profiles.Save(context.Background(), f.student, p))
	return f
}

func TestSuggest_UsesGeneratedCareers(t *testing.T) {
	gen := &usecasetest.Generator{Text: "```json\n[{\"id\":\"Game Developer\",\"title\":\"Game Developer\",\"description\":\"Builds games.\"},{\"id\":\"game-developer\",\"title\":\"Dup\",\"description\":\"Dup.\"}]\n```"}
	f := newFixture(t, gen, &usecasetest.Embedder{})
	ctx := context.Background()
	require.NoError(t, f.roadmaps.Save(ctx, &roadmap.Roadmap{StudentID: f.student, CareerID: "old", CreatedAt: time.Now()}))

	out, err := f.uc.ExecuteSuggest(ctx, SuggestInput{StudentID: f.student})

	require.NoError(t, err)
	assert.False(t, out.Fallback)
	require.Len(t, out.Careers, 1)
	assert.Equal(t, "game-developer", out.Careers[0].ID)
	assert.Contains(t, gen.Prompts[0], "Run secure infrastructure")

	left, err := f.roadmaps.ListByStudent(ctx, f.student)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.True(t, f.cache.Has(service.SuggestionsKey(f.student)))
}

func TestSuggest_FallsBackToMockCareers(t *testing.T) {
	tests := []struct {
		name string
		gen  *usecasetest.Generator
	}{
		{"request failed", usecasetest.FailingGenerator()},
		{"not json", &usecasetest.Generator{Text: "Here are some careers!"}},
		{"empty list", &usecasetest.Generator{Text: "[]"}},
		{"missing fields", &usecasetest.Generator{Text: `[{"id":"x"}]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.gen, &usecasetest.Embedder{})

			out, err := f.uc.ExecuteSuggest(context.Background(), SuggestInput{StudentID: f.student})

			require.NoError(t, err)
			assert.True(t, out.Fallback)
			assert.Equal(t, career.MockCareers, out.Careers)
		})
	}
}

func TestSuggest_RequiresProfile(t *testing.T) {
	f := newFixture(t, &usecasetest.Generator{}, &usecasetest.Embedder{})

	_, err := f.uc.ExecuteSuggest(context.Background(), SuggestInput{StudentID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPathsGapAndSimulation(t *testing.T) {
	f := newFixture(t, &usecasetest.Generator{}, &usecasetest.Embedder{})

	assert.Len(t, f.uc.ExecuteListPaths(), 3)

	_, err := f.uc.ExecuteGetPath("astronaut")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	gap, err := f.uc.ExecuteSkillGap(context.Background(), SkillGapInput{StudentID: f.student, PathID: "data_analyst", CurrentSkills: map[string]int{"python": 7, "sql": 4}})
	require.NoError(t, err)
	assert.Equal(t, 4, gap.SkillGaps["sql"])
	assert.Contains(t, gap.StrongSkills, "python")

	_, err = f.uc.ExecuteSkillGap(context.Background(), SkillGapInput{StudentID: f.student, PathID: "data_analyst", CurrentSkills: map[string]int{"python": 11}})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	sim, err := f.uc.ExecuteSimulate(SimulateInput{PathID: "ml_engineer", Constraints: career.Constraints{PartTime: true}})
	require.NoError(t, err)
	assert.Equal(t, 90, sim.ModifiedPath.LearningPath[0].TimeEstimate)
	assert.Equal(t, 60, sim.OriginalPath.LearningPath[0].TimeEstimate)
}

func TestSkillGap_ReadsStoredLevels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &usecasetest.Generator{}, &usecasetest.Embedder{})
	require.NoError(t, f.skills.SaveLevels(ctx, f.student, skill.Levels{"python": 7, "sql": 2, "excel": 6}))

	gap, err := f.uc.ExecuteSkillGap(ctx, SkillGapInput{StudentID: f.student, PathID: "data_analyst"})
	require.NoError(t, err)
	assert.Equal(t, 6, gap.SkillGaps["sql"])
	assert.Contains(t, gap.StrongSkills, "python")
	assert.Contains(t, gap.StrongSkills, "excel")

	gap, err = f.uc.ExecuteSkillGap(ctx, SkillGapInput{StudentID: f.student, PathID: "data_analyst", CurrentSkills: map[string]int{"SQL": 8}})
	require.NoError(t, err)
	assert.Zero(t, gap.SkillGaps["sql"])
	assert.Contains(t, gap.StrongSkills, "sql")
}

func TestSkillGap_StoreFailure(t *testing.T) {
	f := newFixture(t, &usecasetest.Generator{}, &usecasetest.Embedder{})
	f.skills.Err = errors.New("db down")

	_, err := f.uc.ExecuteSkillGap(context.Background(), SkillGapInput{StudentID: f.student, PathID: "data_analyst"})

	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestMatch_ByEmbedding(t *testing.T) {
	em := &usecasetest.Embedder{Keywords: []string{"data", "production", "cloud"}}
	f := newFixture(t, &usecasetest.Generator{}, em)

	out, err := f.uc.ExecuteMatch(context.Background(), MatchInput{StudentID: f.student, Limit: 1})

	require.NoError(t, err)
	assert.Equal(t, MatchByEmbedding, out.Method)
	require.Len(t, out.Careers, 1)
	assert.Equal(t, "cloud-architect", out.Careers[0].ID)
	assert.Equal(t, len(career.MockCareers), f.careers.Upserted)

	_, err = f.uc.ExecuteMatch(context.Background(), MatchInput{StudentID: f.student})
	require.NoError(t, err)
	assert.Equal(t, len(career.MockCareers), f.careers.Upserted, "seeding runs once")
}

func TestMatch_KeywordFallback(t *testing.T) {
	f := newFixture(t, &usecasetest.Generator{}, &usecasetest.Embedder{Err: errors.New("ollama down")})

	out, err := f.uc.ExecuteMatch(context.Background(), MatchInput{StudentID: f.student})

	require.NoError(t, err)
	assert.Equal(t, MatchByKeyword, out.Method)
	require.Len(t, out.Careers, 3)
	assert.Equal(t, "cloud-architect", out.Careers[0].ID)
}

func TestRankByKeywords(t *testing.T) {
	ranked := RankByKeywords([]string{"machine", "learning", "machine"}, career.MockCareers, 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, "data-scientist", ranked[0].ID)
	assert.Equal(t, 1.0, ranked[0].Score)
	assert.Equal(t, "ml-engineer", ranked[1].ID)
	assert.Equal(t, 0.0, ranked[2].Score)
}
