package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/educursus/internal/application/usecase/usecasetest"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/internal/domain/token"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type fixture struct {
	deps    Deps
	student *student.Student
}

func newFixture(t *testing.T, gen *usecasetest.Generator) (*DashboardUseCase, *fixture) {
	t.Helper()
	s := student.NewStudent("asha@example.com", "Asha K", "hash")
	s.XP = 650
	s.Level = "Explorer"
	f := &fixture{student: s, deps: Deps{
		Students:  usecasetest.NewStudentRepo(s),
		Profiles:  usecasetest.NewProfileRepo(),
		Progress:  usecasetest.NewProgressRepo(),
		Roadmaps:  usecasetest.NewRoadmapRepo(),
		Tokens:    usecasetest.NewTokenRepo(),
		Generator: gen,
	}}
	return NewDashboardUseCase(f.deps, logger.NewNopLogger()), f
}

func saveProfile(t *testing.T, f *fixture) {
	t.Helper()
	p := &profile.Profile{Name: "Asha", Age: 17, Stream: "Arts", Interests: []string{"Design"}, CareerInterests: []string{}, LongTermGoal: "Design games"}
	require.NoError(t, f.deps.Profiles.Save(context.Background(), f.student.ID, p))
}

func TestAnalyze(t *testing.T) {
	gen := &usecasetest.Generator{Text: "You have a creative streak.\n"}
	uc, f := newFixture(t, gen)
	saveProfile(t, f)

	out, err := uc.ExecuteAnalyze(context.Background(), f.student.ID)

	require.NoError(t, err)
	assert.Equal(t, "You have a creative streak.", out.Analysis)
	assert.Contains(t, gen.Prompts[0], "5-year Goal: Design games")
}

func TestAnalyze_Fallback(t *testing.T) {
	uc, f := newFixture(t, usecasetest.FailingGenerator())
	saveProfile(t, f)

	out, err := uc.ExecuteAnalyze(context.Background(), f.student.ID)

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Equal(t, FallbackAnalysis, out.Analysis)
}

func TestAnalyze_NoProfile(t *testing.T) {
	uc, f := newFixture(t, &usecasetest.Generator{})

	_, err := uc.ExecuteAnalyze(context.Background(), f.student.ID)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	uc, f := newFixture(t, &usecasetest.Generator{})
	saveProfile(t, f)
	require.NoError(t, f.deps.Roadmaps.Save(ctx, &roadmap.Roadmap{StudentID: f.student.ID, CareerID: "data-scientist", Phases: roadmap.MockPhases()}))
	require.NoError(t, f.deps.Progress.Save(ctx, f.student.ID, progress.Progress{"Python Programming": true, "Linear Algebra": true, "SQL Databases": true, "Outside": true}))
	require.NoError(t, f.deps.Tokens.Append(ctx, f.student.ID, token.Token{Project: "p", Date: "1/1/2025"}))

	out, err := uc.ExecuteSummary(ctx, f.student.ID)

	require.NoError(t, err)
	assert.Equal(t, "Asha", out.Name)
	assert.Equal(t, "Explorer", out.Level)
	assert.Equal(t, 4, out.CompletedSkills)
	assert.Equal(t, 20, out.Percentage)
	assert.Equal(t, 1, out.Tokens)
	assert.Equal(t, 650, out.XP)
}
