package progress

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/educursus/internal/application/usecase/usecasetest"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

func TestToggle_FlipsAndPersists(t *testing.T) {
	ctx := context.Background()
	progressRepo := usecasetest.NewProgressRepo()
	roadmapRepo := usecasetest.NewRoadmapRepo()
	uc := NewProgressUseCase(progressRepo, roadmapRepo, logger.NewNopLogger())
	student := uuid.New()
	require.NoError(t, roadmapRepo.Save(ctx, &roadmap.Roadmap{StudentID: student, CareerID: "data-scientist", Phases: roadmap.MockPhases()}))
	require.NoError(t, roadmapRepo.Save(ctx, &roadmap.Roadmap{StudentID: student, CareerID: "analyst", Phases: []roadmap.Phase{
		{Name: "Basics", Skills: []string{"SQL Databases", "Excel"}},
	}}))

	out, err := uc.ExecuteToggle(ctx, ToggleInput{StudentID: student, Skill: "SQL Databases"})
	require.NoError(t, err)
	assert.True(t, out.Completed)
	// 1 of 16 unique skills
	assert.Equal(t, 6, out.Percentage)
	assert.Equal(t, "Explorer", out.Level)

	stored, err := progressRepo.Get(ctx, student)
	require.NoError(t, err)
	assert.True(t, stored["SQL Databases"])

	out, err = uc.ExecuteToggle(ctx, ToggleInput{StudentID: student, Skill: "SQL Databases"})
	require.NoError(t, err)
	assert.False(t, out.Completed)
	assert.Equal(t, 0, out.Percentage)

	stored, err = progressRepo.Get(ctx, student)
	require.NoError(t, err)
	assert.False(t, stored["SQL Databases"])
}

func TestGet_NoRoadmaps(t *testing.T) {
	ctx := context.Background()
	progressRepo := usecasetest.NewProgressRepo()
	uc := NewProgressUseCase(progressRepo, usecasetest.NewRoadmapRepo(), logger.NewNopLogger())
	student := uuid.New()
	_, err := uc.ExecuteToggle(ctx, ToggleInput{StudentID: student, Skill: "Go"})
	require.NoError(t, err)

	out, err := uc.ExecuteGet(ctx, student)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Percentage)
	assert.Equal(t, 1, out.Completed)
}

func TestToggle_RequiresSkill(t *testing.T) {
	uc := NewProgressUseCase(usecasetest.NewProgressRepo(), usecasetest.NewRoadmapRepo(), logger.NewNopLogger())

	_, err := uc.ExecuteToggle(context.Background(), ToggleInput{StudentID: uuid.New(), Skill: " "})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestToggle_MatchesPaddedRoadmapSkills(t *testing.T) {
	ctx := context.Background()
	progressRepo := usecasetest.NewProgressRepo()
	roadmapRepo := usecasetest.NewRoadmapRepo()
	uc := NewProgressUseCase(progressRepo, roadmapRepo, logger.NewNopLogger())
	student := uuid.New()
	require.NoError(t, roadmapRepo.Save(ctx, &roadmap.Roadmap{StudentID: student, CareerID: "go-dev", Phases: []roadmap.Phase{
		{Name: "Basics", Skills: []string{" Go ", "SQL\n"}},
	}}))

	out, err := uc.ExecuteToggle(ctx, ToggleInput{StudentID: student, Skill: "  Go"})

	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Equal(t, 50, out.Percentage)
}
