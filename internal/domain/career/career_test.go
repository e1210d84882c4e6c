package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPath(t *testing.T) {
	p, err := FindPath("ml_engineer")
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning Engineer", p.Name)
	assert.Equal(t, 9, p.RequiredSkills["python"])

	_, err = FindPath("astronaut")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestFindPath_ReturnsCopy(t *testing.T) {
	p, err := FindPath("data_analyst")
	require.NoError(t, err)
	p.RequiredSkills["python"] = 1
	p.LearningPath[0].Resources[0] = "changed"

	again, err := FindPath("data_analyst")
	require.NoError(t, err)
	assert.Equal(t, 7, again.RequiredSkills["python"])
	assert.Equal(t, "Python for Data Science", again.LearningPath[0].Resources[0])
}

func TestAnalyzeGap(t *testing.T) {
	p, err := FindPath("data_analyst")
	require.NoError(t, err)

	got := AnalyzeGap(map[string]int{"python": 7, "sql": 4, "excel": 10, "r": 3}, p)

	assert.Equal(t, 50.0, got.MatchPercentage)
	assert.Equal(t, map[string]int{
		"python": 0, "sql": 4, "excel": 0, "statistics": 7, "data_visualization": 6,
	}, got.SkillGaps)
	assert.Equal(t, []string{"data_visualization", "sql", "statistics"}, got.MissingSkills)
	assert.Equal(t, []string{"excel", "python", "r"}, got.StrongSkills)
}

func TestAnalyzeGap_NoSkills(t *testing.T) {
	p, err := FindPath("fullstack_developer")
	require.NoError(t, err)

	got := AnalyzeGap(nil, p)

	assert.Zero(t, got.MatchPercentage)
	assert.Len(t, got.MissingSkills, len(p.RequiredSkills))
	assert.Empty(t, got.StrongSkills)
}

func TestAnalyzeGap_RoundsToTwoDecimals(t *testing.T) {
	p := Path{ID: "x", RequiredSkills: map[string]int{"a": 3}}
	got := AnalyzeGap(map[string]int{"a": 1}, p)
	assert.Equal(t, 33.33, got.MatchPercentage)
}

func TestSimulate(t *testing.T) {
	p, err := FindPath("data_analyst")
	require.NoError(t, err)

	t.Run("no constraints", func(t *testing.T) {
		sim := Simulate(p, Constraints{})
		assert.Equal(t, CompletionEstimate{TotalHours: 105, EstimatedWeeks: 4.2, EstimatedMonths: 1.0, LearningPace: "full_time"}, sim.Completion)
		assert.Equal(t, p, sim.ModifiedPath)
	})

	t.Run("part time and remote", func(t *testing.T) {
		sim := Simulate(p, Constraints{PartTime: true, RemoteOnly: true})

		require.Len(t, sim.ModifiedPath.LearningPath, 4)
		assert.Equal(t, 60, sim.ModifiedPath.LearningPath[0].TimeEstimate)
		assert.Equal(t, 52, sim.ModifiedPath.LearningPath[2].TimeEstimate)
		assert.Equal(t, "remote_collaboration", sim.ModifiedPath.LearningPath[3].Skill)
		assert.Equal(t, 15, sim.ModifiedPath.LearningPath[3].TimeEstimate)
		assert.Equal(t, 6, sim.ModifiedPath.RequiredSkills["remote_collaboration"])
		assert.Equal(t, CompletionEstimate{TotalHours: 172, EstimatedWeeks: 17.2, EstimatedMonths: 4.0, LearningPace: "part_time"}, sim.Completion)
	})

	t.Run("budget limited", func(t *testing.T) {
		sim := Simulate(p, Constraints{BudgetLimited: true})
		assert.Equal(t, []string{"Free: Python for Data Science", "Free: Pandas Tutorial"}, sim.ModifiedPath.LearningPath[0].Resources)
	})

	t.Run("original untouched", func(t *testing.T) {
		Simulate(p, Constraints{PartTime: true, BudgetLimited: true, RemoteOnly: true})
		assert.Len(t, p.LearningPath, 3)
		assert.Equal(t, 40, p.LearningPath[0].TimeEstimate)
		assert.Equal(t, "Python for Data Science", p.LearningPath[0].Resources[0])
		_, ok := p.RequiredSkills["remote_collaboration"]
		assert.False(t, ok)
	})
}

func TestMockTitles(t *testing.T) {
	assert.Equal(t, []string{"AI & Data Scientist", "Machine Learning Engineer", "Cloud Solutions Architect"}, MockTitles())
}
