package gamification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, LevelBeginner},
		{499, LevelBeginner},
		{500, LevelExplorer},
		{1500, LevelIntermediate},
		{2999, LevelIntermediate},
		{3000, LevelSkilled},
		{5000, LevelIndustryReady},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestApply(t *testing.T) {
	id := uuid.New()
	s := Standing{XP: 420, Level: LevelBeginner, Badges: []string{}}

	s = Apply(s, NewProjectCompleted(id, "Sales Dashboard"))
	assert.Equal(t, 520, s.XP)
	assert.Equal(t, LevelExplorer, s.Level)

	s = Apply(s, NewInterviewCompleted(id, "ml_engineer", 85, "ml_engineer Interview Master"))
	assert.Equal(t, 655, s.XP)
	assert.Equal(t, []string{"ml_engineer Interview Master"}, s.Badges)

	s = Apply(s, NewInterviewCompleted(id, "ml_engineer", 90, "ml_engineer Interview Master"))
	assert.Equal(t, []string{"ml_engineer Interview Master"}, s.Badges)
	assert.Equal(t, 795, s.XP)
}

func TestApply_DoesNotShareBadges(t *testing.T) {
	badges := make([]string, 0, 4)
	before := Standing{Badges: badges}

	after := Apply(before, Event{Type: EventInterviewCompleted, Badge: "x"})

	assert.Empty(t, before.Badges)
	assert.Equal(t, []string{"x"}, after.Badges)
}

func TestEvent_XP(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		e    Event
		want int
	}{
		{"project", NewProjectCompleted(id, "Sales Dashboard"), ProjectXP},
		{"interview", NewInterviewCompleted(id, "ml_engineer", 60, ""), InterviewXP + 60},
		{"passed assessment", NewAssessmentCompleted(id, "python_basics", 80, 80, "Python Basics Challenge Master"), 80},
		{"failed assessment", NewAssessmentCompleted(id, "python_basics", 41, 20, ""), 20},
		{"learning project", NewLearningProjectCompleted(id, "web_app", 250, "Full Stack Developer"), ProjectXP + 250},
		{"unknown", Event{Type: "quiz_completed", Points: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.XP())
		})
	}
}
