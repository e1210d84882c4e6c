package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessments_HideKeywords(t *testing.T) {
	for _, a := range Assessments() {
		for _, q := range a.Questions {
			assert.Empty(t, q.ExpectedKeywords, a.ID)
		}
	}

	full, ok := FindAssessment("python_basics")
	require.True(t, ok)
	assert.NotEmpty(t, full.Questions[0].ExpectedKeywords)
	assert.Equal(t, "Python Basics Challenge Master", full.Badge())
}

func TestGrade(t *testing.T) {
	a, _ := FindAssessment("python_basics")

	tests := []struct {
		name         string
		answers      []string
		wantScore    int
		wantFeedback int
	}{
		{
			name: "both answers cover five keywords",
			answers: []string{
				"Group sales by product, total revenue per product, then the average per day",
				"It is base64; decode it, then crack the password hash behind the encryption",
			},
			wantScore: 100,
		},
		{
			name:         "one strong answer",
			answers:      []string{"revenue total product sales average"},
			wantScore:    50,
			wantFeedback: 1,
		},
		{
			name:         "weak answers",
			answers:      []string{"revenue", "base64"},
			wantScore:    20,
			wantFeedback: 2,
		},
		{
			name:         "no answers",
			wantScore:    0,
			wantFeedback: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, feedback := Grade(a, tt.answers)
			assert.Equal(t, tt.wantScore, score)
			assert.Len(t, feedback, tt.wantFeedback)
		})
	}
}

func TestGrade_Feedback(t *testing.T) {
	a, _ := FindAssessment("data_analysis")

	_, feedback := Grade(a, []string{"clustering"})

	assert.Equal(t, []string{
		"Question 1: Consider including more details about segmentation, correlation, clustering, analysis, insights, strategy",
	}, feedback)
}

func TestReward(t *testing.T) {
	xp, passed := Reward(70)
	assert.True(t, passed)
	assert.Equal(t, 70, xp)

	xp, passed = Reward(69)
	assert.False(t, passed)
	assert.Equal(t, 34, xp)
}
