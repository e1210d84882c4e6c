package learning

import "time"

type PlanPhase struct {
	Phase         int      `json:"phase" validate:"gte=1"`
	Title         string   `json:"title" validate:"required"`
	SkillsToLearn []string `json:"skills_to_learn"`
	Resources     []string `json:"resources"`
	TimeEstimate  string   `json:"time_estimate"`
	Projects      []string `json:"projects"`
	Milestones    []string `json:"milestones"`
}

// Plan is a personalized learning path for a career goal.
type Plan struct {
	LearningPath    []PlanPhase `json:"learning_path" validate:"required,min=1,dive"`
	TotalTime       string      `json:"total_time"`
	Difficulty      string      `json:"difficulty"`
	Recommendations []string    `json:"recommendations"`
	GeneratedAt     time.Time   `json:"generated_at"`
}

func MockPlan() Plan {
	return Plan{
		LearningPath: []PlanPhase{{
			Phase:         1,
			Title:         "Foundation",
			SkillsToLearn: []string{"Basic concepts"},
			Resources:     []string{"Online courses"},
			TimeEstimate:  "4 weeks",
			Projects:      []string{"Simple project"},
			Milestones:    []string{"Complete basics"},
		}},
		TotalTime:       "40 hours",
		Difficulty:      "beginner",
		Recommendations: []string{"Start with basics", "Practice regularly"},
	}
}
