package career

import "math"

const (
	partTimeHoursPerWeek = 10
	fullTimeHoursPerWeek = 25
	weeksPerMonth        = 4.33
)

type Constraints struct {
	PartTime      bool `json:"part_time"`
	BudgetLimited bool `json:"budget_limited"`
	RemoteOnly    bool `json:"remote_only"`
}

type CompletionEstimate struct {
	TotalHours      int     `json:"total_hours"`
	EstimatedWeeks  float64 `json:"estimated_weeks"`
	EstimatedMonths float64 `json:"estimated_months"`
	LearningPace    string  `json:"learning_pace"`
}

type Simulation struct {
	OriginalPath       Path               `json:"original_path"`
	ModifiedPath       Path               `json:"modified_path"`
	ConstraintsApplied Constraints        `json:"constraints_applied"`
	Completion         CompletionEstimate `json:"estimated_completion_time"`
}

// Simulate applies the constraints to a copy of p; p itself is left untouched.
func Simulate(p Path, c Constraints) Simulation {
	modified := p.Clone()

	if c.PartTime {
		for i := range modified.LearningPath {
			modified.LearningPath[i].TimeEstimate = int(float64(modified.LearningPath[i].TimeEstimate) * 1.5)
		}
	}
	if c.BudgetLimited {
		for i, item := range modified.LearningPath {
			for j, r := range item.Resources {
				modified.LearningPath[i].Resources[j] = "Free: " + r
			}
		}
	}
	if c.RemoteOnly {
		modified.RequiredSkills["remote_collaboration"] = 6
		modified.LearningPath = append(modified.LearningPath, LearningItem{
			Skill:        "remote_collaboration",
			Resources:    []string{"Remote Work Best Practices", "Digital Collaboration Tools"},
			TimeEstimate: 15,
		})
	}

	return Simulation{
		OriginalPath:       p.Clone(),
		ModifiedPath:       modified,
		ConstraintsApplied: c,
		Completion:         EstimateCompletion(modified, c.PartTime),
	}
}

func EstimateCompletion(p Path, partTime bool) CompletionEstimate {
	total := 0
	for _, item := range p.LearningPath {
		total += item.TimeEstimate
	}

	perWeek, pace := fullTimeHoursPerWeek, "full_time"
	if partTime {
		perWeek, pace = partTimeHoursPerWeek, "part_time"
	}
	weeks := float64(total) / float64(perWeek)
	months := weeks / weeksPerMonth

	return CompletionEstimate{
		TotalHours:      total,
		EstimatedWeeks:  round1(weeks),
		EstimatedMonths: round1(months),
		LearningPace:    pace,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
