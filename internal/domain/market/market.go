package market

import (
	"sort"
	"time"
)

type Trend struct {
	DemandChange   string   `json:"demand_change"`
	SalaryTrend    string   `json:"salary_trend"`
	HotLocations   []string `json:"hot_locations"`
	SkillsInDemand []string `json:"skills_in_demand"`
}

var trends = map[string]Trend{
	"fullstack_developer": {
		DemandChange:   "+14%",
		SalaryTrend:    "+8%",
		HotLocations:   []string{"Bangalore", "Mumbai", "Pune", "Hyderabad"},
		SkillsInDemand: []string{"React", "Node.js", "Python", "Cloud"},
	},
	"data_analyst": {
		DemandChange:   "+12%",
		SalaryTrend:    "+6%",
		HotLocations:   []string{"Delhi", "Bangalore", "Chennai", "Mumbai"},
		SkillsInDemand: []string{"Python", "SQL", "Tableau", "Power BI"},
	},
	"ml_engineer": {
		DemandChange:   "+18%",
		SalaryTrend:    "+12%",
		HotLocations:   []string{"Bangalore", "Hyderabad", "Pune", "Mumbai"},
		SkillsInDemand: []string{"Python", "TensorFlow", "PyTorch", "MLOps"},
	},
}

func Trends() map[string]Trend {
	out := make(map[string]Trend, len(trends))
	for k, v := range trends {
		out[k] = v
	}
	return out
}

// TrackedPaths lists the career paths with trend data, sorted.
func TrackedPaths() []string {
	ids := make([]string, 0, len(trends))
	for id := range trends {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type SalaryRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Insights is a generated market summary for a career path in a location.
type Insights struct {
	DemandTrend         string      `json:"demand_trend" validate:"required"`
	GrowthRate          string      `json:"growth_rate"`
	SalaryRange         SalaryRange `json:"salary_range"`
	HotSkills           []string    `json:"hot_skills"`
	MarketOpportunities []string    `json:"market_opportunities"`
	Challenges          []string    `json:"challenges"`
	Recommendations     []string    `json:"recommendations"`
}

type Report struct {
	CareerPath  string    `json:"career_path"`
	Location    string    `json:"location"`
	Insights    Insights  `json:"insights"`
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generated_at"`
}

const DefaultLocation = "India"

func MockInsights(careerPath string) Insights {
	hot := []string{"skill1", "skill2"}
	if t, ok := trends[careerPath]; ok {
		hot = append([]string(nil), t.SkillsInDemand...)
	}
	return Insights{
		DemandTrend:         "high",
		GrowthRate:          "15%",
		SalaryRange:         SalaryRange{Min: "500000", Max: "1500000"},
		HotSkills:           hot,
		MarketOpportunities: []string{"Remote work", "AI integration"},
		Challenges:          []string{"Competition", "Skill requirements"},
		Recommendations:     []string{"Upskill regularly", "Network actively"},
	}
}
