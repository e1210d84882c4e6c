package career

import (
	"errors"
	"math"
	"sort"
)

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type LearningItem struct {
	Skill        string   `json:"skill"`
	Resources    []string `json:"resources"`
	TimeEstimate int      `json:"time_estimate"`
}

// Path is a career track with required skill levels on a 0..10 scale.
type Path struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	RequiredSkills map[string]int `json:"required_skills"`
	MarketDemand   float64        `json:"market_demand"`
	SalaryRange    SalaryRange    `json:"salary_range"`
	LearningPath   []LearningItem `json:"learning_path"`
}

var ErrPathNotFound = errors.New("career path not found")

var paths = []Path{
	{
		ID:          "data_analyst",
		Name:        "Data Analyst",
		Description: "Transform raw data into actionable insights",
		RequiredSkills: map[string]int{
			"python": 7, "sql": 8, "excel": 6, "statistics": 7, "data_visualization": 6,
		},
		MarketDemand: 0.85,
		SalaryRange:  SalaryRange{Min: 400000, Max: 1200000},
		LearningPath: []LearningItem{
			{Skill: "python", Resources: []string{"Python for Data Science", "Pandas Tutorial"}, TimeEstimate: 40},
			{Skill: "sql", Resources: []string{"SQL Fundamentals", "Advanced SQL"}, TimeEstimate: 30},
			{Skill: "statistics", Resources: []string{"Statistics 101", "Practical Statistics"}, TimeEstimate: 35},
		},
	},
	{
		ID:          "fullstack_developer",
		Name:        "Full Stack Developer",
		Description: "Build complete web applications from frontend to backend",
		RequiredSkills: map[string]int{
			"javascript": 8, "react": 7, "nodejs": 7, "python": 6, "database": 6, "git": 5,
		},
		MarketDemand: 0.92,
		SalaryRange:  SalaryRange{Min: 600000, Max: 2000000},
		LearningPath: []LearningItem{
			{Skill: "javascript", Resources: []string{"JavaScript ES6+", "Modern JS Patterns"}, TimeEstimate: 50},
			{Skill: "react", Resources: []string{"React Fundamentals", "Advanced React"}, TimeEstimate: 45},
			{Skill: "nodejs", Resources: []string{"Node.js Basics", "Express.js"}, TimeEstimate: 40},
		},
	},
	{
		ID:          "ml_engineer",
		Name:        "Machine Learning Engineer",
		Description: "Build and deploy machine learning systems",
		RequiredSkills: map[string]int{
			"python": 9, "machine_learning": 8, "deep_learning": 7, "mathematics": 8, "mlops": 6, "cloud": 6,
		},
		MarketDemand: 0.78,
		SalaryRange:  SalaryRange{Min: 800000, Max: 2500000},
		LearningPath: []LearningItem{
			{Skill: "python", Resources: []string{"Advanced Python", "Scientific Python"}, TimeEstimate: 60},
			{Skill: "machine_learning", Resources: []string{"ML Fundamentals", "Scikit-learn"}, TimeEstimate: 70},
			{Skill: "mathematics", Resources: []string{"Linear Algebra", "Calculus for ML"}, TimeEstimate: 80},
		},
	},
}

// Paths returns copies of the built-in career paths.
func Paths() []Path {
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = p.Clone()
	}
	return out
}

func FindPath(id string) (Path, error) {
	for _, p := range paths {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Path{}, ErrPathNotFound
}

// Clone deep-copies the path so callers can modify it freely.
func (p Path) Clone() Path {
	c := p
	c.RequiredSkills = make(map[string]int, len(p.RequiredSkills))
	for k, v := range p.RequiredSkills {
		c.RequiredSkills[k] = v
	}
	c.LearningPath = make([]LearningItem, len(p.LearningPath))
	for i, item := range p.LearningPath {
		item.Resources = append([]string(nil), item.Resources...)
		c.LearningPath[i] = item
	}
	return c
}

// GapAnalysis compares a student's self-assessed skills with a path.
type GapAnalysis struct {
	PathID          string         `json:"path_id"`
	SkillGaps       map[string]int `json:"skill_gaps"`
	MatchPercentage float64        `json:"career_match_percentage"`
	MissingSkills   []string       `json:"missing_skills"`
	StrongSkills    []string       `json:"strong_skills"`
}

func AnalyzeGap(current map[string]int, p Path) GapAnalysis {
	gaps := make(map[string]int, len(p.RequiredSkills))
	var matched, required int
	for skill, req := range p.RequiredSkills {
		cur := current[skill]
		gaps[skill] = max(0, req-cur)
		matched += min(cur, req)
		required += req
	}

	var match float64
	if required > 0 {
		match = math.Round(float64(matched)/float64(required)*100*100) / 100
	}

	missing := []string{}
	for skill, gap := range gaps {
		if gap > 0 {
			missing = append(missing, skill)
		}
	}
	strong := []string{}
	for skill, level := range current {
		if level >= p.RequiredSkills[skill] {
			strong = append(strong, skill)
		}
	}
	sort.Strings(missing)
	sort.Strings(strong)

	return GapAnalysis{
		PathID:          p.ID,
		SkillGaps:       gaps,
		MatchPercentage: match,
		MissingSkills:   missing,
		StrongSkills:    strong,
	}
}
