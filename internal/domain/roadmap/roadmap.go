package roadmap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Phase is one stage of a roadmap.
type Phase struct {
	Name   string   `json:"name" validate:"required"`
	Skills []string `json:"skills" validate:"min=1,dive,required"`
}

type Roadmap struct {
	StudentID uuid.UUID `json:"-"`
	CareerID  string    `json:"career_id"`
	Title     string    `json:"title"`
	Phases    []Phase   `json:"phases"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// MiniProject is a small practice project for one phase.
type MiniProject struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tasks       []string `json:"tasks" validate:"min=1,dive,required"`
	Phase       string   `json:"phase"`
}

var ErrRoadmapNotFound = errors.New("roadmap not found")

// mockPhases is the data-scientist roadmap served whenever generation fails.
var mockPhases = []Phase{
	{Name: "Foundations", Skills: []string{"Python Programming", "Statistics & Probability", "Linear Algebra"}},
	{Name: "Core Skills", Skills: []string{"Data Wrangling with Pandas", "Data Visualization (Matplotlib, Seaborn)", "SQL Databases"}},
	{Name: "Machine Learning", Skills: []string{"Scikit-Learn Fundamentals", "Regression & Classification Models", "Model Evaluation"}},
	{Name: "Advanced AI", Skills: []string{"Deep Learning with TensorFlow/PyTorch", "Natural Language Processing (NLP)", "Big Data Technologies (Spark)"}},
	{Name: "Deployment", Skills: []string{"Building REST APIs (Flask/FastAPI)", "Containerization with Docker", "Cloud AI Services (AWS/GCP)"}},
}

func MockPhases() []Phase {
	out := make([]Phase, len(mockPhases))
	for i, p := range mockPhases {
		out[i] = Phase{Name: p.Name, Skills: append([]string(nil), p.Skills...)}
	}
	return out
}

// FallbackProject is returned when a mini-project cannot be generated.
func FallbackProject(phase string) MiniProject {
	return MiniProject{
		Title:       "Project Generation Error",
		Description: "Could not generate a project. Please try again.",
		Tasks:       []string{},
		Phase:       phase,
	}
}

// Normalize trims phase names and skills, dropping blank skills and phases left without any.
// Progress keys are trimmed skill names, so roadmap skills must be too.
func Normalize(phases []Phase) []Phase {
	out := make([]Phase, 0, len(phases))
	for _, p := range phases {
		n := Phase{Name: strings.TrimSpace(p.Name)}
		for _, s := range p.Skills {
			if s = strings.TrimSpace(s); s != "" {
				n.Skills = append(n.Skills, s)
			}
		}
		if n.Name == "" || len(n.Skills) == 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Skills lists every skill of the roadmap in phase order, trimmed.
func (r *Roadmap) Skills() []string {
	var skills []string
	for _, p := range r.Phases {
		for _, s := range p.Skills {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return skills
}

// HasPhase reports whether the roadmap contains a phase with the given name.
func (r *Roadmap) HasPhase(name string) bool {
	for _, p := range r.Phases {
		if p.Name == name {
			return true
		}
	}
	return false
}

type Repository interface {
	Get(ctx context.Context, studentID uuid.UUID, careerID string) (*Roadmap, error)
	Save(ctx context.Context, r *Roadmap) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*Roadmap, error)
	DeleteByStudent(ctx context.Context, studentID uuid.UUID) error
}
