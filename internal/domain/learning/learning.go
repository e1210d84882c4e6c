package learning

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound  = errors.New("learning project not found")
	ErrAlreadyCompleted = errors.New("learning project already completed")
)

type Rewards struct {
	XP         int    `json:"experience_points"`
	SkillBoost int    `json:"skill_boost"`
	Badge      string `json:"badge"`
}

type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Project is a guided hands-on exercise tied to a career path.
type Project struct {
	ID             string   `json:"id"`
	CareerPath     string   `json:"career_path"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	EstimatedHours int      `json:"estimated_hours"`
	Skills         []string `json:"skills"`
	Steps          []Step   `json:"steps"`
	Rewards        Rewards  `json:"rewards"`
}

var projects = []Project{
	{
		ID:             "python_basics",
		CareerPath:     "data_analyst",
		Title:          "Python Fundamentals",
		Description:    "Learn Python basics through interactive coding exercises",
		Difficulty:     "Beginner",
		EstimatedHours: 10,
		Skills:         []string{"python"},
		Steps: []Step{
			{"Variables and Data Types", "Learn about Python variables, strings, numbers, and lists"},
			{"Control Flow", "Master if statements, loops, and conditional logic"},
			{"Functions", "Create reusable code with functions"},
		},
		Rewards: Rewards{XP: 100, SkillBoost: 2, Badge: "Python Beginner"},
	},
	{
		ID:             "data_analysis",
		CareerPath:     "data_analyst",
		Title:          "Sales Data Analysis",
		Description:    "Analyze real sales data to find insights and trends",
		Difficulty:     "Intermediate",
		EstimatedHours: 15,
		Skills:         []string{"python", "sql", "data_visualization"},
		Steps: []Step{
			{"Data Loading", "Load and explore the sales dataset"},
			{"Data Cleaning", "Handle missing values and outliers"},
			{"Analysis", "Calculate key metrics and trends"},
		},
		Rewards: Rewards{XP: 150, SkillBoost: 3, Badge: "Data Explorer"},
	},
	{
		ID:             "customer_segmentation",
		CareerPath:     "ml_engineer",
		Title:          "Customer Segmentation",
		Description:    "Cluster customers by behaviour and describe each segment",
		Difficulty:     "Advanced",
		EstimatedHours: 25,
		Skills:         []string{"python", "machine_learning", "mathematics"},
		Steps: []Step{
			{"Feature Engineering", "Build per-customer features from raw orders"},
			{"Clustering", "Train and compare clustering models"},
			{"Segment Profiles", "Summarize each segment for a marketing audience"},
		},
		Rewards: Rewards{XP: 200, SkillBoost: 3, Badge: "Segmentation Specialist"},
	},
	{
		ID:             "web_app",
		CareerPath:     "fullstack_developer",
		Title:          "Todo Web Application",
		Description:    "Build a full-stack todo application",
		Difficulty:     "Intermediate",
		EstimatedHours: 20,
		Skills:         []string{"javascript", "react", "nodejs"},
		Steps: []Step{
			{"Frontend Setup", "Create React app with components"},
			{"Backend API", "Build REST API with Node.js"},
			{"Database Integration", "Connect to database and persist data"},
		},
		Rewards: Rewards{XP: 250, SkillBoost: 4, Badge: "Full Stack Developer"},
	},
	{
		ID:             "ecommerce_platform",
		CareerPath:     "fullstack_developer",
		Title:          "E-commerce Platform",
		Description:    "Ship a small store with a catalog, cart and checkout",
		Difficulty:     "Advanced",
		EstimatedHours: 40,
		Skills:         []string{"javascript", "react", "nodejs", "database"},
		Steps: []Step{
			{"Catalog", "Model products and list them with filters"},
			{"Cart", "Keep a cart per session and compute totals"},
			{"Checkout", "Validate orders and record them in the database"},
		},
		Rewards: Rewards{XP: 400, SkillBoost: 4, Badge: "Commerce Builder"},
	},
}

func clone(p Project) Project {
	p.Skills = append([]string(nil), p.Skills...)
	p.Steps = append([]Step(nil), p.Steps...)
	return p
}

func Projects() []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = clone(p)
	}
	return out
}

func FindProject(id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return clone(p), true
		}
	}
	return Project{}, false
}

// ForPath returns the projects of a career path in catalog order.
func ForPath(pathID string) []Project {
	out := []Project{}
	for _, p := range projects {
		if p.CareerPath == pathID {
			out = append(out, clone(p))
		}
	}
	return out
}

type Completion struct {
	ProjectID   string    `json:"project_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type Repository interface {
	// Complete records the completion, returning ErrAlreadyCompleted on a repeat.
	Complete(ctx context.Context, studentID uuid.UUID, projectID string, at time.Time) error
	ListCompleted(ctx context.Context, studentID uuid.UUID) ([]Completion, error)
}
