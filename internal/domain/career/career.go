package career

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
)

// Career is a suggestion shown to the student. IDs are slugs such as "data-scientist".
type Career struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

var ErrCareerNotFound = errors.New("career not found")

// MockCareers is served whenever suggestions cannot be generated.
var MockCareers = []Career{
	{ID: "data-scientist", Title: "AI & Data Scientist", Description: "Analyze complex data to find trends and make predictions using machine learning models."},
	{ID: "ml-engineer", Title: "Machine Learning Engineer", Description: "Design and build production-level AI models and systems that learn from data."},
	{ID: "cloud-architect", Title: "Cloud Solutions Architect", Description: "Design and manage scalable, secure, and robust cloud infrastructure for applications."},
}

func MockTitles() []string {
	titles := make([]string, len(MockCareers))
	for i, c := range MockCareers {
		titles[i] = c.Title
	}
	return titles
}

// Ranked is a career with a relevance score in [0,1].
type Ranked struct {
	Career
	Score float64 `json:"score"`
}

// Repository stores career embeddings for similarity ranking.
type Repository interface {
	UpsertEmbedding(ctx context.Context, c Career, embedding pgvector.Vector) error
	SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]Ranked, error)
	List(ctx context.Context) ([]Career, error)
}
