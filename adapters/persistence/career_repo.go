package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/khoahotran/educursus/internal/domain/career"
)

type postgresCareerRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCareerRepo(db *pgxpool.Pool) career.Repository {
	return &postgresCareerRepo{db: db}
}

func (r *postgresCareerRepo) UpsertEmbedding(ctx context.Context, c career.Career, embedding pgvector.Vector) error {
	query := `
		INSERT INTO careers (id, title, description, embedding, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, c.ID, c.Title, c.Description, embedding); err != nil {
		return fmt.Errorf("failed to upsert career embedding: %w", err)
	}
	return nil
}

// SearchByEmbedding ranks careers by cosine similarity to the given vector.
func (r *postgresCareerRepo) SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]career.Ranked, error) {
	query := `
		SELECT id, title, description, 1 - (embedding <=> $1) AS score
		FROM careers
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search careers by embedding: %w", err)
	}
	defer rows.Close()

	ranked := make([]career.Ranked, 0)
	for rows.Next() {
		var c career.Ranked
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Score); err != nil {
			return nil, fmt.Errorf("failed to scan career row: %w", err)
		}
		ranked = append(ranked, c)
	}
	return ranked, rows.Err()
}

func (r *postgresCareerRepo) List(ctx context.Context) ([]career.Career, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, description FROM careers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	defer rows.Close()

	careers := make([]career.Career, 0)
	for rows.Next() {
		var c career.Career
		if err := rows.Scan(&c.ID, &c.Title, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan career row: %w", err)
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}
