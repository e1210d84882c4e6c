package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/progress"
)

type postgresProgressRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProgressRepo(db *pgxpool.Pool) progress.Repository {
	return &postgresProgressRepo{db: db}
}

// Get returns an empty map for students who never toggled a skill.
func (r *postgresProgressRepo) Get(ctx context.Context, studentID uuid.UUID) (progress.Progress, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM progress WHERE student_id = $1`, studentID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return progress.Progress{}, nil
		}
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}

	p := progress.Progress{}
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	return p, nil
}

func (r *postgresProgressRepo) Save(ctx context.Context, studentID uuid.UUID, p progress.Progress) error {
	return saveProgress(ctx, r.db, studentID, p)
}

func saveProgress(ctx context.Context, db execer, studentID uuid.UUID, p progress.Progress) error {
	if p == nil {
		p = progress.Progress{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	query := `
		INSERT INTO progress (student_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := db.Exec(ctx, query, studentID, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
