package persistence

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/learning"
)

type postgresLearningRepo struct {
	db *pgxpool.Pool
}

func NewPostgresLearningRepo(db *pgxpool.Pool) learning.Repository {
	return &postgresLearningRepo{db: db}
}

func (r *postgresLearningRepo) Complete(ctx context.Context, studentID uuid.UUID, projectID string, at time.Time) error {
	query := `INSERT INTO learning_project_completions (student_id, project_id, completed_at) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, studentID, projectID, at); err != nil {
		if isUniqueViolation(err) {
			return learning.ErrAlreadyCompleted
		}
		return fmt.Errorf("failed to record project completion: %w", err)
	}
	return nil
}

func (r *postgresLearningRepo) ListCompleted(ctx context.Context, studentID uuid.UUID) ([]learning.Completion, error) {
	query, args, err := psql.Select("project_id", "completed_at").
		From("learning_project_completions").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("completed_at ASC", "project_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completion query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	out := make([]learning.Completion, 0)
	for rows.Next() {
		var c learning.Completion
		if err := rows.Scan(&c.ProjectID, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
