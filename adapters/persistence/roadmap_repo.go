package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/roadmap"
)

type postgresRoadmapRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRoadmapRepo(db *pgxpool.Pool) roadmap.Repository {
	return &postgresRoadmapRepo{db: db}
}

const roadmapColumns = "student_id, career_id, title, phases, fallback, created_at"

func scanRoadmap(row pgx.Row) (*roadmap.Roadmap, error) {
	rm := &roadmap.Roadmap{}
	var phases []byte
	if err := row.Scan(&rm.StudentID, &rm.CareerID, &rm.Title, &phases, &rm.Fallback, &rm.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(phases, &rm.Phases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roadmap phases: %w", err)
	}
	return rm, nil
}

func (r *postgresRoadmapRepo) Get(ctx context.Context, studentID uuid.UUID, careerID string) (*roadmap.Roadmap, error) {
	query := `SELECT ` + roadmapColumns + ` FROM roadmaps WHERE student_id = $1 AND career_id = $2`
	rm, err := scanRoadmap(r.db.QueryRow(ctx, query, studentID, careerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, roadmap.ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to query roadmap: %w", err)
	}
	return rm, nil
}

func (r *postgresRoadmapRepo) Save(ctx context.Context, rm *roadmap.Roadmap) error {
	phases, err := json.Marshal(rm.Phases)
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap phases: %w", err)
	}

	query := `
		INSERT INTO roadmaps (student_id, career_id, title, phases, fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, career_id) DO UPDATE SET
			title = EXCLUDED.title,
			phases = EXCLUDED.phases,
			fallback = EXCLUDED.fallback
	`
	_, err = r.db.Exec(ctx, query, rm.StudentID, rm.CareerID, rm.Title, phases, rm.Fallback, rm.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save roadmap: %w", err)
	}
	return nil
}

func (r *postgresRoadmapRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*roadmap.Roadmap, error) {
	query := `SELECT ` + roadmapColumns + ` FROM roadmaps WHERE student_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roadmaps: %w", err)
	}
	defer rows.Close()

	roadmaps := make([]*roadmap.Roadmap, 0)
	for rows.Next() {
		rm, err := scanRoadmap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roadmap row: %w", err)
		}
		roadmaps = append(roadmaps, rm)
	}
	return roadmaps, rows.Err()
}

func (r *postgresRoadmapRepo) DeleteByStudent(ctx context.Context, studentID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM roadmaps WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("failed to delete roadmaps: %w", err)
	}
	return nil
}
