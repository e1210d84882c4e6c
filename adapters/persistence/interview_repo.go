package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/interview"
)

type postgresInterviewRepo struct {
	db *pgxpool.Pool
}

func NewPostgresInterviewRepo(db *pgxpool.Pool) interview.Repository {
	return &postgresInterviewRepo{db: db}
}

func (r *postgresInterviewRepo) Save(ctx context.Context, s *interview.Session) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	var result []byte
	if s.Result != nil {
		if result, err = json.Marshal(s.Result); err != nil {
			return fmt.Errorf("failed to marshal interview result: %w", err)
		}
	}

	query := `
		INSERT INTO interview_sessions (id, student_id, interview_id, current, answers, result, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			current = EXCLUDED.current,
			answers = EXCLUDED.answers,
			result = EXCLUDED.result,
			completed_at = EXCLUDED.completed_at
	`
	_, err = r.db.Exec(ctx, query, s.ID, s.StudentID, s.InterviewID, s.Current, answers, result, s.StartedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to save interview session: %w", err)
	}
	return nil
}

func (r *postgresInterviewRepo) FindByID(ctx context.Context, id, studentID uuid.UUID) (*interview.Session, error) {
	query := `
		SELECT id, student_id, interview_id, current, answers, result, started_at, completed_at
		FROM interview_sessions
		WHERE id = $1 AND student_id = $2
	`
	s := &interview.Session{}
	var answers, result []byte
	err := r.db.QueryRow(ctx, query, id, studentID).Scan(
		&s.ID, &s.StudentID, &s.InterviewID, &s.Current, &answers, &result, &s.StartedAt, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interview.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query interview session: %w", err)
	}

	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if len(result) > 0 {
		s.Result = &interview.Result{}
		if err := json.Unmarshal(result, s.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interview result: %w", err)
		}
	}
	return s, nil
}
