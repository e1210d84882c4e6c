package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/skill"
)

type postgresSkillRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSkillRepo(db *pgxpool.Pool) skill.Repository {
	return &postgresSkillRepo{db: db}
}

func (r *postgresSkillRepo) GetLevels(ctx context.Context, studentID uuid.UUID) (skill.Levels, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT levels FROM skill_levels WHERE student_id = $1`, studentID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Levels{}, nil
		}
		return nil, fmt.Errorf("failed to query skill levels: %w", err)
	}

	l := skill.Levels{}
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill levels: %w", err)
	}
	return l, nil
}

func (r *postgresSkillRepo) SaveLevels(ctx context.Context, studentID uuid.UUID, l skill.Levels) error {
	return saveSkillLevels(ctx, r.db, studentID, l)
}

func saveSkillLevels(ctx context.Context, db execer, studentID uuid.UUID, l skill.Levels) error {
	if l == nil {
		l = skill.Levels{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal skill levels: %w", err)
	}

	query := `
		INSERT INTO skill_levels (student_id, levels, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			levels = EXCLUDED.levels,
			updated_at = NOW()
	`
	if _, err := db.Exec(ctx, query, studentID, data); err != nil {
		return fmt.Errorf("failed to save skill levels: %w", err)
	}
	return nil
}

func (r *postgresSkillRepo) SaveResult(ctx context.Context, res *skill.Result) error {
	feedback, err := json.Marshal(res.Feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment feedback: %w", err)
	}
	levels, err := json.Marshal(res.Levels)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment levels: %w", err)
	}

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := psql.Insert("assessment_results").
			Columns("id", "student_id", "assessment_id", "score", "passed", "xp", "badge", "feedback", "levels", "completed_at").
			Values(res.ID, res.StudentID, res.AssessmentID, res.Score, res.Passed, res.XP, res.Badge, feedback, levels, res.CompletedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build assessment insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert assessment result: %w", err)
		}
		return saveSkillLevels(ctx, tx, res.StudentID, res.Levels)
	})
}

// ListResults returns attempts oldest first.
func (r *postgresSkillRepo) ListResults(ctx context.Context, studentID uuid.UUID) ([]skill.Result, error) {
	query, args, err := psql.Select("id", "assessment_id", "score", "passed", "xp", "badge", "feedback", "levels", "completed_at").
		From("assessment_results").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("completed_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assessment query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment results: %w", err)
	}
	defer rows.Close()

	results := make([]skill.Result, 0)
	for rows.Next() {
		res := skill.Result{StudentID: studentID}
		var feedback, levels []byte
		if err := rows.Scan(&res.ID, &res.AssessmentID, &res.Score, &res.Passed, &res.XP, &res.Badge, &feedback, &levels, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		if err := json.Unmarshal(feedback, &res.Feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment feedback: %w", err)
		}
		if err := json.Unmarshal(levels, &res.Levels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment levels: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
