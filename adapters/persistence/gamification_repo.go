package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/student"
)

type postgresGamificationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresGamificationRepo(db *pgxpool.Pool) gamification.Repository {
	return &postgresGamificationRepo{db: db}
}

// ApplyEvent locks the student row, records the event ID and stores the new standing in
// one transaction, so a redelivered event is applied once.
func (r *postgresGamificationRepo) ApplyEvent(ctx context.Context, e gamification.Event) (gamification.Standing, bool, error) {
	var (
		standing gamification.Standing
		applied  bool
	)

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var badges []byte
		err := tx.QueryRow(ctx, `SELECT xp, level, badges FROM students WHERE id = $1 FOR UPDATE`, e.StudentID).
			Scan(&standing.XP, &standing.Level, &badges)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return student.ErrStudentNotFound
			}
			return fmt.Errorf("failed to lock student: %w", err)
		}
		if err := json.Unmarshal(badges, &standing.Badges); err != nil || standing.Badges == nil {
			standing.Badges = []string{}
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO processed_events (id, student_id, event_type) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			e.ID, e.StudentID, string(e.Type),
		)
		if err != nil {
			return fmt.Errorf("failed to record event: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		standing = gamification.Apply(standing, e)
		badgeBytes, err := json.Marshal(standing.Badges)
		if err != nil {
			return fmt.Errorf("failed to marshal badges: %w", err)
		}
		_, err = tx.Exec(ctx, `UPDATE students SET xp = $2, level = $3, badges = $4 WHERE id = $1`,
			e.StudentID, standing.XP, standing.Level, badgeBytes)
		if err != nil {
			return fmt.Errorf("failed to update standing: %w", err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return gamification.Standing{}, false, err
	}
	return standing, applied, nil
}
