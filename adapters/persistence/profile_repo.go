package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*profile.Profile, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM profiles WHERE student_id = $1`, studentID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		r.logger.Warn("Failed to unmarshal profile", zap.String("student_id", studentID.String()), zap.Error(err))
		return nil, profile.ErrProfileNotFound
	}
	p.Normalize()
	return p, nil
}

func (r *postgresProfileRepo) Save(ctx context.Context, studentID uuid.UUID, p *profile.Profile) error {
	return saveProfile(ctx, r.db, studentID, p)
}

func saveProfile(ctx context.Context, db execer, studentID uuid.UUID, p *profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO profiles (student_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := db.Exec(ctx, query, studentID, data); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
