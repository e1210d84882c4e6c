package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/state"
)

type postgresStateRepo struct {
	db *pgxpool.Pool
}

func NewPostgresStateRepo(db *pgxpool.Pool) state.Repository {
	return &postgresStateRepo{db: db}
}

func (r *postgresStateRepo) Replace(ctx context.Context, studentID uuid.UUID, doc *state.Document) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if doc.Profile != nil {
			if err := saveProfile(ctx, tx, studentID, doc.Profile); err != nil {
				return err
			}
		} else if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE student_id = $1`, studentID); err != nil {
			return err
		}
		if err := saveProgress(ctx, tx, studentID, doc.Progress); err != nil {
			return err
		}
		return replaceTokens(ctx, tx, studentID, doc.Tokens)
	})
}
