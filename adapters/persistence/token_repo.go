package persistence

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/educursus/internal/domain/token"
)

type postgresTokenRepo struct {
	db *pgxpool.Pool
}

func NewPostgresTokenRepo(db *pgxpool.Pool) token.Repository {
	return &postgresTokenRepo{db: db}
}

// List returns tokens in the order they were earned.
func (r *postgresTokenRepo) List(ctx context.Context, studentID uuid.UUID) ([]token.Token, error) {
	query, args, err := psql.Select("project", "phase", "issued_on").
		From("tokens").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build token query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]token.Token, 0)
	for rows.Next() {
		var t token.Token
		if err := rows.Scan(&t.Project, &t.Phase, &t.Date); err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *postgresTokenRepo) Append(ctx context.Context, studentID uuid.UUID, t token.Token) error {
	query := `INSERT INTO tokens (student_id, project, phase, issued_on) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, query, studentID, t.Project, t.Phase, t.Date); err != nil {
		return fmt.Errorf("failed to append token: %w", err)
	}
	return nil
}

func (r *postgresTokenRepo) ReplaceAll(ctx context.Context, studentID uuid.UUID, tokens []token.Token) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return replaceTokens(ctx, tx, studentID, tokens)
	})
}

func replaceTokens(ctx context.Context, db execer, studentID uuid.UUID, tokens []token.Token) error {
	if _, err := db.Exec(ctx, `DELETE FROM tokens WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	insert := psql.Insert("tokens").Columns("student_id", "project", "phase", "issued_on")
	for _, t := range tokens {
		insert = insert.Values(studentID, t.Project, t.Phase, t.Date)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build token insert: %w", err)
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert tokens: %w", err)
	}
	return nil
}
