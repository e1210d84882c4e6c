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

	"github.com/khoahotran/educursus/internal/domain/student"
)

type postgresStudentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresStudentRepo(db *pgxpool.Pool) student.Repository {
	return &postgresStudentRepo{db: db}
}

const studentColumns = "id, email, name, password_hash, xp, level, badges, created_at"

func scanStudent(row pgx.Row) (*student.Student, error) {
	s := &student.Student{}
	var badges []byte

	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &s.XP, &s.Level, &badges, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, student.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error when query student: %w", err)
	}
	if err := json.Unmarshal(badges, &s.Badges); err != nil || s.Badges == nil {
		s.Badges = []string{}
	}
	return s, nil
}

func (r *postgresStudentRepo) Save(ctx context.Context, s *student.Student) error {
	badges, err := json.Marshal(s.Badges)
	if err != nil {
		return fmt.Errorf("failed to marshal badges: %w", err)
	}

	query := `
		INSERT INTO students (id, email, name, password_hash, xp, level, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query, s.ID, s.Email, s.Name, s.PasswordHash, s.XP, s.Level, badges, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return student.ErrEmailTaken
		}
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

func (r *postgresStudentRepo) FindByEmail(ctx context.Context, email string) (*student.Student, error) {
	query, args, err := psql.Select(studentColumns).
		From("students").
		Where(sq.Eq{"email": student.NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}
	return scanStudent(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}
