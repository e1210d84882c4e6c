package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	XP           int       `json:"xp"`
	Level        string    `json:"level"`
	Badges       []string  `json:"badges"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewStudent(email, name, passwordHash string) *Student {
	return &Student{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		Level:        "Beginner",
		Badges:       []string{},
		CreatedAt:    time.Now().UTC(),
	}
}

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrEmailTaken      = errors.New("email already registered")
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	Save(ctx context.Context, s *Student) error
	FindByEmail(ctx context.Context, email string) (*Student, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)
}
