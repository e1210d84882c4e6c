package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
)

const minPasswordLength = 8

type RegisterUseCase struct {
	studentRepo student.Repository
	jwtSvc      *auth.JWTService
	logger      logger.Logger
}

func NewRegisterUseCase(repo student.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		studentRepo: repo,
		jwtSvc:      jwtSvc,
		logger:      log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Execute creates the account and signs the student in.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		return nil, apperror.NewInvalidInput("email is not valid", err)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewInvalidInput("name is required", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	s := student.NewStudent(input.Email, input.Name, hash)
	if err := uc.studentRepo.Save(ctx, s); err != nil {
		span.RecordError(err)
		if errors.Is(err, student.ErrEmailTaken) {
			return nil, apperror.NewConflict("student", "email", s.Email)
		}
		return nil, apperror.NewInternal("failed to save student", err)
	}
	uc.logger.Info("Student registered", zap.String("student_id", s.ID.String()))

	token, err := uc.jwtSvc.GenerateToken(s.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("student_id", s.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}
	return &LoginOutput{AccessToken: token, Student: s}, nil
}
