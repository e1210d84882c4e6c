package state

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/state"
	"github.com/khoahotran/educursus/internal/domain/token"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("state_usecase")

type StateUseCase struct {
	stateRepo    state.Repository
	profileRepo  profile.Repository
	progressRepo progress.Repository
	tokenRepo    token.Repository
	logger       logger.Logger
}

func NewStateUseCase(stateRepo state.Repository, profileRepo profile.Repository, progressRepo progress.Repository, tokenRepo token.Repository, log logger.Logger) *StateUseCase {
	return &StateUseCase{
		stateRepo:    stateRepo,
		profileRepo:  profileRepo,
		progressRepo: progressRepo,
		tokenRepo:    tokenRepo,
		logger:       log,
	}
}

// ExecuteExport returns the three storage keys. A student who has not finished onboarding
// exports a null profile.
func (uc *StateUseCase) ExecuteExport(ctx context.Context, studentID uuid.UUID) (*state.Document, error) {
	ctx, span := tracer.Start(ctx, "ExportState")
	defer span.End()

	doc := &state.Document{}
	p, err := uc.profileRepo.GetByStudentID(ctx, studentID)
	switch {
	case err == nil:
		doc.Profile = p
	case !errors.Is(err, profile.ErrProfileNotFound):
		span.RecordError(err)
		return nil, apperror.NewInternal("get profile failed", err)
	}

	if doc.Progress, err = uc.progressRepo.Get(ctx, studentID); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load progress", err)
	}
	if doc.Tokens, err = uc.tokenRepo.List(ctx, studentID); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list tokens", err)
	}
	if doc.Progress == nil {
		doc.Progress = progress.Progress{}
	}
	if doc.Tokens == nil {
		doc.Tokens = []token.Token{}
	}
	return doc, nil
}

// ExecuteImport validates the raw document and replaces the stored state with it. Nothing
// is written when any key is invalid.
func (uc *StateUseCase) ExecuteImport(ctx context.Context, studentID uuid.UUID, raw []byte) (*state.Document, error) {
	ctx, span := tracer.Start(ctx, "ImportState")
	defer span.End()

	doc, err := state.Parse(raw)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.stateRepo.Replace(ctx, studentID, doc); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to import state", err)
	}

	uc.logger.Info("State imported",
		zap.String("student_id", studentID.String()),
		zap.Bool("has_profile", doc.Profile != nil),
		zap.Int("tokens", len(doc.Tokens)),
	)
	return doc, nil
}
