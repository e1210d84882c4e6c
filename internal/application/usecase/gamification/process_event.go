package gamification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("gamification_usecase")

// ErrMalformedEvent marks events that can never be applied; the worker drops them.
var ErrMalformedEvent = errors.New("malformed gamification event")

type ProcessEventUseCase struct {
	repo   gamification.Repository
	logger logger.Logger
}

func NewProcessEventUseCase(repo gamification.Repository, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{
		repo:   repo,
		logger: log,
	}
}

// Execute applies the event's XP and badge once. Redelivered events and events for
// deleted students are acknowledged without effect.
func (uc *ProcessEventUseCase) Execute(ctx context.Context, e gamification.Event) error {
	ctx, span := tracer.Start(ctx, "ProcessEvent")
	defer span.End()
	span.SetAttributes(
		attribute.String("event_id", e.ID.String()),
		attribute.String("type", string(e.Type)),
	)

	if e.ID == uuid.Nil || e.StudentID == uuid.Nil || e.XP() == 0 {
		err := fmt.Errorf("%w: id=%s type=%q", ErrMalformedEvent, e.ID, e.Type)
		span.RecordError(err)
		return err
	}

	l := uc.logger.With(zap.String("event_id", e.ID.String()), zap.String("student_id", e.StudentID.String()))

	standing, applied, err := uc.repo.ApplyEvent(ctx, e)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			l.Warn("Dropping event for unknown student")
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("apply event failed: %w", err)
	}
	if !applied {
		l.Info("Event already processed, skipping")
		return nil
	}

	l.Info("Event applied",
		zap.Int("xp", standing.XP),
		zap.String("level", standing.Level),
		zap.Int("badges", len(standing.Badges)),
	)
	return nil
}
