package service

import (
	"context"

	"github.com/khoahotran/educursus/internal/domain/gamification"
)

type EventPublisher interface {
	PublishGamificationEvent(ctx context.Context, e gamification.Event) error
}
