package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/profile"
)

// sessionTTL bounds how long an abandoned onboarding survives.
const sessionTTL = 24 * time.Hour

type cacheSessionStore struct {
	cache service.Cache
}

func NewOnboardingSessionStore(cache service.Cache) profile.SessionStore {
	return &cacheSessionStore{cache: cache}
}

func sessionKey(studentID uuid.UUID) string {
	return "onboarding:" + studentID.String()
}

func (s *cacheSessionStore) Save(ctx context.Context, sess *profile.Session) error {
	return s.cache.Set(ctx, sessionKey(sess.StudentID), sess, sessionTTL)
}

func (s *cacheSessionStore) Get(ctx context.Context, studentID uuid.UUID) (*profile.Session, error) {
	sess := &profile.Session{}
	if err := s.cache.Get(ctx, sessionKey(studentID), sess); err != nil {
		if errors.Is(err, service.ErrCacheMiss) {
			return nil, profile.ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, studentID uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKey(studentID))
}
