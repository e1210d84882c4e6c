package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encodable values. Get returns ErrCacheMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SuggestionsKey holds the careers last suggested to a student.
func SuggestionsKey(studentID uuid.UUID) string {
	return "suggestions:" + studentID.String()
}

// RoadmapKey holds generated roadmap phases shared by every student for a career.
func RoadmapKey(careerID string) string {
	return "roadmap:" + careerID
}

// InsightsKey holds a market insight report.
func InsightsKey(careerPath, location string) string {
	return "insights:" + careerPath + ":" + strings.ToLower(location)
}
