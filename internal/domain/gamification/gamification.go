package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProjectXP          = 100
	InterviewXP        = 50
	LevelBeginner      = "Beginner"
	LevelExplorer      = "Explorer"
	LevelIntermediate  = "Intermediate"
	LevelSkilled       = "Skilled"
	LevelIndustryReady = "Industry Ready"
)

type EventType string

const (
	EventProjectCompleted   EventType = "project_completed"
	EventInterviewCompleted EventType = "interview_completed"

	// EventAssessmentCompleted is worth Points, the XP the grading awarded.
	EventAssessmentCompleted      EventType = "assessment_completed"
	// EventLearningProjectCompleted is worth ProjectXP plus the project's own reward in Points.
	EventLearningProjectCompleted EventType = "learning_project_completed"
)

// Event is published when a student does something worth XP.
type Event struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Type      EventType `json:"type"`
	Project   string    `json:"project,omitempty"`
	Interview string    `json:"interview,omitempty"`
	Score     int       `json:"score,omitempty"`
	Points    int       `json:"points,omitempty"`
	Badge     string    `json:"badge,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProjectCompleted(studentID uuid.UUID, project string) Event {
	return Event{ID: uuid.New(), StudentID: studentID, Type: EventProjectCompleted, Project: project, CreatedAt: time.Now().UTC()}
}

func NewInterviewCompleted(studentID uuid.UUID, interviewID string, score int, badge string) Event {
	return Event{ID: uuid.New(), StudentID: studentID, Type: EventInterviewCompleted, Interview: interviewID, Score: score, Badge: badge, CreatedAt: time.Now().UTC()}
}

func NewAssessmentCompleted(studentID uuid.UUID, assessmentID string, score, xp int, badge string) Event {
	return Event{ID: uuid.New(), StudentID: studentID, Type: EventAssessmentCompleted, Project: assessmentID, Score: score, Points: xp, Badge: badge, CreatedAt: time.Now().UTC()}
}

func NewLearningProjectCompleted(studentID uuid.UUID, projectID string, reward int, badge string) Event {
	return Event{ID: uuid.New(), StudentID: studentID, Type: EventLearningProjectCompleted, Project: projectID, Points: reward, Badge: badge, CreatedAt: time.Now().UTC()}
}

// XP returns the experience points the event is worth.
func (e Event) XP() int {
	switch e.Type {
	case EventProjectCompleted:
		return ProjectXP
	case EventInterviewCompleted:
		return InterviewXP + max(0, e.Score)
	case EventAssessmentCompleted:
		return max(0, e.Points)
	case EventLearningProjectCompleted:
		return ProjectXP + max(0, e.Points)
	}
	return 0
}

func LevelForXP(xp int) string {
	switch {
	case xp >= 5000:
		return LevelIndustryReady
	case xp >= 3000:
		return LevelSkilled
	case xp >= 1500:
		return LevelIntermediate
	case xp >= 500:
		return LevelExplorer
	default:
		return LevelBeginner
	}
}

// AddBadge appends badge unless it is empty or already held.
func AddBadge(badges []string, badge string) []string {
	if badge == "" {
		return badges
	}
	for _, b := range badges {
		if b == badge {
			return badges
		}
	}
	return append(badges, badge)
}

// Standing is the gamified state of a student.
type Standing struct {
	XP     int      `json:"xp"`
	Level  string   `json:"level"`
	Badges []string `json:"badges"`
}

// Apply adds the event's XP and badge to s and recomputes the level.
func Apply(s Standing, e Event) Standing {
	s.XP += e.XP()
	s.Level = LevelForXP(s.XP)
	s.Badges = AddBadge(append([]string(nil), s.Badges...), e.Badge)
	if s.Badges == nil {
		s.Badges = []string{}
	}
	return s
}

// Repository applies events exactly once per event ID.
type Repository interface {
	// ApplyEvent runs Apply against the stored standing and persists the result.
	// applied is false when the event was already processed.
	ApplyEvent(ctx context.Context, e Event) (s Standing, applied bool, err error)
}
