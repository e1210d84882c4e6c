package http

import (
	"time"

	onboardingUC "github.com/khoahotran/educursus/internal/application/usecase/onboarding"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/student"
)

// Auth DTOs

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type StudentDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	XP        int       `json:"xp"`
	Level     string    `json:"level"`
	Badges    []string  `json:"badges"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	Student     StudentDTO `json:"student"`
}

func ToStudentDTO(s *student.Student) StudentDTO {
	badges := s.Badges
	if badges == nil {
		badges = []string{}
	}
	return StudentDTO{
		ID:        s.ID.String(),
		Email:     s.Email,
		Name:      s.Name,
		XP:        s.XP,
		Level:     s.Level,
		Badges:    badges,
		CreatedAt: s.CreatedAt,
	}
}

// Onboarding DTOs

type AnswerRequest struct {
	Step    *int     `json:"step" binding:"required,min=0"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

type OnboardingSessionDTO struct {
	SessionID string            `json:"session_id"`
	Step      int               `json:"step"`
	Total     int               `json:"total"`
	Progress  float64           `json:"progress"`
	Completed bool              `json:"completed"`
	Question  *profile.Question `json:"question,omitempty"`
	Profile   *profile.Profile  `json:"profile,omitempty"`
}

func ToOnboardingSessionDTO(out *onboardingUC.SessionOutput) OnboardingSessionDTO {
	return OnboardingSessionDTO{
		SessionID: out.Session.ID.String(),
		Step:      out.Session.Step,
		Total:     out.Total,
		Progress:  out.Progress,
		Completed: out.Session.Completed,
		Question:  out.Question,
		Profile:   out.Profile,
	}
}

// Career DTOs

type SkillGapRequest struct {
	CurrentSkills map[string]int `json:"current_skills"`
}

// Skill and learning DTOs

type UpdateSkillsRequest struct {
	CurrentSkills map[string]int `json:"current_skills" binding:"required"`
}

type SubmitAssessmentRequest struct {
	Answers []string `json:"answers"`
}

type LearningPathRequest struct {
	CareerGoal    string         `json:"career_goal" binding:"required"`
	CurrentSkills map[string]int `json:"current_skills"`
	Constraints   map[string]any `json:"constraints"`
}

// Roadmap DTOs

type MiniProjectRequest struct {
	Phase  string   `json:"phase" binding:"required"`
	Skills []string `json:"skills"`
}

// Progress and token DTOs

type ToggleSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

type AddTokenRequest struct {
	Project string `json:"project" binding:"required"`
	Phase   string `json:"phase"`
}

// Interview and chat DTOs

type InterviewAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
