package learning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/learning"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("learning_usecase")

type LearningUseCase struct {
	learningRepo learning.Repository
	skillRepo    skill.Repository
	publisher    service.EventPublisher
	generator    service.TextGenerator
	logger       logger.Logger
	now          func() time.Time
}

func NewLearningUseCase(repo learning.Repository, skills skill.Repository, pub service.EventPublisher, gen service.TextGenerator, log logger.Logger) *LearningUseCase {
	return &LearningUseCase{
		learningRepo: repo,
		skillRepo:    skills,
		publisher:    pub,
		generator:    gen,
		logger:       log,
		now:          time.Now,
	}
}

// ExecuteListPathProjects returns the projects of a known career path.
func (uc *LearningUseCase) ExecuteListPathProjects(pathID string) ([]learning.Project, error) {
	if _, err := career.FindPath(pathID); err != nil {
		return nil, apperror.NewNotFound("career path", pathID)
	}
	return learning.ForPath(pathID), nil
}

type ProjectsOutput struct {
	Projects  []learning.Project    `json:"projects"`
	Completed []learning.Completion `json:"completed"`
}

// ExecuteListProjects returns the whole catalog with the student's completions.
func (uc *LearningUseCase) ExecuteListProjects(ctx context.Context, studentID uuid.UUID) (*ProjectsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListLearningProjects")
	defer span.End()

	done, err := uc.learningRepo.ListCompleted(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list completed projects", err)
	}
	return &ProjectsOutput{Projects: learning.Projects(), Completed: done}, nil
}

type CompleteInput struct {
	StudentID uuid.UUID
	ProjectID string
}

type CompleteOutput struct {
	Project       learning.Project `json:"project"`
	XP            int              `json:"xp"`
	Badge         string           `json:"badge"`
	CurrentSkills skill.Levels     `json:"current_skills"`
}

// ExecuteCompleteProject records a first completion, boosts the project's skills and
// announces the reward. Completing the same project twice is a conflict.
func (uc *LearningUseCase) ExecuteCompleteProject(ctx context.Context, input CompleteInput) (*CompleteOutput, error) {
	ctx, span := tracer.Start(ctx, "CompleteLearningProject")
	defer span.End()
	span.SetAttributes(attribute.String("project_id", input.ProjectID))

	p, ok := learning.FindProject(input.ProjectID)
	if !ok {
		return nil, apperror.NewNotFound("learning project", input.ProjectID)
	}

	if err := uc.learningRepo.Complete(ctx, input.StudentID, p.ID, uc.now().UTC()); err != nil {
		if errors.Is(err, learning.ErrAlreadyCompleted) {
			return nil, apperror.NewConflict("learning project", "id", p.ID)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to record project completion", err)
	}

	levels, err := uc.skillRepo.GetLevels(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load skill levels", err)
	}
	levels = levels.Raise(p.Skills, p.Rewards.SkillBoost)
	if err := uc.skillRepo.SaveLevels(ctx, input.StudentID, levels); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save skill levels", err)
	}

	e := gamification.NewLearningProjectCompleted(input.StudentID, p.ID, p.Rewards.XP, p.Rewards.Badge)
	go func() {
		if err := uc.publisher.PublishGamificationEvent(context.Background(), e); err != nil {
			uc.logger.Error("Failed to publish Kafka 'learning_project_completed' event", err, zap.String("student_id", input.StudentID.String()))
		}
	}()

	return &CompleteOutput{Project: p, XP: e.XP(), Badge: p.Rewards.Badge, CurrentSkills: levels}, nil
}

type PathInput struct {
	StudentID   uuid.UUID
	CareerGoal  string
	Skills      skill.Levels
	Constraints map[string]any
}

type PlanOutput struct {
	learning.Plan
	Fallback bool `json:"fallback"`
}

type promptSkill struct {
	Name  string
	Level int
}

// ExecuteLearningPath builds a personalized plan for the goal. Without explicit skills it
// uses the stored levels. Generation failures serve a single foundation phase.
func (uc *LearningUseCase) ExecuteLearningPath(ctx context.Context, input PathInput) (*PlanOutput, error) {
	ctx, span := tracer.Start(ctx, "GenerateLearningPath")
	defer span.End()

	goal := strings.TrimSpace(input.CareerGoal)
	if goal == "" {
		return nil, apperror.NewInvalidInput("career goal is required", nil)
	}

	levels := input.Skills.Normalize()
	if err := levels.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if len(levels) == 0 {
		stored, err := uc.skillRepo.GetLevels(ctx, input.StudentID)
		if err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to load skill levels", err)
		}
		levels = stored
	}

	text, err := prompt.Render(prompt.LearningPath, map[string]any{
		"CareerGoal":  goal,
		"Skills":      sortedSkills(levels),
		"Constraints": constraintLines(input.Constraints),
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to build learning path prompt", err)
	}

	out := &PlanOutput{}
	plan, err := service.GenerateJSON[learning.Plan](ctx, uc.generator, text, "learning path")
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Learning path generation failed, serving mock plan", zap.String("career_goal", goal), zap.Error(err))
		plan = learning.MockPlan()
		out.Fallback = true
	}
	plan.GeneratedAt = uc.now().UTC()
	out.Plan = plan
	return out, nil
}

func sortedSkills(l skill.Levels) []promptSkill {
	out := make([]promptSkill, 0, len(l))
	for name, level := range l {
		out = append(out, promptSkill{Name: name, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func constraintLines(c map[string]any) []string {
	out := make([]string, 0, len(c))
	for k, v := range c {
		out = append(out, fmt.Sprintf("%s: %v", k, v))
	}
	sort.Strings(out)
	return out
}
