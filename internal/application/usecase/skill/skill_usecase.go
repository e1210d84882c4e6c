package skill

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("skill_usecase")

const (
	defaultQuestionCount = 5
	maxQuestionCount     = 10
	defaultDifficulty    = "intermediate"
	// passedStep is how far a passed assessment raises each skill it covers.
	passedStep = 1
)

type SkillUseCase struct {
	skillRepo skill.Repository
	publisher service.EventPublisher
	generator service.TextGenerator
	logger    logger.Logger
	now       func() time.Time
}

func NewSkillUseCase(repo skill.Repository, pub service.EventPublisher, gen service.TextGenerator, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{
		skillRepo: repo,
		publisher: pub,
		generator: gen,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *SkillUseCase) ExecuteGetLevels(ctx context.Context, studentID uuid.UUID) (skill.Levels, error) {
	ctx, span := tracer.Start(ctx, "GetSkillLevels")
	defer span.End()

	levels, err := uc.skillRepo.GetLevels(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load skill levels", err)
	}
	return levels, nil
}

type UpdateLevelsInput struct {
	StudentID uuid.UUID
	Levels    skill.Levels
}

// ExecuteUpdateLevels replaces the stored self-assessment.
func (uc *SkillUseCase) ExecuteUpdateLevels(ctx context.Context, input UpdateLevelsInput) (skill.Levels, error) {
	ctx, span := tracer.Start(ctx, "UpdateSkillLevels")
	defer span.End()

	levels := input.Levels.Normalize()
	if err := levels.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.skillRepo.SaveLevels(ctx, input.StudentID, levels); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save skill levels", err)
	}
	return levels, nil
}

func (uc *SkillUseCase) ExecuteListAssessments() []skill.Assessment {
	return skill.Assessments()
}

type SubmitInput struct {
	StudentID    uuid.UUID
	AssessmentID string
	Answers      []string
}

// ExecuteSubmitAssessment grades the answers. A passing score raises every skill the
// assessment covers by one level and earns its badge. The attempt is stored with the
// resulting levels and announced for XP.
func (uc *SkillUseCase) ExecuteSubmitAssessment(ctx context.Context, input SubmitInput) (*skill.Result, error) {
	ctx, span := tracer.Start(ctx, "SubmitAssessment")
	defer span.End()
	span.SetAttributes(attribute.String("assessment_id", input.AssessmentID))

	a, ok := skill.FindAssessment(input.AssessmentID)
	if !ok {
		return nil, apperror.NewNotFound("assessment", input.AssessmentID)
	}
	if len(input.Answers) > len(a.Questions) {
		return nil, apperror.NewInvalidInput("more answers than questions", nil)
	}

	levels, err := uc.skillRepo.GetLevels(ctx, input.StudentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load skill levels", err)
	}

	score, feedback := skill.Grade(a, input.Answers)
	xp, passed := skill.Reward(score)
	res := &skill.Result{
		ID:           uuid.New(),
		StudentID:    input.StudentID,
		AssessmentID: a.ID,
		Score:        score,
		Passed:       passed,
		XP:           xp,
		Feedback:     feedback,
		Levels:       levels,
		CompletedAt:  uc.now().UTC(),
	}
	if passed {
		res.Badge = a.Badge()
		res.Levels = levels.Raise(a.Skills, passedStep)
	}
	span.SetAttributes(attribute.Int("score", score))

	if err := uc.skillRepo.SaveResult(ctx, res); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save assessment result", err)
	}

	if xp > 0 {
		e := gamification.NewAssessmentCompleted(input.StudentID, a.ID, score, xp, res.Badge)
		go func() {
			if err := uc.publisher.PublishGamificationEvent(context.Background(), e); err != nil {
				uc.logger.Error("Failed to publish Kafka 'assessment_completed' event", err, zap.String("result_id", res.ID.String()))
			}
		}()
	}
	return res, nil
}

func (uc *SkillUseCase) ExecuteListResults(ctx context.Context, studentID uuid.UUID) ([]skill.Result, error) {
	ctx, span := tracer.Start(ctx, "ListAssessmentResults")
	defer span.End()

	list, err := uc.skillRepo.ListResults(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list assessment results", err)
	}
	return list, nil
}

type QuestionsInput struct {
	Skill      string
	Difficulty string
	Count      int
}

type QuestionsOutput struct {
	Questions []skill.GeneratedQuestion `json:"questions"`
	Fallback  bool                      `json:"fallback"`
}

// ExecuteGenerateQuestions asks the model for assessment questions on one skill and serves
// a single mock question when generation fails.
func (uc *SkillUseCase) ExecuteGenerateQuestions(ctx context.Context, input QuestionsInput) (*QuestionsOutput, error) {
	ctx, span := tracer.Start(ctx, "GenerateAssessmentQuestions")
	defer span.End()

	input.Skill = strings.TrimSpace(input.Skill)
	if input.Skill == "" {
		return nil, apperror.NewInvalidInput("skill is required", nil)
	}
	if input.Difficulty == "" {
		input.Difficulty = defaultDifficulty
	}
	if input.Count <= 0 {
		input.Count = defaultQuestionCount
	}
	input.Count = min(input.Count, maxQuestionCount)
	span.SetAttributes(attribute.String("skill", input.Skill))

	text, err := prompt.Render(prompt.AssessmentQuestions, input)
	if err != nil {
		return nil, apperror.NewInternal("failed to build assessment prompt", err)
	}
	questions, err := service.GenerateList[skill.GeneratedQuestion](ctx, uc.generator, text, "assessment questions", "questions")
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Assessment question generation failed, serving mock questions", zap.String("skill", input.Skill), zap.Error(err))
		return &QuestionsOutput{Questions: skill.MockQuestions(input.Skill, input.Difficulty), Fallback: true}, nil
	}
	return &QuestionsOutput{Questions: questions}, nil
}
