package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/educursus/internal/application/usecase/skill"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{
		skillUseCase: uc,
		logger:       log,
	}
}

func (h *SkillHandler) GetSkills(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	levels, err := h.skillUseCase.ExecuteGetLevels(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_skills": levels})
}

func (h *SkillHandler) UpdateSkills(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req UpdateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skills", err))
		return
	}

	levels, err := h.skillUseCase.ExecuteUpdateLevels(c.Request.Context(), skillUC.UpdateLevelsInput{
		StudentID: studentID,
		Levels:    skill.Levels(req.CurrentSkills),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_skills": levels})
}

func (h *SkillHandler) ListAssessments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assessments": h.skillUseCase.ExecuteListAssessments()})
}

func (h *SkillHandler) SubmitAssessment(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for assessment", err))
		return
	}

	result, err := h.skillUseCase.ExecuteSubmitAssessment(c.Request.Context(), skillUC.SubmitInput{
		StudentID:    studentID,
		AssessmentID: c.Param("id"),
		Answers:      req.Answers,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SkillHandler) ListResults(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	results, err := h.skillUseCase.ExecuteListResults(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *SkillHandler) GenerateQuestions(c *gin.Context) {
	count := 0
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("count must be an integer", err))
			return
		}
		count = n
	}

	output, err := h.skillUseCase.ExecuteGenerateQuestions(c.Request.Context(), skillUC.QuestionsInput{
		Skill:      c.Param("skill"),
		Difficulty: c.Query("difficulty"),
		Count:      count,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
