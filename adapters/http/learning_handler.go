package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	learningUC "github.com/khoahotran/educursus/internal/application/usecase/learning"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type LearningHandler struct {
	learningUseCase *learningUC.LearningUseCase
	logger          logger.Logger
}

func NewLearningHandler(uc *learningUC.LearningUseCase, log logger.Logger) *LearningHandler {
	return &LearningHandler{
		learningUseCase: uc,
		logger:          log,
	}
}

func (h *LearningHandler) PathProjects(c *gin.Context) {
	projects, err := h.learningUseCase.ExecuteListPathProjects(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *LearningHandler) ListProjects(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.learningUseCase.ExecuteListProjects(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *LearningHandler) CompleteProject(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.learningUseCase.ExecuteCompleteProject(c.Request.Context(), learningUC.CompleteInput{
		StudentID: studentID,
		ProjectID: c.Param("id"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *LearningHandler) LearningPath(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for learning path", err))
		return
	}

	output, err := h.learningUseCase.ExecuteLearningPath(c.Request.Context(), learningUC.PathInput{
		StudentID:   studentID,
		CareerGoal:  req.CareerGoal,
		Skills:      skill.Levels(req.CurrentSkills),
		Constraints: req.Constraints,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
