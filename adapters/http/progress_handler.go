package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	progressUC "github.com/khoahotran/educursus/internal/application/usecase/progress"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type ProgressHandler struct {
	progressUseCase *progressUC.ProgressUseCase
	logger          logger.Logger
}

func NewProgressHandler(uc *progressUC.ProgressUseCase, log logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressUseCase: uc,
		logger:          log,
	}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.progressUseCase.ExecuteGet(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProgressHandler) Toggle(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req ToggleSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for toggle", err))
		return
	}

	output, err := h.progressUseCase.ExecuteToggle(c.Request.Context(), progressUC.ToggleInput{
		StudentID: studentID,
		Skill:     req.Skill,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
