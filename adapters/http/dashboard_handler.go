package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardUC "github.com/khoahotran/educursus/internal/application/usecase/dashboard"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type DashboardHandler struct {
	dashboardUseCase *dashboardUC.DashboardUseCase
	logger           logger.Logger
}

func NewDashboardHandler(uc *dashboardUC.DashboardUseCase, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: uc,
		logger:           log,
	}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.dashboardUseCase.ExecuteSummary(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *DashboardHandler) Analyze(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.dashboardUseCase.ExecuteAnalyze(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
