package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roadmapUC "github.com/khoahotran/educursus/internal/application/usecase/roadmap"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type RoadmapHandler struct {
	roadmapUseCase *roadmapUC.RoadmapUseCase
	logger         logger.Logger
}

func NewRoadmapHandler(uc *roadmapUC.RoadmapUseCase, log logger.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		roadmapUseCase: uc,
		logger:         log,
	}
}

func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.roadmapUseCase.ExecuteGet(c.Request.Context(), roadmapUC.GetRoadmapInput{
		StudentID: studentID,
		CareerID:  c.Param("careerId"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *RoadmapHandler) ListRoadmaps(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	list, err := h.roadmapUseCase.ExecuteListGenerated(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roadmaps": list})
}

func (h *RoadmapHandler) MiniProject(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req MiniProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for mini project", err))
		return
	}

	output, err := h.roadmapUseCase.ExecuteMiniProject(c.Request.Context(), roadmapUC.MiniProjectInput{
		StudentID: studentID,
		CareerID:  c.Param("careerId"),
		Phase:     req.Phase,
		Skills:    req.Skills,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
