package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	careerUC "github.com/khoahotran/educursus/internal/application/usecase/career"
	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type CareerHandler struct {
	careerUseCase *careerUC.CareerUseCase
	logger        logger.Logger
}

func NewCareerHandler(uc *careerUC.CareerUseCase, log logger.Logger) *CareerHandler {
	return &CareerHandler{
		careerUseCase: uc,
		logger:        log,
	}
}

func (h *CareerHandler) Suggest(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.careerUseCase.ExecuteSuggest(c.Request.Context(), careerUC.SuggestInput{StudentID: studentID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *CareerHandler) Match(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.Error(apperror.NewInvalidInput("limit must be a positive integer", err))
			return
		}
		limit = n
	}

	output, err := h.careerUseCase.ExecuteMatch(c.Request.Context(), careerUC.MatchInput{StudentID: studentID, Limit: limit})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *CareerHandler) ListPaths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paths": h.careerUseCase.ExecuteListPaths()})
}

func (h *CareerHandler) GetPath(c *gin.Context) {
	path, err := h.careerUseCase.ExecuteGetPath(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, path)
}

// SkillGap reads the stored skill levels; a body, when sent, overrides some of them.
func (h *CareerHandler) SkillGap(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req SkillGapRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid JSON body for skill gap", err))
			return
		}
	}

	output, err := h.careerUseCase.ExecuteSkillGap(c.Request.Context(), careerUC.SkillGapInput{
		StudentID:     studentID,
		PathID:        c.Param("id"),
		CurrentSkills: req.CurrentSkills,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// Simulate accepts an empty body as "no constraints".
func (h *CareerHandler) Simulate(c *gin.Context) {
	var req career.Constraints
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid JSON body for simulation", err))
			return
		}
	}

	output, err := h.careerUseCase.ExecuteSimulate(careerUC.SimulateInput{
		PathID:      c.Param("pathId"),
		Constraints: req,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
