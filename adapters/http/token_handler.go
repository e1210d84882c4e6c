package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	certificateUC "github.com/khoahotran/educursus/internal/application/usecase/certificate"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type TokenHandler struct {
	certificateUseCase *certificateUC.CertificateUseCase
	logger             logger.Logger
}

func NewTokenHandler(uc *certificateUC.CertificateUseCase, log logger.Logger) *TokenHandler {
	return &TokenHandler{
		certificateUseCase: uc,
		logger:             log,
	}
}

func (h *TokenHandler) ListTokens(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	list, err := h.certificateUseCase.ExecuteList(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": list})
}

func (h *TokenHandler) AddToken(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req AddTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for token", err))
		return
	}

	t, err := h.certificateUseCase.ExecuteAdd(c.Request.Context(), certificateUC.AddInput{
		StudentID: studentID,
		Project:   req.Project,
		Phase:     req.Phase,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TokenHandler) ExportReport(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.certificateUseCase.ExecuteExportReport(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

// Feed is public: anyone with the student id can follow their certificates.
func (h *TokenHandler) Feed(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("student"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid student id", err))
		return
	}

	feed, err := h.certificateUseCase.ExecuteFeed(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
