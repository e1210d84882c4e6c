package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	interviewUC "github.com/khoahotran/educursus/internal/application/usecase/interview"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type InterviewHandler struct {
	interviewUseCase *interviewUC.InterviewUseCase
	logger           logger.Logger
}

func NewInterviewHandler(uc *interviewUC.InterviewUseCase, log logger.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviewUseCase: uc,
		logger:           log,
	}
}

func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interviews": h.interviewUseCase.ExecuteList()})
}

func (h *InterviewHandler) StartInterview(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.interviewUseCase.ExecuteStart(c.Request.Context(), interviewUC.StartInput{
		StudentID: studentID,
		PathID:    c.Param("pathId"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

func (h *InterviewHandler) Answer(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid session id", err))
		return
	}

	var req InterviewAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for interview answer", err))
		return
	}

	output, err := h.interviewUseCase.ExecuteAnswer(c.Request.Context(), interviewUC.AnswerInput{
		StudentID: studentID,
		SessionID: sessionID,
		Answer:    req.Answer,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *InterviewHandler) GetSession(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid session id", err))
		return
	}

	output, err := h.interviewUseCase.ExecuteGet(c.Request.Context(), interviewUC.GetInput{
		StudentID: studentID,
		SessionID: sessionID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	count := 0
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("count must be an integer", err))
			return
		}
		count = n
	}

	output, err := h.interviewUseCase.ExecuteGenerateQuestions(c.Request.Context(), interviewUC.QuestionsInput{
		CareerPath: c.Param("path"),
		Level:      c.Query("level"),
		Count:      count,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
