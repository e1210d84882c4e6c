package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	onboardingUC "github.com/khoahotran/educursus/internal/application/usecase/onboarding"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type OnboardingHandler struct {
	onboardingUseCase *onboardingUC.OnboardingUseCase
	logger            logger.Logger
}

func NewOnboardingHandler(uc *onboardingUC.OnboardingUseCase, log logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: uc,
		logger:            log,
	}
}

func (h *OnboardingHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.onboardingUseCase.ExecuteQuestions()})
}

func (h *OnboardingHandler) StartSession(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	output, err := h.onboardingUseCase.ExecuteStart(c.Request.Context(), onboardingUC.StartInput{StudentID: studentID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToOnboardingSessionDTO(output))
}

func (h *OnboardingHandler) Answer(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for onboarding answer", err))
		return
	}

	output, err := h.onboardingUseCase.ExecuteAnswer(c.Request.Context(), onboardingUC.AnswerInput{
		StudentID: studentID,
		Step:      *req.Step,
		Answer:    profile.Answer{Text: req.Text, Choices: req.Choices},
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToOnboardingSessionDTO(output))
}
