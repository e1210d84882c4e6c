package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/educursus/internal/application/usecase/chat"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		logger:      log,
	}
}

func (h *ChatHandler) Send(c *gin.Context) {

	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	output, err := h.chatUseCase.ExecuteSend(c.Request.Context(), chatUC.SendInput{
		StudentID: studentID,
		Message:   req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ChatHandler) History(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, err := h.chatUseCase.ExecuteHistory(c.Request.Context(), studentID, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
