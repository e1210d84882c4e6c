package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	stateUC "github.com/khoahotran/educursus/internal/application/usecase/state"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

// maxStateSize bounds an imported state document.
const maxStateSize = 1 << 20

type StateHandler struct {
	stateUseCase *stateUC.StateUseCase
	logger       logger.Logger
}

func NewStateHandler(uc *stateUC.StateUseCase, log logger.Logger) *StateHandler {
	return &StateHandler{
		stateUseCase: uc,
		logger:       log,
	}
}

func (h *StateHandler) Export(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	doc, err := h.stateUseCase.ExecuteExport(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Import reads the raw body so that the document is validated as a whole before binding.
func (h *StateHandler) Import(c *gin.Context) {
	studentID, ok := GetStudentIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("studentID not found in context"))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxStateSize))
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read state document", err))
		return
	}

	doc, err := h.stateUseCase.ExecuteImport(c.Request.Context(), studentID, raw)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
