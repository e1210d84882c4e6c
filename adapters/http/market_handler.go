package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	marketUC "github.com/khoahotran/educursus/internal/application/usecase/market"
	"github.com/khoahotran/educursus/pkg/logger"
)

type MarketHandler struct {
	marketUseCase *marketUC.MarketUseCase
	logger        logger.Logger
}

func NewMarketHandler(uc *marketUC.MarketUseCase, log logger.Logger) *MarketHandler {
	return &MarketHandler{
		marketUseCase: uc,
		logger:        log,
	}
}

func (h *MarketHandler) Trends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"trends": h.marketUseCase.ExecuteTrends()})
}

func (h *MarketHandler) Insights(c *gin.Context) {
	output, err := h.marketUseCase.ExecuteInsights(c.Request.Context(), marketUC.InsightsInput{
		CareerPath: c.Param("path"),
		Location:   c.Query("location"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
