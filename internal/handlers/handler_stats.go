package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/SscSPs/transaction_service/internal/dto"
	"github.com/SscSPs/transaction_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statsHandler serves the aggregate views.
type statsHandler struct {
	statsSvc portssvc.TransactionStatsSvc
}

// RegisterStatsRoutes registers the aggregate routes under /transactions/stats.
func RegisterStatsRoutes(rg *gin.RouterGroup, statsSvc portssvc.TransactionStatsSvc) {
	h := &statsHandler{statsSvc: statsSvc}

	stats := rg.Group("/transactions/stats")
	{
		stats.GET("", h.getStats)
		stats.GET("/by-category", h.countByCategory)
		stats.GET("/by-category/totals", h.sumByCategory)
		stats.GET("/breakdown", h.categoryBreakdown)
	}
}

// getStats godoc
// @Summary Transaction statistics
// @Description Total count, suspicious count, total amount and average amount. Amounts are 0 when there are no transactions.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/stats [get]
func (h *statsHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.statsSvc.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(*stats))
}

// countByCategory godoc
// @Summary Transaction count per category
// @Description One row per category, largest count first
// @Tags stats
// @Produce json
// @Success 200 {array} dto.CategoryCountResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/stats/by-category [get]
func (h *statsHandler) countByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.statsSvc.CountByCategory(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve category statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryCountResponses(rows))
}

// sumByCategory godoc
// @Summary Transaction total per category
// @Description One row per category, largest total first
// @Tags stats
// @Produce json
// @Success 200 {array} dto.CategoryTotalResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/stats/by-category/totals [get]
func (h *statsHandler) sumByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.statsSvc.SumByCategory(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve category totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryTotalResponses(rows))
}

// categoryBreakdown godoc
// @Summary Per-category count, total and average
// @Tags stats
// @Produce json
// @Success 200 {array} dto.CategorySummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/stats/breakdown [get]
func (h *statsHandler) categoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.statsSvc.GetCategoryBreakdown(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponses(rows))
}
