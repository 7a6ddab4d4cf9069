package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
	"github.com/SscSPs/transaction_service/internal/dto"
	"github.com/SscSPs/transaction_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionHandler handles HTTP requests for transaction records.
type transactionHandler struct {
	querySvc          portssvc.TransactionQuerySvc
	writerSvc         portssvc.TransactionWriterSvc
	recentDaysDefault int
}

func newTransactionHandler(querySvc portssvc.TransactionQuerySvc, writerSvc portssvc.TransactionWriterSvc, recentDaysDefault int) *transactionHandler {
	return &transactionHandler{
		querySvc:          querySvc,
		writerSvc:         writerSvc,
		recentDaysDefault: recentDaysDefault,
	}
}

// RegisterTransactionRoutes registers the listing, lookup and mutation routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, querySvc portssvc.TransactionQuerySvc, writerSvc portssvc.TransactionWriterSvc, recentDaysDefault int) {
	h := newTransactionHandler(querySvc, writerSvc, recentDaysDefault)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.GET("/suspicious", h.listSuspicious)
		transactions.GET("/high-value", h.listHighValue)
		transactions.GET("/recent", h.listRecent)
		transactions.GET("/search", h.searchByDescription)
		transactions.GET("/range", h.listByDateRange)
		transactions.GET("/min-amount", h.listByMinAmount)
		transactions.GET("/category/:category", h.listByCategory)
		transactions.GET("/:id", h.getTransaction)
		transactions.HEAD("/:id", h.transactionExists)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid transaction ID: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s date %q, expected YYYY-MM-DD", key, raw))
		return time.Time{}, false
	}
	return t, true
}

// listTransactions godoc
// @Summary List all transactions
// @Description Returns every transaction, newest first, ties broken by larger amount
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.querySvc.ListTransactions(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transactions")
		return
	}
	logger.Info("Listed transactions", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listSuspicious godoc
// @Summary List suspicious transactions
// @Description Returns transactions flagged for manual review, newest first
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/suspicious [get]
func (h *transactionHandler) listSuspicious(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.querySvc.ListSuspicious(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve suspicious transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listHighValue godoc
// @Summary List high-value transactions
// @Description Returns transactions with amount >= 2000.00, largest first
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/high-value [get]
func (h *transactionHandler) listHighValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.querySvc.ListHighValue(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve high value transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listRecent godoc
// @Summary List recent transactions
// @Description Returns transactions dated on or after today minus the given number of days
// @Tags transactions
// @Produce json
// @Param days query int false "Look-back window in days" default(30)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/recent [get]
func (h *transactionHandler) listRecent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	days := h.recentDaysDefault
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid days value: %s", raw))
			return
		}
		days = parsed
	}

	txns, err := h.querySvc.ListRecent(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve recent transactions")
		return
	}
	logger.Info("Listed recent transactions", slog.Int("days", days), slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// searchByDescription godoc
// @Summary Search transactions by description
// @Description Case-insensitive literal substring match on the description. A blank term returns an empty list.
// @Tags transactions
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/search [get]
func (h *transactionHandler) searchByDescription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.querySvc.SearchByDescription(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, logger, err, "search transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listByDateRange godoc
// @Summary List transactions in a date range
// @Description Returns transactions dated within [from, to], both inclusive, newest first
// @Tags transactions
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/range [get]
func (h *transactionHandler) listByDateRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	txns, err := h.querySvc.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transactions by date range")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listByMinAmount godoc
// @Summary List transactions above an amount
// @Description Returns transactions with amount >= the given minimum, largest first
// @Tags transactions
// @Produce json
// @Param amount query number true "Inclusive minimum amount"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/min-amount [get]
func (h *transactionHandler) listByMinAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var minAmount *decimal.Decimal
	if raw := c.Query("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid amount: %s", raw))
			return
		}
		minAmount = &parsed
	}

	txns, err := h.querySvc.ListByMinAmount(c.Request.Context(), minAmount)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transactions by minimum amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listByCategory godoc
// @Summary List transactions in a category
// @Description Exact, case-sensitive category match, newest first
// @Tags transactions
// @Produce json
// @Param category path string true "Category (groceries, housing, transport, ...)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/category/{category} [get]
func (h *transactionHandler) listByCategory(c *gin.Context) {
	category := c.Param("category")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("category", category))

	txns, err := h.querySvc.ListByCategory(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transactions by category")
		return
	}
	logger.Info("Listed transactions by category", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("transaction_id", id))

	txn, err := h.querySvc.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transaction")
		return
	}
	if txn == nil {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Transaction not found with ID: %d", id))
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// transactionExists godoc
// @Summary Check whether a transaction exists
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 200
// @Failure 404
// @Router /transactions/{id} [head]
func (h *transactionHandler) transactionExists(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("transaction_id", id))

	exists, err := h.querySvc.Exists(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to check transaction existence", slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Validates and stores a new transaction. suspicious defaults to false.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.TransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	txn, err := req.ToDomain(0)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.writerSvc.CreateTransaction(c.Request.Context(), txn)
	if err != nil {
		respondServiceError(c, logger, err, "create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", created.ID))
	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), created.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*created))
}

// updateTransaction godoc
// @Summary Replace a transaction
// @Description Full replace of every field except id and createdAt
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body dto.TransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("transaction_id", id))

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	txn, err := req.ToDomain(id)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.writerSvc.UpdateTransaction(c.Request.Context(), txn)
	if err != nil {
		respondServiceError(c, logger, err, "update transaction")
		return
	}

	logger.Info("Transaction updated successfully")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*updated))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("transaction_id", id))

	deleted, err := h.writerSvc.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "delete transaction")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Transaction not found with ID: %d", id))
		return
	}

	logger.Info("Transaction deleted successfully")
	c.Status(http.StatusNoContent)
}
