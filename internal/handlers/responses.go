package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/dto"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg))
}

// respondServiceError maps service errors onto status codes. Storage details are logged,
// never returned to the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		respondError(c, http.StatusNotFound, err.Error())
	} else if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, err.Error())
	} else {
		logger.Error("Service call failed", slog.String("action", action), slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}
