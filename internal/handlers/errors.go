package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/financeflow/internal/apperrors"
)

// PersistenceErrorHeader is set on successful mutation responses whose journal could not be saved.
const PersistenceErrorHeader = "X-Persistence-Error"

// flagPersistenceError marks the response when a mutation was applied in memory but not saved.
// It reports whether err was such a persistence failure.
func flagPersistenceError(c *gin.Context, logger *slog.Logger, err error) bool {
	if err == nil || !errors.Is(err, apperrors.ErrPersistence) {
		return false
	}
	logger.Error("Journal change applied but not persisted", slog.String("error", err.Error()))
	c.Header(PersistenceErrorHeader, "journal change applied but could not be saved")
	return true
}

// respondServiceError maps service sentinels to HTTP status codes.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &appErr):
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}
