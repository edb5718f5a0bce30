package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps an error category to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrState), errors.Is(err, apperrors.ErrIntegrity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the JSON error body for a service error. Faults are logged at
// error level and their details are not exposed to the client.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, failureMessage string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(failureMessage, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMessage})
		return
	}
	logger.Warn(failureMessage, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
