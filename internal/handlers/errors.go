package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrState), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Ledger errors also carry their kind.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	body := gin.H{"error": err.Error()}
	if le, ok := apperrors.AsLedgerError(err); ok {
		body["kind"] = le.Kind.Error()
	}
	c.JSON(status, body)
}

// ledgerContext builds the explicit ledger context from the path and the authenticated caller.
// It writes a 401 and returns false when no caller is attached.
func ledgerContext(c *gin.Context) (domain.LedgerContext, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.LedgerContext{}, false
	}
	return domain.NewLedgerContext(c.Param("entity_id"), userID), true
}

// bindOptionalJSON binds a request body that may be omitted entirely.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badRequest(c *gin.Context, prefix string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(prefix, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": prefix + ": " + err.Error()})
}
