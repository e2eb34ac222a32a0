package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps service errors to a status code and a caller-safe message.
// Internal errors are answered with fallbackMsg.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status, msg := classifyError(err, fallbackMsg)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

func classifyError(err error, fallbackMsg string) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, apperrors.ErrRefreshTokenExpired), errors.Is(err, apperrors.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "Session expired, please sign in again"
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == http.StatusInternalServerError {
			return appErr.Code, fallbackMsg
		}
		return appErr.Code, appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "The record was changed by someone else, reload and try again"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to perform this action"
	}
	return http.StatusInternalServerError, fallbackMsg
}

// badRequest answers a request that failed binding.
func badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
