// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/orders/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// StatusForError returns the HTTP status and error code for a domain error.
func StatusForError(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case apperrors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "conflict"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case apperrors.Is(err, apperrors.ErrInvalidState):
		return http.StatusBadRequest, "invalid_state_transition"
	case apperrors.Is(err, apperrors.ErrUnprocessable):
		return http.StatusUnprocessableEntity, "unprocessable"
	// Partial failures also wrap the unavailable cause, so they are matched first.
	case apperrors.Is(err, apperrors.ErrPartialFailure):
		return http.StatusBadGateway, "partial_failure"
	case apperrors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, code := StatusForError(err)
	errorResponse := ErrorResponse{Error: code}

	switch statusCode {
	case http.StatusNotFound:
		errorResponse.Message = "The requested resource was not found"
	case http.StatusConflict:
		errorResponse.Message = "A conflict occurred with existing data"
	case http.StatusServiceUnavailable:
		errorResponse.Message = "A dependency is temporarily unavailable, retry later"
	case http.StatusInternalServerError:
		// For unknown/internal errors, don't expose details to the client
		errorResponse.Message = "An internal error occurred"
	default:
		errorResponse.Message = err.Error()
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 400 Bad Request response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}
