package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharv3903/campusnav/internal/metrics"
	"github.com/atharv3903/campusnav/internal/navigator"
)

// Error codes returned in the JSON error body.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidAlgorithm = "invalid_algorithm"
	ErrCodeNotFound         = "not_found"
	ErrCodeNoRoute          = "no_route"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeInternalError    = "internal_error"
)

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError writes the standard error body and aborts the request.
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	c.AbortWithStatusJSON(status, errorResponse{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	})
}

// respondQueryError maps a navigator error onto a status and code.
func respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, navigator.ErrInvalidAlgorithm):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidAlgorithm, err.Error())
	case errors.Is(err, navigator.ErrUnknownLocation):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, navigator.ErrNoRoute):
		respondError(c, http.StatusNotFound, ErrCodeNoRoute, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "request cancelled")
	default:
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
