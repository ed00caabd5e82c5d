package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/domain"
)

// APIResponse is the envelope for error responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateLimited *completion.RateLimitError
	switch {
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT", "uploaded file could not be parsed as a PDF"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, "UPSTREAM_RATE_LIMITED", "completion API rate limit reached; retry later"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "completion API request failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rateLimited *completion.RateLimitError
	if errors.As(err, &rateLimited) {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rateLimited.RetryAfter.Seconds()))))
	}

	logger := zerolog.Ctx(c.Request.Context())
	if status >= 500 {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}
	RespondError(c, status, code, msg)
}
