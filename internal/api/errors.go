package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/raja-kanniappa/agentlens/internal/service"
)

// Error represents an API error response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
)

// Standard errors
var (
	ErrNotFound = &Error{
		Code:    ErrCodeNotFound,
		Message: "Resource not found",
		Status:  http.StatusNotFound,
	}

	ErrInternalServer = &Error{
		Code:    ErrCodeInternalError,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}

	ErrRequestTimeout = &Error{
		Code:    ErrCodeTimeout,
		Message: "Request timed out",
		Status:  http.StatusGatewayTimeout,
	}
)

// NewBadRequest creates a bad request error with custom message.
func NewBadRequest(message string) *Error {
	return &Error{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// fromService maps a service-layer failure onto the wire error shape.
// The service's taxonomy already carries HTTP semantics, so the mapping
// is a field copy; anything else is a 500.
func fromService(err error) *Error {
	var serr *service.Error
	if errors.As(err, &serr) {
		return &Error{
			Code:    serr.Code,
			Message: serr.Message,
			Status:  serr.Status,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrRequestTimeout
	}
	return ErrInternalServer
}
