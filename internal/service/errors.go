package service

import "net/http"

// Error is the uniform failure shape for all query operations. Callers
// branch on Status/Code; Details carries optional structured context.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
	CodeServerError  = "INTERNAL_ERROR"
)

// NewNotFound creates a not-found error with a custom message.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// NewBadRequest creates a bad-request error with a custom message.
func NewBadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// ErrRateLimited is returned when the request window cap is exceeded.
var ErrRateLimited = &Error{
	Status:  http.StatusTooManyRequests,
	Code:    CodeRateLimited,
	Message: "request limit exceeded, retry shortly",
}

// simulatedError describes one injectable failure category along with the
// upper bound of its slot in the cumulative distribution.
type simulatedError struct {
	upTo float64
	err  *Error
}

// Categorical distribution over simulated failures:
// 400 20%, 401 10%, 403 10%, 404 20%, 429 10%, 500 30%.
var simulatedErrors = []simulatedError{
	{0.20, &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: "simulated bad request"}},
	{0.30, &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: "simulated unauthorized"}},
	{0.40, &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: "simulated forbidden"}},
	{0.60, &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "simulated not found"}},
	{0.70, &Error{Status: http.StatusTooManyRequests, Code: CodeRateLimited, Message: "simulated rate limit"}},
	{1.00, &Error{Status: http.StatusInternalServerError, Code: CodeServerError, Message: "simulated server error"}},
}

// drawSimulatedError maps a uniform draw in [0,1) to a failure category.
func drawSimulatedError(r float64) *Error {
	for _, s := range simulatedErrors {
		if r < s.upTo {
			return s.err
		}
	}
	return simulatedErrors[len(simulatedErrors)-1].err
}
