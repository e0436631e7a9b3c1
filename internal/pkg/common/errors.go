package common

import (
	"errors"
	"net/http"
)

// ErrorResponse API error body
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"` // only populated in debug mode
}

// CustomError carries an error code and the HTTP status it maps to
type CustomError struct {
	Code    string // error code
	Message string // client facing message
	Err     error  // wrapped cause
	Status  int    // HTTP status
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same code, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of its message.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a CustomError
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// AsCustomError extracts a CustomError from err, falling back to ErrInternalError
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, err)
}

// NewInvalidInput missing or malformed required field
func NewInvalidInput(message string) *CustomError {
	return NewError(ErrCodeInvalidInput, message, http.StatusBadRequest, nil)
}

// NewInvalidQuery free-text query reduced to nothing
func NewInvalidQuery(message string) *CustomError {
	return NewError(ErrCodeInvalidQuery, message, http.StatusBadRequest, nil)
}

// NewNotFound lookup matched no record
func NewNotFound(message string) *CustomError {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

// NewLoadFailure dataset missing or corrupt
func NewLoadFailure(message string, err error) *CustomError {
	return NewError(ErrCodeLoadFailure, message, http.StatusInternalServerError, err)
}

// NewAIServiceError upstream generative API failed
func NewAIServiceError(err error) *CustomError {
	return NewError(ErrCodeAIService, "AI service error", http.StatusServiceUnavailable, err)
}

// Error codes
const (
	// 4xx
	ErrCodeInvalidInput    = "INVALID_INPUT"       // 400
	ErrCodeInvalidQuery    = "INVALID_QUERY"       // 400
	ErrCodeAIInvalidAnswer = "AI_INVALID_RESPONSE" // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"        // 401
	ErrCodeNotFound        = "NOT_FOUND"           // 404
	ErrCodeEntityTooLarge  = "ENTITY_TOO_LARGE"    // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"   // 429

	// 5xx
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeLoadFailure        = "LOAD_FAILURE"        // 500, fatal at startup
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeAIService          = "AI_SERVICE_ERROR"    // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// Sentinels for errors.Is
var (
	ErrInvalidInput = NewError(ErrCodeInvalidInput, "invalid input", http.StatusBadRequest, nil)
	ErrInvalidQuery = NewError(ErrCodeInvalidQuery, "no valid search terms found", http.StatusBadRequest, nil)
	ErrUnauthorized = NewError(ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized, nil)
	ErrNotFound     = NewError(ErrCodeNotFound, "not found", http.StatusNotFound, nil)
	ErrLoadFailure  = NewError(ErrCodeLoadFailure, "dataset load failure", http.StatusInternalServerError, nil)

	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrAIServiceError     = NewError(ErrCodeAIService, "AI service error", http.StatusServiceUnavailable, nil)
	ErrAIInvalidAnswer    = NewError(ErrCodeAIInvalidAnswer, "AI response not valid JSON", http.StatusBadRequest, nil)
	ErrQueueFull          = NewError("QUEUE_FULL", "AI request queue is full", http.StatusServiceUnavailable, nil)
	ErrCacheFull          = NewError("CACHE_FULL", "cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss          = NewError("CACHE_MISS", "cache miss", http.StatusNotFound, nil)
)
