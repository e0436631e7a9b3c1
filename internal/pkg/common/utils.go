package common

import (
	"context"

	"github.com/google/uuid"
)

// GenerateUUID random UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// ErrorBody builds the JSON body for err; details are only exposed when debug is set
func ErrorBody(err error, debug bool) ErrorResponse {
	ce := AsCustomError(err)
	resp := ErrorResponse{
		Code:    ce.Code,
		Message: ce.Message,
	}
	if resp.Message == "" {
		resp.Message = ce.Error()
	}
	if debug && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	return resp
}

type requestIDKey struct{}

// WithRequestID attaches the request id to ctx for downstream logging
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext request id set by WithRequestID, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
