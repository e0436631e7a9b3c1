package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCustomErrorIsMatchesCode(t *testing.T) {
	err := NewNotFound("recipe not found for: pulao")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, AsCustomError(wrapped).Status)
}

func TestCustomErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewLoadFailure("cannot open dataset", cause)
	assert.Equal(t, "cannot open dataset: disk on fire", err.Error())
	assert.True(t, errors.Is(err, cause))

	assert.Equal(t, "disk on fire", NewError("X", "", 500, cause).Error())
	assert.Equal(t, "plain", NewError("X", "plain", 500, nil).Error())
}

func TestAsCustomErrorFallsBackToInternal(t *testing.T) {
	ce := AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
}

func TestErrorBody(t *testing.T) {
	err := NewAIServiceError(errors.New("upstream 502"))

	body := ErrorBody(err, false)
	assert.Equal(t, ErrCodeAIService, body.Code)
	assert.Equal(t, "AI service error", body.Message)
	assert.Empty(t, body.Details)

	body = ErrorBody(err, true)
	assert.Equal(t, "upstream 502", body.Details)

	data, jerr := json.Marshal(ErrorBody(NewInvalidInput("query parameter required"), true))
	require.NoError(t, jerr)
	assert.JSONEq(t, `{"code":"INVALID_INPUT","error":"query parameter required"}`, string(data))
}

func TestParseJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"n": 12345678901234567890}`, &v))
	assert.Equal(t, json.Number("12345678901234567890"), v["n"])

	assert.Error(t, ParseJSON(`{"a":1} {"b":2}`, &v))
	assert.Error(t, ParseJSON(`{"a":`, &v))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```\n{\"a\":1}```"))
	assert.Equal(t, "plain", StripCodeFences("  plain "))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"name": "Dal", "steps": ["boil"]}`, QuoteJSONKeys(`{name: "Dal", steps: ["boil"]}`))
	assert.Equal(t, `{"a":1}`, QuoteJSONKeys(`{"a":1}`))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":{"b":1}}`, ExtractJSONObject(`sure! {"a":{"b":1}} bye`))
	assert.Equal(t, "no braces", ExtractJSONObject("no braces"))
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-1")
	assert.Equal(t, "rid-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Len(t, GenerateUUID(), 36)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestFilterFieldsDropsSecrets(t *testing.T) {
	got := filterFields([]zap.Field{
		zap.String("openrouter_api_key", "sk-123"),
		zap.String("redis_password", "hunter2"),
		zap.String("Authorization", "Bearer x"),
		zap.String("model", "gemini"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "model", got[0].Key)
}
