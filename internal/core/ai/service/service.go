package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"recipe-finder/internal/core/ai/cache"
	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/core/ai/queue"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Service answers prompts through the cache and the request queue
type Service struct {
	provider provider.Provider
	queue    *queue.Manager
	store    cache.Store
}

// NewService wires p behind q; store may be nil
func NewService(p provider.Provider, q *queue.Manager, store cache.Store) *Service {
	return &Service{
		provider: p,
		queue:    q,
		store:    store,
	}
}

// NormalizePrompt collapses whitespace so equivalent prompts share a cache entry
func NormalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}

// Ask returns the model's answer to prompt
func (s *Service) Ask(ctx context.Context, prompt string) (*provider.Response, error) {
	prompt = NormalizePrompt(prompt)
	if prompt == "" {
		return nil, common.NewInvalidInput("prompt is required")
	}

	key := cache.Key(prompt)
	if s.store != nil {
		if val, err := s.store.Get(ctx, key); err == nil {
			return &provider.Response{Content: val, CacheHit: true}, nil
		} else if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Cache lookup failed", zap.Error(err))
		}
	}

	resp, err := s.queue.Submit(ctx, provider.UserPrompt(prompt))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrQueueFull), errors.Is(err, common.ErrServiceUnavailable):
			return nil, err
		case errors.Is(err, context.DeadlineExceeded):
			return nil, common.NewError(common.ErrCodeGatewayTimeout, "AI service timed out", http.StatusGatewayTimeout, err)
		default:
			return nil, common.NewAIServiceError(err)
		}
	}

	if s.store != nil {
		if err := s.store.Set(ctx, key, resp.Content); err != nil {
			common.LogWarn("Cache store failed", zap.Error(err))
		}
	}
	return resp, nil
}

// QueueStatus counters for the health endpoint
func (s *Service) QueueStatus() queue.Status {
	return s.queue.Status()
}

// Model upstream model name
func (s *Service) Model() string {
	return s.provider.GetModel()
}

// Close drains the queue and releases the provider and cache
func (s *Service) Close() error {
	s.queue.Close()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			common.LogWarn("Cache close failed", zap.Error(err))
		}
	}
	return s.provider.Close()
}
