package provider

import (
	"context"
	"time"
)

// Message one chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request a chat completion request
type Request struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// Usage token accounting reported by the upstream model
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response text answer from a provider
type Response struct {
	Content  string `json:"content"`
	Usage    Usage  `json:"usage"`
	CacheHit bool   `json:"cache_hit,omitempty"`
}

// Provider generative text backend
type Provider interface {
	// Generate sends req and returns the first answer
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel model name used for every request
	GetModel() string

	// GetTimeout upper bound for one request
	GetTimeout() time.Duration

	Close() error
}

// Config provider connection settings
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// UserPrompt a request with a single user message
func UserPrompt(prompt string) *Request {
	return &Request{Messages: []Message{{Role: "user", Content: prompt}}}
}
