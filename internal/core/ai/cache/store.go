package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"recipe-finder/internal/infrastructure/config"
)

// Store AI answer cache. Get returns common.ErrCacheMiss when the key is absent or expired.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key hashes a normalised prompt into a cache key
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "text:" + hex.EncodeToString(sum[:])
}

// NewStore picks the configured backend; nil when caching is off
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Redis.Enabled {
		rc, err := NewRedisCache(cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return NewManager(cfg.Cache), nil
}
