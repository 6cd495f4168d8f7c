package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/mindfleet/internal/model"
)

// Cache stores briefing payloads by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// BriefingKey identifies a briefing by provider, model and the exact data summary.
// Any change to the summary text yields a new key.
func BriefingKey(provider, model, dataSummary string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, dataSummary} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "mindfleet:v1:" + hex.EncodeToString(h.Sum(nil))
}

// FromConfig builds the configured cache: nil when disabled,
// memory-only without a directory, memory over disk otherwise.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, cleanupInterval(cfg.MemoryTTL))
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 10 * time.Minute
	}
	return ttl
}
