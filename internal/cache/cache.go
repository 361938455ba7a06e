package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/avetrov/veridex/internal/model"
)

// Cache stores probe results and fetched page metadata between runs
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key for a URL. The version segment lets a
// format change invalidate old entries without a manual flush.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "veridex:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the configured cache: layered memory+disk when a
// directory is set, memory-only otherwise, nil when caching is disabled
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	memoryTTL := cfg.MemoryTTL
	if memoryTTL <= 0 {
		memoryTTL = 15 * time.Minute
	}
	if cfg.Dir == "" {
		return NewMemoryCache(memoryTTL, 10*time.Minute)
	}
	diskTTL := cfg.DiskTTL
	if diskTTL <= 0 {
		diskTTL = 24 * time.Hour
	}
	return NewLayeredCache(memoryTTL, cfg.Dir, diskTTL)
}
