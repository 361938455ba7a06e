package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/avetrov/veridex/internal/model"
)

func TestKey(t *testing.T) {
	k1 := Key("https://example.com/a")
	k2 := Key("https://example.com/b")

	if !strings.HasPrefix(k1, "veridex:v1:") {
		t.Errorf("expected versioned prefix, got %s", k1)
	}
	if k1 == k2 {
		t.Error("different URLs must map to different keys")
	}
	if k1 != Key("https://example.com/a") {
		t.Error("key derivation must be deterministic")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected hit with value v, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("fresh", []byte("data"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("fresh")
	if !found || string(val) != "data" {
		t.Errorf("expected hit, got %q found=%v", val, found)
	}

	// Negative TTL writes an already-expired entry
	if err := c.Set("stale", []byte("old"), -time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// A fresh layered cache over the same directory simulates a restart:
	// memory is cold, disk still holds the entry
	restarted := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := restarted.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("expected disk hit after restart, got %q found=%v", val, found)
	}

	// The hit must have been promoted into memory
	if val, found := restarted.memory.Get("k"); !found || string(val) != "v" {
		t.Error("expected disk hit to be promoted into memory")
	}
}

func TestFromConfig(t *testing.T) {
	if c := FromConfig(model.CacheConfig{Enabled: false}); c != nil {
		t.Error("disabled config must yield nil cache")
	}

	if _, ok := FromConfig(model.CacheConfig{Enabled: true}).(*MemoryCache); !ok {
		t.Error("expected memory cache when no directory configured")
	}

	cfg := model.CacheConfig{Enabled: true, Dir: t.TempDir(), MemoryTTL: time.Minute, DiskTTL: time.Hour}
	if _, ok := FromConfig(cfg).(*LayeredCache); !ok {
		t.Error("expected layered cache when a directory is configured")
	}
}
