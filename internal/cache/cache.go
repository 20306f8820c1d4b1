// Package cache provides the hashed-key, TTL-scoped cache gateway used by
// the scoring, sourcing, and pathfinding stages. Caching is an optimization,
// never a correctness dependency: store failures degrade to misses or no-ops.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxPartLen bounds each key part before hashing so that keys stay stable
// across long free-text inputs. Two inputs differing only beyond this prefix
// produce the same key; callers accept that collision by contract.
const maxPartLen = 500

// ErrNotFound is returned by a Store when a key has no value.
var ErrNotFound = errors.New("cache: key not found")

// Store is the underlying key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Recorder receives hit/miss events per key prefix.
type Recorder interface {
	CacheHit(prefix string)
	CacheMiss(prefix string)
}

// Gateway wraps a Store with JSON serialization, hashed keys, and metrics.
type Gateway struct {
	store   Store
	metrics Recorder
	logger  *zap.Logger
}

// New creates a cache gateway. metrics may be nil.
func New(store Store, metrics Recorder, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: store, metrics: metrics, logger: logger}
}

// GenerateKey builds a cache key of the form prefix:sha256hex. Each part is
// truncated to a bounded prefix length before hashing.
func GenerateKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		runes := []rune(part)
		if len(runes) > maxPartLen {
			part = string(runes[:maxPartLen])
		}
		h.Write([]byte(part))
	}
	return fmt.Sprintf("%s:%x", prefix, h.Sum(nil))
}

// keyPrefix extracts the prefix part of a generated key for metric labels.
func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// Get looks up key and unmarshals the stored JSON into out. Returns false on
// a miss, on a store failure, or when the entry cannot be decoded. Every
// lookup records a hit or miss.
func (g *Gateway) Get(ctx context.Context, key string, out any) bool {
	value, err := g.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		g.recordMiss(key)
		return false
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		g.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		g.recordMiss(key)
		return false
	}

	if g.metrics != nil {
		g.metrics.CacheHit(keyPrefix(key))
	}
	return true
}

// Set stores value as JSON under key with the given TTL. Failures are
// swallowed; entries are always replaced whole, never partially updated.
func (g *Gateway) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		g.logger.Warn("cache value unmarshalable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := g.store.Set(ctx, key, string(payload), ttl); err != nil {
		g.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (g *Gateway) recordMiss(key string) {
	if g.metrics != nil {
		g.metrics.CacheMiss(keyPrefix(key))
	}
}
