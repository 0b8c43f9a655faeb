package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopexio/backend-go/internal/config"
	"github.com/shopexio/backend-go/internal/engine"
)

const (
	engineResultKeyPrefix = "engine:result"
	engineScanBatchSize   = 100
)

// EngineCache memoizes engine results keyed by a snapshot fingerprint.
// Memoization is a performance optimization only; callers must tolerate
// misses and failures (every implementation fails open).
type EngineCache interface {
	GetResult(ctx context.Context, fingerprint string) (*engine.Result, bool, error)
	SetResult(ctx context.Context, fingerprint string, result *engine.Result) error
	InvalidateAll(ctx context.Context) error
}

type redisEngineCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopEngineCache struct{}

// NewEngineCache returns a Redis-backed cache, or a noop one when caching
// is disabled in config.
func NewEngineCache(cfg config.CacheConfig) (EngineCache, error) {
	if !cfg.Enabled {
		return &noopEngineCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisEngineCache{client: client, ttl: ttl}, nil
}

// NewNoopEngineCache returns a cache that never hits.
func NewNoopEngineCache() EngineCache {
	return &noopEngineCache{}
}

func (c *redisEngineCache) GetResult(ctx context.Context, fingerprint string) (*engine.Result, bool, error) {
	key := buildEngineResultKey(fingerprint)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result engine.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode engine result cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisEngineCache) SetResult(ctx context.Context, fingerprint string, result *engine.Result) error {
	key := buildEngineResultKey(fingerprint)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode engine result cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisEngineCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, engineResultKeyPrefix, engineScanBatchSize)
}

func (n *noopEngineCache) GetResult(ctx context.Context, fingerprint string) (*engine.Result, bool, error) {
	return nil, false, nil
}

func (n *noopEngineCache) SetResult(ctx context.Context, fingerprint string, result *engine.Result) error {
	return nil
}

func (n *noopEngineCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildEngineResultKey(fingerprint string) string {
	return fmt.Sprintf("%s:%s", engineResultKeyPrefix, fingerprint)
}

// SnapshotFingerprint hashes the engine inputs that influence scoring,
// plus the display fields echoed back inside the result, so a rename never
// serves stale names from cache. Now is deliberately excluded: within the
// cache TTL the staleness factor can drift by at most the TTL, which the
// product accepts in exchange for not recomputing on every unrelated
// refresh.
func SnapshotFingerprint(snap engine.Snapshot) string {
	h := sha1.New()

	for i := range snap.Products {
		p := &snap.Products[i]
		h.Write([]byte(p.ID))
		h.Write([]byte{'|'})
		h.Write([]byte(p.Name))
		h.Write([]byte{'|'})
		h.Write([]byte(p.Category))
		h.Write([]byte{'|'})
		if p.StockQuantity != nil {
			h.Write([]byte(strconv.Itoa(*p.StockQuantity)))
		}
		h.Write([]byte{'|'})
		writeFloat(h, p.Price)
		writeFloat(h, p.CostPrice)
		writeFloat(h, p.ProfitMargin)
		if p.UpdatedAt != nil {
			h.Write([]byte(strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)))
		}
		h.Write([]byte{'\n'})
	}

	for i := range snap.AuditResults {
		a := &snap.AuditResults[i]
		h.Write([]byte(a.ProductID))
		h.Write([]byte{'|'})
		h.Write([]byte(strconv.FormatFloat(a.GlobalScore, 'f', -1, 64)))
		h.Write([]byte{'\n'})
	}

	h.Write([]byte(strconv.FormatBool(snap.PriceRulesActive)))

	return hex.EncodeToString(h.Sum(nil))
}

func writeFloat(h hash.Hash, v *float64) {
	if v != nil {
		h.Write([]byte(strconv.FormatFloat(*v, 'f', -1, 64)))
	}
	h.Write([]byte{'|'})
}
