package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	decisionsKeyPrefix = "dashboard:decisions"
	scanBatchSize      = 100
	defaultTTL         = time.Minute
	connectTimeout     = 5 * time.Second
)

// DashboardCache caches the reorder decision table, keyed by a content
// fingerprint of the loaded dataset. The pipeline is deterministic over its
// input, so a fingerprint hit means the cached table is exact, not stale.
type DashboardCache interface {
	GetDecisions(ctx context.Context, fingerprint string) (*domain.DecisionTable, bool, error)
	SetDecisions(ctx context.Context, fingerprint string, table *domain.DecisionTable) error
	// InvalidateAll drops every cached decision table. Called after a data
	// load so tables computed against the previous dataset stop occupying
	// the store until their TTL would expire.
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

// redisOptions prefers a full REDIS_URL; host/port fields are the fallback
// for compose-style environments that configure them separately.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func (c *redisDashboardCache) GetDecisions(ctx context.Context, fingerprint string) (*domain.DecisionTable, bool, error) {
	key := buildDecisionsKey(fingerprint)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var table domain.DecisionTable
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, false, fmt.Errorf("decode decision table cache: %w", err)
	}

	return &table, true, nil
}

func (c *redisDashboardCache) SetDecisions(ctx context.Context, fingerprint string, table *domain.DecisionTable) error {
	key := buildDecisionsKey(fingerprint)
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode decision table cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll walks the decision keyspace with SCAN rather than KEYS so a
// large cache cannot block the redis event loop.
func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	pattern := decisionsKeyPrefix + ":*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (n *noopDashboardCache) GetDecisions(ctx context.Context, fingerprint string) (*domain.DecisionTable, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetDecisions(ctx context.Context, fingerprint string, table *domain.DecisionTable) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDecisionsKey(fingerprint string) string {
	return fmt.Sprintf("%s:%s", decisionsKeyPrefix, fingerprint)
}
