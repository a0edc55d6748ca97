package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis shares list caches between API replicas.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(cfg RedisConfig, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return newRedisFromClient(rdb, ttl)
}

func newRedisFromClient(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Redis{rdb: rdb, ttl: ttl, prefix: "portfolio:"}
}

// Ping checks redis connectivity.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, c.prefix+key).Bytes()

	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Default().WarnContext(ctx, "cache_get_failed", "key", key, "err", err)
		}
		return nil, false
	}

	return b, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte) {
	err := c.rdb.Set(ctx, c.prefix+key, val, c.ttl).Err()

	if err != nil {
		slog.Default().WarnContext(ctx, "cache_set_failed", "key", key, "err", err)
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	err := c.rdb.Del(ctx, c.prefix+key).Err()

	if err != nil {
		slog.Default().WarnContext(ctx, "cache_delete_failed", "key", key, "err", err)
	}
}

func (c *Redis) Generation(ctx context.Context, key string) int64 {
	n, err := c.rdb.Get(ctx, c.prefix+key).Int64()

	if errors.Is(err, redis.Nil) {
		return 0
	}

	if err != nil {
		slog.Default().WarnContext(ctx, "cache_generation_failed", "key", key, "err", err)
		return -1
	}

	return n
}

func (c *Redis) Bump(ctx context.Context, key string) {
	if err := c.rdb.Incr(ctx, c.prefix+key).Err(); err != nil {
		slog.Default().WarnContext(ctx, "cache_bump_failed", "key", key, "err", err)
	}
}
