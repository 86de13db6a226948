// Package redis implements a fixed-window request limiter on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"local-ads/internal/config/configs"
)

const window = time.Minute

// counter is the part of the go-redis client the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
}

// RateLimiter counts requests per client in one-minute windows.
type RateLimiter struct {
	client counter
	limit  int64
	prefix string
	now    func() time.Time
}

// NewClient opens a client for cfg and pings it.
func NewClient(ctx context.Context, cfg configs.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRateLimiter allows limit requests per client and minute. Keys are
// namespaced with prefix.
func NewRateLimiter(client counter, prefix string, limit int) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), prefix: prefix, now: time.Now}
}

// Allow records a request from client and reports whether it fits in the
// current window.
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	slot := l.now().Unix() / int64(window/time.Second)
	key := fmt.Sprintf("%s:%s:%d", l.prefix, client, slot)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err = l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= l.limit, nil
}
