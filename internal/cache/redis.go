package cache

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Client is nil when Redis is unreachable; callers treat a nil client as
// "no cache" and recompute instead of failing.
var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects using REDIS_URL (plain host:port or redis:// URL).
// Connection failure degrades to running without a cache rather than
// aborting startup; signal reports are cheap enough to recompute.
func InitRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Printf("invalid REDIS_URL %q: %v, running without cache", addr, err)
			return
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Printf("Redis unreachable at %s: %v, running without cache", opts.Addr, err)
		return
	}

	Client = client
	log.Println("Connected to Redis")
}
