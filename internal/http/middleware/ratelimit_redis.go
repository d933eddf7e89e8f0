package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter script: first hit in a window creates the key with a TTL, later
// hits only increment. Runs atomically on the redis side so concurrent
// replicas share one window per key.
const counterScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if hits > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const redisLimiterTimeout = 250 * time.Millisecond

// RedisLimiter shares rate-limit windows across replicas. It fails open:
// any redis error, timeout, or missing client lets the request through.
type RedisLimiter struct {
	client  *redis.Client
	counter *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client:  client,
		counter: redis.NewScript(counterScript),
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()
	allowed, err := l.counter.Run(ctx, l.client, []string{"ratelimit:" + key}, window.Milliseconds(), limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
