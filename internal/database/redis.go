package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a connected client, or nil when no address is configured.
// Redis backs the job cache and the rate limiter; both degrade to no-ops
// without it, so a missing address is not fatal.
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis not reachable, continuing without it: %v", err)
		return nil
	}
	return client
}
