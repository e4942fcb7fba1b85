// Package cache wraps the Redis client used for response caching and rate
// limiting. Every helper is fail-open: with no reachable Redis the service
// behaves as if the cache were always empty.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects the package-level client. On failure the client is left
// nil and the service runs without caching.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

func Close() {
	if Client != nil {
		if err := Client.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
}
