package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedis - connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}
