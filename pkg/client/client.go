package client

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"leadform/pkg/logger"
)

type Client struct {
	Redis *redis.Client
}

func NewClient() *Client {
	return &Client{}
}

// SetRedis connects to redisURL and exits when the server cannot be reached.
func (c *Client) SetRedis(log *logger.Logger, redisURL string, connTimeout time.Duration) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis", "error", err, "addr", opts.Addr)
	}

	log.Info("Successfully connected to Redis", "addr", opts.Addr)
	c.Redis = client
}

// Ping reports whether every configured backend answers.
func (c *Client) Ping(ctx context.Context) error {
	if c.Redis == nil {
		return nil
	}
	return c.Redis.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.Redis == nil {
		return nil
	}
	return c.Redis.Close()
}
