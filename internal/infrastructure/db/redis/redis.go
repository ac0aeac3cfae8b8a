// Package redis persists session credentials in Redis so several console
// instances can share one login.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	clientName  = "ebanking-console"
	dialTimeout = 5 * time.Second
)

// Config locates the Redis server holding the credentials.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and every command; zero means five seconds.
	Timeout time.Duration
}

// Connect opens a client and fails fast when the server does not answer.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect credential redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
