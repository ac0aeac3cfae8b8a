// Package mongo persists session credentials in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName        = "ebanking-console"
	connectTimeout = 10 * time.Second
)

// Config locates the credential database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connecting and server selection; zero means ten seconds.
	Timeout time.Duration
}

// Connect opens a client, pings the primary and returns the credential
// database alongside the client so callers can disconnect it.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("connect credential mongo: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("ping credential mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}
