package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Client is the slice of go-redis used by the bloom command layer.
// *redis.Client, *redis.ClusterClient and *Connection all satisfy it.
type Client interface {
	Do(ctx context.Context, args ...any) *redis.Cmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}
