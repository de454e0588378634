package data

import (
	"fmt"

	"rebloom/internal/conf"
	pkgredis "rebloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
)

// NewRedisSource turns the redis config block into connection params.
// It returns nil when the block is absent.
func NewRedisSource(c *conf.Data) pkgredis.Source {
	if c == nil || c.Redis == nil {
		return nil
	}
	r := c.Redis
	return pkgredis.Params{
		Host:         r.Host,
		Port:         r.Port,
		Username:     r.Username,
		Password:     r.Password,
		DB:           r.DB,
		Protocol:     r.Protocol,
		ReadTimeout:  r.ReadTimeout.AsDuration(),
		WriteTimeout: r.WriteTimeout.AsDuration(),
	}
}

// NewRedisConnection resolves the shared connection. The client is dialed on first use.
func NewRedisConnection(src pkgredis.Source, logger log.Logger) (*pkgredis.Connection, func(), error) {
	helper := log.NewHelper(logger)

	conn, err := pkgredis.New(src)
	if err != nil {
		helper.Errorf("failed to configure Redis: %v", err)
		return nil, nil, fmt.Errorf("failed to configure Redis: %w", err)
	}
	if p, ok := src.(pkgredis.Params); ok {
		helper.Infof("using Redis at %s", p.Addr())
	}

	cleanup := func() {
		helper.Info("closing Redis connection")
		if err := conn.Close(); err != nil {
			helper.Errorf("failed to close Redis connection: %v", err)
		}
	}
	return conn, cleanup, nil
}
