package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 6379
)

// Nil is returned by go-redis when a key does not exist.
const Nil = redis.Nil

// ErrNoConnection indicates neither a client nor connection params were configured.
var ErrNoConnection = errors.New("redis: no client or connection params configured")

// Source describes where the shared client comes from.
// It is either Provided or Params.
type Source interface {
	isSource()
}

// Provided wraps a client built by the caller. It is never closed by Connection.
type Provided struct {
	Client redis.UniversalClient
}

// Params builds a client on first use.
type Params struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DB           int
	Protocol     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (Provided) isSource() {}
func (Params) isSource()   {}

// Addr returns host:port with defaults applied.
func (p Params) Addr() string {
	host := p.Host
	if host == "" {
		host = DefaultHost
	}
	port := p.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (p Params) options() *redis.Options {
	return &redis.Options{
		Addr:         p.Addr(),
		Username:     p.Username,
		Password:     p.Password,
		DB:           p.DB,
		Protocol:     p.Protocol,
		ReadTimeout:  p.ReadTimeout,
		WriteTimeout: p.WriteTimeout,
	}
}

// Connection is the process-wide handle shared by every command.
type Connection struct {
	once   sync.Once
	build  func() redis.UniversalClient
	client redis.UniversalClient
	owned  bool
}

var _ Client = (*Connection)(nil)

// New resolves src into a Connection.
func New(src Source) (*Connection, error) {
	switch s := src.(type) {
	case Provided:
		if s.Client == nil {
			return nil, ErrNoConnection
		}
		return &Connection{client: s.Client}, nil
	case *Provided:
		if s == nil {
			return nil, ErrNoConnection
		}
		return New(*s)
	case Params:
		opts := s.options()
		return &Connection{owned: true, build: func() redis.UniversalClient { return redis.NewClient(opts) }}, nil
	case *Params:
		if s == nil {
			return nil, ErrNoConnection
		}
		return New(*s)
	default:
		return nil, ErrNoConnection
	}
}

func (c *Connection) get() redis.UniversalClient {
	c.once.Do(func() {
		if c.client == nil {
			c.client = c.build()
		}
	})
	return c.client
}

// Do issues a raw command on the shared client.
func (c *Connection) Do(ctx context.Context, args ...any) *redis.Cmd {
	return c.get().Do(ctx, args...)
}

// Ping issues PING on the shared client.
func (c *Connection) Ping(ctx context.Context) *redis.StatusCmd {
	return c.get().Ping(ctx)
}

// Close closes the client if this Connection built it.
// The Connection must not be used afterwards.
func (c *Connection) Close() error {
	if !c.owned {
		return nil
	}
	var err error
	c.once.Do(func() {})
	if c.client != nil {
		err = c.client.Close()
	}
	return err
}
