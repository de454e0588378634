package data

import (
	"context"
	"testing"
	"time"

	"rebloom/internal/conf"
	"rebloom/internal/pkg/bloom"
	pkgredis "rebloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisSource(t *testing.T) {
	assert.Nil(t, NewRedisSource(nil))
	assert.Nil(t, NewRedisSource(&conf.Data{}))

	src := NewRedisSource(&conf.Data{Redis: &conf.Redis{
		Port:        6390,
		DB:          1,
		ReadTimeout: conf.Duration(time.Second),
	}})
	p, ok := src.(pkgredis.Params)
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1:6390", p.Addr())
	assert.Equal(t, 1, p.DB)
	assert.Equal(t, time.Second, p.ReadTimeout)
}

func TestNewRedisConnection_NoSource(t *testing.T) {
	conn, cleanup, err := NewRedisConnection(NewRedisSource(&conf.Data{}), log.DefaultLogger)
	assert.ErrorIs(t, err, pkgredis.ErrNoConnection)
	assert.Nil(t, conn)
	assert.Nil(t, cleanup)
}

func TestProviders_Provided(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	mock.ExpectDo("BF.EXISTS", "users", "a").SetVal(int64(1))

	conn, cleanup, err := NewRedisConnection(pkgredis.Provided{Client: db}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	repo := NewFilterRepo(NewBloomFilter(conn, log.DefaultLogger))
	_, ok := repo.(*bloom.Filter)
	require.True(t, ok)

	found, err := repo.Exists(context.Background(), "users", "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
