package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoSource(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"nil", nil},
		{"nil provided client", Provided{}},
		{"nil provided pointer", (*Provided)(nil)},
		{"nil params pointer", (*Params)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := New(tt.src)
			assert.Nil(t, conn)
			assert.ErrorIs(t, err, ErrNoConnection)
		})
	}
}

func TestNew_Provided(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()
	mock.ExpectPing().SetVal("PONG")
	mock.ExpectDo("BF.CARD", "k").SetVal(int64(3))

	conn, err := New(Provided{Client: db})
	require.NoError(t, err)

	assert.Equal(t, "PONG", conn.Ping(context.Background()).Val())
	n, err := conn.Do(context.Background(), "BF.CARD", "k").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// A provided client belongs to the caller.
	require.NoError(t, conn.Close())
	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, db.Ping(context.Background()).Err())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParams_Defaults(t *testing.T) {
	assert.Equal(t, "127.0.0.1:6379", Params{}.Addr())
	assert.Equal(t, "redis.local:6380", Params{Host: "redis.local", Port: 6380}.Addr())

	opts := Params{
		Username:    "svc",
		Password:    "secret",
		DB:          3,
		ReadTimeout: 200 * time.Millisecond,
	}.options()
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, "svc", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 200*time.Millisecond, opts.ReadTimeout)
}

func TestNew_ParamsIsLazy(t *testing.T) {
	conn, err := New(Params{Host: "10.255.255.1", Port: 1})
	require.NoError(t, err)
	assert.Nil(t, conn.client)
	assert.True(t, conn.owned)

	// Closing before first use must not dial.
	assert.NoError(t, conn.Close())
}
