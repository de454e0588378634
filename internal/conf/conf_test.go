package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
data:
  redis:
    host: redis.local
    port: 6380
    password: secret
    db: 2
    read_timeout: 200ms
bloom:
  filters:
    - key: users
      error_rate: 0.01
      capacity: 1000
    - key: fixed
      error_rate: 0.001
      capacity: 50
      expansion: 0
`)

	bc, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, bc.Data.Redis)
	assert.Equal(t, "redis.local", bc.Data.Redis.Host)
	assert.Equal(t, 6380, bc.Data.Redis.Port)
	assert.Equal(t, "secret", bc.Data.Redis.Password)
	assert.Equal(t, 2, bc.Data.Redis.DB)
	assert.Equal(t, 200*time.Millisecond, bc.Data.Redis.ReadTimeout.AsDuration())

	require.Len(t, bc.Bloom.Filters, 2)
	assert.Equal(t, "users", bc.Bloom.Filters[0].Key)
	assert.Nil(t, bc.Bloom.Filters[0].Expansion)
	require.NotNil(t, bc.Bloom.Filters[1].Expansion)
	assert.Equal(t, int64(0), *bc.Bloom.Filters[1].Expansion)
}

func TestLoad_NoRedis(t *testing.T) {
	bc, err := Load(writeConfig(t, "bloom:\n  filters: []\n"))
	require.NoError(t, err)
	assert.Nil(t, bc.Data.Redis)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1.5s"`)))
	assert.Equal(t, 1500*time.Millisecond, d.AsDuration())

	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
}
