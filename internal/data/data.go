package data

import (
	"rebloom/internal/biz"
	"rebloom/internal/pkg/bloom"
	pkgredis "rebloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewRedisSource,
	NewRedisConnection,
	NewBloomFilter,
	NewFilterRepo,
)

// NewBloomFilter creates the BF.* command service on the shared connection.
func NewBloomFilter(conn *pkgredis.Connection, logger log.Logger) *bloom.Filter {
	return bloom.NewFilter(conn, logger)
}

// NewFilterRepo exposes the command service as a biz.FilterRepo.
func NewFilterRepo(f *bloom.Filter) biz.FilterRepo {
	return f
}
