package biz

import (
	"context"
	"errors"
	"fmt"

	"rebloom/internal/conf"
	"rebloom/internal/pkg/bloom"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewFilterUsecase)

// ErrChunkRejected indicates the destination declined a chunk during Copy.
var ErrChunkRejected = errors.New("chunk rejected by destination filter")

// maxCopySteps bounds Copy against a store that never returns iterator 0.
const maxCopySteps = 1 << 20

// FilterRepo is the remote Bloom filter command set.
type FilterRepo interface {
	Add(ctx context.Context, key, item string) (bool, error)
	MAdd(ctx context.Context, key string, items ...string) ([]int64, error)
	Exists(ctx context.Context, key, item string) (bool, error)
	MExists(ctx context.Context, key string, items ...string) ([]int64, error)
	Card(ctx context.Context, key string) (int64, error)
	Info(ctx context.Context, key string) (bloom.Info, error)
	InfoAttr(ctx context.Context, key string, attr bloom.InfoAttr) (int64, error)
	Reserve(ctx context.Context, key string, errorRate float64, capacity, expansion int64) (bool, error)
	Insert(ctx context.Context, key string, opts bloom.InsertOptions) ([]int64, error)
	ScanDump(ctx context.Context, key string, iter int64) (bloom.Chunk, error)
	LoadChunk(ctx context.Context, key string, iter int64, data []byte) (bool, error)
	Ping(ctx context.Context) (bool, error)
}

// FilterStats summarizes one filter.
type FilterStats struct {
	Key  string
	Info bloom.Info
	Card int64
}

// FilterUsecase is a Bloom filter usecase.
type FilterUsecase struct {
	repo FilterRepo
	log  *log.Helper
}

// NewFilterUsecase new a Filter usecase.
func NewFilterUsecase(repo FilterRepo, logger log.Logger) *FilterUsecase {
	return &FilterUsecase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// Ping checks the store is reachable.
func (uc *FilterUsecase) Ping(ctx context.Context) error {
	ok, err := uc.repo.Ping(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("unexpected PING reply")
	}
	return nil
}

// EnsureFilters reserves every configured filter. Existing filters are left untouched.
// It returns the number of filters created.
func (uc *FilterUsecase) EnsureFilters(ctx context.Context, specs []conf.FilterSpec) (int, error) {
	created := 0
	for _, s := range specs {
		expansion := bloom.DefaultExpansion
		if s.Expansion != nil {
			expansion = *s.Expansion
		}
		_, err := uc.repo.Reserve(ctx, s.Key, s.ErrorRate, s.Capacity, expansion)
		switch {
		case errors.Is(err, bloom.ErrFilterExists):
			uc.log.Debugf("EnsureFilters: %s already exists", s.Key)
		case err != nil:
			return created, fmt.Errorf("reserve %s: %w", s.Key, err)
		default:
			uc.log.Infof("EnsureFilters: reserved %s, error_rate: %g, capacity: %d, expansion: %d",
				s.Key, s.ErrorRate, s.Capacity, expansion)
			created++
		}
	}
	return created, nil
}

// Copy replays the SCANDUMP stream of src into dst, which must not exist yet.
// It returns the number of chunks loaded.
func (uc *FilterUsecase) Copy(ctx context.Context, src, dst string) (int, error) {
	uc.log.Infof("Copy: %s -> %s", src, dst)
	iter := int64(0)
	for n := 0; n < maxCopySteps; n++ {
		chunk, err := uc.repo.ScanDump(ctx, src, iter)
		if err != nil {
			return n, fmt.Errorf("scandump %s: %w", src, err)
		}
		if chunk.Done() {
			return n, nil
		}
		ok, err := uc.repo.LoadChunk(ctx, dst, chunk.Iterator, chunk.Data)
		if err != nil {
			return n, fmt.Errorf("loadchunk %s: %w", dst, err)
		}
		if !ok {
			return n, fmt.Errorf("loadchunk %s at %d: %w", dst, chunk.Iterator, ErrChunkRejected)
		}
		iter = chunk.Iterator
	}
	return maxCopySteps, fmt.Errorf("copy %s: scan did not terminate", src)
}

// Stats returns info and cardinality for key.
func (uc *FilterUsecase) Stats(ctx context.Context, key string) (*FilterStats, error) {
	info, err := uc.repo.Info(ctx, key)
	if err != nil {
		return nil, err
	}
	card, err := uc.repo.Card(ctx, key)
	if err != nil {
		return nil, err
	}
	return &FilterStats{Key: key, Info: info, Card: card}, nil
}
