package bloom

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"rebloom/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
)

// Filter issues RedisBloom BF.* commands over a shared client.
// It holds no state besides the client and is safe for concurrent use.
type Filter struct {
	client redis.Client
	log    *log.Helper
}

// NewFilter creates a Filter bound to client.
func NewFilter(client redis.Client, logger log.Logger) *Filter {
	return &Filter{
		client: client,
		log:    log.NewHelper(log.With(logger, "module", "pkg/bloom")),
	}
}

// do runs one command and classifies any failure.
func (f *Filter) do(ctx context.Context, op string, args ...any) (any, error) {
	res, err := f.client.Do(ctx, append([]any{op}, args...)...).Result()
	if err != nil {
		cerr := classify(op, err)
		if errors.Is(cerr, ErrUnknownFilter) {
			f.log.WithContext(ctx).Errorf("%s %v failed: %v", op, args[0], err)
		}
		return nil, cerr
	}
	return res, nil
}

// Add adds item to the filter at key, creating it with defaults if missing.
// It reports whether the item was newly added.
func (f *Filter) Add(ctx context.Context, key, item string) (bool, error) {
	res, err := f.do(ctx, "BF.ADD", key, item)
	if err != nil {
		return false, err
	}
	return truthy(res), nil
}

// MAdd adds several items in one round-trip. Outcomes follow input order.
func (f *Filter) MAdd(ctx context.Context, key string, items ...string) ([]int64, error) {
	return f.multi(ctx, "BF.MADD", key, items)
}

// Exists reports whether item may be in the filter.
func (f *Filter) Exists(ctx context.Context, key, item string) (bool, error) {
	res, err := f.do(ctx, "BF.EXISTS", key, item)
	if err != nil {
		return false, err
	}
	return truthy(res), nil
}

// MExists checks several items in one round-trip. Outcomes are 0 or 1, in input order.
func (f *Filter) MExists(ctx context.Context, key string, items ...string) ([]int64, error) {
	return f.multi(ctx, "BF.MEXISTS", key, items)
}

func (f *Filter) multi(ctx context.Context, op, key string, items []string) ([]int64, error) {
	args := make([]any, 0, len(items)+1)
	args = append(args, key)
	for _, item := range items {
		args = append(args, item)
	}
	res, err := f.do(ctx, op, args...)
	if err != nil {
		return nil, err
	}
	out, ok := toInt64s(res)
	if !ok {
		return nil, unexpected(op, res)
	}
	return out, nil
}

// Card returns the number of items added to the filter.
func (f *Filter) Card(ctx context.Context, key string) (int64, error) {
	res, err := f.do(ctx, "BF.CARD", key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(res)
	if !ok {
		return 0, unexpected("BF.CARD", res)
	}
	return n, nil
}

// Info returns every attribute of the filter under normalized keys.
func (f *Filter) Info(ctx context.Context, key string) (Info, error) {
	res, err := f.do(ctx, "BF.INFO", key)
	if err != nil {
		return nil, err
	}
	info, ok := toInfo(res)
	if !ok {
		return nil, unexpected("BF.INFO", res)
	}
	return info, nil
}

// InfoAttr returns a single attribute of the filter.
func (f *Filter) InfoAttr(ctx context.Context, key string, attr InfoAttr) (int64, error) {
	if !attr.valid() {
		return 0, &Error{Op: "BF.INFO", Kind: ErrInvalidAttr, Msg: string(attr)}
	}
	res, err := f.do(ctx, "BF.INFO", key, string(attr))
	if err != nil {
		return 0, err
	}
	n, ok := toAttr(res)
	if !ok {
		return 0, unexpected("BF.INFO", res)
	}
	return n, nil
}

// Reserve creates an empty filter. A positive expansion makes it scaling
// with that multiplier; zero or negative makes it NONSCALING.
func (f *Filter) Reserve(ctx context.Context, key string, errorRate float64, capacity, expansion int64) (bool, error) {
	res, err := f.do(ctx, "BF.RESERVE", reserveArgs(key, errorRate, capacity, expansion)...)
	if err != nil {
		return false, err
	}
	return truthy(res), nil
}

func reserveArgs(key string, errorRate float64, capacity, expansion int64) []any {
	args := []any{key, errorRate, capacity}
	if expansion > 0 {
		return append(args, "EXPANSION", expansion)
	}
	return append(args, "NONSCALING")
}

// Insert adds items, creating the filter with the given options if it is missing.
func (f *Filter) Insert(ctx context.Context, key string, opts InsertOptions) ([]int64, error) {
	args, err := insertArgs(key, opts)
	if err != nil {
		return nil, err
	}
	res, err := f.do(ctx, "BF.INSERT", args...)
	if err != nil {
		return nil, err
	}
	out, ok := toInt64s(res)
	if !ok {
		return nil, unexpected("BF.INSERT", res)
	}
	return out, nil
}

func insertArgs(key string, opts InsertOptions) ([]any, error) {
	args := []any{key}
	if opts.Capacity > 0 {
		args = append(args, "CAPACITY", strconv.FormatInt(opts.Capacity, 10))
	}
	if opts.ErrorRate > 0 {
		args = append(args, "ERROR", strconv.FormatFloat(opts.ErrorRate, 'f', -1, 64))
	}
	if opts.Expansion > 0 {
		args = append(args, "EXPANSION", strconv.FormatInt(opts.Expansion, 10))
	}
	for _, flag := range opts.Flags {
		if !flag.valid() {
			return nil, &Error{Op: "BF.INSERT", Kind: ErrInvalidFlag, Msg: string(flag)}
		}
		args = append(args, string(flag))
	}
	args = append(args, "ITEMS")
	for _, item := range opts.Items {
		args = append(args, item)
	}
	return args, nil
}

// ScanDump returns the chunk following iter. Start with 0 and feed each
// returned Iterator back until it is 0 again.
func (f *Filter) ScanDump(ctx context.Context, key string, iter int64) (Chunk, error) {
	res, err := f.do(ctx, "BF.SCANDUMP", key, iter)
	if err != nil {
		return Chunk{}, err
	}
	chunk, ok := toChunk(res)
	if !ok {
		return Chunk{}, unexpected("BF.SCANDUMP", res)
	}
	return chunk, nil
}

// LoadChunk restores a chunk produced by ScanDump.
func (f *Filter) LoadChunk(ctx context.Context, key string, iter int64, data []byte) (bool, error) {
	res, err := f.do(ctx, "BF.LOADCHUNK", key, iter, data)
	if err != nil {
		return false, err
	}
	return truthy(res), nil
}

// Ping reports whether the store answered PONG.
func (f *Filter) Ping(ctx context.Context) (bool, error) {
	res, err := f.client.Ping(ctx).Result()
	if err != nil {
		return false, fmt.Errorf("ping: %w", err)
	}
	return res == "PONG", nil
}
