package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rebloom/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	_ "go.uber.org/automaxprocs"
)

var (
	// Name is the name of the compiled software.
	Name = "rebloom"
	// Version is the version of the compiled software.
	Version string

	flagconf string
	flagcopy string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagcopy, "copy", "", "copy a filter, eg: -copy src:dst")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(logger)

	bc, err := conf.Load(flagconf)
	if err != nil {
		helper.Fatalf("load config: %v", err)
	}

	uc, cleanup, err := wireApp(bc.Data, logger)
	if err != nil {
		helper.Fatalf("init: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = uc.Ping(pingCtx)
	cancel()
	if err != nil {
		helper.Errorf("redis is not reachable: %v", err)
		return
	}

	created, err := uc.EnsureFilters(ctx, bc.Bloom.Filters)
	if err != nil {
		helper.Errorf("ensure filters: %v", err)
		return
	}
	helper.Infof("ensured %d filters, %d created", len(bc.Bloom.Filters), created)

	for _, s := range bc.Bloom.Filters {
		stats, err := uc.Stats(ctx, s.Key)
		if err != nil {
			helper.Errorf("stats %s: %v", s.Key, err)
			continue
		}
		helper.Infof("%s: capacity=%d size=%d filters=%d items=%d expansion=%d card=%d",
			stats.Key, stats.Info.Capacity(), stats.Info.Size(), stats.Info.NumberOfFilters(),
			stats.Info.NumberOfItems(), stats.Info.ExpansionRate(), stats.Card)
	}

	if flagcopy != "" {
		src, dst, ok := strings.Cut(flagcopy, ":")
		if !ok || src == "" || dst == "" {
			helper.Errorf("invalid -copy %q, want src:dst", flagcopy)
			return
		}
		n, err := uc.Copy(ctx, src, dst)
		if err != nil {
			helper.Errorf("copy %s -> %s after %d chunks: %v", src, dst, n, err)
			return
		}
		helper.Infof("copied %s -> %s in %d chunks", src, dst, n)
	}
}
