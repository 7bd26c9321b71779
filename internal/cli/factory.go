package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/file"
	loamAdapter "github.com/aretw0/arbor/pkg/adapters/loam"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/adapters/sqlite"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/ports"
)

// Generator bundles a configured generator with the resources it holds.
type Generator struct {
	*arbor.Generator

	// Metrics is set when Options.Metrics was requested.
	Metrics *observability.Metrics

	closers []func() error
}

// Close releases caches and connections.
func (g *Generator) Close() error {
	var errs []error
	for i := len(g.closers) - 1; i >= 0; i-- {
		errs = append(errs, g.closers[i]())
	}
	return errors.Join(errs...)
}

// CreateGenerator initializes a generator with standard CLI conventions.
func CreateGenerator(opts Options, logger *slog.Logger) (*Generator, error) {
	gen := &Generator{}
	genOpts := []arbor.Option{arbor.WithLogger(logger)}

	// 1. Hooks
	hooks := []domain.Hooks{}
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if opts.Metrics {
		gen.Metrics = observability.NewMetrics()
		hooks = append(hooks, gen.Metrics.Hooks())
	}
	if len(hooks) > 0 {
		genOpts = append(genOpts, arbor.WithHooks(domain.MergeHooks(hooks...)))
	}

	// 2. Library
	if opts.Dir != "" {
		loader, err := createLoader(opts.Dir)
		if err != nil {
			return nil, err
		}
		genOpts = append(genOpts, arbor.WithLoader(loader))
	}

	// 3. Cache
	switch opts.Cache {
	case CacheNone:
	case CacheMemory:
		genOpts = append(genOpts, arbor.WithCache(memory.NewCache()))
	case CacheRedis:
		cache := redisAdapter.New(opts.RedisAddr, os.Getenv("ARBOR_REDIS_PASSWORD"), 0)
		gen.closers = append(gen.closers, cache.Close)
		genOpts = append(genOpts,
			arbor.WithCache(cache),
			arbor.WithLocker(redisAdapter.NewLocker(cache.Client(), ""), arbor.DefaultLockTTL),
		)
	case CacheSQLite:
		path := opts.SQLite
		if path == "" {
			path = "arbor-cache.db"
		}
		cache, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error opening sqlite cache: %w", err)
		}
		gen.closers = append(gen.closers, cache.Close)
		genOpts = append(genOpts, arbor.WithCache(cache))
	default:
		return nil, fmt.Errorf("unknown cache %q (supported: memory, redis, sqlite)", opts.Cache)
	}

	gen.Generator = arbor.New(genOpts...)
	return gen, nil
}

// createLoader picks the Loam adapter for libraries holding Markdown
// documents and the plain file adapter otherwise.
func createLoader(dir string) (ports.GrammarLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening grammar library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("grammar library %s is not a directory", dir)
	}

	if hasMarkdown(dir) {
		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("error initializing grammar library: %w", err)
		}
		return loader, nil
	}
	return file.NewLoader(dir), nil
}

// hasMarkdown checks if the directory holds any Markdown document.
func hasMarkdown(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			return true
		}
	}
	return false
}
