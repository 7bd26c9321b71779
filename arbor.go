package arbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/grammar"
	"github.com/aretw0/arbor/internal/turtle"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/scene"
)

// DefaultLockTTL bounds how long one replica may hold the expansion lock
// for a grammar.
const DefaultLockTTL = 30 * time.Second

// Result is the outcome of one generation.
type Result = domain.Result

// Generator is the high-level entry point for the arbor library.
// It is safe for concurrent use: every call builds its own turtle state.
type Generator struct {
	logger  *slog.Logger
	hooks   domain.Hooks
	factory domain.NodeFactory
	cache   ports.ExpansionCache
	locker  ports.DistributedLocker
	lockTTL time.Duration
	maxLen  int
	loader  ports.GrammarLoader
	common  *registry.Registry
	interp  *turtle.Interpreter
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithNodeFactory sets the factory the interpreter builds nodes with
// (default: scene.Factory).
func WithNodeFactory(f domain.NodeFactory) Option {
	return func(g *Generator) {
		g.factory = f
	}
}

// WithCache enables caching of expanded strings by grammar fingerprint.
func WithCache(c ports.ExpansionCache) Option {
	return func(g *Generator) {
		g.cache = c
	}
}

// WithLocker serializes expansion of the same grammar across generators
// sharing a cache. It has no effect without WithCache.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(g *Generator) {
		g.locker = l
		g.lockTTL = ttl
	}
}

// WithMaxLength caps the expanded string (default:
// grammar.DefaultMaxLength). Longer expansions fail with
// domain.ErrInvalidGrammar.
func WithMaxLength(n int) Option {
	return func(g *Generator) {
		g.maxLen = n
	}
}

// WithLoader sets the source used by Load.
func WithLoader(l ports.GrammarLoader) Option {
	return func(g *Generator) {
		g.loader = l
	}
}

// WithCommonCommands replaces the common binding table (default:
// registry.Common()).
func WithCommonCommands(r *registry.Registry) Option {
	return func(g *Generator) {
		g.common = r
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if g.factory == nil {
		g.factory = scene.Factory{}
	}
	if g.common == nil {
		g.common = registry.Common()
	}
	if g.lockTTL <= 0 {
		g.lockTTL = DefaultLockTTL
	}
	if g.maxLen <= 0 {
		g.maxLen = grammar.DefaultMaxLength
	}
	g.interp = turtle.New(g.common)
	return g
}

// Expand validates gr and runs the rewriting phase only.
func (g *Generator) Expand(ctx context.Context, gr domain.Grammar) (string, error) {
	if err := g.validate(ctx, gr); err != nil {
		return "", err
	}
	expanded, _, err := g.expand(ctx, gr, domain.NewState(gr))
	return expanded, err
}

// Generate expands gr and interprets the result into a node tree.
func (g *Generator) Generate(ctx context.Context, gr domain.Grammar) (*Result, error) {
	if err := g.validate(ctx, gr); err != nil {
		return nil, err
	}

	start := time.Now()
	state := domain.NewState(gr)
	expanded, cached, err := g.expand(ctx, gr, state)
	if err != nil {
		return nil, err
	}

	root, err := g.interp.Interpret(expanded, gr.Commands, state, g.factory)
	if err != nil {
		g.fail(ctx, gr.Name, domain.PhaseInterpret, err)
		return nil, err
	}

	res := &Result{
		Grammar:  gr.Name,
		Root:     root,
		Expanded: expanded,
		Segments: state.Segments,
		Cached:   cached,
		Duration: time.Since(start),
	}

	st := scene.Collect(root)
	g.logger.Debug("generated", "grammar", gr.Name, "nodes", st.Nodes, "segments", res.Segments, "duration", res.Duration)
	if g.hooks.OnGenerate != nil {
		g.hooks.OnGenerate(ctx, &domain.GenerateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGenerate, Grammar: gr.Name},
			Nodes:     st.Nodes,
			Segments:  res.Segments,
			MaxDepth:  st.MaxDepth,
			Duration:  res.Duration,
		})
	}
	return res, nil
}

// Recipe generates a built-in recipe. label names the nodes; empty means
// the recipe name.
func (g *Generator) Recipe(ctx context.Context, name, label string) (*Result, error) {
	gr, err := recipes.Lookup(name, label)
	if err != nil {
		g.fail(ctx, name, domain.PhaseLookup, err)
		return nil, err
	}
	return g.Generate(ctx, gr)
}

// Load generates the named grammar from the configured loader.
func (g *Generator) Load(ctx context.Context, name string) (*Result, error) {
	if g.loader == nil {
		return nil, fmt.Errorf("no grammar loader configured")
	}
	gr, err := g.loader.GetGrammar(ctx, name)
	if err != nil {
		g.fail(ctx, name, domain.PhaseLookup, err)
		return nil, err
	}
	return g.Generate(ctx, gr)
}

// Watch returns a channel that signals when a grammar in the loader changes.
// Returns error if the loader does not support watching.
func (g *Generator) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := g.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the configured GrammarLoader, or nil.
func (g *Generator) Loader() ports.GrammarLoader {
	return g.loader
}

func (g *Generator) validate(ctx context.Context, gr domain.Grammar) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gr.Validate(); err != nil {
		g.fail(ctx, gr.Name, domain.PhaseValidate, err)
		return err
	}
	return nil
}

// expand returns the expansion of gr and whether it came from the cache.
func (g *Generator) expand(ctx context.Context, gr domain.Grammar, state *domain.TurtleState) (string, bool, error) {
	start := time.Now()
	logger := g.logger.With("grammar", gr.Name)

	key, cacheable := gr.Fingerprint()
	cacheable = cacheable && g.cache != nil

	if cacheable {
		if expanded, ok := g.lookup(ctx, logger, key); ok {
			g.expanded(ctx, gr, grammar.Stats{Iterations: gr.Iterations, Length: len(expanded)}, true, time.Since(start))
			return expanded, true, nil
		}

		if g.locker != nil {
			unlock, err := g.locker.Lock(ctx, key, g.lockTTL)
			if err != nil {
				err = fmt.Errorf("failed to lock expansion %s: %w", key, err)
				g.fail(ctx, gr.Name, domain.PhaseExpand, err)
				return "", false, err
			}
			defer func() {
				if err := unlock(context.WithoutCancel(ctx)); err != nil {
					logger.Warn("failed to release expansion lock", "err", err)
				}
			}()

			// Another replica may have finished while we waited.
			if expanded, ok := g.lookup(ctx, logger, key); ok {
				g.expanded(ctx, gr, grammar.Stats{Iterations: gr.Iterations, Length: len(expanded)}, true, time.Since(start))
				return expanded, true, nil
			}
		}
	}

	expanded, stats, err := grammar.ExpandContext(ctx, gr.Axiom, gr.Rules, gr.Iterations, state, g.maxLen)
	if err != nil {
		g.fail(ctx, gr.Name, domain.PhaseExpand, err)
		return "", false, err
	}

	if cacheable {
		if err := g.cache.Put(ctx, key, expanded); err != nil {
			logger.Warn("failed to store expansion", "key", key, "err", err)
		}
	}

	g.expanded(ctx, gr, stats, false, time.Since(start))
	return expanded, false, nil
}

// lookup reads the cache. A failing cache is logged and treated as a miss.
func (g *Generator) lookup(ctx context.Context, logger *slog.Logger, key string) (string, bool) {
	expanded, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("expansion cache unavailable", "key", key, "err", err)
		return "", false
	}
	return expanded, ok
}

func (g *Generator) expanded(ctx context.Context, gr domain.Grammar, st grammar.Stats, cached bool, d time.Duration) {
	g.logger.Debug("expanded", "grammar", gr.Name, "length", st.Length, "cached", cached)
	if g.hooks.OnExpand == nil {
		return
	}
	g.hooks.OnExpand(ctx, &domain.ExpandEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventExpand, Grammar: gr.Name},
		Iterations: st.Iterations,
		Length:     st.Length,
		Rewrites:   st.Rewrites,
		Transforms: st.Transforms,
		Cached:     cached,
		Duration:   d,
	})
}

func (g *Generator) fail(ctx context.Context, name, phase string, err error) {
	if g.hooks.OnError == nil {
		return
	}
	g.hooks.OnError(ctx, &domain.ErrorEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventError, Grammar: name},
		Phase:     phase,
		Kind:      domain.ErrorKind(err),
		Err:       err,
	})
}
