package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// LogHooks returns hooks that write generation events to logger. Successful
// phases are logged at debug level, failures at error level.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			logger.DebugContext(ctx, "expand",
				"grammar", e.Grammar,
				"iterations", e.Iterations,
				"length", e.Length,
				"rewrites", e.Rewrites,
				"cached", e.Cached,
				"duration", e.Duration,
			)
		},
		OnGenerate: func(ctx context.Context, e *domain.GenerateEvent) {
			logger.DebugContext(ctx, "generate",
				"grammar", e.Grammar,
				"nodes", e.Nodes,
				"segments", e.Segments,
				"max_depth", e.MaxDepth,
				"duration", e.Duration,
			)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.ErrorContext(ctx, "generation failed",
				"grammar", e.Grammar,
				"phase", e.Phase,
				"kind", e.Kind,
				"err", e.Err,
			)
		},
	}
}
