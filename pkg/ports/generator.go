package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Generator is the stateless generation core.
// This is the interface used by adapters (e.g., HTTP, MCP) that serve
// independent requests.
type Generator interface {
	// Expand runs the rewriting phase only.
	Expand(ctx context.Context, g domain.Grammar) (string, error)

	// Generate expands and interprets g.
	Generate(ctx context.Context, g domain.Grammar) (*domain.Result, error)

	// Recipe generates a built-in recipe. label names the nodes; empty means
	// the recipe name.
	Recipe(ctx context.Context, name, label string) (*domain.Result, error)
}
