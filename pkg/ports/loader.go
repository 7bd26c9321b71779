package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// GrammarLoader defines how grammars are retrieved by name.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type GrammarLoader interface {
	// GetGrammar returns the named grammar.
	// Returns domain.ErrGrammarNotFound if no such grammar exists.
	GetGrammar(ctx context.Context, name string) (domain.Grammar, error)

	// ListGrammars returns the names of all available grammars.
	ListGrammars(ctx context.Context) ([]string, error)
}

// Watchable is implemented by loaders that can signal changes to their
// grammar documents. The channel carries the name of the changed grammar and
// is closed when ctx is done.
type Watchable interface {
	Watch(ctx context.Context) (<-chan string, error)
}
