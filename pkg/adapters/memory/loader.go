package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/recipes"
)

// Loader implements ports.GrammarLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	grammars map[string]domain.Grammar
}

// NewLoader creates a loader serving the given grammars by name.
func NewLoader(grammars ...domain.Grammar) *Loader {
	l := &Loader{grammars: make(map[string]domain.Grammar, len(grammars))}
	for _, g := range grammars {
		l.Add(g)
	}
	return l
}

// NewFromRecipes creates a loader serving the named built-in recipes, or all
// of them when no name is given.
func NewFromRecipes(names ...string) (*Loader, error) {
	if len(names) == 0 {
		names = recipes.Names()
	}
	l := NewLoader()
	for _, name := range names {
		g, err := recipes.Lookup(name, name)
		if err != nil {
			return nil, err
		}
		l.Add(g)
	}
	return l, nil
}

// Add registers g under its name, replacing any previous grammar.
func (l *Loader) Add(g domain.Grammar) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.grammars[g.Name] = clone(g)
}

// GetGrammar retrieves a grammar by name.
func (l *Loader) GetGrammar(_ context.Context, name string) (domain.Grammar, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.grammars[name]
	if !ok {
		return domain.Grammar{}, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
	}
	return clone(g), nil
}

// ListGrammars returns all available grammar names.
func (l *Loader) ListGrammars(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.grammars))
	for k := range l.grammars {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// clone copies the rule and binding tables so callers cannot mutate stored grammars.
func clone(g domain.Grammar) domain.Grammar {
	if g.Rules != nil {
		rules := make(domain.Rules, len(g.Rules))
		for k, v := range g.Rules {
			rules[k] = v
		}
		g.Rules = rules
	}
	if g.Commands != nil {
		cmds := make(domain.Bindings, len(g.Commands))
		for k, v := range g.Commands {
			cmds[k] = v
		}
		g.Commands = cmds
	}
	return g
}
