package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Loader implements ports.GrammarLoader over a directory of grammar
// documents. A grammar's name is its file name without extension.
type Loader struct {
	Dir string
}

// NewLoader creates a loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// GetGrammar loads the named grammar.
func (l *Loader) GetGrammar(ctx context.Context, name string) (domain.Grammar, error) {
	if err := ctx.Err(); err != nil {
		return domain.Grammar{}, err
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.Dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		g, err := LoadGrammar(path)
		if err != nil {
			return domain.Grammar{}, err
		}
		g.Name = name
		return g, nil
	}
	return domain.Grammar{}, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
}

// ListGrammars returns the names of the documents in the directory.
func (l *Loader) ListGrammars(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar directory: %w", err)
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isGrammarExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: grammar '%s' is defined in both '%s' and '%s'", name, prev, e.Name())
		}
		seen[name] = e.Name()
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isGrammarExt(ext string) bool {
	for _, e := range Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
