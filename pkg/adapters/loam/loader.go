// Package loam serves grammars stored as documents in a Loam repository.
// Markdown documents carry the grammar in their frontmatter; the body
// becomes the grammar description.
package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/arbor/internal/dto"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to ports.GrammarLoader.
type Loader struct {
	Repo *loam.TypedRepository[GrammarMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[GrammarMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[GrammarMetadata](repo)), nil
}

// GetGrammar loads the named grammar document.
func (l *Loader) GetGrammar(ctx context.Context, name string) (domain.Grammar, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || strings.Contains(strings.ToLower(err.Error()), "not found") {
			return domain.Grammar{}, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
		}
		return domain.Grammar{}, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	gd, err := dto.Decode(doc.Data.raw())
	if err != nil {
		return domain.Grammar{}, fmt.Errorf("%s: %w", name, err)
	}
	if gd.Name == "" {
		gd.Name = trimExtension(doc.ID)
	}
	if gd.Description == "" {
		gd.Description = strings.TrimSpace(doc.Content)
	}
	return gd.ToGrammar()
}

// ListGrammars lists the grammar documents in the repository.
func (l *Loader) ListGrammars(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Axiom == "" {
			continue
		}
		name := trimExtension(doc.ID)
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: grammar '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Watch implements ports.Watchable. It emits the name of each changed document.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
