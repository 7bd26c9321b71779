package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/recipes"
)

// ResolveGrammar loads the grammar named by sel.
func ResolveGrammar(ctx context.Context, gen *Generator, sel Selection) (domain.Grammar, error) {
	set := 0
	for _, v := range []string{sel.Recipe, sel.File, sel.Name} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return domain.Grammar{}, fmt.Errorf("exactly one of --recipe, --file or a grammar name is required")
	}

	var (
		g   domain.Grammar
		err error
	)
	switch {
	case sel.Recipe != "":
		g, err = recipes.Lookup(sel.Recipe, sel.Label)
	case sel.File != "":
		g, err = file.LoadGrammar(sel.File)
	default:
		loader := gen.Loader()
		if loader == nil {
			return domain.Grammar{}, fmt.Errorf("grammar %q: no library configured (use --dir)", sel.Name)
		}
		g, err = loader.GetGrammar(ctx, sel.Name)
	}
	if err != nil {
		return domain.Grammar{}, err
	}

	if sel.Label != "" {
		g.Name = sel.Label
	}
	if sel.Iterations >= 0 {
		g.Iterations = sel.Iterations
	}
	return g, nil
}
