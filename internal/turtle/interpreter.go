// Package turtle implements the interpretation phase of generation: it walks
// an expanded string and drives the bound commands to build a node tree.
package turtle

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/internal/syntax"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Interpreter runs expanded strings against a common binding table.
type Interpreter struct {
	common *registry.Registry
}

// New creates an Interpreter. A nil common registry falls back to
// registry.Common().
func New(common *registry.Registry) *Interpreter {
	if common == nil {
		common = registry.Common()
	}
	return &Interpreter{common: common}
}

// Interpret is New(nil).Interpret.
func Interpret(expanded string, bindings domain.Bindings, state *domain.TurtleState, factory domain.NodeFactory) (domain.Node, error) {
	return New(nil).Interpret(expanded, bindings, state, factory)
}

// Interpret builds the node tree for expanded. It returns the wrapper group,
// whose only child is the root geometry node. Symbols without a binding are
// skipped along with their parameter group. On error no tree is returned.
func (i *Interpreter) Interpret(expanded string, bindings domain.Bindings, state *domain.TurtleState, factory domain.NodeFactory) (domain.Node, error) {
	if state == nil {
		return nil, fmt.Errorf("interpret: nil state")
	}
	if factory == nil {
		return nil, fmt.Errorf("interpret: nil node factory")
	}

	table := registry.Effective(i.common, bindings)

	wrapper := factory.NewGroup(state.Name + domain.WrapperSuffix)
	root := factory.NewGeometry(state.Name + domain.RootSuffix)
	wrapper.AddChild(root)
	state.Current = root
	state.Nodes = factory

	for pos := 0; pos < len(expanded); {
		sym := domain.Symbol(expanded[pos])
		group, present, perr := syntax.Scan(expanded, pos+1, sym)
		if perr != nil {
			return nil, perr.In(domain.PhaseInterpret, 0)
		}
		next := pos + 1
		if present {
			next = group.End()
		}

		if cmd, ok := table[sym]; ok {
			if err := cmd.Execute(state, group.Value); err != nil {
				if errors.Is(err, domain.ErrUnbalancedBranch) {
					return nil, &domain.BranchError{Pos: pos}
				}
				return nil, fmt.Errorf("interpret %q at pos %d: %w", rune(sym), pos, err)
			}
		}
		pos = next
	}

	if depth := state.Depth(); depth > 0 {
		return nil, &domain.BranchError{Pos: -1, Depth: depth}
	}
	return wrapper, nil
}
