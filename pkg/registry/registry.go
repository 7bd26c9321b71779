// Package registry holds command-binding tables for the turtle interpreter.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Registry manages the commands bound to symbols.
type Registry struct {
	mu       sync.RWMutex
	commands map[domain.Symbol]domain.Command
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[domain.Symbol]domain.Command),
	}
}

// Register binds a command to a symbol.
// If the symbol is already bound, the binding is overwritten.
func (r *Registry) Register(sym domain.Symbol, cmd domain.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[sym] = cmd
}

// Lookup returns the command bound to sym.
func (r *Registry) Lookup(sym domain.Symbol) (domain.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[sym]
	return cmd, ok
}

// Execute looks up the command bound to sym and runs it.
// Returns an error if the symbol is not bound.
func (r *Registry) Execute(s *domain.TurtleState, sym domain.Symbol, param float64) error {
	cmd, ok := r.Lookup(sym)
	if !ok {
		return fmt.Errorf("command not bound: %q", rune(sym))
	}
	return cmd.Execute(s, param)
}

// Symbols returns the bound symbols in ascending order.
func (r *Registry) Symbols() []domain.Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Symbol, 0, len(r.commands))
	for sym := range r.commands {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bindings returns a snapshot of the table.
func (r *Registry) Bindings() domain.Bindings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(domain.Bindings, len(r.commands))
	for sym, cmd := range r.commands {
		out[sym] = cmd
	}
	return out
}

// Common returns a registry holding the bindings every grammar can use:
// rotations about the three axes, branch push and pop, and taper.
// Forward is not part of it; see Effective.
func Common() *Registry {
	r := NewRegistry()
	r.Register(domain.SymbolYawLeft, YawLeft)
	r.Register(domain.SymbolYawRight, YawRight)
	r.Register(domain.SymbolPitchDown, PitchDown)
	r.Register(domain.SymbolPitchUp, PitchUp)
	r.Register(domain.SymbolRollLeft, RollLeft)
	r.Register(domain.SymbolRollRight, RollRight)
	r.Register(domain.SymbolPush, Push)
	r.Register(domain.SymbolPop, Pop)
	r.Register(domain.SymbolTaper, Taper)
	return r
}

// Effective builds the table used for one interpretation: the common
// bindings, overlaid by the caller's bindings, plus Forward on 'F' unless the
// caller bound it. A nil common registry contributes nothing.
func Effective(common *Registry, caller domain.Bindings) domain.Bindings {
	var out domain.Bindings
	if common != nil {
		out = common.Bindings()
	} else {
		out = make(domain.Bindings, len(caller)+1)
	}
	for sym, cmd := range caller {
		out[sym] = cmd
	}
	if _, ok := out[domain.SymbolForward]; !ok {
		out[domain.SymbolForward] = Forward
	}
	return out
}
