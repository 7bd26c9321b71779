package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Builder manages the grammar construction.
type Builder struct {
	grammar domain.Grammar
	rules   map[domain.Symbol]*RuleBuilder
	order   []domain.Symbol
	errs    []error
}

// New creates a new grammar builder. name labels the generated nodes.
func New(name string) *Builder {
	return &Builder{
		grammar: domain.Grammar{Name: name},
		rules:   make(map[domain.Symbol]*RuleBuilder),
	}
}

// Describe sets the human-readable description.
func (b *Builder) Describe(text string) *Builder {
	b.grammar.Description = text
	return b
}

// Axiom sets the initial symbol string.
func (b *Builder) Axiom(axiom string) *Builder {
	b.grammar.Axiom = axiom
	return b
}

// Iterations sets the number of rewriting rounds.
func (b *Builder) Iterations(n int) *Builder {
	b.grammar.Iterations = n
	return b
}

// Angle sets the default rotation angle in degrees.
func (b *Builder) Angle(deg float64) *Builder {
	b.grammar.Angle = deg
	return b
}

// Width sets the initial branch width.
func (b *Builder) Width(w float64) *Builder {
	b.grammar.Width = w
	return b
}

// Length sets the default step length.
func (b *Builder) Length(l float64) *Builder {
	b.grammar.Length = l
	return b
}

// Data sets the value handed to parameter transforms.
func (b *Builder) Data(data any) *Builder {
	b.grammar.Data = data
	return b
}

// Coefficient adds a named coefficient for ScaleBy transforms. It fails the
// build if Data was set to something other than domain.Coefficients.
func (b *Builder) Coefficient(name string, value float64) *Builder {
	switch data := b.grammar.Data.(type) {
	case nil:
		b.grammar.Data = domain.Coefficients{name: value}
	case domain.Coefficients:
		data[name] = value
	default:
		b.errs = append(b.errs, fmt.Errorf("coefficient %q: data is %T, not coefficients", name, data))
	}
	return b
}

// Bind binds sym to the built-in command with the given name
// (see registry.Names).
func (b *Builder) Bind(sym domain.Symbol, command string) *Builder {
	cmd, ok := registry.ByName(command)
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("symbol %q: unknown command %q", rune(sym), command))
		return b
	}
	return b.BindCommand(sym, cmd)
}

// BindCommand binds sym to an arbitrary command, shadowing any common binding.
func (b *Builder) BindCommand(sym domain.Symbol, cmd domain.Command) *Builder {
	if b.grammar.Commands == nil {
		b.grammar.Commands = make(domain.Bindings)
	}
	b.grammar.Commands[sym] = cmd
	return b
}

// Rule starts the production for sym.
// If the rule already exists, it returns the existing builder.
func (b *Builder) Rule(sym domain.Symbol) *RuleBuilder {
	if rb, ok := b.rules[sym]; ok {
		return rb
	}
	rb := &RuleBuilder{builder: b}
	b.rules[sym] = rb
	b.order = append(b.order, sym)
	return rb
}

// Build assembles and validates the grammar.
func (b *Builder) Build() (domain.Grammar, error) {
	if len(b.errs) > 0 {
		return domain.Grammar{}, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, errors.Join(b.errs...))
	}

	g := b.grammar
	if len(b.rules) > 0 {
		g.Rules = make(domain.Rules, len(b.rules))
		for _, sym := range b.order {
			g.Rules[sym] = b.rules[sym].rule
		}
	}
	if err := g.Validate(); err != nil {
		return domain.Grammar{}, err
	}
	return g, nil
}

// BuildLoader compiles the grammar into a MemoryLoader.
func (b *Builder) BuildLoader() (*memory.Loader, error) {
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return memory.NewLoader(g), nil
}
