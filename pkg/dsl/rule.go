package dsl

import "github.com/aretw0/arbor/pkg/domain"

// RuleBuilder provides a fluent API for configuring a production.
type RuleBuilder struct {
	rule    domain.Rule
	builder *Builder
}

// To sets the replacement string.
func (r *RuleBuilder) To(replacement string) *RuleBuilder {
	r.rule.Replacement = replacement
	return r
}

// Scale multiplies the parameter of the rewritten symbol by factor.
func (r *RuleBuilder) Scale(factor float64) *RuleBuilder {
	r.rule.Transform = domain.Scale(factor)
	return r
}

// ScaleBy multiplies the parameter by the named coefficient.
func (r *RuleBuilder) ScaleBy(coefficient string) *RuleBuilder {
	r.rule.Transform = domain.ScaleBy(coefficient)
	return r
}

// Transform sets an arbitrary parameter transform. Grammars using transforms
// that do not implement domain.Describable are never cached.
func (r *RuleBuilder) Transform(t domain.ParamTransform) *RuleBuilder {
	r.rule.Transform = t
	return r
}

// Rule starts another production on the same grammar.
func (r *RuleBuilder) Rule(sym domain.Symbol) *RuleBuilder {
	return r.builder.Rule(sym)
}
