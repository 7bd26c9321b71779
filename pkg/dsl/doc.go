/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing arbor grammars.

It allows developers to define L-Systems with a type-safe, fluent builder
instead of relying on external YAML or JSON files. This is particularly
useful for parameter sweeps, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	b := dsl.New("weed").
		Axiom("X").
		Iterations(5).
		Angle(25).
		Width(3)

	b.Rule('X').To("F[+X]F[-X]+X")
	b.Rule('F').To("FF")
	b.Bind('L', "noop")

	grammar, err := b.Build()
	// ... pass grammar to arbor.Generator.Generate(...)
*/
package dsl
