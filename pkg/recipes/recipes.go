// Package recipes provides ready-made grammars for common plant shapes.
package recipes

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/arbor/internal/syntax"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Recipe builds a grammar whose nodes are named after label.
type Recipe struct {
	Description string
	Build       func(label string) domain.Grammar
}

const (
	grassDescription = "Fractal grass tuft drawn in the plane."
	bushDescription  = "Three-way branching bush with leaf clusters."
	treeDescription  = "Monopodial tree with elongating internodes and widening trunk."
	algaeDescription = "Lindenmayer's algae growth sequence. Produces no geometry."
)

// Catalog holds the built-in recipes by name.
var Catalog = map[string]Recipe{
	"grass": {Description: grassDescription, Build: Grass},
	"bush":  {Description: bushDescription, Build: Bush},
	"tree":  {Description: treeDescription, Build: Tree},
	"algae": {Description: algaeDescription, Build: Algae},
}

// Names returns the catalog names in ascending order.
func Names() []string {
	out := make([]string, 0, len(Catalog))
	for name := range Catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup builds the named recipe.
func Lookup(name, label string) (domain.Grammar, error) {
	r, ok := Catalog[name]
	if !ok {
		return domain.Grammar{}, fmt.Errorf("%w: %q", domain.ErrUnknownRecipe, name)
	}
	if label == "" {
		label = name
	}
	return r.Build(label), nil
}

// Grass is the classic bracketed grass tuft.
func Grass(label string) domain.Grammar {
	return domain.Grammar{
		Name:        label,
		Description: grassDescription,
		Axiom:       "X",
		Rules: domain.Rules{
			'F': {Replacement: "FF"},
			'X': {Replacement: "F-[[X]+X]+F[+FX]-X"},
		},
		Iterations: 6,
		Angle:      25,
		Width:      5,
	}
}

// Bush grows three branches per apex, rolled around the stem. 'f' draws a
// leaf edge and '\'' changes colour; both are inert here.
func Bush(label string) domain.Grammar {
	return domain.Grammar{
		Name:        label,
		Description: bushDescription,
		Axiom:       "A",
		Rules: domain.Rules{
			'A': {Replacement: "[&FL!A]<<<<<'[&FL!A]<<<<<<<'[&FL!A]"},
			'F': {Replacement: "S<<<<<F"},
			'S': {Replacement: "FL"},
			'L': {Replacement: "['''^^-f+f+f++++++f+f+f]"},
		},
		Commands: domain.Bindings{
			'f':  registry.Noop,
			'\'': registry.Noop,
		},
		Iterations: 6,
		Angle:      22.5,
		Width:      5,
	}
}

// TreeParams are the growth coefficients of the tree recipe. Angles are in
// degrees.
type TreeParams struct {
	DivergeAngle1  float64 `json:"diverge_angle_1" mapstructure:"diverge_angle_1"`
	DivergeAngle2  float64 `json:"diverge_angle_2" mapstructure:"diverge_angle_2"`
	BranchingAngle float64 `json:"branching_angle" mapstructure:"branching_angle"`
	ElongationRate float64 `json:"elongation_rate" mapstructure:"elongation_rate"`
	WidthRate      float64 `json:"width_rate" mapstructure:"width_rate"`
}

// Coefficient names read by the tree transforms.
const (
	ElongationRate = "elongation_rate"
	WidthRate      = "width_rate"
)

// DefaultTreeParams and AltTreeParams are two tuned coefficient sets.
var (
	DefaultTreeParams = TreeParams{94.74, 132.63, 18.95, 1.109, 1.732}
	AltTreeParams     = TreeParams{112.50, 157.50, 22.50, 1.790, 1.732}
)

// Coefficient implements domain.CoefficientSource.
func (p *TreeParams) Coefficient(name string) (float64, bool) {
	switch name {
	case ElongationRate:
		return p.ElongationRate, true
	case WidthRate:
		return p.WidthRate, true
	}
	return 0, false
}

// Tree builds the tree recipe with DefaultTreeParams.
func Tree(label string) domain.Grammar {
	return TreeWith(label, DefaultTreeParams)
}

// TreeWith builds the tree recipe with the given coefficients.
func TreeWith(label string, p TreeParams) domain.Grammar {
	const iterations = 6
	n := syntax.FormatNumber
	branch := "[&(" + n(p.BranchingAngle) + ")F(50)A]"
	apex := "!(" + n(p.WidthRate) + ")F(50)" + branch +
		"<(" + n(p.DivergeAngle1) + ")" + branch +
		"<(" + n(p.DivergeAngle2) + ")" + branch

	return domain.Grammar{
		Name:        label,
		Description: treeDescription,
		Axiom:       "!(1)F(200)<(45)A",
		Rules: domain.Rules{
			'A': {Replacement: apex},
			'F': {Replacement: "F", Transform: domain.ScaleBy(ElongationRate)},
			'!': {Replacement: "!", Transform: domain.ScaleBy(WidthRate)},
		},
		Iterations: iterations,
		Angle:      30,
		Width:      math.Pow(p.WidthRate, iterations),
		Data:       &p,
	}
}

// Algae is Lindenmayer's original two-symbol system. Neither symbol is bound
// to a command.
func Algae(label string) domain.Grammar {
	return domain.Grammar{
		Name:        label,
		Description: algaeDescription,
		Axiom:       "A",
		Rules: domain.Rules{
			'A': {Replacement: "AB"},
			'B': {Replacement: "A"},
		},
		Iterations: 5,
		Width:      1,
	}
}
