package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParamTransform rewrites the numeric parameter of a freshly substituted
// symbol during expansion.
type ParamTransform interface {
	TransformParam(s *TurtleState, value float64) float64
}

// TransformFunc adapts a plain function to ParamTransform.
type TransformFunc func(s *TurtleState, value float64) float64

// TransformParam calls f.
func (f TransformFunc) TransformParam(s *TurtleState, value float64) float64 {
	return f(s, value)
}

// Describable is implemented by transforms whose effect is fully determined
// by data, which lets grammars using them be fingerprinted and cached.
type Describable interface {
	Describe(data any) string
}

// CoefficientSource is implemented by Data values that expose named growth
// coefficients to ScaleBy transforms.
type CoefficientSource interface {
	Coefficient(name string) (float64, bool)
}

// Coefficients is a map-backed CoefficientSource.
type Coefficients map[string]float64

// Coefficient returns the named coefficient.
func (c Coefficients) Coefficient(name string) (float64, bool) {
	v, ok := c[name]
	return v, ok
}

// Scale multiplies the parameter by a constant factor.
type Scale float64

// TransformParam implements ParamTransform.
func (f Scale) TransformParam(_ *TurtleState, value float64) float64 {
	return float64(f) * value
}

// Describe implements Describable.
func (f Scale) Describe(any) string {
	return "scale:" + strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// ScaleBy multiplies the parameter by the named coefficient read from the
// state's Data. A missing coefficient leaves the value unchanged.
type ScaleBy string

// TransformParam implements ParamTransform.
func (k ScaleBy) TransformParam(s *TurtleState, value float64) float64 {
	if s == nil {
		return value
	}
	return k.factor(s.Data) * value
}

// Describe implements Describable.
func (k ScaleBy) Describe(data any) string {
	return fmt.Sprintf("scale_by:%s=%s", string(k), strconv.FormatFloat(k.factor(data), 'g', -1, 64))
}

func (k ScaleBy) factor(data any) float64 {
	src, ok := data.(CoefficientSource)
	if !ok {
		return 1
	}
	v, ok := src.Coefficient(string(k))
	if !ok {
		return 1
	}
	return v
}

// Rule is a production: the symbol is replaced by Replacement, and an
// attached parameter is rewritten by Transform when one is set.
type Rule struct {
	Replacement string
	Transform   ParamTransform
}

// Rules maps each rewritable symbol to its production. One rule per symbol.
type Rules map[Symbol]Rule

// Grammar is a complete generation request: the rewriting system plus the
// turtle configuration used to interpret it.
type Grammar struct {
	Name        string
	Description string
	Axiom       string
	Rules       Rules
	Commands    Bindings
	Iterations  int
	Angle       float64 // default angle in degrees
	Width       float64 // initial width
	Length      float64 // default step length, DefaultLength when zero

	// Data is handed to parameter transforms through TurtleState.Data.
	Data any
}

// Validate reports whether g can be expanded and interpreted.
func (g Grammar) Validate() error {
	if g.Axiom == "" {
		return fmt.Errorf("%w: empty axiom", ErrInvalidGrammar)
	}
	if g.Iterations < 0 {
		return fmt.Errorf("%w: negative iterations (%d)", ErrInvalidGrammar, g.Iterations)
	}
	if g.Iterations > MaxIterations {
		return fmt.Errorf("%w: %d iterations exceed the limit of %d", ErrInvalidGrammar, g.Iterations, MaxIterations)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{{"angle", g.Angle}, {"width", g.Width}, {"length", g.Length}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidGrammar, v.name)
		}
	}
	for sym := range g.Rules {
		if byte(sym) == ParameterOpen || byte(sym) == ParameterClose {
			return fmt.Errorf("%w: parameter delimiter %q cannot have a rule", ErrInvalidGrammar, rune(sym))
		}
	}
	return nil
}

// Fingerprint returns a stable digest of everything that determines the
// expansion of g. It reports false when a rule uses a transform that cannot
// be described, in which case the expansion must not be cached.
func (g Grammar) Fingerprint() (string, bool) {
	symbols := make([]int, 0, len(g.Rules))
	for sym := range g.Rules {
		symbols = append(symbols, int(sym))
	}
	sort.Ints(symbols)

	var sb strings.Builder
	fmt.Fprintf(&sb, "axiom=%q\niterations=%d\n", g.Axiom, g.Iterations)
	for _, sym := range symbols {
		rule := g.Rules[Symbol(sym)]
		fmt.Fprintf(&sb, "rule %q=%q", rune(sym), rule.Replacement)
		if rule.Transform != nil {
			d, ok := rule.Transform.(Describable)
			if !ok {
				return "", false
			}
			sb.WriteString(" " + d.Describe(g.Data))
		}
		sb.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:]), true
}
