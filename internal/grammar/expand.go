// Package grammar implements the string-rewriting phase of generation.
package grammar

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/internal/syntax"
	"github.com/aretw0/arbor/pkg/domain"
)

// DefaultMaxLength caps the expanded string (16 Mi symbols) when no other
// limit is given.
const DefaultMaxLength = 1 << 24

// checkEvery is how many input symbols are rewritten between context checks.
const checkEvery = 1 << 12

// Stats summarizes one expansion.
type Stats struct {
	Iterations int // rounds performed
	Rewrites   int // symbols replaced, summed over all rounds
	Transforms int // parameter transforms applied
	Length     int // length of the final string
}

// Expand rewrites axiom iterations times with rules. Each round scans the
// previous round's output once, left to right; text inserted by a rule is
// not rescanned in the same round. state is handed to parameter transforms
// and may be nil when no rule has one.
func Expand(axiom string, rules domain.Rules, iterations int, state *domain.TurtleState) (string, error) {
	out, _, err := ExpandWithStats(axiom, rules, iterations, state)
	return out, err
}

// ExpandWithStats is Expand plus counters for observability.
func ExpandWithStats(axiom string, rules domain.Rules, iterations int, state *domain.TurtleState) (string, Stats, error) {
	return ExpandContext(context.Background(), axiom, rules, iterations, state, DefaultMaxLength)
}

// ExpandContext is ExpandWithStats bounded by ctx and maxLength. An
// expansion that would grow past maxLength symbols stops with
// ErrInvalidGrammar; maxLength <= 0 means DefaultMaxLength.
func ExpandContext(ctx context.Context, axiom string, rules domain.Rules, iterations int, state *domain.TurtleState, maxLength int) (string, Stats, error) {
	if iterations < 0 {
		return "", Stats{}, fmt.Errorf("%w: negative iterations (%d)", domain.ErrInvalidGrammar, iterations)
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(axiom) > maxLength {
		return "", Stats{}, tooLong(maxLength, 0)
	}

	stats := Stats{Length: len(axiom)}
	current := axiom
	for i := 1; i <= iterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", stats, err
		}
		next, err := rewrite(ctx, current, rules, state, i, maxLength, &stats)
		if err != nil {
			return "", stats, err
		}
		current = next
		stats.Iterations = i
		stats.Length = len(current)
	}
	return current, stats, nil
}

func tooLong(maxLength, iteration int) error {
	return fmt.Errorf("%w: expansion exceeds %d symbols at iteration %d", domain.ErrInvalidGrammar, maxLength, iteration)
}

func rewrite(ctx context.Context, input string, rules domain.Rules, state *domain.TurtleState, iteration, maxLength int, stats *Stats) (string, error) {
	var out strings.Builder
	out.Grow(min(len(input)*2, maxLength))

	for i, n := 0, 0; i < len(input); n++ {
		if n%checkEvery == checkEvery-1 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		if out.Len() > maxLength {
			return "", tooLong(maxLength, iteration)
		}

		sym := domain.Symbol(input[i])
		rule, hasRule := rules[sym]

		group, present, perr := syntax.Scan(input, i+1, sym)
		if perr != nil {
			return "", perr.In(domain.PhaseExpand, iteration)
		}

		if hasRule {
			out.WriteString(rule.Replacement)
			stats.Rewrites++
		} else {
			out.WriteByte(input[i])
		}

		if !present {
			i++
			continue
		}

		if hasRule && rule.Transform != nil {
			v := rule.Transform.TransformParam(state, group.Value)
			out.WriteByte(domain.ParameterOpen)
			out.WriteString(syntax.FormatNumber(v))
			out.WriteByte(domain.ParameterClose)
			stats.Transforms++
		} else {
			out.WriteString(input[group.Open:group.End()])
		}
		i = group.End()
	}
	if out.Len() > maxLength {
		return "", tooLong(maxLength, iteration)
	}
	return out.String(), nil
}
