package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedParameter is returned when a parameter group has no closing
// delimiter or does not contain a finite number.
var ErrMalformedParameter = errors.New("malformed parameter")

// ErrUnbalancedBranch is returned when a pop has no matching push, or a push
// is still open when interpretation ends.
var ErrUnbalancedBranch = errors.New("unbalanced branch")

// ErrInvalidGrammar is returned when a grammar definition is unusable.
var ErrInvalidGrammar = errors.New("invalid grammar")

// ErrUnknownRecipe is returned when a built-in recipe name is not registered.
var ErrUnknownRecipe = errors.New("unknown recipe")

// ErrGrammarNotFound is returned when a loader has no grammar with the given name.
var ErrGrammarNotFound = errors.New("grammar not found")

// ParseError locates a malformed parameter group in a symbol string.
type ParseError struct {
	Phase     string // PhaseExpand or PhaseInterpret
	Iteration int    // expansion round (1-based), zero during interpretation
	Pos       int    // index of the offending '(' in the scanned string
	Symbol    Symbol // symbol owning the group
	Reason    string
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("pos %d", e.Pos)
	if e.Iteration > 0 {
		loc = fmt.Sprintf("iteration %d, pos %d", e.Iteration, e.Pos)
	}
	prefix := "parse error"
	if e.Phase != "" {
		prefix = e.Phase + ": parse error"
	}
	return fmt.Sprintf("%s (%s, symbol %q): %s: %s", prefix, loc, rune(e.Symbol), ErrMalformedParameter, e.Reason)
}

// Unwrap allows errors.Is(err, ErrMalformedParameter).
func (e *ParseError) Unwrap() error {
	return ErrMalformedParameter
}

// In returns a copy of e annotated with the phase and iteration it occurred in.
func (e *ParseError) In(phase string, iteration int) error {
	cp := *e
	cp.Phase = phase
	cp.Iteration = iteration
	return &cp
}

// BranchError locates an unbalanced push or pop.
type BranchError struct {
	Pos   int // index of the pop, or -1 when frames remain at end of input
	Depth int // frames still open
}

func (e *BranchError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %d branch(es) left open at end of input", ErrUnbalancedBranch, e.Depth)
	}
	return fmt.Sprintf("%s: pop at pos %d without matching push", ErrUnbalancedBranch, e.Pos)
}

// Unwrap allows errors.Is(err, ErrUnbalancedBranch).
func (e *BranchError) Unwrap() error {
	return ErrUnbalancedBranch
}

// ErrorKind classifies err for metrics and API status mapping.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedParameter):
		return "malformed_parameter"
	case errors.Is(err, ErrUnbalancedBranch):
		return "unbalanced_branch"
	case errors.Is(err, ErrInvalidGrammar):
		return "invalid_grammar"
	case errors.Is(err, ErrUnknownRecipe):
		return "unknown_recipe"
	case errors.Is(err, ErrGrammarNotFound):
		return "grammar_not_found"
	default:
		return "internal"
	}
}
