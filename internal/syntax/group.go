// Package syntax scans the parenthesized numeric parameter groups that may
// follow any symbol in an L-System string.
package syntax

import (
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Group is a parameter group located in a symbol string.
type Group struct {
	Open  int     // index of '('
	Close int     // index of ')'
	Value float64 // parsed number
	Text  string  // raw text between the delimiters
}

// End is the index just past the closing delimiter.
func (g Group) End() int {
	return g.Close + 1
}

// Scan looks for a parameter group starting at s[at]. It reports false when
// s[at] is not an opening delimiter. The returned error is a ParseError
// without phase information; callers annotate it with ParseError.In.
func Scan(s string, at int, owner domain.Symbol) (Group, bool, *domain.ParseError) {
	if at >= len(s) || s[at] != domain.ParameterOpen {
		return Group{}, false, nil
	}

	end := strings.IndexByte(s[at+1:], domain.ParameterClose)
	if end < 0 {
		return Group{}, true, &domain.ParseError{Pos: at, Symbol: owner, Reason: "missing ')'"}
	}
	closeAt := at + 1 + end
	text := s[at+1 : closeAt]

	value, err := ParseNumber(text)
	if err != "" {
		return Group{}, true, &domain.ParseError{Pos: at, Symbol: owner, Reason: err}
	}

	return Group{Open: at, Close: closeAt, Value: value, Text: text}, true, nil
}

// ParseNumber parses the text of a parameter group. The returned reason is
// empty on success.
func ParseNumber(text string) (float64, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, "empty parameter"
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, "not a number: " + strconv.Quote(trimmed)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "not a finite number: " + strconv.Quote(trimmed)
	}
	return v, ""
}

// FormatNumber renders v as the shortest decimal text that parses back to v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
