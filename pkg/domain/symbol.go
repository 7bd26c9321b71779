package domain

// Symbol is a single character of the grammar alphabet. The same symbol can
// be rewritten during expansion and dispatched as a command during
// interpretation.
type Symbol byte

// Symbols with a built-in turtle meaning.
const (
	SymbolForward   Symbol = 'F'
	SymbolYawLeft   Symbol = '+'
	SymbolYawRight  Symbol = '-'
	SymbolPitchDown Symbol = '&'
	SymbolPitchUp   Symbol = '^'
	SymbolRollLeft  Symbol = '<'
	SymbolRollRight Symbol = '>'
	SymbolPush      Symbol = '['
	SymbolPop       Symbol = ']'
	SymbolTaper     Symbol = '!'
)

// Parameter group delimiters.
const (
	ParameterOpen  byte = '('
	ParameterClose byte = ')'
)

func (s Symbol) String() string {
	return string(rune(s))
}

// ParseSymbol converts a one-character string into a Symbol.
func ParseSymbol(s string) (Symbol, bool) {
	if len(s) != 1 {
		return 0, false
	}
	if s[0] == ParameterOpen || s[0] == ParameterClose {
		return 0, false
	}
	return Symbol(s[0]), true
}
