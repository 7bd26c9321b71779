package schema

// Rule is the schema of an expanded rule entry.
var Rule = Schema{
	"replace":  String(),
	"scale":    Optional(Float()),
	"scale_by": Optional(String()),
}

// Grammar is the schema of a grammar document. A rule is either its
// replacement string or a Rule object; commands map symbols to builtin
// command names.
var Grammar = Schema{
	"name":        Optional(String()),
	"description": Optional(String()),
	"axiom":       String(),
	"iterations":  Optional(Int()),
	"angle":       Optional(Float()),
	"width":       Optional(Float()),
	"length":      Optional(Float()),
	"rules":       Optional(Map(Symbol(), OneOf(String(), Object(Rule)))),
	"commands":    Optional(Map(Symbol(), String())),
	"data":        Optional(Map(String(), Float())),
}
