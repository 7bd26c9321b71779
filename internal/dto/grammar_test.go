package dto

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/arbor/internal/grammar"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/recipes"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw := map[string]any{
		"name":       "bush",
		"axiom":      "A",
		"iterations": 2,
		"angle":      22.5,
		"width":      json.Number("5"),
		"rules": map[string]any{
			"A": "[&FL!A]",
			"F": map[string]any{"replace": "F", "scale": 2},
		},
		"commands": map[string]any{"f": "noop"},
	}

	doc, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "[&FL!A]", doc.Rules["A"].Replace)
	assert.Equal(t, 2.0, doc.Rules["F"].Scale)
	assert.Equal(t, 5.0, doc.Width)

	g, err := doc.ToGrammar()
	require.NoError(t, err)
	assert.Equal(t, domain.Scale(2), g.Rules['F'].Transform)
	assert.Same(t, registry.Noop, g.Commands['f'])
}

func TestDecode_SchemaFailure(t *testing.T) {
	_, err := Decode(map[string]any{"iterations": "many"})
	require.ErrorIs(t, err, domain.ErrInvalidGrammar)

	var agg *schema.AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Len(t, agg.Errors, 2)
}

func TestToGrammar_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  GrammarDocument
	}{
		{"unknown command", GrammarDocument{Axiom: "X", Commands: map[string]string{"G": "teleport"}}},
		{"scale and scale_by", GrammarDocument{Axiom: "X", Rules: map[string]RuleDocument{"F": {Replace: "F", Scale: 2, ScaleBy: "k"}}, Data: map[string]float64{"k": 1}}},
		{"undefined coefficient", GrammarDocument{Axiom: "X", Rules: map[string]RuleDocument{"F": {Replace: "F", ScaleBy: "k"}}}},
		{"long symbol", GrammarDocument{Axiom: "X", Rules: map[string]RuleDocument{"FF": {Replace: "F"}}}},
		{"empty axiom", GrammarDocument{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToGrammar()
			assert.ErrorIs(t, err, domain.ErrInvalidGrammar)
		})
	}
}

func TestFromGrammar_RecipesSurviveDocumentForm(t *testing.T) {
	for _, name := range recipes.Names() {
		t.Run(name, func(t *testing.T) {
			original, err := recipes.Lookup(name, name)
			require.NoError(t, err)

			doc, err := FromGrammar(original)
			require.NoError(t, err)
			back, err := doc.ToGrammar()
			require.NoError(t, err)

			want, err := grammar.Expand(original.Axiom, original.Rules, 3, domain.NewState(original))
			require.NoError(t, err)
			got, err := grammar.Expand(back.Axiom, back.Rules, 3, domain.NewState(back))
			require.NoError(t, err)
			assert.Equal(t, want, got)

			fa, okA := original.Fingerprint()
			fb, okB := back.Fingerprint()
			assert.True(t, okA && okB)
			assert.Equal(t, fa, fb)
		})
	}
}

func TestFromGrammar_OpaqueTransform(t *testing.T) {
	g := domain.Grammar{
		Axiom: "F",
		Rules: domain.Rules{'F': {Replacement: "F", Transform: domain.TransformFunc(func(_ *domain.TurtleState, v float64) float64 { return v })}},
	}
	_, err := FromGrammar(g)
	assert.Error(t, err)
}
