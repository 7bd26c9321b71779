package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammar_Validate(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		wantErr bool
	}{
		{"valid", Grammar{Axiom: "X", Iterations: 3}, false},
		{"empty axiom", Grammar{Iterations: 3}, true},
		{"negative iterations", Grammar{Axiom: "X", Iterations: -1}, true},
		{"at iteration limit", Grammar{Axiom: "X", Iterations: MaxIterations}, false},
		{"over iteration limit", Grammar{Axiom: "F", Rules: Rules{'F': {Replacement: "FF"}}, Iterations: MaxIterations * 2}, true},
		{"rule on delimiter", Grammar{Axiom: "X", Rules: Rules{'(': {Replacement: "x"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grammar.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGrammar)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGrammar_Fingerprint(t *testing.T) {
	g := Grammar{
		Axiom:      "X",
		Iterations: 2,
		Rules: Rules{
			'F': {Replacement: "FF"},
			'X': {Replacement: "F[+X]-X", Transform: Scale(2)},
		},
	}

	a, ok := g.Fingerprint()
	assert.True(t, ok)
	b, _ := g.Fingerprint()
	assert.Equal(t, a, b, "fingerprint must be stable")

	g.Iterations = 3
	c, _ := g.Fingerprint()
	assert.NotEqual(t, a, c)

	g.Rules['X'] = Rule{Replacement: "X", Transform: TransformFunc(func(_ *TurtleState, v float64) float64 { return v })}
	_, ok = g.Fingerprint()
	assert.False(t, ok, "opaque transforms cannot be fingerprinted")
}

func TestGrammar_FingerprintTracksCoefficients(t *testing.T) {
	g := Grammar{
		Axiom: "F(1)",
		Rules: Rules{'F': {Replacement: "F", Transform: ScaleBy("rate")}},
		Data:  Coefficients{"rate": 1.5},
	}
	a, ok := g.Fingerprint()
	assert.True(t, ok)

	g.Data = Coefficients{"rate": 2}
	b, _ := g.Fingerprint()
	assert.NotEqual(t, a, b)
}

func TestScaleBy(t *testing.T) {
	s := &TurtleState{Data: Coefficients{"rate": 1.5}}
	assert.Equal(t, 3.0, ScaleBy("rate").TransformParam(s, 2))
	assert.Equal(t, 2.0, ScaleBy("missing").TransformParam(s, 2))
	assert.Equal(t, 2.0, ScaleBy("rate").TransformParam(nil, 2))
	assert.Equal(t, 6.0, Scale(3).TransformParam(nil, 2))
}
