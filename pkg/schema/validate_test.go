package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Grammar(t *testing.T) {
	doc := map[string]any{
		"name":       "bush",
		"axiom":      "A",
		"iterations": 6,
		"angle":      22.5,
		"rules": map[string]any{
			"A": "[&FL!A]",
			"F": map[string]any{"replace": "F", "scale_by": "elongation_rate"},
		},
		"commands": map[string]any{"f": "noop"},
		"data":     map[string]any{"elongation_rate": 1.1},
	}
	assert.NoError(t, Validate(Grammar, doc))
	assert.NoError(t, ValidateStrict(Grammar, doc))
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	doc := map[string]any{
		"iterations": "six",
		"rules":      map[string]any{"FF": "F"},
	}
	err := Validate(Grammar, doc)
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 3)

	keys := make([]string, len(errs))
	for i, e := range errs {
		var verr *ValidationError
		require.True(t, errors.As(e, &verr))
		keys[i] = verr.Key
	}
	assert.Equal(t, []string{"axiom", "iterations", "rules"}, keys)
	assert.Contains(t, err.Error(), "3 validation errors")
}

func TestValidateStrict_UnknownField(t *testing.T) {
	err := ValidateStrict(Grammar, map[string]any{"axiom": "X", "colour": "green"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "colour": unknown field`)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestValidate_EmptySchema(t *testing.T) {
	assert.NoError(t, Validate(nil, map[string]any{"anything": 1}))
}
