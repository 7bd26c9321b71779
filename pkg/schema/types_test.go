package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		value any
		ok    bool
	}{
		{"string", String(), "x", true},
		{"string rejects int", String(), 1, false},
		{"int", Int(), 3, true},
		{"int from whole float", Int(), 3.0, true},
		{"int rejects fraction", Int(), 3.5, false},
		{"int from json number", Int(), json.Number("6"), true},
		{"int rejects json fraction", Int(), json.Number("6.5"), false},
		{"float from int", Float(), 2, true},
		{"float from json number", Float(), json.Number("22.5"), true},
		{"float rejects NaN", Float(), math.NaN(), false},
		{"float rejects string", Float(), "1", false},
		{"symbol", Symbol(), "F", true},
		{"symbol rejects long", Symbol(), "FF", false},
		{"symbol rejects delimiter", Symbol(), "(", false},
		{"slice", Slice(Int()), []any{1, 2}, true},
		{"slice element", Slice(Int()), []any{1, "x"}, false},
		{"map", Map(Symbol(), String()), map[string]any{"F": "FF"}, true},
		{"map bad key", Map(Symbol(), String()), map[string]any{"FF": "F"}, false},
		{"map bad value", Map(Symbol(), String()), map[string]any{"F": 1}, false},
		{"map from yaml v2 shape", Map(Symbol(), String()), map[any]any{"F": "FF"}, true},
		{"object", Object(Rule), map[string]any{"replace": "F", "scale": 1.5}, true},
		{"object missing field", Object(Rule), map[string]any{"scale": 1.5}, false},
		{"one of first", OneOf(String(), Object(Rule)), "FF", true},
		{"one of second", OneOf(String(), Object(Rule)), map[string]any{"replace": "F"}, true},
		{"one of neither", OneOf(String(), Object(Rule)), 3, false},
		{"optional nil", Optional(Int()), nil, true},
		{"optional wrong", Optional(Int()), "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate(tt.value)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSchemaJSON(t *testing.T) {
	s := Schema{"axiom": String(), "iterations": Optional(Int())}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"axiom":"string","iterations":"int?"}`, string(data))

	_, err = json.Marshal(Schema{"axiom": nil})
	assert.Error(t, err)
}
