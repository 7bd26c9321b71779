package syntax

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		at        int
		present   bool
		wantErr   bool
		wantValue float64
		wantEnd   int
	}{
		{"no group", "FF", 1, false, false, 0, 0},
		{"end of input", "F", 1, false, false, 0, 0},
		{"integer", "F(50)", 1, true, false, 50, 5},
		{"decimal with spaces", "F( 1.5 )X", 1, true, false, 1.5, 8},
		{"negative", "+(-30)", 1, true, false, -30, 6},
		{"unmatched", "F(50", 1, true, true, 0, 0},
		{"empty", "F()", 1, true, true, 0, 0},
		{"blank", "F(  )", 1, true, true, 0, 0},
		{"letters", "F(wr)", 1, true, true, 0, 0},
		{"infinite", "F(Inf)", 1, true, true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, present, perr := Scan(tt.input, tt.at, 'F')
			assert.Equal(t, tt.present, present)
			if tt.wantErr {
				require.NotNil(t, perr)
				assert.Equal(t, tt.at, perr.Pos)
				assert.True(t, errors.Is(perr, domain.ErrMalformedParameter))
				return
			}
			require.Nil(t, perr)
			if tt.present {
				assert.Equal(t, tt.wantValue, g.Value)
				assert.Equal(t, tt.wantEnd, g.End())
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "50", FormatNumber(50))
	assert.Equal(t, "55.45", FormatNumber(55.45))
	assert.Equal(t, "-0.5", FormatNumber(-0.5))
	assert.Equal(t, "1e+21", FormatNumber(1e21))

	for _, v := range []float64{1.0 / 3, 94.74 * 1.109, 0.1 + 0.2} {
		back, reason := ParseNumber(FormatNumber(v))
		require.Empty(t, reason)
		assert.Equal(t, v, back, "formatted numbers must round-trip")
	}
}
