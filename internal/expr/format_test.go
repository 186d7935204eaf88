package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 110, want: "110"},
		{in: -6, want: "-6"},
		{in: 0.5, want: "0.5"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: 1.0 / 3, want: "0.3333333333"},
		{in: -2.5, want: "-2.5"},
		{in: 1e15, want: "1000000000000000"},
		{in: 1e16, want: "1.00e+16"},
		{in: -2.5e20, want: "-2.50e+20"},
		{in: 1e-7, want: "1e-07"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatResult(tc.in))
		})
	}
}

func TestDisplayGlyphs(t *testing.T) {
	assert.Equal(t, "5×(3÷2)-1+4", DisplayGlyphs("5*(3/2)-1+4"))
	assert.Equal(t, "", DisplayGlyphs(""))
	assert.Equal(t, "5*(3/2)", ASCIIOperators(DisplayGlyphs("5*(3/2)")))
}
