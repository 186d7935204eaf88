package expr

import (
	"math"
	"strconv"
	"strings"
)

// scientificThreshold is the magnitude above which results switch to
// exponent notation.
const scientificThreshold = 1e15

// FormatResult renders v for the display: "%.2e" above 1e15, an integer
// when v is integral, otherwise at most 10 significant digits.
func FormatResult(v float64) string {
	switch {
	case math.Abs(v) > scientificThreshold:
		return strconv.FormatFloat(v, 'e', 2, 64)
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'g', 10, 64)
	}
}

var glyphs = strings.NewReplacer("*", "×", "/", "÷")

// DisplayGlyphs swaps ASCII operators for the keypad glyphs. Never feed its
// output back to Tokenize.
func DisplayGlyphs(s string) string {
	return glyphs.Replace(s)
}

var ascii = strings.NewReplacer("×", "*", "÷", "/")

// ASCIIOperators undoes DisplayGlyphs, for text typed with keypad glyphs.
func ASCIIOperators(s string) string {
	return ascii.Replace(s)
}
