package vm

import (
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_StringSlice tests that slice never fails and agrees with Go
// slicing for in-range bounds.
func TestProperty_StringSlice(t *testing.T) {
	v := newTestVM(io.Discard)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any bounds yield a substring", prop.ForAll(
		func(s string, start, end int) bool {
			got, err := callBuiltin(t, v, "string.slice", String(s), Number(start), Number(end))
			if err != nil {
				return false
			}
			sub := string(got.(String))
			return strings.Contains(s, sub) && utf8.RuneCountInString(sub) <= utf8.RuneCountInString(s)
		},
		gen.AnyString(),
		gen.IntRange(-50, 50),
		gen.IntRange(-50, 50),
	))

	properties.Property("in-range bounds match rune slicing", prop.ForAll(
		func(s string, a, b int) bool {
			runes := []rune(s)
			i := a % (len(runes) + 1)
			j := b % (len(runes) + 1)
			if i > j {
				i, j = j, i
			}
			got, err := callBuiltin(t, v, "string.slice", String(s), Number(i), Number(j))
			return err == nil && got == String(runes[i:j])
		},
		gen.AlphaString(),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.Property("split then join is the identity", prop.ForAll(
		func(s string, sep string) bool {
			parts, err := callBuiltin(t, v, "string.split", String(s), String(sep))
			if err != nil {
				return false
			}
			joined, err := callBuiltin(t, v, "string.join", parts, String(sep))
			return err == nil && joined == String(s)
		},
		gen.AlphaString(),
		gen.OneConstOf(",", "a", "", "--"),
	))

	properties.TestingRun(t)
}
