package vm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// registerStringBuiltins registers string-related built-in functions.
// Strings are immutable; every function returns a new value. Positions are
// counted in characters (code points), not bytes.
func registerStringBuiltins(b *registryBuilder) {
	b.RegisterBuiltinFunction("string", "length", 1, 1, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.length", args, 0)
		if err != nil {
			return nil, err
		}
		return Number(utf8.RuneCountInString(s)), nil
	})

	b.RegisterBuiltinFunction("string", "charAt", 2, 2, func(th *Thread, args []Value) (Value, error) {
		r, err := runeAt("string.charAt", args)
		if err != nil {
			return nil, err
		}
		return String(r), nil
	})

	b.RegisterBuiltinFunction("string", "codePointAt", 2, 2, func(th *Thread, args []Value) (Value, error) {
		r, err := runeAt("string.codePointAt", args)
		if err != nil {
			return nil, err
		}
		return Number(r), nil
	})

	// upper/lower use Unicode case mapping (ß → SS)
	b.RegisterBuiltinFunction("string", "upper", 1, 1, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.upper", args, 0)
		if err != nil {
			return nil, err
		}
		return String(cases.Upper(language.Und).String(s)), nil
	})

	b.RegisterBuiltinFunction("string", "lower", 1, 1, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.lower", args, 0)
		if err != nil {
			return nil, err
		}
		return String(cases.Lower(language.Und).String(s)), nil
	})

	// slice(s, start[, end]) - half-open range; negative bounds count from the
	// end and out-of-range bounds are clamped
	b.RegisterBuiltinFunction("string", "slice", 2, 3, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.slice", args, 0)
		if err != nil {
			return nil, err
		}
		start, err := argInt("string.slice", args, 1)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		end := len(runes)
		if len(args) == 3 && args[2] != NullValue {
			if end, err = argInt("string.slice", args, 2); err != nil {
				return nil, err
			}
		}

		start, end = clampRange(start, end, len(runes))
		th.vm.log.Debug("string.slice called", "start", start, "end", end)
		return String(runes[start:end]), nil
	})

	// split(s, sep) - an empty separator splits into characters
	b.RegisterBuiltinFunction("string", "split", 2, 2, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.split", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := argString("string.split", args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		elements := make([]Value, len(parts))
		for i, p := range parts {
			elements[i] = String(p)
		}
		return NewArray(elements), nil
	})

	b.RegisterBuiltinFunction("string", "join", 2, 2, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("string.join", args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := argString("string.join", args, 1)
		if err != nil {
			return nil, err
		}
		items := arr.ToSlice()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = ToString(item)
		}
		return String(strings.Join(parts, sep)), nil
	})

	// indexOf(s, sub) - character position of the first match, -1 if absent
	b.RegisterBuiltinFunction("string", "indexOf", 2, 2, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.indexOf", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := argString("string.indexOf", args, 1)
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s, sub)
		if idx < 0 {
			return Number(-1), nil
		}
		return Number(utf8.RuneCountInString(s[:idx])), nil
	})

	b.RegisterBuiltinFunction("string", "contains", 2, 2, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.contains", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := argString("string.contains", args, 1)
		if err != nil {
			return nil, err
		}
		return Bool(strings.Contains(s, sub)), nil
	})

	b.RegisterBuiltinFunction("string", "trim", 1, 1, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.trim", args, 0)
		if err != nil {
			return nil, err
		}
		return String(strings.TrimSpace(s)), nil
	})

	// replace(s, old, new) replaces every occurrence
	b.RegisterBuiltinFunction("string", "replace", 3, 3, func(th *Thread, args []Value) (Value, error) {
		s, err := argString("string.replace", args, 0)
		if err != nil {
			return nil, err
		}
		old, err := argString("string.replace", args, 1)
		if err != nil {
			return nil, err
		}
		replacement, err := argString("string.replace", args, 2)
		if err != nil {
			return nil, err
		}
		return String(strings.ReplaceAll(s, old, replacement)), nil
	})
}

// runeAt returns the character of args[0] at position args[1].
func runeAt(fn string, args []Value) (rune, error) {
	s, err := argString(fn, args, 0)
	if err != nil {
		return 0, err
	}
	i, err := argInt(fn, args, 1)
	if err != nil {
		return 0, err
	}
	runes := []rune(s)
	if i < 0 || i >= len(runes) {
		return 0, NewRuntimeError(ErrorIndexOutOfRange, "%s: index %d out of range for string of length %d", fn, i, len(runes))
	}
	return runes[i], nil
}

// clampRange resolves slice bounds against a sequence of length n.
func clampRange(start, end, n int) (int, int) {
	resolve := func(i int) int {
		if i < 0 {
			i += n
		}
		return min(max(i, 0), n)
	}
	start, end = resolve(start), resolve(end)
	if start > end {
		start = end
	}
	return start, end
}
