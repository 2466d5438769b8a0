package vm

import (
	"unicode/utf8"
)

// registerRandomBuiltins registers random number functions.
func registerRandomBuiltins(b *registryBuilder) {
	// random.int(lo, hi) - uniform integer in [lo, hi]; reversed bounds are swapped
	b.RegisterBuiltinFunction("random", "int", 2, 2, func(th *Thread, args []Value) (Value, error) {
		lo, err := argInt("random.int", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := argInt("random.int", args, 1)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			lo, hi = hi, lo
		}

		result := th.vm.random(int64(lo), int64(hi))
		th.vm.log.Debug("random.int called", "lo", lo, "hi", hi, "result", result)
		return Number(result), nil
	})

	// random.pick(array) - uniform element
	b.RegisterBuiltinFunction("random", "pick", 1, 1, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("random.pick", args, 0)
		if err != nil {
			return nil, err
		}
		items := arr.ToSlice()
		if len(items) == 0 {
			return nil, NewRuntimeError(ErrorIndexOutOfRange, "random.pick called with empty array")
		}
		return items[th.vm.random(0, int64(len(items)-1))], nil
	})

	// random.char(lo, hi) - single character whose code point is uniform in [lo, hi]
	b.RegisterBuiltinFunction("random", "char", 2, 2, func(th *Thread, args []Value) (Value, error) {
		lo, err := singleRune("random.char", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := singleRune("random.char", args, 1)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return String(rune(th.vm.random(int64(lo), int64(hi)))), nil
	})
}

func singleRune(fn string, args []Value, i int) (rune, error) {
	s, err := argString(fn, args, i)
	if err != nil {
		return 0, err
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, NewRuntimeError(ErrorTypeMismatch, "%s expects single-character strings, got %q", fn, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
