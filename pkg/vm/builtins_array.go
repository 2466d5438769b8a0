package vm

// registerArrayBuiltins registers array-related built-in functions.
// Arrays are shared by reference, so push, pop and shift mutate the caller's array.
func registerArrayBuiltins(b *registryBuilder) {
	// length: current element count
	b.RegisterBuiltinFunction("array", "length", 1, 1, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.length", args, 0)
		if err != nil {
			return nil, err
		}
		return Number(arr.Len()), nil
	})

	// contains: membership by ==
	b.RegisterBuiltinFunction("array", "contains", 2, 2, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.contains", args, 0)
		if err != nil {
			return nil, err
		}
		return Bool(arr.Contains(args[1])), nil
	})

	b.RegisterBuiltinFunction("array", "indexOf", 2, 2, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.indexOf", args, 0)
		if err != nil {
			return nil, err
		}
		return Number(arr.IndexOf(args[1])), nil
	})

	// shift: remove and return the first element; an empty array is an error
	b.RegisterBuiltinFunction("array", "shift", 1, 1, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.shift", args, 0)
		if err != nil {
			return nil, err
		}
		v, ok := arr.Shift()
		if !ok {
			return nil, NewRuntimeError(ErrorIndexOutOfRange, "array.shift called on empty array")
		}
		th.vm.log.Debug("array.shift called", "remaining", arr.Len())
		return v, nil
	})

	// push(arr, ...values) returns the new length
	b.RegisterBuiltinFunction("array", "push", 2, -1, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.push", args, 0)
		if err != nil {
			return nil, err
		}
		return Number(arr.Push(args[1:]...)), nil
	})

	// pop returns null for an empty array
	b.RegisterBuiltinFunction("array", "pop", 1, 1, func(th *Thread, args []Value) (Value, error) {
		arr, err := argArray("array.pop", args, 0)
		if err != nil {
			return nil, err
		}
		v, ok := arr.Pop()
		if !ok {
			return NullValue, nil
		}
		return v, nil
	})
}
