package vm

// registerDataBuiltins registers constructors for the native collections.
func registerDataBuiltins(b *registryBuilder) {
	b.RegisterBuiltinFunction("data", "queue", 0, 0, func(th *Thread, args []Value) (Value, error) {
		return NewQueue(), nil
	})

	b.RegisterBuiltinFunction("data", "stack", 0, 0, func(th *Thread, args []Value) (Value, error) {
		return NewStack(), nil
	})

	// set(...initial)
	b.RegisterBuiltinFunction("data", "set", 0, -1, func(th *Thread, args []Value) (Value, error) {
		return NewSet(args...), nil
	})

	b.RegisterBuiltinFunction("data", "map", 0, 0, func(th *Thread, args []Value) (Value, error) {
		return NewMap(), nil
	})
}
