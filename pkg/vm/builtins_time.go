package vm

// ISOLayout is the UTC timestamp format returned by time.iso.
const ISOLayout = "2006-01-02T15:04:05Z"

// registerTimeBuiltins registers the time module.
func registerTimeBuiltins(b *registryBuilder) {
	// now: milliseconds since the Unix epoch
	b.RegisterBuiltinFunction("time", "now", 0, 0, func(th *Thread, args []Value) (Value, error) {
		return Number(th.vm.now().UnixMilli()), nil
	})

	b.RegisterBuiltinFunction("time", "iso", 0, 0, func(th *Thread, args []Value) (Value, error) {
		return String(th.vm.now().UTC().Format(ISOLayout)), nil
	})
}
