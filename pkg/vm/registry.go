package vm

import (
	"math"
	"sort"
)

// Registry holds the built-in modules. It is assembled once by NewRegistry
// and never modified afterwards, so every thread reads it without locking.
// Identifiers resolve through the scope chain first, so a script may shadow a
// module name with its own variable.
type Registry struct {
	globals map[string]Value
}

// NewRegistry builds the console, random, string, array, time, file, data
// and thread modules plus the pauseExecution function.
func NewRegistry() *Registry {
	b := &registryBuilder{modules: make(map[string]*Object), globals: make(map[string]Value)}

	registerConsoleBuiltins(b)
	registerRandomBuiltins(b)
	registerStringBuiltins(b)
	registerArrayBuiltins(b)
	registerTimeBuiltins(b)
	registerFileBuiltins(b)
	registerDataBuiltins(b)
	registerThreadBuiltins(b)

	for name, module := range b.modules {
		b.globals[name] = module.Freeze()
	}
	return &Registry{globals: b.globals}
}

// Lookup returns the module or global function called name.
func (r *Registry) Lookup(name string) (Value, bool) {
	v, ok := r.globals[name]
	return v, ok
}

// Names returns the sorted global names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.globals))
	for name := range r.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the sorted member names of a module, or nil.
func (r *Registry) Members(module string) []string {
	obj, ok := r.globals[module].(*Object)
	if !ok {
		return nil
	}
	keys := obj.Keys()
	sort.Strings(keys)
	return keys
}

type registryBuilder struct {
	modules map[string]*Object
	globals map[string]Value
}

// RegisterBuiltinFunction adds module.name. max is -1 for variadic functions.
func (b *registryBuilder) RegisterBuiltinFunction(module, name string, min, max int, fn NativeFunc) {
	obj, ok := b.modules[module]
	if !ok {
		obj = NewObject()
		b.modules[module] = obj
	}
	obj.Set(name, NewNative(module+"."+name, min, max, fn))
}

// RegisterGlobalFunction adds a function reachable without a module prefix.
func (b *registryBuilder) RegisterGlobalFunction(name string, min, max int, fn NativeFunc) {
	b.globals[name] = NewNative(name, min, max, fn)
}

// Argument helpers shared by the built-ins. Each returns a TypeError naming
// the function and the argument position on mismatch.

func argNumber(fn string, args []Value, i int) (float64, error) {
	n, ok := args[i].(Number)
	if !ok {
		return 0, argTypeError(fn, i, "number", args[i])
	}
	return float64(n), nil
}

// argInt accepts numbers and truncates any fraction toward zero.
func argInt(fn string, args []Value, i int) (int, error) {
	n, err := argNumber(fn, args, i)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, NewRuntimeError(ErrorTypeMismatch, "%s expects argument %d to be a finite number", fn, i+1)
	}
	if !inIntRange(n) {
		return 0, NewRuntimeError(ErrorTypeMismatch, "%s expects argument %d to be within the integer range, got %s", fn, i+1, Inspect(Number(n)))
	}
	return int(n), nil
}

// inIntRange reports whether n converts to int64 without overflow.
// 2^63 itself is out of range; -2^63 is not.
func inIntRange(n float64) bool {
	return n >= -(1<<63) && n < 1<<63
}

func argString(fn string, args []Value, i int) (string, error) {
	s, ok := args[i].(String)
	if !ok {
		return "", argTypeError(fn, i, "string", args[i])
	}
	return string(s), nil
}

// argText accepts any value and stringifies it.
func argText(args []Value, i int) string {
	return ToString(args[i])
}

func argArray(fn string, args []Value, i int) (*Array, error) {
	a, ok := args[i].(*Array)
	if !ok {
		return nil, argTypeError(fn, i, "array", args[i])
	}
	return a, nil
}

func argCallable(fn string, args []Value, i int) (Value, error) {
	switch args[i].(type) {
	case *Function, *NativeFunction:
		return args[i], nil
	}
	return nil, argTypeError(fn, i, "function", args[i])
}

// optString returns the string at i, or def when the argument is absent or null.
func optString(fn string, args []Value, i int, def string) (string, error) {
	if i >= len(args) || args[i] == NullValue {
		return def, nil
	}
	return argString(fn, args, i)
}

func argTypeError(fn string, i int, want string, got Value) error {
	return NewRuntimeError(ErrorTypeMismatch, "%s expects argument %d to be a %s, got %s", fn, i+1, want, TypeName(got))
}
