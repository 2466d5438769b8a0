package vm

import (
	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/compiler/token"
)

// Function is a closure: parameters and body plus the scope active where the
// function was defined. Each call runs in a fresh child of Env.
type Function struct {
	Name       string
	Parameters []string
	Body       *ast.BlockStatement
	Env        *Scope
	Span       token.Span
}

func (*Function) Kind() Kind { return KindFunction }

// NativeFunc is the signature for built-in functions. Argument counts are
// checked against the owning NativeFunction before Fn is called.
type NativeFunc func(th *Thread, args []Value) (Value, error)

// NativeFunction is a built-in callable.
type NativeFunction struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      NativeFunc
}

func (*NativeFunction) Kind() Kind { return KindNativeFunction }

// NewNative creates a NativeFunction accepting between min and max arguments.
func NewNative(name string, min, max int, fn NativeFunc) *NativeFunction {
	return &NativeFunction{Name: name, MinArgs: min, MaxArgs: max, Fn: fn}
}

// acceptsArgs reports whether n arguments satisfy the declared arity.
func (f *NativeFunction) acceptsArgs(n int) bool {
	return n >= f.MinArgs && (f.MaxArgs < 0 || n <= f.MaxArgs)
}
