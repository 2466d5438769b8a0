// Package vm evaluates brew programs.
//
// A program is executed by walking its AST against a chain of Scopes. Every
// evaluation step yields a Signal, so return, break, continue and throw travel
// up the Go call stack as ordinary values until the construct that owns them
// intercepts them.
package vm

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindArray
	KindObject
	KindFunction
	KindNativeFunction
	KindThread
	KindCollection
)

var kindNames = [...]string{
	KindNull:           "null",
	KindNumber:         "number",
	KindString:         "string",
	KindBool:           "bool",
	KindArray:          "array",
	KindObject:         "object",
	KindFunction:       "function",
	KindNativeFunction: "native function",
	KindThread:         "thread",
	KindCollection:     "collection",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a brew runtime value. The set of implementations is closed:
// Number, String, Bool, Null, *Array, *Object, *Function, *NativeFunction,
// *ThreadHandle and *Collection. All of them are comparable, so == is value
// equality for primitives and identity for the shared reference types.
type Value interface {
	Kind() Kind
}

// Number is a double-precision float.
type Number float64

// String is immutable text.
type String string

// Bool is a boolean.
type Bool bool

// Null is the absence of a value.
type Null struct{}

func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Bool) Kind() Kind   { return KindBool }
func (Null) Kind() Kind   { return KindNull }

// NullValue is the only Null.
var NullValue Value = Null{}

// Truthy reports whether v counts as true in a condition. null, false, 0, NaN
// and the empty string are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(v)
	case Number:
		return v != 0 && !math.IsNaN(float64(v))
	case String:
		return v != ""
	}
	return true
}

// Equal compares primitives by value and everything else by identity.
func Equal(a, b Value) bool {
	return a == b
}

// TypeName names v's type for error messages.
func TypeName(v Value) string {
	if c, ok := v.(*Collection); ok {
		return string(c.kind)
	}
	return v.Kind().String()
}

// FormatNumber renders integral values without a fractional part.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// ToString renders v the way console.log and string concatenation show it.
// Strings are shown bare; inside containers they are quoted.
func ToString(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	var sb strings.Builder
	inspect(&sb, v, map[Value]bool{})
	return sb.String()
}

// Inspect renders v with strings quoted.
func Inspect(v Value) string {
	var sb strings.Builder
	inspect(&sb, v, map[Value]bool{})
	return sb.String()
}

func inspect(sb *strings.Builder, v Value, seen map[Value]bool) {
	switch v := v.(type) {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(v)))
	case Number:
		sb.WriteString(FormatNumber(float64(v)))
	case String:
		sb.WriteString(strconv.Quote(string(v)))
	case *Array:
		if seen[v] {
			sb.WriteString("[...]")
			return
		}
		seen[v] = true
		defer delete(seen, v)
		inspectList(sb, "[", "]", v.ToSlice(), seen)
	case *Object:
		if name, message, ok := v.errorParts(); ok {
			sb.WriteString(name + ": " + message)
			return
		}
		if seen[v] {
			sb.WriteString("{...}")
			return
		}
		seen[v] = true
		defer delete(seen, v)
		sb.WriteString("{")
		for i, key := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			field, _ := v.Get(key)
			sb.WriteString(key + ": ")
			inspect(sb, field, seen)
		}
		sb.WriteString("}")
	case *Function:
		if v.Name == "" {
			sb.WriteString("<function>")
		} else {
			sb.WriteString("<function " + v.Name + ">")
		}
	case *NativeFunction:
		sb.WriteString("<native function " + v.Name + ">")
	case *ThreadHandle:
		sb.WriteString("<thread " + strconv.Itoa(v.id) + ">")
	case *Collection:
		if seen[v] {
			sb.WriteString("<" + string(v.kind) + " ...>")
			return
		}
		seen[v] = true
		defer delete(seen, v)
		sb.WriteString("<" + string(v.kind) + " ")
		if v.kind == CollectionMap {
			keys, values := v.entries()
			sb.WriteString("{")
			for i := range keys {
				if i > 0 {
					sb.WriteString(", ")
				}
				inspect(sb, keys[i], seen)
				sb.WriteString(": ")
				inspect(sb, values[i], seen)
			}
			sb.WriteString("}")
		} else {
			inspectList(sb, "[", "]", v.values(), seen)
		}
		sb.WriteString(">")
	default:
		sb.WriteString("<unknown>")
	}
}

func inspectList(sb *strings.Builder, open, close string, items []Value, seen map[Value]bool) {
	sb.WriteString(open)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		inspect(sb, item, seen)
	}
	sb.WriteString(close)
}
