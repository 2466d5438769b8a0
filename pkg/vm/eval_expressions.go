package vm

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/compiler/token"
)

// eval evaluates an expression. A normal signal carries the value.
func (th *Thread) eval(expr ast.Expression, scope *Scope) Signal {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return normal(Number(e.Value))
	case *ast.StringLiteral:
		return normal(String(e.Value))
	case *ast.BooleanLiteral:
		return normal(Bool(e.Value))
	case *ast.NullLiteral:
		return normalNull

	case *ast.Identifier:
		return th.lookup(e.Value, scope, e.Span)

	case *ast.ArrayLiteral:
		elements := make([]Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			sig := th.eval(el, scope)
			if sig.Abrupt() {
				return sig
			}
			elements = append(elements, sig.Value)
		}
		return normal(NewArray(elements))

	case *ast.ObjectLiteral:
		obj := NewObject()
		for _, pair := range e.Pairs {
			sig := th.eval(pair.Value, scope)
			if sig.Abrupt() {
				return sig
			}
			obj.Set(pair.Key, sig.Value)
		}
		return normal(obj)

	case *ast.FunctionLiteral:
		fn := &Function{
			Name:       e.Name,
			Parameters: e.Parameters,
			Body:       e.Body,
			Env:        scope,
			Span:       e.Span,
		}
		// A named function expression can call itself by name.
		if e.Name != "" {
			fn.Env = NewScope(scope)
			fn.Env.Define(e.Name, fn)
		}
		return normal(fn)

	case *ast.PrefixExpression:
		return th.evalPrefix(e, scope)

	case *ast.InfixExpression:
		return th.evalInfix(e, scope)

	case *ast.AssignExpression:
		return th.evalAssign(e, scope)

	case *ast.CallExpression:
		callee := th.eval(e.Function, scope)
		if callee.Abrupt() {
			return callee
		}
		args := make([]Value, 0, len(e.Arguments))
		for _, arg := range e.Arguments {
			sig := th.eval(arg, scope)
			if sig.Abrupt() {
				return sig
			}
			args = append(args, sig.Value)
		}
		return th.callValue(callee.Value, args, e.Span)

	case *ast.IndexExpression:
		left := th.eval(e.Left, scope)
		if left.Abrupt() {
			return left
		}
		index := th.eval(e.Index, scope)
		if index.Abrupt() {
			return index
		}
		return th.getIndex(left.Value, index.Value, e.Span)

	case *ast.MemberExpression:
		object := th.eval(e.Object, scope)
		if object.Abrupt() {
			return object
		}
		return th.getMember(object.Value, e.Property, e.Span)
	}

	return fatalSignal(fmt.Errorf("unknown expression type %T", expr))
}

// lookup resolves a name through the scope chain, then the built-in registry.
func (th *Thread) lookup(name string, scope *Scope, span token.Span) Signal {
	if v, ok := scope.Get(name); ok {
		return normal(v)
	}
	if v, ok := th.vm.registry.Lookup(name); ok {
		return normal(v)
	}
	return th.throwError(ErrorReference, span, "%s is not defined", name)
}

func (th *Thread) evalPrefix(e *ast.PrefixExpression, scope *Scope) Signal {
	right := th.eval(e.Right, scope)
	if right.Abrupt() {
		return right
	}

	switch e.Operator {
	case "!":
		return normal(Bool(!Truthy(right.Value)))
	case "-":
		n, ok := right.Value.(Number)
		if !ok {
			return th.throwError(ErrorTypeMismatch, e.Span, "cannot negate %s", TypeName(right.Value))
		}
		return normal(-n)
	}
	return th.throwError(ErrorTypeMismatch, e.Span, "unknown operator %s", e.Operator)
}

func (th *Thread) evalInfix(e *ast.InfixExpression, scope *Scope) Signal {
	left := th.eval(e.Left, scope)
	if left.Abrupt() {
		return left
	}

	// && and || yield the operand that decided the result.
	switch e.Operator {
	case "&&":
		if !Truthy(left.Value) {
			return left
		}
		return th.eval(e.Right, scope)
	case "||":
		if Truthy(left.Value) {
			return left
		}
		return th.eval(e.Right, scope)
	}

	right := th.eval(e.Right, scope)
	if right.Abrupt() {
		return right
	}

	value, err := binaryOp(e.Operator, left.Value, right.Value)
	if err != nil {
		return th.errorSignal(err, e.Span)
	}
	return normal(value)
}

func (th *Thread) evalAssign(e *ast.AssignExpression, scope *Scope) Signal {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		value := th.eval(e.Value, scope)
		if value.Abrupt() {
			return value
		}
		if !scope.Assign(target.Value, value.Value) {
			return th.throwError(ErrorReference, target.Span, "cannot assign to undeclared variable %s", target.Value)
		}
		return value

	case *ast.MemberExpression:
		object := th.eval(target.Object, scope)
		if object.Abrupt() {
			return object
		}
		value := th.eval(e.Value, scope)
		if value.Abrupt() {
			return value
		}
		if sig := th.setMember(object.Value, target.Property, value.Value, target.Span); sig.Abrupt() {
			return sig
		}
		return value

	case *ast.IndexExpression:
		object := th.eval(target.Left, scope)
		if object.Abrupt() {
			return object
		}
		index := th.eval(target.Index, scope)
		if index.Abrupt() {
			return index
		}
		value := th.eval(e.Value, scope)
		if value.Abrupt() {
			return value
		}
		if sig := th.setIndex(object.Value, index.Value, value.Value, target.Span); sig.Abrupt() {
			return sig
		}
		return value
	}

	return th.throwError(ErrorTypeMismatch, e.Span, "invalid assignment target")
}

// Member and index access

func (th *Thread) getMember(object Value, name string, span token.Span) Signal {
	switch o := object.(type) {
	case *Object:
		if v, ok := o.Get(name); ok {
			return normal(v)
		}
		return th.throwError(ErrorReference, span, "property '%s' not found", name)

	case *Array:
		if name == "length" {
			return normal(Number(o.Len()))
		}
		if fn, ok := o.Method(name); ok {
			return normal(fn)
		}
		return th.throwError(ErrorReference, span, "array has no property '%s'", name)

	case String:
		if name == "length" {
			return normal(Number(utf8.RuneCountInString(string(o))))
		}
		return th.throwError(ErrorReference, span, "string has no property '%s'", name)

	case *Collection:
		if m, ok := o.Method(name); ok {
			return normal(m)
		}
		return th.throwError(ErrorReference, span, "%s has no method '%s'", o.kind, name)

	case *ThreadHandle:
		if m, ok := o.Method(name); ok {
			return normal(m)
		}
		return th.throwError(ErrorReference, span, "thread has no method '%s'", name)
	}

	return th.throwError(ErrorTypeMismatch, span, "cannot read property '%s' of %s", name, TypeName(object))
}

func (th *Thread) setMember(object Value, name string, value Value, span token.Span) Signal {
	o, ok := object.(*Object)
	if !ok {
		return th.throwError(ErrorTypeMismatch, span, "cannot set property '%s' on %s", name, TypeName(object))
	}
	if !o.Set(name, value) {
		return th.throwError(ErrorTypeMismatch, span, "cannot assign to '%s' of a read-only object", name)
	}
	return normalNull
}

func (th *Thread) getIndex(object, index Value, span token.Span) Signal {
	switch o := object.(type) {
	case *Array:
		i, sig := th.indexArg(index, span)
		if sig.Abrupt() {
			return sig
		}
		v, ok := o.Get(i)
		if !ok {
			return th.throwError(ErrorIndexOutOfRange, span, "index %d out of range for array of length %d", i, o.Len())
		}
		return normal(v)

	case *Object:
		key, ok := index.(String)
		if !ok {
			return th.throwError(ErrorTypeMismatch, span, "object keys must be strings, got %s", TypeName(index))
		}
		return th.getMember(o, string(key), span)

	case String:
		i, sig := th.indexArg(index, span)
		if sig.Abrupt() {
			return sig
		}
		runes := []rune(string(o))
		if i < 0 || i >= len(runes) {
			return th.throwError(ErrorIndexOutOfRange, span, "index %d out of range for string of length %d", i, len(runes))
		}
		return normal(String(runes[i]))
	}

	return th.throwError(ErrorTypeMismatch, span, "cannot index %s", TypeName(object))
}

func (th *Thread) setIndex(object, index, value Value, span token.Span) Signal {
	switch o := object.(type) {
	case *Array:
		i, sig := th.indexArg(index, span)
		if sig.Abrupt() {
			return sig
		}
		if !o.Set(i, value) {
			return th.throwError(ErrorIndexOutOfRange, span, "index %d out of range for array of length %d", i, o.Len())
		}
		return normalNull

	case *Object:
		key, ok := index.(String)
		if !ok {
			return th.throwError(ErrorTypeMismatch, span, "object keys must be strings, got %s", TypeName(index))
		}
		return th.setMember(o, string(key), value, span)
	}

	return th.throwError(ErrorTypeMismatch, span, "cannot assign by index to %s", TypeName(object))
}

func (th *Thread) indexArg(index Value, span token.Span) (int, Signal) {
	n, ok := index.(Number)
	if !ok || math.IsInf(float64(n), 0) || float64(n) != math.Trunc(float64(n)) || !inIntRange(float64(n)) {
		return 0, th.throwError(ErrorTypeMismatch, span, "index must be an integer, got %s", Inspect(index))
	}
	return int(n), normalNull
}
