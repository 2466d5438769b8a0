package vm

import (
	"math"
)

// binaryOp applies a non-short-circuit binary operator.
func binaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return Bool(Equal(left, right)), nil
	case "!=":
		return Bool(!Equal(left, right)), nil
	case "+":
		return add(left, right)
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	}

	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, NewRuntimeError(ErrorTypeMismatch, "cannot apply '%s' to %s and %s", op, TypeName(left), TypeName(right))
	}

	switch op {
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, NewRuntimeError(ErrorDivisionByZero, "division by zero")
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return nil, NewRuntimeError(ErrorDivisionByZero, "modulo by zero")
		}
		return Number(math.Mod(float64(l), float64(r))), nil
	}

	return nil, NewRuntimeError(ErrorTypeMismatch, "unknown operator %s", op)
}

// add adds numbers and concatenates when either side is a string.
func add(left, right Value) (Value, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if lok && rok {
		return l + r, nil
	}

	_, lstr := left.(String)
	_, rstr := right.(String)
	if lstr || rstr {
		return String(ToString(left) + ToString(right)), nil
	}

	return nil, NewRuntimeError(ErrorTypeMismatch, "cannot apply '+' to %s and %s", TypeName(left), TypeName(right))
}

// compare orders two numbers or two strings.
func compare(op string, left, right Value) (Value, error) {
	var c int
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		if !ok {
			break
		}
		if math.IsNaN(float64(l)) || math.IsNaN(float64(r)) {
			return Bool(false), nil
		}
		c = cmpOrdered(l, r)
		return Bool(applyComparison(op, c)), nil
	case String:
		r, ok := right.(String)
		if !ok {
			break
		}
		c = cmpOrdered(l, r)
		return Bool(applyComparison(op, c)), nil
	}
	return nil, NewRuntimeError(ErrorTypeMismatch, "cannot compare %s with %s", TypeName(left), TypeName(right))
}

func cmpOrdered[T Number | String](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func applyComparison(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	}
	return c >= 0
}
