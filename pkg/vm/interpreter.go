package vm

import (
	"errors"
	"fmt"

	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/compiler/token"
)

// execProgram runs the top-level statements of a program.
func (th *Thread) execProgram(program *ast.Program, scope *Scope) Signal {
	sig := th.execStatements(program.Statements, scope)
	if sig.Kind == SignalThrow || sig.Kind == SignalFatal {
		return sig
	}
	return normalNull
}

// execStatements runs statements in scope and yields the value of the last
// one, or the first abrupt signal.
func (th *Thread) execStatements(stmts []ast.Statement, scope *Scope) Signal {
	result := normalNull
	for _, stmt := range stmts {
		result = th.exec(stmt, scope)
		if result.Abrupt() {
			return result
		}
	}
	return result
}

// execBlock runs a block in a new child scope.
func (th *Thread) execBlock(block *ast.BlockStatement, scope *Scope) Signal {
	return th.execStatements(block.Statements, NewScope(scope))
}

func (th *Thread) exec(stmt ast.Statement, scope *Scope) Signal {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return th.eval(s.Expression, scope)

	case *ast.LetStatement:
		value := NullValue
		if s.Value != nil {
			sig := th.eval(s.Value, scope)
			if sig.Abrupt() {
				return sig
			}
			value = sig.Value
			if _, literal := s.Value.(*ast.FunctionLiteral); literal {
				if fn, ok := value.(*Function); ok && fn.Name == "" {
					fn.Name = s.Name
				}
			}
		}
		scope.Define(s.Name, value)
		return normalNull

	case *ast.FunctionStatement:
		scope.Define(s.Name, &Function{
			Name:       s.Name,
			Parameters: s.Function.Parameters,
			Body:       s.Function.Body,
			Env:        scope,
			Span:       s.Function.Span,
		})
		return normalNull

	case *ast.BlockStatement:
		return th.execBlock(s, scope)

	case *ast.IfStatement:
		cond := th.eval(s.Condition, scope)
		if cond.Abrupt() {
			return cond
		}
		if Truthy(cond.Value) {
			return th.execBlock(s.Consequence, scope)
		}
		if s.Alternative != nil {
			return th.exec(s.Alternative, scope)
		}
		return normalNull

	case *ast.WhileStatement:
		return th.execWhile(s, scope)

	case *ast.ForStatement:
		return th.execFor(s, scope)

	case *ast.ReturnStatement:
		if s.Value == nil {
			return returnSignal(NullValue)
		}
		sig := th.eval(s.Value, scope)
		if sig.Abrupt() {
			return sig
		}
		return returnSignal(sig.Value)

	case *ast.BreakStatement:
		return breakSignal

	case *ast.ContinueStatement:
		return continueSignal

	case *ast.ThrowStatement:
		sig := th.eval(s.Value, scope)
		if sig.Abrupt() {
			return sig
		}
		return throwSignal(sig.Value, s.Span)

	case *ast.TryStatement:
		return th.execTry(s, scope)
	}

	return fatalSignal(fmt.Errorf("unknown statement type %T", stmt))
}

func (th *Thread) execWhile(s *ast.WhileStatement, scope *Scope) Signal {
	for {
		if err := th.interrupted(); err != nil {
			return fatalSignal(err)
		}

		cond := th.eval(s.Condition, scope)
		if cond.Abrupt() {
			return cond
		}
		if !Truthy(cond.Value) {
			return normalNull
		}

		sig := th.execBlock(s.Body, scope)
		switch sig.Kind {
		case SignalBreak:
			return normalNull
		case SignalNormal, SignalContinue:
		default:
			return sig
		}
	}
}

func (th *Thread) execFor(s *ast.ForStatement, scope *Scope) Signal {
	loopScope := NewScope(scope)
	if s.Init != nil {
		if sig := th.exec(s.Init, loopScope); sig.Abrupt() {
			return sig
		}
	}

	for {
		if err := th.interrupted(); err != nil {
			return fatalSignal(err)
		}

		if s.Condition != nil {
			cond := th.eval(s.Condition, loopScope)
			if cond.Abrupt() {
				return cond
			}
			if !Truthy(cond.Value) {
				return normalNull
			}
		}

		sig := th.execBlock(s.Body, loopScope)
		switch sig.Kind {
		case SignalBreak:
			return normalNull
		case SignalNormal, SignalContinue:
		default:
			return sig
		}

		if s.Step != nil {
			if step := th.eval(s.Step, loopScope); step.Abrupt() {
				return step
			}
		}
	}
}

// execTry runs try/catch/finally. finally runs after every outcome except a
// fatal one; a signal raised by finally replaces the pending one, otherwise
// the pending signal resumes.
func (th *Thread) execTry(s *ast.TryStatement, scope *Scope) Signal {
	sig := th.execBlock(s.Body, scope)

	if sig.Kind == SignalThrow && s.Catch != nil {
		catchScope := NewScope(scope)
		if s.CatchName != "" {
			catchScope.Define(s.CatchName, sig.Value)
		}
		sig = th.execStatements(s.Catch.Statements, catchScope)
	}

	if sig.Kind == SignalFatal {
		return sig
	}

	if s.Finally != nil {
		if fin := th.execBlock(s.Finally, scope); fin.Abrupt() {
			return fin
		}
	}

	if sig.Abrupt() {
		return sig
	}
	return normalNull
}

// Calls

// callValue invokes an interpreted or native function. span locates the call
// for error reporting.
func (th *Thread) callValue(callee Value, args []Value, span token.Span) Signal {
	switch fn := callee.(type) {
	case *Function:
		return th.callFunction(fn, args, span)
	case *NativeFunction:
		return th.callNative(fn, args, span)
	}
	return th.throwError(ErrorTypeMismatch, span, "%s is not callable", TypeName(callee))
}

func (th *Thread) callFunction(fn *Function, args []Value, span token.Span) Signal {
	if len(args) != len(fn.Parameters) {
		return th.throwError(ErrorArity, span, "%s expects %d argument(s), got %d",
			displayName(fn), len(fn.Parameters), len(args))
	}
	if err := th.interrupted(); err != nil {
		return fatalSignal(err)
	}

	th.depth++
	defer func() { th.depth-- }()
	if th.depth > th.vm.maxDepth {
		return fatalSignal(&RuntimeError{
			Type:    ErrorStackOverflow,
			Message: fmt.Sprintf("maximum call depth of %d exceeded in %s", th.vm.maxDepth, displayName(fn)),
			Span:    span,
		})
	}

	callScope := NewScope(fn.Env)
	for i, name := range fn.Parameters {
		callScope.Define(name, args[i])
	}

	sig := th.execStatements(fn.Body.Statements, callScope)
	switch sig.Kind {
	case SignalReturn:
		return normal(sig.Value)
	case SignalNormal:
		return normalNull
	}
	return sig
}

func (th *Thread) callNative(fn *NativeFunction, args []Value, span token.Span) Signal {
	if !fn.acceptsArgs(len(args)) {
		return th.throwError(ErrorArity, span, "%s expects %s, got %d", fn.Name, arityText(fn), len(args))
	}

	value, err := fn.Fn(th, args)
	if err != nil {
		return th.errorSignal(err, span)
	}
	if value == nil {
		value = NullValue
	}
	return normal(value)
}

// errorSignal turns an error returned by a native function into a throw at
// span, or into a fatal signal for unrecoverable errors.
func (th *Thread) errorSignal(err error, span token.Span) Signal {
	var thrown *ThrownError
	if errors.As(err, &thrown) {
		if thrown.Span.IsZero() {
			return throwSignal(thrown.Value, span)
		}
		return throwSignal(thrown.Value, thrown.Span)
	}

	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		if rerr.IsFatal() {
			return fatalSignal(rerr)
		}
		errSpan := rerr.Span
		if errSpan.IsZero() {
			errSpan = span
		}
		return throwSignal(newErrorObject(rerr.Type, rerr.Message, errSpan), errSpan)
	}

	return throwSignal(newErrorObject(ErrorNative, err.Error(), span), span)
}

// throwError throws a new error object of type errType.
func (th *Thread) throwError(errType ErrorType, span token.Span, format string, args ...any) Signal {
	return throwSignal(newErrorObject(errType, fmt.Sprintf(format, args...), span), span)
}

func displayName(fn *Function) string {
	if fn.Name == "" {
		return "anonymous function"
	}
	return fn.Name
}

func arityText(fn *NativeFunction) string {
	switch {
	case fn.MaxArgs < 0:
		return fmt.Sprintf("at least %d argument(s)", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return fmt.Sprintf("%d argument(s)", fn.MinArgs)
	}
	return fmt.Sprintf("%d to %d arguments", fn.MinArgs, fn.MaxArgs)
}

func fnSpan(fn Value) token.Span {
	if f, ok := fn.(*Function); ok {
		return f.Span
	}
	return token.Span{}
}
