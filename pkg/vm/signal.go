package vm

import (
	"github.com/zurustar/brew/pkg/compiler/token"
)

// SignalKind says how an evaluation step completed.
type SignalKind int

const (
	// SignalNormal carries the value of a completed expression or statement.
	SignalNormal SignalKind = iota
	// SignalReturn unwinds to the nearest function call.
	SignalReturn
	// SignalBreak and SignalContinue unwind to the nearest loop.
	SignalBreak
	SignalContinue
	// SignalThrow unwinds to the nearest try with a catch clause.
	SignalThrow
	// SignalFatal aborts the whole run. try does not intercept it and
	// finally blocks are skipped.
	SignalFatal
)

func (k SignalKind) String() string {
	switch k {
	case SignalNormal:
		return "normal"
	case SignalReturn:
		return "return"
	case SignalBreak:
		return "break"
	case SignalContinue:
		return "continue"
	case SignalThrow:
		return "throw"
	case SignalFatal:
		return "fatal"
	}
	return "unknown"
}

// Signal is the result of every evaluation step.
type Signal struct {
	Kind  SignalKind
	Value Value
	Span  token.Span // origin of a throw
	Err   error      // cause of a fatal signal
}

// Abrupt reports whether evaluation must stop and hand the signal upward.
func (s Signal) Abrupt() bool {
	return s.Kind != SignalNormal
}

func normal(v Value) Signal {
	return Signal{Kind: SignalNormal, Value: v}
}

var (
	normalNull     = Signal{Kind: SignalNormal, Value: NullValue}
	breakSignal    = Signal{Kind: SignalBreak, Value: NullValue}
	continueSignal = Signal{Kind: SignalContinue, Value: NullValue}
)

func returnSignal(v Value) Signal {
	return Signal{Kind: SignalReturn, Value: v}
}

func throwSignal(v Value, span token.Span) Signal {
	return Signal{Kind: SignalThrow, Value: v, Span: span}
}

func fatalSignal(err error) Signal {
	return Signal{Kind: SignalFatal, Value: NullValue, Err: err}
}
