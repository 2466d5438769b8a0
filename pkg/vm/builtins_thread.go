package vm

import (
	"math"
	"time"
)

// registerThreadBuiltins registers thread.run, thread.sleep and the global
// pauseExecution.
func registerThreadBuiltins(b *registryBuilder) {
	// thread.run(fn) starts fn on a new thread and returns its handle at once
	b.RegisterBuiltinFunction("thread", "run", 1, 1, func(th *Thread, args []Value) (Value, error) {
		fn, err := argCallable("thread.run", args, 0)
		if err != nil {
			return nil, err
		}
		return th.Spawn(fn), nil
	})

	b.RegisterBuiltinFunction("thread", "sleep", 1, 1, func(th *Thread, args []Value) (Value, error) {
		return nil, sleepMillis(th, "thread.sleep", args)
	})

	b.RegisterGlobalFunction("pauseExecution", 1, 1, func(th *Thread, args []Value) (Value, error) {
		return nil, sleepMillis(th, "pauseExecution", args)
	})
}

// sleepMillis suspends the calling thread; negative durations do not sleep.
func sleepMillis(th *Thread, fn string, args []Value) error {
	ms, err := argNumber(fn, args, 0)
	if err != nil {
		return err
	}
	if math.IsNaN(ms) || ms*float64(time.Millisecond) >= math.MaxInt64 {
		return NewRuntimeError(ErrorTypeMismatch, "%s expects a duration in milliseconds, got %s", fn, Inspect(Number(ms)))
	}
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms * float64(time.Millisecond))
	th.vm.log.Debug(fn+" called", "thread", th.id, "duration", d)
	return th.Sleep(d)
}
