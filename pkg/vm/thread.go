package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Thread is one execution context: a logical thread of interpretation with
// its own call depth. The main program runs on one Thread and every
// thread.run call starts another on its own goroutine.
type Thread struct {
	vm    *VM
	id    int
	ctx   context.Context
	done  <-chan struct{}
	abort context.CancelCauseFunc // ends the whole run; nil outside Run
	depth int
}

func (vm *VM) newThread(ctx context.Context, abort context.CancelCauseFunc) *Thread {
	return &Thread{
		vm:    vm,
		id:    vm.threads.nextID(),
		ctx:   ctx,
		done:  ctx.Done(),
		abort: abort,
	}
}

// VM returns the VM the thread belongs to.
func (th *Thread) VM() *VM {
	return th.vm
}

// Context returns the context that cancels the thread.
func (th *Thread) Context() context.Context {
	return th.ctx
}

// interrupted returns a fatal error once the run has been cancelled.
func (th *Thread) interrupted() error {
	select {
	case <-th.done:
		return th.cancelError()
	default:
		return nil
	}
}

func (th *Thread) cancelError() error {
	cause := context.Cause(th.ctx)
	var rerr *RuntimeError
	if errors.As(cause, &rerr) && rerr.IsFatal() {
		return rerr
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return &RuntimeError{Type: ErrorTimeout, Message: "execution timed out", Err: cause}
	}
	return &RuntimeError{Type: ErrorCancelled, Message: "execution cancelled", Err: cause}
}

// Sleep suspends only the calling thread for d, waking early with a fatal
// error if the run is cancelled.
func (th *Thread) Sleep(d time.Duration) error {
	if d <= 0 {
		return th.interrupted()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-th.done:
		return th.cancelError()
	}
}

// ThreadHandle is the value returned by thread.run.
type ThreadHandle struct {
	id      int
	done    chan struct{}
	result  Signal
	joined  atomic.Bool
	methods map[string]*NativeFunction
}

func (*ThreadHandle) Kind() Kind { return KindThread }

// ID returns the thread's number.
func (h *ThreadHandle) ID() int {
	return h.id
}

// Method returns the bound method called name (join or isDone).
func (h *ThreadHandle) Method(name string) (*NativeFunction, bool) {
	m, ok := h.methods[name]
	return m, ok
}

// Done reports whether the thread has terminated.
func (h *ThreadHandle) Done() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Join blocks the calling thread until h terminates. It returns the spawned
// function's result, a *ThrownError carrying its uncaught throw, or the
// fatal error that ended it. Join may be called any number of times.
func (h *ThreadHandle) Join(caller *Thread) (Value, error) {
	select {
	case <-h.done:
	case <-caller.done:
		return nil, caller.cancelError()
	}

	h.joined.Store(true)
	caller.vm.log.Debug("thread joined", "thread", h.id, "by", caller.id, "result", h.result.Kind.String())

	switch h.result.Kind {
	case SignalThrow:
		return nil, &ThrownError{Value: h.result.Value, Span: h.result.Span}
	case SignalFatal:
		return nil, h.result.Err
	}
	return h.result.Value, nil
}

// Spawn runs fn with no arguments on a new goroutine and returns its handle
// immediately. Values fn captured are shared with the caller; the join
// provides the happens-before edge that makes the spawned thread's writes
// visible.
func (th *Thread) Spawn(fn Value) *ThreadHandle {
	child := th.vm.newThread(th.ctx, th.abort)
	h := &ThreadHandle{id: child.id, done: make(chan struct{})}
	h.methods = map[string]*NativeFunction{
		"join": NewNative("thread.join", 0, 0, func(caller *Thread, _ []Value) (Value, error) {
			return h.Join(caller)
		}),
		"isDone": NewNative("thread.isDone", 0, 0, func(_ *Thread, _ []Value) (Value, error) {
			return Bool(h.Done()), nil
		}),
	}

	th.vm.threads.add(h)
	th.vm.log.Debug("thread spawned", "thread", h.id, "parent", th.id)

	go func() {
		defer close(h.done)
		h.result = child.callValue(fn, nil, fnSpan(fn))
		if h.result.Kind == SignalFatal && child.abort != nil {
			var rerr *RuntimeError
			if errors.As(h.result.Err, &rerr) && rerr.Type == ErrorStackOverflow {
				child.abort(rerr)
			}
		}
		th.vm.log.Debug("thread finished", "thread", h.id, "result", h.result.Kind.String())
	}()

	return h
}

// threadManager numbers threads and remembers handles so failures of threads
// nobody joined can be reported when the run ends.
type threadManager struct {
	mu      sync.Mutex
	lastID  int
	handles []*ThreadHandle
}

func (m *threadManager) nextID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	return m.lastID
}

func (m *threadManager) add(h *ThreadHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles = append(m.handles, h)
}

// reportUnjoined logs threads that already failed without being joined and
// forgets every handle of the finished run.
func (m *threadManager) reportUnjoined(vm *VM) {
	m.mu.Lock()
	handles := m.handles
	m.handles = nil
	m.mu.Unlock()

	for _, h := range handles {
		if h.joined.Load() || !h.Done() {
			continue
		}
		switch h.result.Kind {
		case SignalThrow:
			vm.log.Warn("thread failed and was never joined", "thread", h.id, "error", ToString(h.result.Value))
			fmt.Fprintf(vm.stderr, "thread %d: uncaught %s\n", h.id, ToString(h.result.Value))
		case SignalFatal:
			vm.log.Warn("thread aborted and was never joined", "thread", h.id, "error", h.result.Err)
			fmt.Fprintf(vm.stderr, "thread %d: %v\n", h.id, h.result.Err)
		}
	}
}
