package vm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/zurustar/brew/pkg/compiler"
	"github.com/zurustar/brew/pkg/compiler/ast"
	"github.com/zurustar/brew/pkg/console"
	"github.com/zurustar/brew/pkg/fileutil"
	"github.com/zurustar/brew/pkg/logger"
)

// MaxStackDepth is the default maximum call depth before stack overflow.
const MaxStackDepth = 1000

// VM runs brew programs. A VM owns the global scope, so successive Eval calls
// share state; Run always starts from a fresh global scope.
type VM struct {
	registry *Registry
	globals  *Scope

	// Output
	stdout    io.Writer
	stderr    io.Writer
	colorMode console.Mode
	printer   *console.Printer

	// Host services
	fs    fileutil.FileSystem
	rng   *rand.Rand
	rngMu sync.Mutex
	now   func() time.Time

	// Configuration
	timeout  time.Duration
	maxDepth int

	threads threadManager
	running bool
	mu      sync.Mutex

	log *slog.Logger
}

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}

// WithTimeout sets the execution timeout for Run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(vm *VM) {
		vm.timeout = timeout
	}
}

// WithStdout sets where console output goes.
func WithStdout(w io.Writer) Option {
	return func(vm *VM) {
		vm.stdout = w
	}
}

// WithStderr sets where failures of threads that were never joined are reported.
func WithStderr(w io.Writer) Option {
	return func(vm *VM) {
		vm.stderr = w
	}
}

// WithFileSystem sets the file system behind the file module.
func WithFileSystem(fsys fileutil.FileSystem) Option {
	return func(vm *VM) {
		vm.fs = fsys
	}
}

// WithColor sets when console output is colorized.
func WithColor(mode console.Mode) Option {
	return func(vm *VM) {
		vm.colorMode = mode
	}
}

// WithMaxDepth sets the maximum call depth.
func WithMaxDepth(depth int) Option {
	return func(vm *VM) {
		if depth > 0 {
			vm.maxDepth = depth
		}
	}
}

// WithRandSource makes the random module deterministic.
func WithRandSource(src rand.Source) Option {
	return func(vm *VM) {
		vm.rng = rand.New(src)
	}
}

// WithClock replaces the wall clock used by the time module.
func WithClock(now func() time.Time) Option {
	return func(vm *VM) {
		vm.now = now
	}
}

// New creates a new VM instance with the given options.
func New(opts ...Option) *VM {
	vm := &VM{
		registry:  NewRegistry(),
		globals:   NewScope(nil),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		colorMode: console.ModeAuto,
		fs:        fileutil.NewRealFS(""),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
		maxDepth:  MaxStackDepth,
		log:       logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	vm.printer = console.NewPrinter(vm.stdout, vm.colorMode)
	return vm
}

// Registry returns the built-in modules.
func (vm *VM) Registry() *Registry {
	return vm.registry
}

// Globals returns the global scope used by Eval.
func (vm *VM) Globals() *Scope {
	return vm.globals
}

// Run compiles and executes source in a fresh global scope. It returns nil
// on normal completion, a *compiler.CompileError when the source is
// malformed, an *UncaughtError when a throw reaches the top level, or a
// fatal *RuntimeError (stack overflow, timeout, cancellation).
//
// Threads the program spawned but never joined are not waited for.
func (vm *VM) Run(ctx context.Context, source string) error {
	program, err := compiler.Compile(source)
	if err != nil {
		return err
	}
	return vm.RunProgram(ctx, program, source)
}

// RunProgram executes an already compiled program. source is used only to
// render error context.
func (vm *VM) RunProgram(ctx context.Context, program *ast.Program, source string) error {
	vm.mu.Lock()
	if vm.running {
		vm.mu.Unlock()
		return fmt.Errorf("VM is already running")
	}
	vm.running = true
	vm.globals = NewScope(nil)
	vm.mu.Unlock()

	defer func() {
		vm.mu.Lock()
		vm.running = false
		vm.mu.Unlock()
	}()

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if vm.timeout > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeoutCause(runCtx, vm.timeout,
			NewRuntimeError(ErrorTimeout, "execution timed out after %s", vm.timeout))
		defer timeoutCancel()
	}

	vm.log.Info("VM started", "statements", len(program.Statements), "timeout", vm.timeout, "max_depth", vm.maxDepth)

	main := vm.newThread(runCtx, cancel)
	sig := main.execProgram(program, vm.globals)
	vm.threads.reportUnjoined(vm)

	if err := vm.outcome(sig, source); err != nil {
		vm.log.Info("VM finished with error", "error", err)
		return err
	}
	vm.log.Info("VM finished")
	return nil
}

// Eval executes source in the VM's persistent global scope and returns the
// value of the last expression statement. It is used by the REPL. The
// timeout applies to each call; threads spawned by the source are cancelled
// with it.
func (vm *VM) Eval(ctx context.Context, source string) (Value, error) {
	program, err := compiler.Compile(source)
	if err != nil {
		return nil, err
	}

	if vm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, vm.timeout,
			NewRuntimeError(ErrorTimeout, "execution timed out after %s", vm.timeout))
		defer cancel()
	}

	th := vm.newThread(ctx, nil)
	sig := th.execStatements(program.Statements, vm.globals)
	if err := vm.outcome(sig, source); err != nil {
		return nil, err
	}
	if sig.Value == nil {
		return NullValue, nil
	}
	return sig.Value, nil
}

// outcome converts the final signal of a run into the error reported to the caller.
func (vm *VM) outcome(sig Signal, source string) error {
	switch sig.Kind {
	case SignalThrow:
		return &UncaughtError{
			Value:   sig.Value,
			Message: ToString(sig.Value),
			Span:    sig.Span,
			Context: compiler.GenerateErrorContext(source, sig.Span.StartLine, sig.Span.StartColumn),
		}
	case SignalFatal:
		return sig.Err
	}
	return nil
}

// random returns a uniform integer in [lo, hi]. Any lo <= hi is accepted,
// including the full int64 range.
func (vm *VM) random(lo, hi int64) int64 {
	vm.rngMu.Lock()
	defer vm.rngMu.Unlock()

	width := uint64(hi) - uint64(lo)
	if width == math.MaxUint64 {
		return int64(vm.rng.Uint64())
	}
	return lo + int64(vm.rng.Uint64N(width+1))
}
