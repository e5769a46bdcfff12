package interpreter

import (
	"context"
	"io"
	"log/slog"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/runtime"
)

// Interpreter evaluates IMP trees. It keeps counters for the most recent
// run, so a single Interpreter must not execute concurrently.
type Interpreter struct {
	logger        *slog.Logger
	maxIterations uint64
	stats         Stats
}

// Stats records work done by the last Execute call.
type Stats struct {
	Commands   uint64
	Iterations uint64
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes debug records about command execution to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxIterations bounds the total number of while-loop body runs in one
// Execute call. Zero means unlimited.
func WithMaxIterations(n uint64) Option {
	return func(i *Interpreter) {
		i.maxIterations = n
	}
}

// New returns an interpreter with no iteration budget and discarded logs.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Stats returns the counters of the last Execute call.
func (i *Interpreter) Stats() Stats {
	return i.stats
}

// evalState carries per-run bookkeeping through command evaluation.
type evalState struct {
	ctx        context.Context
	debug      bool
	commands   uint64
	iterations uint64
}

// EvaluateArith evaluates an arithmetic expression. The environment is only read.
func (i *Interpreter) EvaluateArith(expr ast.Arith, env *runtime.Environment) (uint64, error) {
	return i.evaluateArith(expr, orEmpty(env))
}

// EvaluateBooln evaluates a boolean expression. The environment is only read.
func (i *Interpreter) EvaluateBooln(expr ast.Booln, env *runtime.Environment) (bool, error) {
	return i.evaluateBooln(expr, orEmpty(env))
}

// Execute runs cmd against env and returns the successor environment.
func (i *Interpreter) Execute(cmd ast.Commd, env *runtime.Environment) (*runtime.Environment, error) {
	return i.ExecuteContext(context.Background(), cmd, env)
}

// ExecuteContext runs cmd against env, stopping with ctx.Err() once ctx is
// done. The context is consulted before every loop condition check.
//
// Ownership of env passes to the call: it is updated in place and returned.
// On error the result is nil and env holds the effects of the commands that
// completed before the failure.
func (i *Interpreter) ExecuteContext(ctx context.Context, cmd ast.Commd, env *runtime.Environment) (*runtime.Environment, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	state := &evalState{
		ctx:   ctx,
		debug: i.logger.Enabled(ctx, slog.LevelDebug),
	}
	result, err := i.evaluateCommand(state, cmd, orEmpty(env))
	i.stats = Stats{Commands: state.commands, Iterations: state.iterations}
	if err != nil {
		if state.debug {
			i.logger.DebugContext(ctx, "execution failed", "error", err, "commands", state.commands)
		}
		return nil, err
	}
	return result, nil
}

func orEmpty(env *runtime.Environment) *runtime.Environment {
	if env == nil {
		return runtime.NewEnvironment()
	}
	return env
}

var defaultInterpreter = New()

// EvaluateArith evaluates expr with a default interpreter.
func EvaluateArith(expr ast.Arith, env *runtime.Environment) (uint64, error) {
	return defaultInterpreter.EvaluateArith(expr, env)
}

// EvaluateBooln evaluates expr with a default interpreter.
func EvaluateBooln(expr ast.Booln, env *runtime.Environment) (bool, error) {
	return defaultInterpreter.EvaluateBooln(expr, env)
}

// ExecuteCommand runs cmd with a fresh default interpreter, so calls from
// different goroutines do not share counters.
func ExecuteCommand(cmd ast.Commd, env *runtime.Environment) (*runtime.Environment, error) {
	return New().Execute(cmd, env)
}
