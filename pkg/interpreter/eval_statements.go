package interpreter

import (
	"fmt"
	"log/slog"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCommand(state *evalState, node ast.Commd, env *runtime.Environment) (*runtime.Environment, error) {
	if node == nil {
		return nil, fmt.Errorf("missing command")
	}
	state.commands++
	if state.debug {
		i.logger.LogAttrs(state.ctx, slog.LevelDebug, "execute command", slog.String("node", string(node.NodeType())))
	}
	switch n := node.(type) {
	case *ast.Skip:
		return env, nil
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.Sequence:
		next, err := i.evaluateCommand(state, n.First, env)
		if err != nil {
			return nil, err
		}
		return i.evaluateCommand(state, n.Second, next)
	case *ast.IfCommand:
		cond, err := i.evaluateBooln(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if cond {
			return i.evaluateCommand(state, n.Then, env)
		}
		return i.evaluateCommand(state, n.Else, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(state, n, env)
	default:
		return nil, fmt.Errorf("unsupported command: %s", n.NodeType())
	}
}

// evaluateAssignment computes the right-hand side against the current
// environment before binding, so x := x + 1 reads the old x and a failing
// expression leaves env untouched.
func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) (*runtime.Environment, error) {
	val, err := i.evaluateArith(assign.Expr, env)
	if err != nil {
		return nil, err
	}
	env.Set(assign.Name, val)
	return env, nil
}

func (i *Interpreter) evaluateWhileLoop(state *evalState, loop *ast.WhileLoop, env *runtime.Environment) (*runtime.Environment, error) {
	for {
		if err := state.ctx.Err(); err != nil {
			return nil, err
		}
		cond, err := i.evaluateBooln(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !cond {
			return env, nil
		}
		state.iterations++
		if i.maxIterations > 0 && state.iterations > i.maxIterations {
			return nil, &runtime.BudgetExceededError{Limit: i.maxIterations}
		}
		if state.debug {
			i.logger.LogAttrs(state.ctx, slog.LevelDebug, "loop iteration", slog.Uint64("iteration", state.iterations))
		}
		env, err = i.evaluateCommand(state, loop.Body, env)
		if err != nil {
			return nil, err
		}
	}
}
