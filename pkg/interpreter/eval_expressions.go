package interpreter

import (
	"fmt"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/runtime"
)

// evaluateArith computes an arithmetic expression. Add and Mul wrap modulo
// 2^64; the left operand is always evaluated first.
func (i *Interpreter) evaluateArith(node ast.Arith, env *runtime.Environment) (uint64, error) {
	switch n := node.(type) {
	case nil:
		return 0, fmt.Errorf("missing arithmetic expression")
	case *ast.NumberLiteral:
		return n.Value, nil
	case *ast.Variable:
		return env.Get(n.Name)
	case *ast.Addition:
		left, right, err := i.evaluateOperands(n.Left, n.Right, env)
		if err != nil {
			return 0, err
		}
		return left + right, nil
	case *ast.Multiplication:
		left, right, err := i.evaluateOperands(n.Left, n.Right, env)
		if err != nil {
			return 0, err
		}
		return left * right, nil
	default:
		return 0, fmt.Errorf("unsupported arithmetic expression: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateOperands(leftNode, rightNode ast.Arith, env *runtime.Environment) (uint64, uint64, error) {
	left, err := i.evaluateArith(leftNode, env)
	if err != nil {
		return 0, 0, err
	}
	right, err := i.evaluateArith(rightNode, env)
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

func (i *Interpreter) evaluateBooln(node ast.Booln, env *runtime.Environment) (bool, error) {
	switch n := node.(type) {
	case nil:
		return false, fmt.Errorf("missing boolean expression")
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.LessThan:
		left, right, err := i.evaluateOperands(n.Left, n.Right, env)
		if err != nil {
			return false, err
		}
		return left < right, nil
	case *ast.Negation:
		val, err := i.evaluateBooln(n.Operand, env)
		if err != nil {
			return false, err
		}
		return !val, nil
	default:
		return false, fmt.Errorf("unsupported boolean expression: %s", n.NodeType())
	}
}
