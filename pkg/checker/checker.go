// Package checker reports variables that a command may read before any
// assignment has bound them. The analysis is a definite-assignment pass: a
// name counts as bound after an Assign on every path, so a program with no
// diagnostics cannot fail with an unbound variable at runtime.
package checker

import (
	"fmt"
	"sort"

	"imp/interpreter-go/pkg/ast"
)

// Diagnostic represents a possibly-unbound read.
type Diagnostic struct {
	Message string
	Name    string
	Node    ast.Node
}

// Checker traverses command trees and records diagnostics.
type Checker struct {
	diagnostics []Diagnostic
	reported    map[*ast.Variable]struct{}
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{}
}

// CheckCommand analyses cmd assuming the names in initial are bound on entry.
// It returns the diagnostics and the names definitely bound on exit, sorted.
func (c *Checker) CheckCommand(cmd ast.Commd, initial []string) ([]Diagnostic, []string, error) {
	c.diagnostics = nil
	c.reported = make(map[*ast.Variable]struct{})
	bound := make(boundSet, len(initial))
	for _, name := range initial {
		bound[name] = struct{}{}
	}
	out, err := c.checkCommand(cmd, bound)
	if err != nil {
		return nil, nil, err
	}
	return c.diagnostics, out.names(), nil
}

type boundSet map[string]struct{}

func (s boundSet) with(name string) boundSet {
	if _, ok := s[name]; ok {
		return s
	}
	next := make(boundSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	next[name] = struct{}{}
	return next
}

func (s boundSet) intersect(other boundSet) boundSet {
	out := make(boundSet)
	for k := range s {
		if _, ok := other[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func (s boundSet) names() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Checker) checkCommand(node ast.Commd, bound boundSet) (boundSet, error) {
	switch n := node.(type) {
	case nil:
		return nil, fmt.Errorf("checker: missing command")
	case *ast.Skip:
		return bound, nil
	case *ast.Assignment:
		if err := c.checkArith(n.Expr, bound); err != nil {
			return nil, err
		}
		return bound.with(n.Name), nil
	case *ast.Sequence:
		next, err := c.checkCommand(n.First, bound)
		if err != nil {
			return nil, err
		}
		return c.checkCommand(n.Second, next)
	case *ast.IfCommand:
		if err := c.checkBooln(n.Condition, bound); err != nil {
			return nil, err
		}
		thenOut, err := c.checkCommand(n.Then, bound)
		if err != nil {
			return nil, err
		}
		elseOut, err := c.checkCommand(n.Else, bound)
		if err != nil {
			return nil, err
		}
		return thenOut.intersect(elseOut), nil
	case *ast.WhileLoop:
		if err := c.checkBooln(n.Condition, bound); err != nil {
			return nil, err
		}
		// The body may run zero times, so nothing it binds survives the loop.
		if _, err := c.checkCommand(n.Body, bound); err != nil {
			return nil, err
		}
		return bound, nil
	default:
		return nil, fmt.Errorf("checker: unsupported command %s", n.NodeType())
	}
}

func (c *Checker) checkArith(node ast.Arith, bound boundSet) error {
	switch n := node.(type) {
	case nil:
		return fmt.Errorf("checker: missing arithmetic expression")
	case *ast.NumberLiteral:
		return nil
	case *ast.Variable:
		if _, ok := bound[n.Name]; !ok {
			c.report(n)
		}
		return nil
	case *ast.Addition:
		if err := c.checkArith(n.Left, bound); err != nil {
			return err
		}
		return c.checkArith(n.Right, bound)
	case *ast.Multiplication:
		if err := c.checkArith(n.Left, bound); err != nil {
			return err
		}
		return c.checkArith(n.Right, bound)
	default:
		return fmt.Errorf("checker: unsupported arithmetic expression %s", n.NodeType())
	}
}

func (c *Checker) checkBooln(node ast.Booln, bound boundSet) error {
	switch n := node.(type) {
	case nil:
		return fmt.Errorf("checker: missing boolean expression")
	case *ast.BooleanLiteral:
		return nil
	case *ast.LessThan:
		if err := c.checkArith(n.Left, bound); err != nil {
			return err
		}
		return c.checkArith(n.Right, bound)
	case *ast.Negation:
		return c.checkBooln(n.Operand, bound)
	default:
		return fmt.Errorf("checker: unsupported boolean expression %s", n.NodeType())
	}
}

func (c *Checker) report(v *ast.Variable) {
	if _, seen := c.reported[v]; seen {
		return
	}
	c.reported[v] = struct{}{}
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Message: fmt.Sprintf("variable '%s' may be unbound", v.Name),
		Name:    v.Name,
		Node:    v,
	})
}
