package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundVariable matches every *UnboundVariableError under errors.Is.
	ErrUnboundVariable = errors.New("unbound variable")
	// ErrBudgetExceeded matches every *BudgetExceededError under errors.Is.
	ErrBudgetExceeded = errors.New("iteration budget exceeded")
)

// UnboundVariableError reports a variable read with no binding in the environment.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

// BudgetExceededError reports that while-loop bodies ran more times than allowed.
type BudgetExceededError struct {
	Limit uint64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("iteration budget of %d exceeded", e.Limit)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}
