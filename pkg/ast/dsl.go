package ast

// Arithmetic helpers.

func Num(value uint64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Var(name string) *Variable {
	return NewVariable(name)
}

func Add(left, right Arith) *Addition {
	return NewAddition(left, right)
}

func Mul(left, right Arith) *Multiplication {
	return NewMultiplication(left, right)
}

// Boolean helpers.

func True() *BooleanLiteral {
	return NewBooleanLiteral(true)
}

func False() *BooleanLiteral {
	return NewBooleanLiteral(false)
}

func Lt(left, right Arith) *LessThan {
	return NewLessThan(left, right)
}

func Not(operand Booln) *Negation {
	return NewNegation(operand)
}

// Command helpers.

func SkipCmd() *Skip {
	return NewSkip()
}

func Assign(name string, expr Arith) *Assignment {
	return NewAssignment(name, expr)
}

// Seq chains commands left to right. With no commands it yields Skip;
// with more than two it nests to the right: Seq(a, b, c) == Seq(a, Seq(b, c)).
func Seq(cmds ...Commd) Commd {
	switch len(cmds) {
	case 0:
		return NewSkip()
	case 1:
		return cmds[0]
	}
	return NewSequence(cmds[0], Seq(cmds[1:]...))
}

func If(condition Booln, thenBranch, elseBranch Commd) *IfCommand {
	return NewIfCommand(condition, thenBranch, elseBranch)
}

func While(condition Booln, body Commd) *WhileLoop {
	return NewWhileLoop(condition, body)
}
