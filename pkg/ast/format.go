package ast

import (
	"strconv"
	"strings"
)

// Format renders a node in IMP concrete syntax. Binary expressions are always
// parenthesized so the output is unambiguous without precedence rules.
func Format(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *NumberLiteral:
		b.WriteString(strconv.FormatUint(n.Value, 10))
	case *Variable:
		b.WriteString(n.Name)
	case *Addition:
		writeBinary(b, "+", n.Left, n.Right)
	case *Multiplication:
		writeBinary(b, "*", n.Left, n.Right)
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *LessThan:
		writeBinary(b, "<", n.Left, n.Right)
	case *Negation:
		b.WriteString("not ")
		writeNode(b, n.Operand)
	case *Skip:
		b.WriteString("skip")
	case *Assignment:
		b.WriteString(n.Name)
		b.WriteString(" := ")
		writeNode(b, n.Expr)
	case *Sequence:
		writeNode(b, n.First)
		b.WriteString("; ")
		writeNode(b, n.Second)
	case *IfCommand:
		b.WriteString("if ")
		writeNode(b, n.Condition)
		b.WriteString(" then ")
		writeNode(b, n.Then)
		b.WriteString(" else ")
		writeNode(b, n.Else)
		b.WriteString(" end")
	case *WhileLoop:
		b.WriteString("while ")
		writeNode(b, n.Condition)
		b.WriteString(" do ")
		writeNode(b, n.Body)
		b.WriteString(" end")
	default:
		b.WriteString("<")
		b.WriteString(string(node.NodeType()))
		b.WriteString(">")
	}
}

func writeBinary(b *strings.Builder, op string, left, right Node) {
	b.WriteString("(")
	writeNode(b, left)
	b.WriteString(" ")
	b.WriteString(op)
	b.WriteString(" ")
	writeNode(b, right)
	b.WriteString(")")
}
