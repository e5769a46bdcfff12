package ast

type NodeType string

const (
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeVariable       NodeType = "Variable"
	NodeAddition       NodeType = "Addition"
	NodeMultiplication NodeType = "Multiplication"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeLessThan       NodeType = "LessThan"
	NodeNegation       NodeType = "Negation"
	NodeSkip           NodeType = "Skip"
	NodeAssignment     NodeType = "Assignment"
	NodeSequence       NodeType = "Sequence"
	NodeIfCommand      NodeType = "IfCommand"
	NodeWhileLoop      NodeType = "WhileLoop"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Each tier is closed: only types in this package
// implement them.

// Arith is an arithmetic expression evaluating to an unsigned 64-bit integer.
type Arith interface {
	Node
	arithNode()
}

type arithMarker struct{}

func (arithMarker) arithNode() {}

// Booln is a boolean expression.
type Booln interface {
	Node
	boolnNode()
}

type boolnMarker struct{}

func (boolnMarker) boolnNode() {}

// Commd is a command that transforms an environment.
type Commd interface {
	Node
	commdNode()
}

type commdMarker struct{}

func (commdMarker) commdNode() {}

// Arithmetic expressions

type NumberLiteral struct {
	nodeImpl
	arithMarker

	Value uint64 `json:"value"`
}

func NewNumberLiteral(value uint64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type Variable struct {
	nodeImpl
	arithMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Addition struct {
	nodeImpl
	arithMarker

	Left  Arith `json:"left"`
	Right Arith `json:"right"`
}

func NewAddition(left, right Arith) *Addition {
	return &Addition{nodeImpl: newNodeImpl(NodeAddition), Left: left, Right: right}
}

type Multiplication struct {
	nodeImpl
	arithMarker

	Left  Arith `json:"left"`
	Right Arith `json:"right"`
}

func NewMultiplication(left, right Arith) *Multiplication {
	return &Multiplication{nodeImpl: newNodeImpl(NodeMultiplication), Left: left, Right: right}
}

// Boolean expressions

type BooleanLiteral struct {
	nodeImpl
	boolnMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// LessThan compares two arithmetic expressions with strict unsigned ordering.
type LessThan struct {
	nodeImpl
	boolnMarker

	Left  Arith `json:"left"`
	Right Arith `json:"right"`
}

func NewLessThan(left, right Arith) *LessThan {
	return &LessThan{nodeImpl: newNodeImpl(NodeLessThan), Left: left, Right: right}
}

type Negation struct {
	nodeImpl
	boolnMarker

	Operand Booln `json:"operand"`
}

func NewNegation(operand Booln) *Negation {
	return &Negation{nodeImpl: newNodeImpl(NodeNegation), Operand: operand}
}

// Commands

type Skip struct {
	nodeImpl
	commdMarker
}

func NewSkip() *Skip {
	return &Skip{nodeImpl: newNodeImpl(NodeSkip)}
}

type Assignment struct {
	nodeImpl
	commdMarker

	Name string `json:"name"`
	Expr Arith  `json:"expr"`
}

func NewAssignment(name string, expr Arith) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Expr: expr}
}

type Sequence struct {
	nodeImpl
	commdMarker

	First  Commd `json:"first"`
	Second Commd `json:"second"`
}

func NewSequence(first, second Commd) *Sequence {
	return &Sequence{nodeImpl: newNodeImpl(NodeSequence), First: first, Second: second}
}

type IfCommand struct {
	nodeImpl
	commdMarker

	Condition Booln `json:"condition"`
	Then      Commd `json:"then"`
	Else      Commd `json:"else"`
}

func NewIfCommand(condition Booln, thenBranch, elseBranch Commd) *IfCommand {
	return &IfCommand{nodeImpl: newNodeImpl(NodeIfCommand), Condition: condition, Then: thenBranch, Else: elseBranch}
}

// WhileLoop re-runs Body for as long as Condition holds. The tree itself is
// acyclic; repetition comes from re-evaluating the same node.
type WhileLoop struct {
	nodeImpl
	commdMarker

	Condition Booln `json:"condition"`
	Body      Commd `json:"body"`
}

func NewWhileLoop(condition Booln, body Commd) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}
