package ast

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func countdown() Commd {
	return Seq(
		Assign("n", Num(3)),
		While(
			Lt(Num(0), Var("n")),
			Assign("n", Add(Var("n"), Num(18446744073709551615))),
		),
	)
}

func TestSeqNestsToTheRight(t *testing.T) {
	a := Assign("a", Num(1))
	b := Assign("b", Num(2))
	c := Assign("c", Num(3))
	got := Seq(a, b, c)
	want := NewSequence(a, NewSequence(b, c))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sequence shape: %#v", got)
	}
	if _, ok := Seq().(*Skip); !ok {
		t.Fatalf("empty Seq should be skip, got %T", Seq())
	}
	if Seq(a) != Commd(a) {
		t.Fatalf("single-element Seq should return its argument")
	}
}

func TestNodeTypes(t *testing.T) {
	cases := []struct {
		node Node
		want NodeType
	}{
		{Num(1), NodeNumberLiteral},
		{Var("x"), NodeVariable},
		{Add(Num(1), Num(2)), NodeAddition},
		{Mul(Num(1), Num(2)), NodeMultiplication},
		{True(), NodeBooleanLiteral},
		{Lt(Num(1), Num(2)), NodeLessThan},
		{Not(False()), NodeNegation},
		{SkipCmd(), NodeSkip},
		{Assign("x", Num(1)), NodeAssignment},
		{NewSequence(SkipCmd(), SkipCmd()), NodeSequence},
		{If(True(), SkipCmd(), SkipCmd()), NodeIfCommand},
		{While(False(), SkipCmd()), NodeWhileLoop},
	}
	for _, tc := range cases {
		if got := tc.node.NodeType(); got != tc.want {
			t.Errorf("NodeType() = %s, want %s", got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{Add(Var("x"), Mul(Num(2), Num(3))), "(x + (2 * 3))"},
		{Not(Lt(Var("i"), Num(5))), "not (i < 5)"},
		{
			If(True(), Assign("v", Num(99)), SkipCmd()),
			"if true then v := 99 else skip end",
		},
		{
			While(Lt(Var("i"), Num(5)), Assign("i", Add(Var("i"), Num(1)))),
			"while (i < 5) do i := (i + 1) end",
		},
		{NewSequence(Assign("a", Num(1)), Assign("b", Num(2))), "a := 1; b := 2"},
		{nil, "<nil>"},
	}
	for _, tc := range cases {
		if got := Format(tc.node); got != tc.want {
			t.Errorf("Format() = %q, want %q", got, tc.want)
		}
	}
}

func TestJSONEncodingDecodesBack(t *testing.T) {
	program := countdown()
	data, err := json.Marshal(program)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"value":18446744073709551615`) {
		t.Fatalf("expected exact uint64 literal in encoding, got %s", data)
	}
	decoded, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, program) {
		t.Fatalf("decoded tree differs:\n got %s\nwant %s", Format(decoded), Format(program))
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
type: WhileLoop
condition:
  type: LessThan
  left: {type: Variable, name: i}
  right: {type: NumberLiteral, value: 5}
body:
  type: Assignment
  name: i
  expr:
    type: Addition
    left: {type: Variable, name: i}
    right: {type: NumberLiteral, value: 1}
`
	node, err := DecodeYAML([]byte(doc))
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	want := While(Lt(Var("i"), Num(5)), Assign("i", Add(Var("i"), Num(1))))
	if !reflect.DeepEqual(node, want) {
		t.Fatalf("unexpected node %s", Format(node))
	}
}

func TestDecodeYAMLLargeLiteral(t *testing.T) {
	node, err := DecodeYAML([]byte("type: NumberLiteral\nvalue: 18446744073709551615\n"))
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	lit, ok := node.(*NumberLiteral)
	if !ok || lit.Value != 18446744073709551615 {
		t.Fatalf("unexpected literal %#v", node)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown type", `{"type":"ForLoop"}`, `unsupported node type "ForLoop"`},
		{"missing type", `{"value":1}`, "node missing type"},
		{"negative literal", `{"type":"NumberLiteral","value":-1}`, "NumberLiteral value"},
		{"overflowing literal", `{"type":"NumberLiteral","value":18446744073709551616}`, "NumberLiteral value"},
		{"wrong tier", `{"type":"Assignment","name":"x","expr":{"type":"BooleanLiteral","value":true}}`, "expected arithmetic expression"},
		{"missing child", `{"type":"Negation"}`, `missing field "operand"`},
		{"unnamed variable", `{"type":"Variable"}`, "requires a name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected decode error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDecodeCommandRejectsExpressions(t *testing.T) {
	_, err := DecodeCommand(map[string]any{"type": "NumberLiteral", "value": 1})
	if err == nil || !strings.Contains(err.Error(), "expected command node") {
		t.Fatalf("expected tier error, got %v", err)
	}
}
