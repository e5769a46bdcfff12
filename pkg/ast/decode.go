package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a node from its JSON encoding. Numbers are read with
// UseNumber so literals above 2^53 keep their exact value.
func DecodeJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json node: %w", err)
	}
	return DecodeNode(raw)
}

// DecodeYAML decodes a node from a YAML document using the same field names
// as the JSON encoding.
func DecodeYAML(data []byte) (Node, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml node: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode yaml node: empty document")
	}
	return DecodeNode(raw)
}

// DecodeCommand decodes a node and requires it to be a command.
func DecodeCommand(node map[string]any) (Commd, error) {
	decoded, err := DecodeNode(node)
	if err != nil {
		return nil, err
	}
	cmd, ok := decoded.(Commd)
	if !ok {
		return nil, fmt.Errorf("expected command node, got %s", decoded.NodeType())
	}
	return cmd, nil
}

// DecodeNode builds a node from the generic map form produced by
// encoding/json or yaml.v3.
func DecodeNode(node map[string]any) (Node, error) {
	if node == nil {
		return nil, fmt.Errorf("missing node")
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeNumberLiteral:
		val, err := parseUint(node["value"])
		if err != nil {
			return nil, fmt.Errorf("%s value: %w", typ, err)
		}
		return NewNumberLiteral(val), nil
	case NodeVariable:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%s requires a name", typ)
		}
		return NewVariable(name), nil
	case NodeAddition, NodeMultiplication:
		left, err := decodeArithField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeArithField(node, "right")
		if err != nil {
			return nil, err
		}
		if NodeType(typ) == NodeAddition {
			return NewAddition(left, right), nil
		}
		return NewMultiplication(left, right), nil
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("%s value must be a boolean, got %T", typ, node["value"])
		}
		return NewBooleanLiteral(val), nil
	case NodeLessThan:
		left, err := decodeArithField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeArithField(node, "right")
		if err != nil {
			return nil, err
		}
		return NewLessThan(left, right), nil
	case NodeNegation:
		operand, err := decodeBoolnField(node, "operand")
		if err != nil {
			return nil, err
		}
		return NewNegation(operand), nil
	case NodeSkip:
		return NewSkip(), nil
	case NodeAssignment:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%s requires a name", typ)
		}
		expr, err := decodeArithField(node, "expr")
		if err != nil {
			return nil, err
		}
		return NewAssignment(name, expr), nil
	case NodeSequence:
		first, err := decodeCommdField(node, "first")
		if err != nil {
			return nil, err
		}
		second, err := decodeCommdField(node, "second")
		if err != nil {
			return nil, err
		}
		return NewSequence(first, second), nil
	case NodeIfCommand:
		cond, err := decodeBoolnField(node, "condition")
		if err != nil {
			return nil, err
		}
		thenBranch, err := decodeCommdField(node, "then")
		if err != nil {
			return nil, err
		}
		elseBranch, err := decodeCommdField(node, "else")
		if err != nil {
			return nil, err
		}
		return NewIfCommand(cond, thenBranch, elseBranch), nil
	case NodeWhileLoop:
		cond, err := decodeBoolnField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeCommdField(node, "body")
		if err != nil {
			return nil, err
		}
		return NewWhileLoop(cond, body), nil
	case "":
		return nil, fmt.Errorf("node missing type")
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeChild(parent map[string]any, field string) (Node, error) {
	raw, ok := parent[field]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%v missing field %q", parent["type"], field)
	}
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%v field %q must be a node, got %T", parent["type"], field, raw)
	}
	return DecodeNode(child)
}

func decodeArithField(parent map[string]any, field string) (Arith, error) {
	child, err := decodeChild(parent, field)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(Arith)
	if !ok {
		return nil, fmt.Errorf("%v field %q: expected arithmetic expression, got %s", parent["type"], field, child.NodeType())
	}
	return expr, nil
}

func decodeBoolnField(parent map[string]any, field string) (Booln, error) {
	child, err := decodeChild(parent, field)
	if err != nil {
		return nil, err
	}
	expr, ok := child.(Booln)
	if !ok {
		return nil, fmt.Errorf("%v field %q: expected boolean expression, got %s", parent["type"], field, child.NodeType())
	}
	return expr, nil
}

func decodeCommdField(parent map[string]any, field string) (Commd, error) {
	child, err := decodeChild(parent, field)
	if err != nil {
		return nil, err
	}
	cmd, ok := child.(Commd)
	if !ok {
		return nil, fmt.Errorf("%v field %q: expected command, got %s", parent["type"], field, child.NodeType())
	}
	return cmd, nil
}

func parseUint(raw any) (uint64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	case string:
		return strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative literal %d", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative literal %d", v)
		}
		return uint64(v), nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			return 0, fmt.Errorf("literal %v is not an unsigned 64-bit integer", v)
		}
		return uint64(v), nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported literal type %T", raw)
	}
}
