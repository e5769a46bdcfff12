// Package snapshot encodes environments as ordered lists of (name, value)
// pairs. In YAML a snapshot is a mapping whose document order is preserved;
// in JSON it is an array of {"name", "value"} objects.
package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"imp/interpreter-go/pkg/runtime"
)

// Binding is a single variable in a snapshot.
type Binding struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// Snapshot is an ordered list of bindings.
type Snapshot struct {
	Bindings []Binding
}

// DuplicateBindingError reports a name bound more than once in a snapshot.
type DuplicateBindingError struct {
	Name string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("snapshot: duplicate binding %q", e.Name)
}

// FromEnvironment captures env with bindings sorted by name.
func FromEnvironment(env *runtime.Environment) Snapshot {
	if env == nil {
		return Snapshot{}
	}
	keys := env.Keys()
	bindings := make([]Binding, 0, len(keys))
	for _, k := range keys {
		v, _ := env.Lookup(k)
		bindings = append(bindings, Binding{Name: k, Value: v})
	}
	return Snapshot{Bindings: bindings}
}

// Environment rebuilds an environment from the snapshot.
func (s Snapshot) Environment() (*runtime.Environment, error) {
	env := runtime.NewEnvironment()
	for _, b := range s.Bindings {
		if _, exists := env.Lookup(b.Name); exists {
			return nil, &DuplicateBindingError{Name: b.Name}
		}
		env.Set(b.Name, b.Value)
	}
	return env, nil
}

// Sorted returns a copy with bindings ordered by name.
func (s Snapshot) Sorted() Snapshot {
	out := make([]Binding, len(s.Bindings))
	copy(out, s.Bindings)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return Snapshot{Bindings: out}
}

func (s Snapshot) validate() error {
	seen := make(map[string]struct{}, len(s.Bindings))
	for i, b := range s.Bindings {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("snapshot: binding %d has an empty name", i)
		}
		if _, dup := seen[b.Name]; dup {
			return &DuplicateBindingError{Name: b.Name}
		}
		seen[b.Name] = struct{}{}
	}
	return nil
}

// MarshalYAML emits the bindings as a mapping in snapshot order.
func (s Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, b := range s.Bindings {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: b.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", b.Value)},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of name to value, keeping document order.
func (s *Snapshot) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		s.Bindings = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("snapshot: expected a mapping of name to value (line %d)", value.Line)
	}
	bindings := make([]Binding, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return err
		}
		var v uint64
		if err := valueNode.Decode(&v); err != nil {
			return fmt.Errorf("snapshot: binding %q: %w", name, err)
		}
		bindings = append(bindings, Binding{Name: strings.TrimSpace(name), Value: v})
	}
	parsed := Snapshot{Bindings: bindings}
	if err := parsed.validate(); err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalJSON emits the bindings as an array of name/value objects.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	bindings := s.Bindings
	if bindings == nil {
		bindings = []Binding{}
	}
	return json.Marshal(bindings)
}

// UnmarshalJSON reads an array of name/value objects.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var bindings []Binding
	if err := json.Unmarshal(data, &bindings); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	parsed := Snapshot{Bindings: bindings}
	if err := parsed.validate(); err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EncodeYAML encodes env as a YAML snapshot.
func EncodeYAML(env *runtime.Environment) ([]byte, error) {
	return yaml.Marshal(FromEnvironment(env))
}

// DecodeYAML decodes a YAML snapshot into an environment.
func DecodeYAML(data []byte) (*runtime.Environment, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Environment()
}

// EncodeJSON encodes env as a JSON snapshot.
func EncodeJSON(env *runtime.Environment) ([]byte, error) {
	return json.Marshal(FromEnvironment(env))
}

// DecodeJSON decodes a JSON snapshot into an environment.
func DecodeJSON(data []byte) (*runtime.Environment, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Environment()
}
