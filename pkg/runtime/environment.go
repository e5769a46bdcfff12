package runtime

import "sort"

// Environment maps variable names to unsigned 64-bit values. It is the only
// mutable state of an evaluation and is not safe for concurrent use.
type Environment struct {
	values map[string]uint64
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]uint64)}
}

// FromMap seeds an environment with a copy of the given bindings.
func FromMap(bindings map[string]uint64) *Environment {
	env := &Environment{values: make(map[string]uint64, len(bindings))}
	for k, v := range bindings {
		env.values[k] = v
	}
	return env
}

// Get retrieves a binding, failing with *UnboundVariableError when absent.
func (e *Environment) Get(name string) (uint64, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return 0, &UnboundVariableError{Name: name}
}

// Lookup reports the binding for name and whether it exists.
func (e *Environment) Lookup(name string) (uint64, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set inserts or overwrites a binding. Bindings are never removed.
func (e *Environment) Set(name string, value uint64) {
	e.values[name] = value
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bound names in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]uint64 {
	out := make(map[string]uint64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the environment.
func (e *Environment) Clone() *Environment {
	return FromMap(e.values)
}

// Equal reports whether both environments hold the same bindings.
func (e *Environment) Equal(other *Environment) bool {
	if e == nil || other == nil {
		return e == other
	}
	if len(e.values) != len(other.values) {
		return false
	}
	for k, v := range e.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
