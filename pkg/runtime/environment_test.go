package runtime

import (
	"errors"
	"reflect"
	"testing"
)

func TestEnvironmentSetAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Set("greeting", 42)

	got, err := env.Get("greeting")
	if err != nil {
		t.Fatalf("expected to retrieve binding: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected value returned: %d", got)
	}

	env.Set("greeting", 7)
	if got, _ := env.Lookup("greeting"); got != 7 {
		t.Fatalf("overwrite not visible, got %d", got)
	}
	if env.Len() != 1 {
		t.Fatalf("expected a single binding, got %d", env.Len())
	}
}

func TestEnvironmentGetUnknownFails(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get("missing")
	if err == nil {
		t.Fatalf("expected error when reading undefined variable")
	}
	if err.Error() != "undefined variable 'missing'" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
	if !errors.Is(err, ErrUnboundVariable) {
		t.Fatalf("expected ErrUnboundVariable, got %v", err)
	}
	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) || unbound.Name != "missing" {
		t.Fatalf("expected *UnboundVariableError naming missing, got %#v", err)
	}
	if _, ok := env.Lookup("missing"); ok {
		t.Fatalf("lookup reported a binding that does not exist")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := FromMap(map[string]uint64{"b": 2, "c": 3, "a": 1})
	if got := env.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
}

func TestEnvironmentCloneIsIndependent(t *testing.T) {
	env := FromMap(map[string]uint64{"x": 10})
	clone := env.Clone()
	clone.Set("x", 11)
	clone.Set("y", 1)
	if v, _ := env.Lookup("x"); v != 10 {
		t.Fatalf("clone mutation leaked into original: x=%d", v)
	}
	if env.Equal(clone) {
		t.Fatalf("expected environments to differ")
	}
	snap := clone.Snapshot()
	snap["x"] = 99
	if v, _ := clone.Lookup("x"); v != 11 {
		t.Fatalf("snapshot mutation leaked into environment: x=%d", v)
	}
}

func TestEnvironmentEqual(t *testing.T) {
	a := FromMap(map[string]uint64{"i": 5})
	b := NewEnvironment()
	b.Set("i", 5)
	if !a.Equal(b) {
		t.Fatalf("expected equal environments")
	}
	var nilEnv *Environment
	if a.Equal(nilEnv) || !nilEnv.Equal(nil) {
		t.Fatalf("nil comparison mismatch")
	}
}

func TestBudgetExceededError(t *testing.T) {
	err := error(&BudgetExceededError{Limit: 3})
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded")
	}
	if errors.Is(err, ErrUnboundVariable) {
		t.Fatalf("budget error must not match unbound variable")
	}
	if err.Error() != "iteration budget of 3 exceeded" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
