package runtime

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestEnvironmentDefineAndAssign(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1)
	if err := env.Assign("a", 2); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, err := env.Get("a"); err != nil || v != 2 {
		t.Fatalf("Get(a) = %d, %v", v, err)
	}
	env.Define("a", 5)
	if v, _ := env.Get("a"); v != 5 {
		t.Fatalf("redefinition should overwrite, got %d", v)
	}
}

func TestEnvironmentAssignUndefined(t *testing.T) {
	env := NewEnvironment()
	err := env.Assign("b", 1)
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) || undef.Name != "b" {
		t.Fatalf("unexpected error detail: %#v", err)
	}
	if env.Has("b") {
		t.Fatalf("failed assignment must not create a binding")
	}
	if _, err := env.Get("b"); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected Get error, got %v", err)
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Define("zeta", 3)
	env.Define("alpha", 1)
	if got := env.Keys(); !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Fatalf("Keys() = %v", got)
	}
	snap := env.Snapshot()
	snap["alpha"] = 100
	if v, _ := env.Get("alpha"); v != 1 {
		t.Fatalf("snapshot must be a copy, env has %d", v)
	}
	if env.Len() != 2 {
		t.Fatalf("Len() = %d", env.Len())
	}
}

func TestEnvironmentConcurrentAccess(t *testing.T) {
	env := NewEnvironment()
	env.Define("n", 0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				env.Define("n", int64(i*j))
				env.Lookup("n")
				env.Keys()
			}
		}(i)
	}
	wg.Wait()
	if !env.Has("n") {
		t.Fatalf("expected binding to survive")
	}
}
