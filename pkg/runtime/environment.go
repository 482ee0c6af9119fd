package runtime

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUndefinedVariable is returned when a name has never been declared.
var ErrUndefinedVariable = errors.New("undefined variable")

// UndefinedVariableError names the missing binding.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// Environment is the flat variable namespace of one interpreter session. It
// maps each name to the last integer assigned to it and is safe for
// concurrent use.
type Environment struct {
	mu     sync.RWMutex
	values map[string]int64
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]int64)}
}

// Define inserts or overwrites a binding.
func (e *Environment) Define(name string, value int64) {
	e.mu.Lock()
	e.values[name] = value
	e.mu.Unlock()
}

// Assign updates an existing binding; it never creates one.
func (e *Environment) Assign(name string, value int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; !ok {
		return &UndefinedVariableError{Name: name}
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (int64, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return 0, &UndefinedVariableError{Name: name}
}

// Lookup is the comma-ok form of Get.
func (e *Environment) Lookup(name string) (int64, bool) {
	e.mu.RLock()
	v, ok := e.values[name]
	e.mu.RUnlock()
	return v, ok
}

// Has reports whether name is bound.
func (e *Environment) Has(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.values)
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]int64 {
	e.mu.RLock()
	out := make(map[string]int64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	e.mu.RUnlock()
	return out
}

// Keys returns the bound names in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	e.mu.RLock()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	e.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
