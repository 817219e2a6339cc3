package rule

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Function represents a callable registered against evaluators.
type Function func(args ...any) (any, error)

// functionKey scopes a function name to a behavior. The empty behavior holds
// global functions.
type functionKey struct {
	behavior string
	name     string
}

// FunctionRegistry stores custom functions by lower-cased name, either
// globally or scoped to a single behavior. Scoped functions shadow global
// ones of the same name while a rule evaluates for that behavior.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[functionKey]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[functionKey]Function)}
}

// Register adds a global function.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	return r.RegisterFor("", name, fn)
}

// RegisterFor adds a function visible only to rules evaluated for behavior.
func (r *FunctionRegistry) RegisterFor(behavior, name string, fn Function) error {
	switch {
	case fn == nil:
		return fmt.Errorf("rule: function %q is nil", name)
	case name == "":
		return fmt.Errorf("rule: function name must not be empty")
	}
	key := functionKey{behavior: behavior, name: strings.ToLower(name)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[functionKey]Function)
	}
	if _, exists := r.functions[key]; exists {
		if behavior == "" {
			return fmt.Errorf("rule: function %q already registered", name)
		}
		return fmt.Errorf("rule: function %q already registered for %s", name, behavior)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a copy that later registrations on r do not affect.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewFunctionRegistry()
	for key, fn := range r.functions {
		clone.functions[key] = fn
	}
	return clone
}

// Lookup finds name for behavior, falling back to the global function.
func (r *FunctionRegistry) Lookup(behavior, name string) (Function, bool) {
	if r == nil {
		return nil, false
	}
	name = strings.ToLower(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if behavior != "" {
		if fn, ok := r.functions[functionKey{behavior: behavior, name: name}]; ok {
			return fn, true
		}
	}
	fn, ok := r.functions[functionKey{name: name}]
	return fn, ok
}

// Call executes the global function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	return r.CallFor("", name, args...)
}

// CallFor executes name as seen by behavior.
func (r *FunctionRegistry) CallFor(behavior, name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("rule: function registry is nil")
	}
	fn, ok := r.Lookup(behavior, name)
	if !ok {
		return nil, fmt.Errorf("rule: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns the global function names, sorted.
func (r *FunctionRegistry) Names() []string {
	return r.NamesFor("")
}

// NamesFor returns the names visible to behavior, sorted and deduplicated.
func (r *FunctionRegistry) NamesFor(behavior string) []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for key := range r.functions {
		if key.behavior == "" || key.behavior == behavior {
			names = append(names, key.name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
