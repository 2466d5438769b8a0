package vm

import (
	"sort"
	"sync"
)

// Scope is one environment frame: a name→value mapping plus the enclosing
// frame. A closure keeps the Scope it was defined in alive for as long as the
// closure itself is reachable.
type Scope struct {
	variables map[string]Value
	parent    *Scope
	mu        sync.RWMutex
}

// NewScope creates a new scope with an optional parent scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables: make(map[string]Value),
		parent:    parent,
	}
}

// Get retrieves a variable value by name.
// It first searches the current scope, then parent scopes.
func (s *Scope) Get(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if value, ok := scope.GetLocal(name); ok {
			return value, true
		}
	}
	return nil, false
}

// Define binds name in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[name] = value
}

// Assign updates the nearest existing binding of name. It reports false when
// no enclosing scope declares name.
func (s *Scope) Assign(name string, value Value) bool {
	for scope := s; scope != nil; scope = scope.parent {
		scope.mu.Lock()
		if _, ok := scope.variables[name]; ok {
			scope.variables[name] = value
			scope.mu.Unlock()
			return true
		}
		scope.mu.Unlock()
	}
	return false
}

// GetLocal retrieves a variable value only from the current scope (not parent).
func (s *Scope) GetLocal(name string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.variables[name]
	return value, ok
}

// Has checks if a variable exists in this scope or any parent scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Parent returns the parent scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Keys returns the sorted variable names of the current scope (not including parent).
func (s *Scope) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.variables))
	for k := range s.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
