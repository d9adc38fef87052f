package runtime

import "sort"

// Scope is a chained name to value table.
type Scope struct {
	values map[string]Value
	parent *Scope
}

// NewScope creates a scope, optionally nested under a parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{values: make(map[string]Value), parent: parent}
}

// Parent exposes the enclosing scope (nil for the globals).
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Define inserts or replaces a binding in this scope.
func (s *Scope) Define(name string, value Value) {
	s.values[name] = value
}

// Get retrieves a binding, searching outward through every parent.
func (s *Scope) Get(name string) (Value, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Own retrieves a binding from this scope only.
func (s *Scope) Own(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Keys returns this scope's own binding names in sorted order.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of this scope's own bindings.
func (s *Scope) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent scope holding the same bindings and parent.
// Later definitions in either scope are not visible in the other.
func (s *Scope) Clone() *Scope {
	return &Scope{values: s.Snapshot(), parent: s.parent}
}
