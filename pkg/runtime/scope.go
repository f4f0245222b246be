package runtime

import (
	"sort"

	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"
)

var emptyBindings = hashmap.New(equalNames, hashName)

func equalNames(k1, k2 interface{}) bool {
	return k1.(string) == k2.(string)
}

func hashName(k interface{}) uint32 {
	return hash.String(k.(string))
}

// Scope is an immutable mapping from variable names to values. Rebinding a
// name yields a new Scope that shares structure with the old one; the
// receiver is never modified.
type Scope struct {
	bindings hashmap.Map
}

// NewScope returns an empty scope.
func NewScope() Scope {
	return Scope{bindings: emptyBindings}
}

func (s Scope) table() hashmap.Map {
	if s.bindings == nil {
		return emptyBindings
	}
	return s.bindings
}

// Lookup returns the value bound to name, if any.
func (s Scope) Lookup(name string) (Value, bool) {
	v, ok := s.table().Index(name)
	if !ok {
		return 0, false
	}
	return v.(Value), true
}

// Has reports whether name is bound in s.
func (s Scope) Has(name string) bool {
	_, ok := s.table().Index(name)
	return ok
}

// With returns a copy of s with name bound to value.
func (s Scope) With(name string, value Value) Scope {
	return Scope{bindings: s.table().Assoc(name, value)}
}

// Len returns the number of bindings.
func (s Scope) Len() int {
	return s.table().Len()
}

// Names returns the bound names in sorted order (useful for determinism in tests).
func (s Scope) Names() []string {
	names := make([]string, 0, s.Len())
	for it := s.table().Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		names = append(names, k.(string))
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a plain-map copy of the bindings.
func (s Scope) Snapshot() map[string]Value {
	out := make(map[string]Value, s.Len())
	for it := s.table().Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		out[k.(string)] = v.(Value)
	}
	return out
}
