// Package store implements the abstract store (C2): a mapping from
// program variables to interval.Interval values, plus a dedicated
// is_bottom flag. Stores are immutable values — every operation
// returns a new Store rather than mutating the receiver, matching
// spec.md's "stores are immutable values passed by value through the
// interpreter" invariant.
package store

import "whileanalyzer/internal/interval"

// Store is Var -> Interval plus an is_bottom flag. A variable absent
// from vars is treated as Top by Get, but the zero value of the map
// itself is never read directly outside this package.
type Store struct {
	vars   map[string]interval.Interval
	bottom bool
}

// New returns an empty, non-bottom store.
func New() Store {
	return Store{vars: make(map[string]interval.Interval)}
}

// Bottom returns a bottom store that retains the receiver's variable
// keys, matching the Rust original's AbstractState::bottom, which
// keeps `variables` around for diagnostics even once is_bottom is set.
func (s Store) Bottom() Store {
	return Store{vars: s.clone(), bottom: true}
}

// IsBottom reports whether the store is unreachable: either the flag
// is set directly, or any bound variable has itself collapsed to ⊥.
func (s Store) IsBottom() bool {
	if s.bottom {
		return true
	}
	for _, iv := range s.vars {
		if iv.IsBottom() {
			return true
		}
	}
	return false
}

// Get returns the interval bound to name, or Top if name has never
// been written — callers reading an unassigned variable must still be
// sound, so an absent key is never silently treated as empty.
func (s Store) Get(name string) interval.Interval {
	if iv, ok := s.vars[name]; ok {
		return iv
	}
	return interval.Top()
}

// FromConcrete builds a store binding each name to the point interval
// [v, v], used to seed an analysis from a parsed initial-store file
// (spec.md §4.8) — a concrete value is exactly a degenerate interval.
func FromConcrete(vars map[string]int64) Store {
	s := New()
	for name, v := range vars {
		s.vars[name] = interval.Bounded(v, v)
	}
	return s
}

// Has reports whether name has an explicit binding in this store.
func (s Store) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Keys returns the set of variables with an explicit binding, in no
// particular order.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	return keys
}

func (s Store) clone() map[string]interval.Interval {
	out := make(map[string]interval.Interval, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

func (s Store) unionKeys(other Store) map[string]struct{} {
	keys := make(map[string]struct{}, len(s.vars)+len(other.vars))
	for k := range s.vars {
		keys[k] = struct{}{}
	}
	for k := range other.vars {
		keys[k] = struct{}{}
	}
	return keys
}
