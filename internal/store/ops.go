package store

import "whileanalyzer/internal/interval"

// Update performs S[var] <- (S[var] ?? Top) meet I. If the meet
// collapses to bottom, the whole store becomes bottom, matching
// abstract_state.rs's update_interval.
func (s Store) Update(w interval.Window, name string, v interval.Interval) Store {
	if s.IsBottom() {
		return s.Bottom()
	}
	current := s.Get(name)
	updated := interval.Meet(w, current, v)
	if updated.IsBottom() {
		return s.Bottom()
	}
	next := s.clone()
	next[name] = updated
	return Store{vars: next}
}

// Assign overwrites S[name] with v outright, with no meet against any
// existing binding. This is spec.md's `x := e` semantics ("overwrites,
// not meet"), also used by x++/x-- to install the post-increment value.
func (s Store) Assign(name string, v interval.Interval) Store {
	if s.IsBottom() {
		return s.Bottom()
	}
	if v.IsBottom() {
		return s.Bottom()
	}
	next := s.clone()
	next[name] = v
	return Store{vars: next}
}

// Lub is the pointwise lattice join over the union of keys. A bottom
// operand is the join identity (absorbed by the other operand). A key
// present in only one operand is carried through unchanged: an
// unassigned variable on one branch is assumed to retain its
// previously inferred value, per spec.md's missing-key join policy.
func Lub(w interval.Window, a, b Store) Store {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	out := make(map[string]interval.Interval, len(a.vars)+len(b.vars))
	for k := range a.unionKeys(b) {
		av, aok := a.vars[k]
		bv, bok := b.vars[k]
		switch {
		case aok && bok:
			out[k] = interval.Join(w, av, bv)
		case aok:
			out[k] = av
		default:
			out[k] = bv
		}
	}
	return Store{vars: out}
}

// Glb is the pointwise lattice meet over the union of keys. As in
// Lub, a key present in only one operand carries through as-is
// (the other operand is treated as unconstrained, i.e. Top, for that
// variable) rather than forcing bottom.
func Glb(w interval.Window, a, b Store) Store {
	if a.IsBottom() || b.IsBottom() {
		return a.Bottom()
	}
	out := make(map[string]interval.Interval, len(a.vars)+len(b.vars))
	anyBottom := false
	for k := range a.unionKeys(b) {
		av, aok := a.vars[k]
		bv, bok := b.vars[k]
		var m interval.Interval
		switch {
		case aok && bok:
			m = interval.Meet(w, av, bv)
		case aok:
			m = av
		default:
			m = bv
		}
		if m.IsBottom() {
			anyBottom = true
		}
		out[k] = m
	}
	result := Store{vars: out}
	if anyBottom {
		return result.Bottom()
	}
	return result
}

// Widen applies interval.Widen pointwise; a key present only in one
// operand carries through unchanged since there is no second iterate
// to widen against.
func Widen(w interval.Window, old, new_ Store) Store {
	if old.IsBottom() {
		return new_
	}
	if new_.IsBottom() {
		return old
	}
	out := make(map[string]interval.Interval, len(old.vars)+len(new_.vars))
	for k := range old.unionKeys(new_) {
		ov, ook := old.vars[k]
		nv, nok := new_.vars[k]
		switch {
		case ook && nok:
			out[k] = interval.Widen(w, ov, nv)
		case ook:
			out[k] = ov
		default:
			out[k] = nv
		}
	}
	return Store{vars: out}
}

// Narrow applies interval.Narrow pointwise, dual to Widen.
func Narrow(w interval.Window, old, new_ Store) Store {
	if old.IsBottom() {
		return new_
	}
	if new_.IsBottom() {
		return old
	}
	out := make(map[string]interval.Interval, len(old.vars)+len(new_.vars))
	for k := range old.unionKeys(new_) {
		ov, ook := old.vars[k]
		nv, nok := new_.vars[k]
		switch {
		case ook && nok:
			out[k] = interval.Narrow(w, ov, nv)
		case ook:
			out[k] = ov
		default:
			out[k] = nv
		}
	}
	return Store{vars: out}
}

// Order mirrors interval.Order at the store level.
type Order = interval.Order

const (
	Incomparable = interval.Incomparable
	Less         = interval.Less
	Equal        = interval.Equal
	Greater      = interval.Greater
)

// PartialCmp compares a and b pointwise across the union of keys.
// Bottom stores compare equal to each other and less than any
// non-bottom store. A missing key on one side is treated as Top for
// the comparison, consistent with Get's default.
func PartialCmp(a, b Store) Order {
	aBot, bBot := a.IsBottom(), b.IsBottom()
	switch {
	case aBot && bBot:
		return Equal
	case aBot:
		return Less
	case bBot:
		return Greater
	}

	allLeq, allGeq := true, true
	for k := range a.unionKeys(b) {
		switch interval.PartialCmp(a.Get(k), b.Get(k)) {
		case Equal:
			// both directions hold
		case Less:
			allGeq = false
		case Greater:
			allLeq = false
		default:
			return Incomparable
		}
	}
	switch {
	case allLeq && allGeq:
		return Equal
	case allLeq:
		return Less
	case allGeq:
		return Greater
	default:
		return Incomparable
	}
}
