package interval

// Widen is the widening operator ∇, applied to a previous iterate `old`
// and a new iterate `new` with new ⊒ old. It guarantees termination: the
// only finite values the upper bound may take are old.Hi, 0, or w.N
// (symmetrically for the lower bound), so a chain of widenings can only
// take finitely many distinct values before stabilizing.
func Widen(w Window, old, new Interval) Interval {
	if old.IsBottom() {
		return new
	}
	if new.IsBottom() {
		return old
	}
	if old.IsTop() || new.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}

	var lo int64
	switch {
	case old.Lo <= new.Lo:
		lo = old.Lo
	case new.Lo <= 0 && 0 < old.Lo:
		lo = 0
	default:
		lo = w.M
	}

	var hi int64
	switch {
	case old.Hi >= new.Hi:
		hi = old.Hi
	case old.Hi <= 0 && 0 < new.Hi:
		hi = 0
	default:
		hi = w.N
	}

	return Bounded(lo, hi)
}

// Narrow is the narrowing operator △, applied after widening has reached
// a post-fixpoint. `old` is the previous iterate, `new` is F(old).
func Narrow(w Window, old, new Interval) Interval {
	if old.IsBottom() {
		return new
	}
	if new.IsBottom() {
		return old
	}
	if old.IsTop() {
		return new
	}
	if new.IsTop() {
		return old
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}

	var lo int64
	if w.M >= old.Lo {
		lo = new.Lo
	} else {
		lo = old.Lo
	}

	var hi int64
	if w.N <= old.Hi {
		hi = new.Hi
	} else {
		hi = old.Hi
	}

	return Bounded(lo, hi)
}
