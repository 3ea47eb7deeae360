package interval

// LessEq implements the lattice order: a <= b iff a = ⊥, or b = ⊤, or
// both are bounded with set inclusion ([b.Lo,b.Hi] ⊇ [a.Lo,a.Hi]).
func LessEq(a, b Interval) bool {
	if a.IsBottom() {
		return true
	}
	if b.IsTop() {
		return true
	}
	if a.IsTop() || b.IsBottom() {
		return false
	}
	return b.Lo <= a.Lo && a.Hi <= b.Hi
}

// Order is the result of a partial comparison; intervals are not always
// comparable under set inclusion.
type Order int

const (
	Incomparable Order = iota
	Less
	Equal
	Greater
)

// PartialCmp compares a and b under the lattice order. It is partial:
// two overlapping-but-not-nested bounded intervals return Incomparable.
func PartialCmp(a, b Interval) Order {
	aLeB := LessEq(a, b)
	bLeA := LessEq(b, a)
	switch {
	case aLeB && bLeA:
		return Equal
	case aLeB:
		return Less
	case bLeA:
		return Greater
	default:
		return Incomparable
	}
}

// Join is the lattice lub (⊔).
func Join(w Window, a, b Interval) Interval {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	if a.IsTop() || b.IsTop() {
		return Top()
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	return Bounded(min(a.Lo, b.Lo), max(a.Hi, b.Hi))
}

// Meet is the lattice glb (⊓), also used as interval intersection.
func Meet(w Window, a, b Interval) Interval {
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	if a.IsTop() {
		return b
	}
	if b.IsTop() {
		return a
	}
	if w.singleton() {
		return Bounded(w.M, w.M)
	}
	return Bounded(max(a.Lo, b.Lo), min(a.Hi, b.Hi))
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
