package eval

import (
	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

// RefineArith performs backward refinement (C4): given expression e and
// a target interval the expression's value must fall within, it tightens
// every variable occurrence in e and reports whether the target is
// feasible at all (false means the branch is unreachable, i.e. the
// store should become bottom). Mirrors the recursive top-down walk in
// the Rust original's Node::backward_analysis, adapted to the closed
// ast.ArithExpr sum type instead of per-node mutable interval fields.
func RefineArith(w interval.Window, e ast.ArithExpr, target interval.Interval, s store.Store) (bool, store.Store) {
	switch n := e.(type) {
	case *ast.IntLit:
		m := interval.Meet(w, target, interval.Point(n.Value))
		return !m.IsBottom(), s

	case *ast.VarExpr:
		old := s.Get(n.Name)
		m := interval.Meet(w, target, old)
		if m.IsBottom() {
			return false, s.Bottom()
		}
		return true, s.Update(w, n.Name, m)

	case *ast.BinArithExpr:
		return refineBin(w, n, target, s)

	case *ast.UnaryMinus:
		return RefineArith(w, n.Value, interval.Neg(w, target), s)

	case *ast.IncDecExpr:
		// A side-effecting leaf already wrote its post-increment value
		// during forward evaluation; refining its pre-increment result
		// any further is not expressible without re-deriving the
		// pre-image of +1/-1, so it is left unrefined (sound, just
		// less precise — matches the source's silence on this case).
		return true, s
	}
	return true, s
}

func refineBin(w interval.Window, n *ast.BinArithExpr, target interval.Interval, s store.Store) (bool, store.Store) {
	lhat, s0 := Arith(w, n.Left, s)
	rhat, s1 := Arith(w, n.Right, s0)

	var leftTarget, rightTarget interval.Interval
	switch n.Op {
	case ast.Add:
		leftTarget = interval.Meet(w, lhat, interval.Sub(w, target, rhat))
		rightTarget = interval.Meet(w, rhat, interval.Sub(w, target, lhat))
	case ast.Sub:
		leftTarget = interval.Meet(w, lhat, interval.Add(w, target, rhat))
		rightTarget = interval.Meet(w, rhat, interval.Sub(w, lhat, target))
	case ast.Mul:
		leftTarget = interval.Meet(w, lhat, interval.Div(w, target, rhat))
		rightTarget = interval.Meet(w, rhat, interval.Div(w, target, lhat))
	case ast.Div:
		leftTarget = interval.Meet(w, lhat, interval.Mul(w, target, rhat))
		rightTarget = interval.Meet(w, rhat, interval.Div(w, lhat, target))
	default:
		leftTarget, rightTarget = lhat, rhat
	}

	// s1 already carries any side effect from evaluating n.Right (e.g. a
	// y++ inside the guard), so both RefineArith calls below thread from
	// s1 rather than re-deriving targets against the stale pre-right
	// store s0, which would lose that write.
	ok1, s2 := RefineArith(w, n.Left, leftTarget, s1)
	if !ok1 {
		return false, s2
	}
	ok2, s3 := RefineArith(w, n.Right, rightTarget, s2)
	return ok2, s3
}

// RefineGuard implements "use in guards" from spec.md §4.4: it
// backward-propagates the constraint that boolean expression g
// evaluates to `branch` and writes the tightened variable intervals
// into S. A guard that turns out infeasible under branch collapses S
// to bottom (the branch is dead).
func RefineGuard(w interval.Window, g ast.BoolExpr, branch bool, s store.Store) store.Store {
	switch n := g.(type) {
	case *ast.BoolLit:
		if n.Value == branch {
			return s
		}
		return s.Bottom()

	case *ast.CmpExpr:
		op := n.Op
		if !branch {
			op = op.Negate()
		}
		return refineCmp(w, op, n.Left, n.Right, s)

	case *ast.AndExpr:
		if branch {
			s1 := RefineGuard(w, n.Left, true, s)
			return RefineGuard(w, n.Right, true, s1)
		}
		// not (a && b) = !a || !b: not decomposable into a single
		// conjunctive refinement without a disjunctive store
		// representation, so left unrefined (sound, imprecise).
		return s

	case *ast.OrExpr:
		if !branch {
			s1 := RefineGuard(w, n.Left, false, s)
			return RefineGuard(w, n.Right, false, s1)
		}
		return s

	case *ast.NotExpr:
		return RefineGuard(w, n.Value, !branch, s)

	default:
		return s
	}
}

// refineCmp implements the relational-operator target derivation from
// spec.md §4.4's "Use in guards" paragraph: for `e1 < e2` the true
// branch refines e1 to [l1, min(u1, u2-1)] and e2 to [max(l2, l1+1), u2].
// The other relational operators follow the same shape.
func refineCmp(w interval.Window, op ast.CmpOp, left, right ast.ArithExpr, s store.Store) store.Store {
	l, s0 := Arith(w, left, s)
	r, s1 := Arith(w, right, s0)
	if !l.IsBounded() || !r.IsBounded() {
		return s1
	}

	var leftTarget, rightTarget interval.Interval
	switch op {
	case ast.Lt:
		leftTarget = interval.Bounded(l.Lo, min64(l.Hi, r.Hi-1))
		rightTarget = interval.Bounded(max64(r.Lo, l.Lo+1), r.Hi)
	case ast.Leq:
		leftTarget = interval.Bounded(l.Lo, min64(l.Hi, r.Hi))
		rightTarget = interval.Bounded(max64(r.Lo, l.Lo), r.Hi)
	case ast.Gt:
		leftTarget = interval.Bounded(max64(l.Lo, r.Lo+1), l.Hi)
		rightTarget = interval.Bounded(r.Lo, min64(r.Hi, l.Hi-1))
	case ast.Geq:
		leftTarget = interval.Bounded(max64(l.Lo, r.Lo), l.Hi)
		rightTarget = interval.Bounded(r.Lo, min64(r.Hi, l.Hi))
	case ast.Eq:
		m := interval.Meet(w, l, r)
		leftTarget, rightTarget = m, m
	case ast.Neq:
		// Disequality excludes at most a single point from an
		// interval's interior, which this domain cannot express
		// without splitting into two intervals; left unrefined.
		return s1
	default:
		return s1
	}

	ok1, s2 := RefineArith(w, left, leftTarget, s1)
	if !ok1 {
		return s2.Bottom()
	}
	ok2, s3 := RefineArith(w, right, rightTarget, s2)
	if !ok2 {
		return s3.Bottom()
	}
	return s3
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
