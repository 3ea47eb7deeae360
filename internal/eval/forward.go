// Package eval implements forward expression evaluation (C3) and
// backward refinement (C4) over the interval abstract domain.
package eval

import (
	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

// Arith evaluates an arithmetic expression abstractly under S, returning
// its interval together with the store that results from any side
// effect (x++/x--). Most expression forms leave the store unchanged;
// only IncDecExpr mutates it, so callers must thread the returned store
// through the remainder of the containing statement rather than
// discarding it — spec.md requires strictly left-to-right evaluation
// precisely because of this.
func Arith(w interval.Window, e ast.ArithExpr, s store.Store) (interval.Interval, store.Store) {
	switch n := e.(type) {
	case *ast.IntLit:
		return interval.Point(n.Value), s

	case *ast.VarExpr:
		return s.Get(n.Name), s

	case *ast.BinArithExpr:
		l, s1 := Arith(w, n.Left, s)
		r, s2 := Arith(w, n.Right, s1)
		return applyArithOp(w, n.Op, l, r), s2

	case *ast.UnaryMinus:
		v, s1 := Arith(w, n.Value, s)
		return interval.Neg(w, v), s1

	case *ast.IncDecExpr:
		return evalIncDec(w, n, s)

	default:
		return interval.Top(), s
	}
}

func applyArithOp(w interval.Window, op ast.ArithOp, l, r interval.Interval) interval.Interval {
	switch op {
	case ast.Add:
		return interval.Add(w, l, r)
	case ast.Sub:
		return interval.Sub(w, l, r)
	case ast.Mul:
		return interval.Mul(w, l, r)
	case ast.Div:
		return interval.Div(w, l, r)
	default:
		return interval.Top()
	}
}

// evalIncDec implements x++/x--. Per spec.md §9 Open Question 1, the
// expression's value is the pre-increment interval (standard C `x++`
// semantics); the post-increment interval is what gets written back
// into the store.
func evalIncDec(w interval.Window, n *ast.IncDecExpr, s store.Store) (interval.Interval, store.Store) {
	pre := s.Get(n.Name)
	var delta interval.Interval
	switch n.Kind {
	case ast.PostInc:
		delta = interval.Add(w, pre, interval.Point(1))
	case ast.PostDec:
		delta = interval.Sub(w, pre, interval.Point(1))
	default:
		delta = pre
	}
	// x++ assigns the new value outright; it does not meet against
	// whatever was previously bound, unlike a general `update`.
	return pre, s.Assign(n.Name, delta)
}

// Bool evaluates a boolean expression to a three-valued truth result.
// Boolean expressions in this language have no side effects of their
// own (only their ast.ArithExpr children might, via x++ inside a
// comparison), so Bool also threads the store through for soundness.
func Bool(w interval.Window, b ast.BoolExpr, s store.Store) (interval.TriState, store.Store) {
	switch n := b.(type) {
	case *ast.BoolLit:
		if n.Value {
			return interval.True, s
		}
		return interval.False, s

	case *ast.CmpExpr:
		l, s1 := Arith(w, n.Left, s)
		r, s2 := Arith(w, n.Right, s1)
		return compare(n.Op, l, r), s2

	case *ast.AndExpr:
		l, s1 := Bool(w, n.Left, s)
		r, s2 := Bool(w, n.Right, s1)
		return interval.And(l, r), s2

	case *ast.OrExpr:
		l, s1 := Bool(w, n.Left, s)
		r, s2 := Bool(w, n.Right, s1)
		return interval.Or(l, r), s2

	case *ast.NotExpr:
		v, s1 := Bool(w, n.Value, s)
		return v.Not(), s1

	default:
		return interval.Unknown, s
	}
}

func compare(op ast.CmpOp, l, r interval.Interval) interval.TriState {
	switch op {
	case ast.Lt:
		return interval.Lt(l, r)
	case ast.Leq:
		return interval.Leq(l, r)
	case ast.Gt:
		return interval.Gt(l, r)
	case ast.Geq:
		return interval.Geq(l, r)
	case ast.Eq:
		return interval.EqCmp(l, r)
	case ast.Neq:
		return interval.NeqCmp(l, r)
	default:
		return interval.Unknown
	}
}
