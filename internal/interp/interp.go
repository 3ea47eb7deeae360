// Package interp implements the statement interpreter (C5): it walks
// the program's AST and threads an abstract store through each
// statement, including the widen-then-narrow fixpoint loop for while.
package interp

import (
	"fmt"
	"io"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/eval"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

// NarrowCap bounds the number of narrowing iterations after a loop's
// widening phase reaches a post-fixpoint, per spec.md's "typically <=3
// or until stable" — narrowing alone is not guaranteed to terminate if
// intervals keep oscillating within the window, so an explicit cap is
// required.
const NarrowCap = 3

// Interpreter holds the widening window and the sink for print
// statements; it carries no other state, since stores and intervals
// are pure values threaded explicitly through every call.
type Interpreter struct {
	Window interval.Window
	Output io.Writer
}

// New builds an Interpreter with the given widening window. Print
// statements are discarded unless the Output field is set directly.
func New(w interval.Window) *Interpreter {
	return &Interpreter{Window: w, Output: io.Discard}
}

// Step executes stmt under S and returns the resulting store,
// following spec.md §4.5 exactly.
func (ip *Interpreter) Step(stmt ast.Stmt, s store.Store) store.Store {
	if s.IsBottom() {
		return s
	}
	switch n := stmt.(type) {
	case *ast.SkipStmt:
		return s

	case *ast.AssignStmt:
		v, s1 := eval.Arith(ip.Window, n.Value, s)
		return s1.Assign(n.Target, v)

	case *ast.SeqStmt:
		return ip.Step(n.Then, ip.Step(n.First, s))

	case *ast.IfStmt:
		return ip.stepIf(n, s)

	case *ast.WhileStmt:
		return ip.stepWhile(n, s)

	case *ast.ForStmt:
		return ip.Step(desugarFor(n), s)

	case *ast.RepeatStmt:
		return ip.Step(desugarRepeat(n), s)

	case *ast.PrintStmt:
		v, s1 := eval.Arith(ip.Window, n.Value, s)
		fmt.Fprintf(ip.Output, "%s\n", v.String())
		return s1

	default:
		return s
	}
}

func (ip *Interpreter) stepIf(n *ast.IfStmt, s store.Store) store.Store {
	elseStmt := n.Else
	if elseStmt == nil {
		elseStmt = &ast.SkipStmt{Pos: n.Pos}
	}

	sTrue := eval.RefineGuard(ip.Window, n.Guard, true, s)
	sFalse := eval.RefineGuard(ip.Window, n.Guard, false, s)

	resTrue := ip.Step(n.Then, sTrue)
	resFalse := ip.Step(elseStmt, sFalse)

	return store.Lub(ip.Window, resTrue, resFalse)
}

// stepWhile implements the fixpoint in spec.md §4.5: F(X) = S ⊔
// step(body, refine(g=true, X)). Widen to a post-fixpoint, then narrow
// for a bounded number of steps, then refine the exit store on
// (g=false).
func (ip *Interpreter) stepWhile(n *ast.WhileStmt, s store.Store) store.Store {
	f := func(x store.Store) store.Store {
		guarded := eval.RefineGuard(ip.Window, n.Guard, true, x)
		body := ip.Step(n.Body, guarded)
		return store.Lub(ip.Window, s, body)
	}

	x := store.New().Bottom()
	for {
		next := store.Widen(ip.Window, x, f(x))
		cmp := store.PartialCmp(next, x)
		stable := cmp == store.Less || cmp == store.Equal
		x = next
		if stable {
			break
		}
	}

	y := x
	for i := 0; i < NarrowCap; i++ {
		next := store.Narrow(ip.Window, y, f(y))
		stable := store.PartialCmp(next, y) == store.Equal
		y = next
		if stable {
			break
		}
	}

	return eval.RefineGuard(ip.Window, n.Guard, false, y)
}

// desugarFor rewrites `for (init; g; inc) body` to
// `init; while (g) { body; inc }`.
func desugarFor(n *ast.ForStmt) ast.Stmt {
	loopBody := &ast.SeqStmt{Pos: n.Pos, First: n.Body, Then: n.Inc}
	loop := &ast.WhileStmt{Pos: n.Pos, Guard: n.Guard, Body: loopBody}
	return &ast.SeqStmt{Pos: n.Pos, First: n.Init, Then: loop}
}

// desugarRepeat rewrites `repeat body until g` to
// `body; while (!g) { body }`.
func desugarRepeat(n *ast.RepeatStmt) ast.Stmt {
	notGuard := &ast.NotExpr{Pos: n.Pos, Value: n.Guard}
	loop := &ast.WhileStmt{Pos: n.Pos, Guard: notGuard, Body: n.Body}
	return &ast.SeqStmt{Pos: n.Pos, First: n.Body, Then: loop}
}
