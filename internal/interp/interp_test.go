package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

var w128 = interval.Window{M: -128, N: 127}

func seq(stmts ...ast.Stmt) ast.Stmt {
	if len(stmts) == 0 {
		return &ast.SkipStmt{}
	}
	out := stmts[0]
	for _, s := range stmts[1:] {
		out = &ast.SeqStmt{First: out, Then: s}
	}
	return out
}

func assign(name string, v ast.ArithExpr) ast.Stmt {
	return &ast.AssignStmt{Target: name, Value: v}
}

func lit(v int64) ast.ArithExpr { return &ast.IntLit{Value: v} }
func vr(name string) ast.ArithExpr { return &ast.VarExpr{Name: name} }

func bin(op ast.ArithOp, l, r ast.ArithExpr) ast.ArithExpr {
	return &ast.BinArithExpr{Op: op, Left: l, Right: r}
}

func cmp(op ast.CmpOp, l, r ast.ArithExpr) ast.BoolExpr {
	return &ast.CmpExpr{Op: op, Left: l, Right: r}
}

// S1 - straight-line assignment.
func TestScenarioStraightLineAssignment(t *testing.T) {
	prog := seq(
		assign("x", lit(3)),
		assign("y", bin(ast.Add, vr("x"), lit(4))),
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.True(t, out.Get("x").Equal(interval.Bounded(3, 3)))
	assert.True(t, out.Get("y").Equal(interval.Bounded(7, 7)))
}

// S2 - if with refinement: else branch is infeasible.
func TestScenarioIfWithRefinement(t *testing.T) {
	prog := seq(
		assign("x", lit(5)),
		&ast.IfStmt{
			Guard: cmp(ast.Lt, vr("x"), lit(10)),
			Then:  assign("y", lit(1)),
			Else:  assign("y", lit(2)),
		},
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.True(t, out.Get("x").Equal(interval.Bounded(5, 5)))
	assert.True(t, out.Get("y").Equal(interval.Bounded(1, 1)))
}

// S3 - while with widening then narrowing.
func TestScenarioWhileWithWidening(t *testing.T) {
	prog := seq(
		assign("x", lit(0)),
		&ast.WhileStmt{
			Guard: cmp(ast.Lt, vr("x"), lit(100)),
			Body:  assign("x", bin(ast.Add, vr("x"), lit(1))),
		},
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.True(t, out.Get("x").Equal(interval.Bounded(100, 127)))
}

// S4 - division by an interval containing zero yields top.
func TestScenarioDivisionByIntervalContainingZero(t *testing.T) {
	prog := seq(
		assign("x", lit(10)),
		assign("y", bin(ast.Div, vr("x"), vr("z"))),
	)
	initial := store.New().Update(w128, "z", interval.Bounded(-1, 1))
	ip := New(w128)
	out := ip.Step(prog, initial)

	assert.True(t, out.Get("y").IsTop())
}

// S5 - infeasible branch's divide-by-zero does not contaminate the join.
func TestScenarioInfeasibleBranchGuardedDivideByZero(t *testing.T) {
	prog := seq(
		assign("x", lit(0)),
		&ast.IfStmt{
			Guard: cmp(ast.Eq, vr("x"), lit(0)),
			Then:  assign("y", lit(1)),
			Else:  assign("y", bin(ast.Div, lit(1), vr("x"))),
		},
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.True(t, out.Get("y").Equal(interval.Bounded(1, 1)))
}

// S6 - for loop desugaring.
func TestScenarioForLoopDesugaring(t *testing.T) {
	prog := seq(
		assign("s", lit(0)),
		&ast.ForStmt{
			Init:  assign("i", lit(1)),
			Guard: cmp(ast.Leq, vr("i"), lit(5)),
			Inc:   &ast.AssignStmt{Target: "i", Value: &ast.IncDecExpr{Name: "i", Kind: ast.PostInc}},
			Body:  assign("s", bin(ast.Add, vr("s"), vr("i"))),
		},
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.Equal(t, int64(6), out.Get("i").Lo)
	assert.Equal(t, int64(127), out.Get("i").Hi)
}

func TestRepeatLoopDesugaring(t *testing.T) {
	prog := seq(
		assign("x", lit(0)),
		&ast.RepeatStmt{
			Body:  assign("x", bin(ast.Add, vr("x"), lit(1))),
			Guard: cmp(ast.Geq, vr("x"), lit(3)),
		},
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())

	assert.True(t, interval.LessEq(interval.Bounded(3, 3), out.Get("x")))
}

func TestSeqPropagatesBottom(t *testing.T) {
	prog := seq(
		assign("x", lit(0)),
		assign("y", bin(ast.Div, lit(1), vr("x"))),
		assign("z", lit(99)),
	)
	ip := New(w128)
	out := ip.Step(prog, store.New())
	assert.True(t, out.IsBottom())
}
