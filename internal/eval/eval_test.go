package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

var w128 = interval.Window{M: -128, N: 127}

func TestArithLiteralAndVariable(t *testing.T) {
	s := store.New().Update(w128, "x", interval.Bounded(3, 3))

	v, _ := Arith(w128, &ast.IntLit{Value: 42}, s)
	assert.True(t, v.Equal(interval.Bounded(42, 42)))

	v, _ = Arith(w128, &ast.VarExpr{Name: "x"}, s)
	assert.True(t, v.Equal(interval.Bounded(3, 3)))

	v, _ = Arith(w128, &ast.VarExpr{Name: "unassigned"}, s)
	assert.True(t, v.IsTop())
}

func TestArithBinaryOps(t *testing.T) {
	s := store.New()
	e := &ast.BinArithExpr{
		Op:    ast.Add,
		Left:  &ast.IntLit{Value: 2},
		Right: &ast.IntLit{Value: 3},
	}
	v, _ := Arith(w128, e, s)
	assert.True(t, v.Equal(interval.Bounded(5, 5)))
}

func TestArithUnaryMinus(t *testing.T) {
	v, _ := Arith(w128, &ast.UnaryMinus{Value: &ast.IntLit{Value: 4}}, store.New())
	assert.True(t, v.Equal(interval.Bounded(-4, -4)))
}

func TestArithIncDecReturnsPreIncrementValue(t *testing.T) {
	s := store.New().Update(w128, "x", interval.Bounded(5, 5))

	v, s2 := Arith(w128, &ast.IncDecExpr{Name: "x", Kind: ast.PostInc}, s)
	assert.True(t, v.Equal(interval.Bounded(5, 5)), "x++ yields the pre-increment value")
	assert.True(t, s2.Get("x").Equal(interval.Bounded(6, 6)), "but the store now holds the incremented value")

	v, s3 := Arith(w128, &ast.IncDecExpr{Name: "x", Kind: ast.PostDec}, s2)
	assert.True(t, v.Equal(interval.Bounded(6, 6)))
	assert.True(t, s3.Get("x").Equal(interval.Bounded(5, 5)))
}

func TestArithSideEffectThreadsLeftToRight(t *testing.T) {
	s := store.New().Update(w128, "x", interval.Bounded(1, 1))
	e := &ast.BinArithExpr{
		Op:    ast.Add,
		Left:  &ast.IncDecExpr{Name: "x", Kind: ast.PostInc},
		Right: &ast.VarExpr{Name: "x"},
	}
	v, s2 := Arith(w128, e, s)
	// left evaluates x++ -> 1, mutating x to 2; right then reads the
	// mutated x (2), so the sum is 1 + 2 = 3.
	assert.True(t, v.Equal(interval.Bounded(3, 3)))
	assert.True(t, s2.Get("x").Equal(interval.Bounded(2, 2)))
}

func TestBoolComparisons(t *testing.T) {
	s := store.New().
		Update(w128, "x", interval.Bounded(1, 2)).
		Update(w128, "y", interval.Bounded(5, 9))

	r, _ := Bool(w128, &ast.CmpExpr{Op: ast.Lt, Left: &ast.VarExpr{Name: "x"}, Right: &ast.VarExpr{Name: "y"}}, s)
	assert.Equal(t, interval.True, r)

	r, _ = Bool(w128, &ast.CmpExpr{Op: ast.Gt, Left: &ast.VarExpr{Name: "x"}, Right: &ast.VarExpr{Name: "y"}}, s)
	assert.Equal(t, interval.False, r)
}

func TestBoolLogic(t *testing.T) {
	s := store.New()
	lit := func(v bool) ast.BoolExpr { return &ast.BoolLit{Value: v} }

	r, _ := Bool(w128, &ast.AndExpr{Left: lit(true), Right: lit(false)}, s)
	assert.Equal(t, interval.False, r)

	r, _ = Bool(w128, &ast.OrExpr{Left: lit(false), Right: lit(true)}, s)
	assert.Equal(t, interval.True, r)

	r, _ = Bool(w128, &ast.NotExpr{Value: lit(true)}, s)
	assert.Equal(t, interval.False, r)
}

func TestDivisionByZeroAbstract(t *testing.T) {
	s := store.New().Update(w128, "x", interval.Bounded(0, 0))
	e := &ast.BinArithExpr{Op: ast.Div, Left: &ast.IntLit{Value: 10}, Right: &ast.VarExpr{Name: "x"}}
	v, _ := Arith(w128, e, s)
	assert.True(t, v.IsBottom())
}
