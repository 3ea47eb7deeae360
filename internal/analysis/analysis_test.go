package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

var w128 = interval.Window{M: -128, N: 127}

func prog(root ast.Stmt) *ast.Program { return &ast.Program{Root: root} }

func seq(stmts ...ast.Stmt) ast.Stmt {
	out := stmts[0]
	for _, s := range stmts[1:] {
		out = &ast.SeqStmt{First: out, Then: s}
	}
	return out
}

func TestAnalyzeAbstractMode(t *testing.T) {
	p := prog(seq(
		&ast.AssignStmt{Target: "x", Value: &ast.IntLit{Value: 3}},
		&ast.AssignStmt{Target: "y", Value: &ast.BinArithExpr{Op: ast.Add, Left: &ast.VarExpr{Name: "x"}, Right: &ast.IntLit{Value: 4}}},
	))

	out, err := Analyze(p, store.New(), w128, Abstract)
	assert.NoError(t, err)
	assert.True(t, out.Get("x").Equal(interval.Bounded(3, 3)))
	assert.True(t, out.Get("y").Equal(interval.Bounded(7, 7)))
}

func TestAnalyzeConcreteMode(t *testing.T) {
	p := prog(seq(
		&ast.AssignStmt{Target: "x", Value: &ast.IntLit{Value: 3}},
		&ast.AssignStmt{Target: "y", Value: &ast.BinArithExpr{Op: ast.Mul, Left: &ast.VarExpr{Name: "x"}, Right: &ast.IntLit{Value: 4}}},
	))

	out, err := Analyze(p, store.New(), w128, Concrete)
	assert.NoError(t, err)
	assert.True(t, out.Get("x").Equal(interval.Bounded(3, 3)))
	assert.True(t, out.Get("y").Equal(interval.Bounded(12, 12)))
}

func TestAnalyzeConcreteModeDivisionByZeroIsFatal(t *testing.T) {
	p := prog(seq(
		&ast.AssignStmt{Target: "x", Value: &ast.IntLit{Value: 0}},
		&ast.AssignStmt{Target: "y", Value: &ast.BinArithExpr{Op: ast.Div, Left: &ast.IntLit{Value: 1}, Right: &ast.VarExpr{Name: "x"}}},
	))

	_, err := Analyze(p, store.New(), w128, Concrete)
	assert.Error(t, err)
	var analysisErr *Error
	assert.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, "E0002", analysisErr.Compiler.Code)
}

func TestAnalyzeConcreteModeUndefinedVariableIsFatal(t *testing.T) {
	p := prog(&ast.AssignStmt{Target: "y", Value: &ast.VarExpr{Name: "x"}})

	_, err := Analyze(p, store.New(), w128, Concrete)
	assert.Error(t, err)
	var analysisErr *Error
	assert.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, "E0001", analysisErr.Compiler.Code)
}

func TestAnalyzeRejectsInvalidWindow(t *testing.T) {
	p := prog(&ast.SkipStmt{})
	_, err := Analyze(p, store.New(), interval.Window{M: 10, N: -10}, Abstract)
	assert.Error(t, err)
}
