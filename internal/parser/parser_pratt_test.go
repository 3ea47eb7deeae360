// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"testing"

	"whileanalyzer/internal/ast"
)

func prepareParser(src string) *Parser {
	scanner := NewScanner(src, "test.while")
	tokens, _ := scanner.ScanTokens()
	return NewParser(tokens, "test.while")
}

func TestParseArithmeticPrecedence(t *testing.T) {
	p := prepareParser("1 + 2 * 3")
	expr := p.parseArithExpr()

	bin, ok := expr.(*ast.BinArithExpr)
	if !ok {
		t.Fatalf("expected top-level BinArithExpr, got %T", expr)
	}
	if bin.Op != ast.Add {
		t.Errorf("expected top-level operator to be '+', got %s", bin.Op)
	}
	right, ok := bin.Right.(*ast.BinArithExpr)
	if !ok || right.Op != ast.Mul {
		t.Errorf("expected right-hand side to be a multiplication, got %#v", bin.Right)
	}
}

func TestParsePostfixIncrement(t *testing.T) {
	p := prepareParser("x++")
	expr := p.parseArithExpr()

	inc, ok := expr.(*ast.IncDecExpr)
	if !ok {
		t.Fatalf("expected IncDecExpr, got %T", expr)
	}
	if inc.Name != "x" || inc.Kind != ast.PostInc {
		t.Errorf("expected x++, got %+v", inc)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	p := prepareParser("-1 + x")
	expr := p.parseArithExpr()

	bin, ok := expr.(*ast.BinArithExpr)
	if !ok {
		t.Fatalf("expected BinArithExpr, got %T", expr)
	}
	if _, ok := bin.Left.(*ast.UnaryMinus); !ok {
		t.Errorf("expected left operand to be a UnaryMinus, got %#v", bin.Left)
	}
}

func TestParseComparisonAndBoolOps(t *testing.T) {
	p := prepareParser("x <= 10 && y != 0")
	expr := p.parseBoolExpr()

	and, ok := expr.(*ast.AndExpr)
	if !ok {
		t.Fatalf("expected AndExpr, got %T", expr)
	}
	left, ok := and.Left.(*ast.CmpExpr)
	if !ok || left.Op != ast.Leq {
		t.Errorf("expected left comparison to be '<=', got %#v", and.Left)
	}
	right, ok := and.Right.(*ast.CmpExpr)
	if !ok || right.Op != ast.Neq {
		t.Errorf("expected right comparison to be '!=', got %#v", and.Right)
	}
}

func TestParseParenthesizedBoolExpr(t *testing.T) {
	p := prepareParser("!(x < 1 || y < 1)")
	expr := p.parseBoolExpr()

	not, ok := expr.(*ast.NotExpr)
	if !ok {
		t.Fatalf("expected NotExpr, got %T", expr)
	}
	if _, ok := not.Value.(*ast.OrExpr); !ok {
		t.Errorf("expected negated operand to be an OrExpr, got %#v", not.Value)
	}
}

func TestParseAssignStmt(t *testing.T) {
	p := prepareParser("x := 1 + 2")
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	assign, ok := program.Root.(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", program.Root)
	}
	if assign.Target != "x" {
		t.Errorf("expected target 'x', got %q", assign.Target)
	}
}

func TestParseIfWhileForRepeat(t *testing.T) {
	src := `
		if (x < 10) then { x := x + 1 } else { x := 0 };
		while (x < 100) { x := x + 1 };
		for (i := 0; i < 10; i := i + 1) { x := x + i };
		repeat { x := x - 1 } until x <= 0
	`
	p := prepareParser(src)
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	var forms []ast.Stmt
	var walk func(ast.Stmt)
	walk = func(s ast.Stmt) {
		if seq, ok := s.(*ast.SeqStmt); ok {
			walk(seq.First)
			walk(seq.Then)
			return
		}
		forms = append(forms, s)
	}
	walk(program.Root)

	if len(forms) != 4 {
		t.Fatalf("expected 4 top-level statements, got %d", len(forms))
	}
	if _, ok := forms[0].(*ast.IfStmt); !ok {
		t.Errorf("expected IfStmt, got %T", forms[0])
	}
	if _, ok := forms[1].(*ast.WhileStmt); !ok {
		t.Errorf("expected WhileStmt, got %T", forms[1])
	}
	if _, ok := forms[2].(*ast.ForStmt); !ok {
		t.Errorf("expected ForStmt, got %T", forms[2])
	}
	if _, ok := forms[3].(*ast.RepeatStmt); !ok {
		t.Errorf("expected RepeatStmt, got %T", forms[3])
	}
}

func TestParseSkipAndPrint(t *testing.T) {
	p := prepareParser("skip; print x + 1")
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	seq, ok := program.Root.(*ast.SeqStmt)
	if !ok {
		t.Fatalf("expected SeqStmt, got %T", program.Root)
	}
	if _, ok := seq.First.(*ast.SkipStmt); !ok {
		t.Errorf("expected SkipStmt, got %T", seq.First)
	}
	if _, ok := seq.Then.(*ast.PrintStmt); !ok {
		t.Errorf("expected PrintStmt, got %T", seq.Then)
	}
}

func TestParseUnexpectedTokenRecordsError(t *testing.T) {
	p := prepareParser("x := ")
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a missing expression")
	}
}
