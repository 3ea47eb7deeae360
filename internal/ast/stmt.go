// SPDX-License-Identifier: Apache-2.0
package ast

// Stmt is the closed set of statement forms.
type Stmt interface {
	Node
	isStmt()
}

func (*SkipStmt) isStmt()   {}
func (*AssignStmt) isStmt() {}
func (*SeqStmt) isStmt()    {}
func (*IfStmt) isStmt()     {}
func (*WhileStmt) isStmt()  {}
func (*ForStmt) isStmt()    {}
func (*RepeatStmt) isStmt() {}
func (*PrintStmt) isStmt()  {}

// SkipStmt is the no-op statement.
type SkipStmt struct {
	Pos Position
}

func (n *SkipStmt) NodePos() Position { return n.Pos }

// AssignStmt is `x := e`.
type AssignStmt struct {
	Pos    Position
	Target string
	Value  ArithExpr
}

func (n *AssignStmt) NodePos() Position { return n.Pos }

// SeqStmt is `s1; s2`. Parsing always produces a left-leaning chain so
// that execution order (left to right, strictly) is explicit in the
// tree shape rather than relying on slice iteration order elsewhere.
type SeqStmt struct {
	Pos         Position
	First, Then Stmt
}

func (n *SeqStmt) NodePos() Position { return n.Pos }

// IfStmt is `if (g) then { Then } else { Else }`; Else is nil when the
// surface program omitted the else-branch (treated as `skip`).
type IfStmt struct {
	Pos        Position
	Guard      BoolExpr
	Then, Else Stmt
}

func (n *IfStmt) NodePos() Position { return n.Pos }

// WhileStmt is `while (g) { Body }`.
type WhileStmt struct {
	Pos   Position
	Guard BoolExpr
	Body  Stmt
}

func (n *WhileStmt) NodePos() Position { return n.Pos }

// ForStmt is `for (Init; Guard; Inc) { Body }`. The interpreter desugars
// this to `Init; while (Guard) { Body; Inc }` rather than carrying any
// special-cased loop logic of its own.
type ForStmt struct {
	Pos   Position
	Init  Stmt
	Guard BoolExpr
	Inc   Stmt
	Body  Stmt
}

func (n *ForStmt) NodePos() Position { return n.Pos }

// RepeatStmt is `repeat { Body } until g`, desugared to
// `Body; while (!g) { Body }`.
type RepeatStmt struct {
	Pos   Position
	Body  Stmt
	Guard BoolExpr
}

func (n *RepeatStmt) NodePos() Position { return n.Pos }

// PrintStmt evaluates Value and emits it. Not part of spec.md's statement
// grammar or of original_source's AST; original_source/src/ast/mod.rs's
// Node::pretty_print and its scattered debug println! calls show intent to
// observe values during development, but no dedicated statement backs that
// intent there. PrintStmt rounds the language out accordingly and has no
// effect on the store.
type PrintStmt struct {
	Pos   Position
	Value ArithExpr
}

func (n *PrintStmt) NodePos() Position { return n.Pos }
