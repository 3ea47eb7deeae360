// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"whileanalyzer/internal/ast"
	"whileanalyzer/token"
)

// ParseError reports a syntax error at a source position. Parsing never
// panics on malformed input; errors are collected into a slice the same
// way the teacher's parser accumulates []SemanticError.
type ParseError struct {
	Message  string
	Position ast.Position
}

// Parser builds an *ast.Program from a token stream using recursive
// descent for statements and precedence-climbing (the teacher's Pratt
// technique) for arithmetic and boolean expressions.
type Parser struct {
	tokens   []token.Token
	current  int
	filename string
	errors   []ParseError
}

func NewParser(tokens []token.Token, filename string) *Parser {
	return &Parser{tokens: tokens, filename: filename}
}

// ParseProgram parses "stmt (';' stmt)* ';'?" into a left-leaning SeqStmt
// chain, per spec.md's grammar.
func (p *Parser) ParseProgram() (*ast.Program, []ParseError) {
	root := p.parseStmt()
	for p.match(token.SEMICOLON) {
		if p.check(token.EOF) {
			break
		}
		next := p.parseStmt()
		root = &ast.SeqStmt{Pos: root.NodePos(), First: root, Then: next}
	}
	if !p.check(token.EOF) {
		p.errorAtCurrent("expected end of input")
	}
	return &ast.Program{Root: root}, p.errors
}

// --- statements ---

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case token.SKIP:
		tok := p.advance()
		return &ast.SkipStmt{Pos: p.pos(tok)}
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.REPEAT:
		return p.parseRepeatStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.IDENT:
		return p.parseAssignStmt()
	default:
		tok := p.peek()
		p.errorAtCurrent("expected a statement")
		p.advance()
		return &ast.SkipStmt{Pos: p.pos(tok)}
	}
}

func (p *Parser) parseAssignStmt() ast.Stmt {
	name := p.advance()
	p.consume(token.ASSIGN, "expected ':=' after identifier")
	value := p.parseArithExpr()
	return &ast.AssignStmt{Pos: p.pos(name), Target: name.Literal, Value: value}
}

func (p *Parser) parseBlock() ast.Stmt {
	p.consume(token.LBRACE, "expected '{'")
	body := p.parseStmt()
	for p.match(token.SEMICOLON) {
		if p.check(token.RBRACE) {
			break
		}
		next := p.parseStmt()
		body = &ast.SeqStmt{Pos: body.NodePos(), First: body, Then: next}
	}
	p.consume(token.RBRACE, "expected '}' to close block")
	return body
}

func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.advance()
	p.consume(token.LPAREN, "expected '(' after 'if'")
	guard := p.parseBoolExpr()
	p.consume(token.RPAREN, "expected ')' after condition")
	p.consume(token.THEN, "expected 'then'")
	then := p.parseBlock()

	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.parseBlock()
	}
	return &ast.IfStmt{Pos: p.pos(tok), Guard: guard, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.advance()
	p.consume(token.LPAREN, "expected '(' after 'while'")
	guard := p.parseBoolExpr()
	p.consume(token.RPAREN, "expected ')' after condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Pos: p.pos(tok), Guard: guard, Body: body}
}

func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.advance()
	p.consume(token.LPAREN, "expected '(' after 'for'")
	init := p.parseStmt()
	p.consume(token.SEMICOLON, "expected ';' after for-init")
	guard := p.parseBoolExpr()
	p.consume(token.SEMICOLON, "expected ';' after for-condition")
	inc := p.parseStmt()
	p.consume(token.RPAREN, "expected ')' after for-clauses")
	body := p.parseBlock()
	return &ast.ForStmt{Pos: p.pos(tok), Init: init, Guard: guard, Inc: inc, Body: body}
}

func (p *Parser) parseRepeatStmt() ast.Stmt {
	tok := p.advance()
	body := p.parseBlock()
	p.consume(token.UNTIL, "expected 'until' after repeat body")
	guard := p.parseBoolExpr()
	return &ast.RepeatStmt{Pos: p.pos(tok), Body: body, Guard: guard}
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	tok := p.advance()
	value := p.parseArithExpr()
	return &ast.PrintStmt{Pos: p.pos(tok), Value: value}
}

// --- boolean expressions: precedence-climbing over ||, &&, !, comparisons ---

func (p *Parser) parseBoolExpr() ast.BoolExpr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.BoolExpr {
	left := p.parseAnd()
	for p.match(token.OR) {
		tok := p.previous()
		right := p.parseAnd()
		left = &ast.OrExpr{Pos: p.pos(tok), Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.BoolExpr {
	left := p.parseNot()
	for p.match(token.AND) {
		tok := p.previous()
		right := p.parseNot()
		left = &ast.AndExpr{Pos: p.pos(tok), Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.BoolExpr {
	if p.match(token.BANG) {
		tok := p.previous()
		value := p.parseNot()
		return &ast.NotExpr{Pos: p.pos(tok), Value: value}
	}
	return p.parseBoolPrimary()
}

func (p *Parser) parseBoolPrimary() ast.BoolExpr {
	switch p.peek().Type {
	case token.TRUE:
		tok := p.advance()
		return &ast.BoolLit{Pos: p.pos(tok), Value: true}
	case token.FALSE:
		tok := p.advance()
		return &ast.BoolLit{Pos: p.pos(tok), Value: false}
	case token.LPAREN:
		if p.isParenBoolExpr() {
			p.advance()
			inner := p.parseBoolExpr()
			p.consume(token.RPAREN, "expected ')' after expression")
			return inner
		}
	}

	left := p.parseArithExpr()
	op, ok := cmpOpOf(p.peek().Type)
	if !ok {
		tok := p.peek()
		p.errorAtCurrent("expected a comparison operator")
		return &ast.BoolLit{Pos: p.pos(tok), Value: false}
	}
	tok := p.advance()
	right := p.parseArithExpr()
	return &ast.CmpExpr{Pos: p.pos(tok), Op: op, Left: left, Right: right}
}

// isParenBoolExpr performs a bounded lookahead to decide whether a '('
// opens a parenthesized boolean expression (contains && or || at depth 1
// before the matching ')') rather than a parenthesized arithmetic
// expression feeding a comparison, e.g. "(x + 1) < y".
func (p *Parser) isParenBoolExpr() bool {
	depth := 0
	for i := p.current; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return false
			}
		case token.AND, token.OR:
			if depth == 1 {
				return true
			}
		case token.SEMICOLON, token.EOF:
			return false
		}
	}
	return false
}

func cmpOpOf(t token.TokenType) (ast.CmpOp, bool) {
	switch t {
	case token.EQ:
		return ast.Eq, true
	case token.NOT_EQ:
		return ast.Neq, true
	case token.LT:
		return ast.Lt, true
	case token.LTE:
		return ast.Leq, true
	case token.GT:
		return ast.Gt, true
	case token.GTE:
		return ast.Geq, true
	default:
		return 0, false
	}
}

// --- arithmetic expressions: precedence-climbing over +/- and */÷ ---

var binaryPrecedence = map[token.TokenType]int{
	token.PLUS:     1,
	token.MINUS:    1,
	token.ASTERISK: 2,
	token.SLASH:    2,
}

func (p *Parser) parseArithExpr() ast.ArithExpr {
	return p.parsePrattExpr(0)
}

func (p *Parser) parsePrattExpr(minPrec int) ast.ArithExpr {
	left := p.parseUnaryExpr()

	for {
		prec, ok := binaryPrecedence[p.peek().Type]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.advance()
		op := arithOpOf(opTok.Type)
		right := p.parsePrattExpr(prec + 1)
		left = &ast.BinArithExpr{Pos: p.pos(opTok), Op: op, Left: left, Right: right}
	}
	return left
}

func arithOpOf(t token.TokenType) ast.ArithOp {
	switch t {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.ASTERISK:
		return ast.Mul
	default:
		return ast.Div
	}
}

func (p *Parser) parseUnaryExpr() ast.ArithExpr {
	if p.match(token.MINUS) {
		tok := p.previous()
		value := p.parseUnaryExpr()
		return &ast.UnaryMinus{Pos: p.pos(tok), Value: value}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() ast.ArithExpr {
	expr := p.parsePrimaryExpr()
	if ident, ok := expr.(*ast.VarExpr); ok {
		if p.match(token.INC) {
			return &ast.IncDecExpr{Pos: ident.Pos, Name: ident.Name, Kind: ast.PostInc}
		}
		if p.match(token.DEC) {
			return &ast.IncDecExpr{Pos: ident.Pos, Name: ident.Name, Kind: ast.PostDec}
		}
	}
	return expr
}

func (p *Parser) parsePrimaryExpr() ast.ArithExpr {
	switch p.peek().Type {
	case token.INT:
		tok := p.advance()
		return &ast.IntLit{Pos: p.pos(tok), Value: parseInt(tok.Literal)}
	case token.IDENT:
		tok := p.advance()
		return &ast.VarExpr{Pos: p.pos(tok), Name: tok.Literal}
	case token.LPAREN:
		p.advance()
		inner := p.parseArithExpr()
		p.consume(token.RPAREN, "expected ')' after expression")
		return inner
	default:
		tok := p.peek()
		p.errorAtCurrent("expected an expression")
		p.advance()
		return &ast.IntLit{Pos: p.pos(tok), Value: 0}
	}
}

func parseInt(lit string) int64 {
	var v int64
	for _, c := range lit {
		v = v*10 + int64(c-'0')
	}
	return v
}

// --- token-stream helpers ---

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	return p.peek()
}

func (p *Parser) errorAtCurrent(message string) {
	tok := p.peek()
	p.errors = append(p.errors, ParseError{Message: message, Position: p.pos(tok)})
}

func (p *Parser) pos(tok token.Token) ast.Position {
	return ast.Position{Filename: p.filename, Line: tok.Line, Column: tok.Column}
}
