// SPDX-License-Identifier: Apache-2.0

// Package parser implements the hand-written lexer and Pratt expression
// parser for the While language's surface syntax.
package parser

import "whileanalyzer/internal/ast"

// Parse scans and parses source into a *ast.Program. filename is used only
// to annotate error positions. Lexical errors are reported first (if any),
// followed by syntax errors encountered while consuming the token stream
// that the lexer still managed to produce.
func Parse(source, filename string) (*ast.Program, []ScanError, []ParseError) {
	scanner := NewScanner(source, filename)
	tokens, scanErrs := scanner.ScanTokens()

	p := NewParser(tokens, filename)
	program, parseErrs := p.ParseProgram()
	return program, scanErrs, parseErrs
}
