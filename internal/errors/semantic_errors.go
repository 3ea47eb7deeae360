package errors

import (
	"fmt"

	"whileanalyzer/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for building a
// CompilerError with suggestions, notes and help text attached.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new error builder.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new warning builder.
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedVariable reports a variable read before assignment under
// concrete evaluation (E0001). similarNames, when non-empty, drives a
// "did you mean" suggestion the way the teacher's resolver does.
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	} else if len(similarNames) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", joinQuoted(similarNames)))
	} else {
		builder = builder.WithSuggestion("assign the variable before reading it, or bind it in the initial store").
			WithNote("concrete evaluation has no default value for an unassigned variable")
	}

	return builder.Build()
}

// DivisionByZero reports a concrete-mode division whose divisor
// evaluated to exactly zero (E0002). Abstract mode never reports this:
// dividing by an interval containing zero instead yields Bottom or Top,
// per C1's Div.
func DivisionByZero(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDivisionByZero, "division by zero", pos).
		WithSuggestion("guard the division with a conditional that excludes zero").
		WithHelp("concrete evaluation treats this as a fatal error, matching the source language's runtime semantics").
		Build()
}

// InvalidWindow reports a widening window with m > n (E0200).
func InvalidWindow(m, n int64) CompilerError {
	return NewSemanticError(ErrorInvalidWindow, fmt.Sprintf("invalid widening window: m=%d is greater than n=%d", m, n), ast.Position{}).
		WithSuggestion("swap the bounds, or widen n so that m <= n").
		Build()
}

// NarrowingCapExceeded reports that a loop's narrowing phase did not
// stabilize within interp.NarrowCap iterations (W0001). This is not
// unsound — the result after the cap is still a valid over-approximation
// — only less precise than running narrowing to a fixpoint.
func NarrowingCapExceeded(pos ast.Position, cap int) CompilerError {
	return NewSemanticWarning(WarningNarrowingCapExceeded, fmt.Sprintf("narrowing did not stabilize within %d iteration(s)", cap), pos).
		WithNote("the reported interval is still sound, just potentially wider than a fixpoint narrowing would produce").
		Build()
}

func joinQuoted(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "', '"
		}
		out += n
	}
	return out
}

// findSimilarNames returns candidates within edit-distance 2 of target,
// used to build "did you mean" suggestions for undefined variables.
func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 1 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// FindSimilarNames is the exported entry point used by the concrete
// evaluator to suggest near-miss variable names on an undefined read.
func FindSimilarNames(target string, candidates []string) []string {
	return findSimilarNames(target, candidates)
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
