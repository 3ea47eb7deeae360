// Package analysis implements the analysis driver (C6): it binds an
// AST, an initial store, a widening window and a mode flag into a
// single call that produces the final store.
package analysis

import (
	"io"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/errors"
	"whileanalyzer/internal/interp"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

// Mode selects concrete or abstract evaluation, matching spec.md §6's
// invocation contract (`mode ∈ {1: concrete, 2: abstract}`).
type Mode int

const (
	Concrete Mode = 1
	Abstract Mode = 2
)

// Analyze installs the widening window and runs the program from the
// given initial store in the requested mode. In Abstract mode the
// result is an interval-valued store.Store; in Concrete mode it is a
// store.Store binding each variable to the point interval [v, v] of its
// final concrete value, and any runtime error (undefined variable,
// division by zero) aborts the run, matching spec.md's "fatal in
// concrete mode".
func Analyze(program *ast.Program, initial store.Store, w interval.Window, mode Mode) (store.Store, error) {
	return AnalyzeTo(program, initial, w, mode, io.Discard)
}

// AnalyzeTo is Analyze with an explicit sink for the program's print
// statements.
func AnalyzeTo(program *ast.Program, initial store.Store, w interval.Window, mode Mode, out io.Writer) (store.Store, error) {
	if w.M > w.N {
		e := errors.InvalidWindow(w.M, w.N)
		return store.Store{}, &Error{Compiler: e}
	}

	switch mode {
	case Concrete:
		return RunConcreteTo(program, initial, w, out)
	default:
		ip := interp.New(w)
		ip.Output = out
		return ip.Step(program.Root, initial), nil
	}
}

// Error wraps a structured errors.CompilerError so analysis failures
// can be reported through the same diagnostic machinery as parse
// errors.
type Error struct {
	Compiler errors.CompilerError
}

func (e *Error) Error() string {
	return e.Compiler.Message
}
