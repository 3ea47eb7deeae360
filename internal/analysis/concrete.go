package analysis

import (
	"fmt"
	"io"

	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/errors"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/store"
)

// concreteState is a plain map of int64 values, used internally by
// RunConcrete before the result is lifted into a store.Store of point
// intervals (a concrete value v is exactly the abstract interval
// [v, v], so the two representations coincide and Analyze can return
// the same type in either mode).
type concreteState struct {
	vars   map[string]int64
	output io.Writer
}

func newConcreteState(initial store.Store, out io.Writer) *concreteState {
	cs := &concreteState{vars: make(map[string]int64), output: out}
	for _, k := range initial.Keys() {
		v := initial.Get(k)
		if v.IsBounded() && v.Lo == v.Hi {
			cs.vars[k] = v.Lo
		}
	}
	return cs
}

func (cs *concreteState) names() []string {
	out := make([]string, 0, len(cs.vars))
	for k := range cs.vars {
		out = append(out, k)
	}
	return out
}

func (cs *concreteState) toStore(w interval.Window) store.Store {
	s := store.New()
	for k, v := range cs.vars {
		s = s.Assign(k, interval.Point(v))
	}
	_ = w
	return s
}

// RunConcrete evaluates program under standard (non-abstract)
// semantics. An undefined-variable read or a division by zero is a
// fatal error, per spec.md §7: concrete mode has no sound fallback the
// way the interval domain does (there is no ⊤ to retreat to).
func RunConcrete(program *ast.Program, initial store.Store, w interval.Window) (store.Store, error) {
	return RunConcreteTo(program, initial, w, io.Discard)
}

// RunConcreteTo is RunConcrete with an explicit sink for print statements.
func RunConcreteTo(program *ast.Program, initial store.Store, w interval.Window, out io.Writer) (store.Store, error) {
	cs := newConcreteState(initial, out)
	if err := execConcrete(program.Root, cs); err != nil {
		return store.Store{}, err
	}
	return cs.toStore(w), nil
}

func execConcrete(stmt ast.Stmt, cs *concreteState) error {
	switch n := stmt.(type) {
	case *ast.SkipStmt:
		return nil

	case *ast.AssignStmt:
		v, err := evalConcreteArith(n.Value, cs)
		if err != nil {
			return err
		}
		cs.vars[n.Target] = v
		return nil

	case *ast.SeqStmt:
		if err := execConcrete(n.First, cs); err != nil {
			return err
		}
		return execConcrete(n.Then, cs)

	case *ast.IfStmt:
		g, err := evalConcreteBool(n.Guard, cs)
		if err != nil {
			return err
		}
		if g {
			return execConcrete(n.Then, cs)
		}
		if n.Else != nil {
			return execConcrete(n.Else, cs)
		}
		return nil

	case *ast.WhileStmt:
		for {
			g, err := evalConcreteBool(n.Guard, cs)
			if err != nil {
				return err
			}
			if !g {
				return nil
			}
			if err := execConcrete(n.Body, cs); err != nil {
				return err
			}
		}

	case *ast.ForStmt:
		if err := execConcrete(n.Init, cs); err != nil {
			return err
		}
		for {
			g, err := evalConcreteBool(n.Guard, cs)
			if err != nil {
				return err
			}
			if !g {
				return nil
			}
			if err := execConcrete(n.Body, cs); err != nil {
				return err
			}
			if err := execConcrete(n.Inc, cs); err != nil {
				return err
			}
		}

	case *ast.RepeatStmt:
		for {
			if err := execConcrete(n.Body, cs); err != nil {
				return err
			}
			g, err := evalConcreteBool(n.Guard, cs)
			if err != nil {
				return err
			}
			if g {
				return nil
			}
		}

	case *ast.PrintStmt:
		v, err := evalConcreteArith(n.Value, cs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cs.output, "%d\n", v)
		return nil

	default:
		return nil
	}
}

func evalConcreteArith(e ast.ArithExpr, cs *concreteState) (int64, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return n.Value, nil

	case *ast.VarExpr:
		v, ok := cs.vars[n.Name]
		if !ok {
			return 0, &Error{Compiler: errors.UndefinedVariable(n.Name, n.Pos, errors.FindSimilarNames(n.Name, cs.names()))}
		}
		return v, nil

	case *ast.BinArithExpr:
		l, err := evalConcreteArith(n.Left, cs)
		if err != nil {
			return 0, err
		}
		r, err := evalConcreteArith(n.Right, cs)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case ast.Add:
			return l + r, nil
		case ast.Sub:
			return l - r, nil
		case ast.Mul:
			return l * r, nil
		case ast.Div:
			if r == 0 {
				return 0, &Error{Compiler: errors.DivisionByZero(n.Pos)}
			}
			return l / r, nil
		}
		return 0, nil

	case *ast.UnaryMinus:
		v, err := evalConcreteArith(n.Value, cs)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *ast.IncDecExpr:
		pre, ok := cs.vars[n.Name]
		if !ok {
			return 0, &Error{Compiler: errors.UndefinedVariable(n.Name, n.Pos, errors.FindSimilarNames(n.Name, cs.names()))}
		}
		switch n.Kind {
		case ast.PostInc:
			cs.vars[n.Name] = pre + 1
		case ast.PostDec:
			cs.vars[n.Name] = pre - 1
		}
		return pre, nil

	default:
		return 0, nil
	}
}

func evalConcreteBool(b ast.BoolExpr, cs *concreteState) (bool, error) {
	switch n := b.(type) {
	case *ast.BoolLit:
		return n.Value, nil

	case *ast.CmpExpr:
		l, err := evalConcreteArith(n.Left, cs)
		if err != nil {
			return false, err
		}
		r, err := evalConcreteArith(n.Right, cs)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case ast.Eq:
			return l == r, nil
		case ast.Neq:
			return l != r, nil
		case ast.Lt:
			return l < r, nil
		case ast.Leq:
			return l <= r, nil
		case ast.Gt:
			return l > r, nil
		case ast.Geq:
			return l >= r, nil
		}
		return false, nil

	case *ast.AndExpr:
		l, err := evalConcreteBool(n.Left, cs)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evalConcreteBool(n.Right, cs)

	case *ast.OrExpr:
		l, err := evalConcreteBool(n.Left, cs)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evalConcreteBool(n.Right, cs)

	case *ast.NotExpr:
		v, err := evalConcreteBool(n.Value, cs)
		if err != nil {
			return false, err
		}
		return !v, nil

	default:
		return false, nil
	}
}
