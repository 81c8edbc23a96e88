package reactive

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/errors"
)

// Expr is a derived value over an ordered list of operands. Operands may be
// cells, other expressions, zero-argument functions or plain values. The
// operand list never changes; only the cells behind it do.
type Expr struct {
	desc     string
	operands []any
	fn       func(args []any) (any, error)
	deps     []Cell
}

func newExpr(desc string, fn func(args []any) (any, error), operands []any) *Expr {
	e := &Expr{desc: desc, operands: operands, fn: fn}
	seen := make(map[uint64]bool)
	for _, op := range operands {
		for _, c := range operandDeps(op) {
			if !seen[c.ID()] {
				seen[c.ID()] = true
				e.deps = append(e.deps, c)
			}
		}
	}
	return e
}

// Is builds an expression from a closure. fn is called with the current
// operand values in order: Get for cells, Evaluate for expressions, the
// result for func() any, and the operand itself otherwise.
func Is(fn func(args ...any) any, operands ...any) *Expr {
	return newExpr("is", func(args []any) (any, error) {
		return fn(args...), nil
	}, operands)
}

// Map derives a value from a single typed cell.
func Map[T, R any](s *State[T], fn func(T) R) *Expr {
	return newExpr("map", func([]any) (any, error) {
		return fn(s.Value()), nil
	}, []any{s})
}

// Not negates the truthiness of a.
func Not(a Accessor) *Expr {
	return newExpr("not", func(args []any) (any, error) {
		return !Truthy(args[0]), nil
	}, []any{a})
}

// Eq reports whether a currently equals v.
func Eq(a Accessor, v any) *Expr {
	return newExpr("eq", func(args []any) (any, error) {
		return equal(args[0], v), nil
	}, []any{a})
}

// Evaluate computes the current value. The evaluation function must not
// mutate state. A panic inside it is returned as an error.
func (e *Expr) Evaluate() (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &errors.WeftError{
				Op:   "reactive.Expr.Evaluate",
				Kind: errors.KindExpression,
				Err:  fmt.Errorf("%s: panic: %v", e.desc, r),
			}
		}
	}()
	args := make([]any, len(e.operands))
	for i, op := range e.operands {
		a, err := resolveOperand(op)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	v, err = e.fn(args)
	if err != nil {
		return nil, &errors.WeftError{
			Op:   "reactive.Expr.Evaluate",
			Kind: errors.KindExpression,
			Err:  fmt.Errorf("%s: %w", e.desc, err),
		}
	}
	return v, nil
}

// Resolve is Evaluate, so expressions satisfy Accessor.
func (e *Expr) Resolve() (any, error) {
	return e.Evaluate()
}

// Dependencies returns every cell reachable from the operands, transitively
// through nested expressions, without duplicates.
func (e *Expr) Dependencies() []Cell {
	return e.deps
}

// Operands returns the operand list.
func (e *Expr) Operands() []any {
	return e.operands
}

func (e *Expr) String() string {
	return fmt.Sprintf("Expr(%s)", e.desc)
}

func resolveOperand(op any) (any, error) {
	switch x := op.(type) {
	case Cell:
		return x.Get(), nil
	case Accessor:
		return x.Resolve()
	case func() any:
		return x(), nil
	default:
		return op, nil
	}
}

func operandDeps(op any) []Cell {
	if a, ok := op.(Accessor); ok {
		return a.Dependencies()
	}
	return nil
}
