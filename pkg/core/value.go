package core

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Kind is the pool a template value belongs to.
type Kind int

const (
	// KindRaw values are written into markup verbatim and never pooled.
	KindRaw Kind = iota
	// KindFunc holds event handlers and zero-argument callbacks.
	KindFunc
	// KindBool holds static booleans.
	KindBool
	// KindObj holds opaque values.
	KindObj
	// KindList holds sequences of components.
	KindList
	// KindState holds state cells.
	KindState
	// KindIs holds expressions.
	KindIs
	// KindComp holds a single component.
	KindComp
)

var poolNames = [...]string{
	KindRaw:   "raw",
	KindFunc:  "func",
	KindBool:  "bool",
	KindObj:   "obj",
	KindList:  "arr",
	KindState: "state",
	KindIs:    "is",
	KindComp:  "comp",
}

// String returns the pool name used in placeholder tokens.
func (k Kind) String() string {
	if int(k) < len(poolNames) {
		return poolNames[k]
	}
	return "unknown"
}

// Value is a template value tagged with its kind. Construct it with
// Handler, Call, Bool, Obj, List, State, Is, Comp, Str or Num.
type Value struct {
	kind    Kind
	handler func(dom.Event)
	call    func() any
	b       bool
	obj     any
	list    []*Component
	cell    reactive.Cell
	expr    *reactive.Expr
	comp    *Component
	raw     string
}

// Handler tags an event handler.
func Handler(fn func(dom.Event)) Value { return Value{kind: KindFunc, handler: fn} }

// Call tags a zero-argument callback. Bound to a plain attribute its result
// is written once; bound to an event it runs on every dispatch.
func Call(fn func() any) Value { return Value{kind: KindFunc, call: fn} }

// Bool tags a static boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Obj tags an opaque value.
func Obj(v any) Value { return Value{kind: KindObj, obj: v} }

// List tags a sequence of components.
func List(cs ...*Component) Value { return Value{kind: KindList, list: cs} }

// State tags a state cell.
func State(c reactive.Cell) Value { return Value{kind: KindState, cell: c} }

// Is tags an expression.
func Is(e *reactive.Expr) Value { return Value{kind: KindIs, expr: e} }

// Comp tags a component.
func Comp(c *Component) Value { return Value{kind: KindComp, comp: c} }

// Str inlines s into markup verbatim. It is not escaped.
func Str(s string) Value { return Value{kind: KindRaw, raw: s} }

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Num inlines a number into markup.
func Num[N number](n N) Value { return Value{kind: KindRaw, raw: fmt.Sprint(n)} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Accessor returns the reactive accessor behind a State or Is value, or nil.
func (v Value) Accessor() reactive.Accessor {
	switch v.kind {
	case KindState:
		if v.cell != nil {
			return v.cell
		}
	case KindIs:
		if v.expr != nil {
			return v.expr
		}
	}
	return nil
}

// Cell returns the cell of a State value, or nil.
func (v Value) Cell() reactive.Cell { return v.cell }

// Component returns the component of a Comp value, or nil.
func (v Value) Component() *Component { return v.comp }

// Components returns the components of a List value.
func (v Value) Components() []*Component { return v.list }

// Dependencies returns the cells a reactive value depends on.
func (v Value) Dependencies() []reactive.Cell {
	if a := v.Accessor(); a != nil {
		return a.Dependencies()
	}
	return nil
}

// Resolve returns the current value: the cell value, the expression result,
// the callback result, or the static value itself.
func (v Value) Resolve() (any, error) {
	if a := v.Accessor(); a != nil {
		return a.Resolve()
	}
	switch v.kind {
	case KindFunc:
		if v.call != nil {
			return v.call(), nil
		}
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindObj:
		return v.obj, nil
	case KindRaw:
		return v.raw, nil
	case KindComp:
		return v.comp, nil
	case KindList:
		return v.list, nil
	}
	return nil, nil
}

// reactive reports whether the value re-applies on state changes.
func (v Value) reactive() bool {
	return v.Accessor() != nil
}

// listener returns the value as an event listener, or nil.
func (v Value) listener() dom.Listener {
	switch {
	case v.handler != nil:
		return v.handler
	case v.call != nil:
		call := v.call
		return func(dom.Event) { call() }
	}
	return nil
}
