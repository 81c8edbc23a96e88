package reactive

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/weft-ui/weft/pkg/errors"
)

var nextID atomic.Uint64

// Accessor is anything a binding can read: a cell or an expression.
type Accessor interface {
	// Resolve returns the current value.
	Resolve() (any, error)
	// Dependencies returns the cells the value depends on.
	Dependencies() []Cell
}

// Cell is the type-erased view of a State used by bindings.
type Cell interface {
	Accessor
	// ID returns a process-unique identifier.
	ID() uint64
	// Get returns the raw value.
	Get() any
	// Equals reports whether the value is true or equals test.
	Equals(test any) bool
	// Assign sets the value from an untyped source such as a form field.
	Assign(v any) error

	attach(h *Hub)
}

// Change describes one Set.
type Change[T any] struct {
	Old T
	New T
}

// State is a mutable value whose changes re-apply the bindings observing it.
//
// State is NOT thread-safe. It must only be used from the goroutine that
// owns the document.
type State[T any] struct {
	id    uint64
	value T
	onSet []func(Change[T])
	hubs  []*Hub
}

// NewState creates a cell holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{id: nextID.Add(1), value: initial}
}

// ID returns the cell identifier.
func (s *State[T]) ID() uint64 { return s.id }

// Value returns the current value.
func (s *State[T]) Value() T { return s.value }

// Get returns the current value as any.
func (s *State[T]) Get() any { return s.value }

// Resolve returns the current value. It never fails.
func (s *State[T]) Resolve() (any, error) { return s.value, nil }

// Dependencies returns the cell itself.
func (s *State[T]) Dependencies() []Cell { return []Cell{s} }

// Equals reports whether the value is the boolean true or equals test.
// A true cell therefore matches every test value.
func (s *State[T]) Equals(test any) bool {
	v := any(s.value)
	if b, ok := v.(bool); ok && b {
		return true
	}
	return equal(v, test)
}

// Set stores v, fires the OnSet callbacks with the old and new value, then
// re-applies every binding registered against the cell.
func (s *State[T]) Set(v T) {
	old := s.value
	s.value = v
	change := Change[T]{Old: old, New: v}
	for _, cb := range slices.Clone(s.onSet) {
		if cb != nil {
			cb(change)
		}
	}
	for _, h := range slices.Clone(s.hubs) {
		h.Notify(s)
	}
}

// Update applies transform to the current value and sets the result.
func (s *State[T]) Update(transform func(T) T) {
	s.Set(transform(s.value))
}

// Toggle negates a boolean value. On any other type it reports
// errors.ErrNotBoolean and leaves the value unchanged.
func (s *State[T]) Toggle() {
	b, ok := any(s.value).(bool)
	if !ok {
		errors.Report(&errors.WeftError{
			Op:   "reactive.State.Toggle",
			Kind: errors.KindState,
			Err:  fmt.Errorf("%w: %v (%T)", errors.ErrNotBoolean, s.value, s.value),
		})
		return
	}
	s.Set(any(!b).(T))
}

// Assign sets the value from v. A v of type T is stored as is. A string is
// parsed when T is a boolean or numeric kind. Anything else fails with
// errors.ErrTypeMismatch.
func (s *State[T]) Assign(v any) error {
	if t, ok := v.(T); ok {
		s.Set(t)
		return nil
	}
	if str, ok := v.(string); ok {
		t, err := parseAs[T](str)
		if err != nil {
			return err
		}
		s.Set(t)
		return nil
	}
	return fmt.Errorf("%w: cannot assign %T to %T", errors.ErrTypeMismatch, v, s.value)
}

// OnSet registers a callback fired on every Set, before bindings re-apply.
// It returns a function that unregisters the callback.
func (s *State[T]) OnSet(cb func(Change[T])) func() {
	if cb == nil {
		return func() {}
	}
	index := len(s.onSet)
	s.onSet = append(s.onSet, cb)
	return func() {
		if index < len(s.onSet) {
			s.onSet[index] = nil
		}
	}
}

func (s *State[T]) attach(h *Hub) {
	if !slices.Contains(s.hubs, h) {
		s.hubs = append(s.hubs, h)
	}
}

func (s *State[T]) String() string {
	return fmt.Sprintf("State(%v)", s.value)
}

func parseAs[T any](str string) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	var err error
	switch rv.Kind() {
	case reflect.Bool:
		var b bool
		if b, err = strconv.ParseBool(str); err == nil {
			rv.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if i, err = strconv.ParseInt(str, 10, rv.Type().Bits()); err == nil {
			rv.SetInt(i)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		if u, err = strconv.ParseUint(str, 10, rv.Type().Bits()); err == nil {
			rv.SetUint(u)
		}
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = strconv.ParseFloat(str, rv.Type().Bits()); err == nil {
			rv.SetFloat(f)
		}
	case reflect.String:
		rv.SetString(str)
	default:
		return out, fmt.Errorf("%w: cannot assign string to %T", errors.ErrTypeMismatch, out)
	}
	if err != nil {
		return out, fmt.Errorf("%w: %q is not a %T: %v", errors.ErrTypeMismatch, str, out, err)
	}
	return out, nil
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Truthy reports how a value governs a conditional: a bool is itself, nil
// is false, strings are true when non-empty, numbers when non-zero, and
// everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
