package reactive

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weft-ui/weft/pkg/errors"
)

type owner struct{ name string }

func record(log *[]string, label string) func() error {
	return func() error {
		*log = append(*log, label)
		return nil
	}
}

func TestNotifyOrdersByOwnerThenBinding(t *testing.T) {
	h := NewHub()
	c := NewState(0)
	first, second := &owner{"first"}, &owner{"second"}
	var log []string

	h.Register(&Binding{Owner: first, Kind: "text", Deps: []Cell{c}, Apply: record(&log, "first.1")})
	h.Register(&Binding{Owner: second, Kind: "text", Deps: []Cell{c}, Apply: record(&log, "second.1")})
	h.Register(&Binding{Owner: first, Kind: "attr", Deps: []Cell{c}, Apply: record(&log, "first.2")})

	c.Set(1)

	want := []string{"first.1", "first.2", "second.1"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("apply order mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifyOnlyAffectedBindings(t *testing.T) {
	h := NewHub()
	a, b := NewState(0), NewState(0)
	o := &owner{"o"}
	var log []string
	h.Register(&Binding{Owner: o, Deps: []Cell{a}, Apply: record(&log, "a")})
	h.Register(&Binding{Owner: o, Deps: []Cell{b}, Apply: record(&log, "b")})
	h.Register(&Binding{Owner: o, Deps: []Cell{a, b}, Apply: record(&log, "ab")})

	b.Set(1)

	if diff := cmp.Diff([]string{"b", "ab"}, log); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterDeduplicatesDeps(t *testing.T) {
	h := NewHub()
	a := NewState(0)
	calls := 0
	h.Register(&Binding{Owner: &owner{}, Deps: []Cell{a, a}, Apply: func() error { calls++; return nil }})
	a.Set(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if got := len(h.Bindings(a)); got != 1 {
		t.Errorf("len(Bindings) = %d, want 1", got)
	}
}

func TestNestedSetIsQueuedNotRecursed(t *testing.T) {
	h := NewHub()
	a, b := NewState(0), NewState(0)
	o := &owner{}
	var log []string

	h.Register(&Binding{Owner: o, Deps: []Cell{a}, Apply: func() error {
		log = append(log, "a1")
		b.Set(a.Value() * 2)
		log = append(log, "a1 done")
		return nil
	}})
	h.Register(&Binding{Owner: o, Deps: []Cell{a}, Apply: record(&log, "a2")})
	h.Register(&Binding{Owner: o, Deps: []Cell{b}, Apply: record(&log, "b")})

	a.Set(2)

	want := []string{"a1", "a1 done", "a2", "b"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("apply order mismatch (-want +got):\n%s", diff)
	}
	if b.Value() != 4 {
		t.Errorf("b = %d, want 4", b.Value())
	}
}

func TestDispatchLimitStopsCycles(t *testing.T) {
	var reported *errors.WeftError
	restore := captureErrors(func(err *errors.WeftError) { reported = err }, nil)
	defer restore()

	h := NewHub(WithDispatchLimit(50))
	a, b := NewState(0), NewState(0)
	o := &owner{}
	h.Register(&Binding{Owner: o, Deps: []Cell{a}, Apply: func() error { b.Set(b.Value() + 1); return nil }})
	h.Register(&Binding{Owner: o, Deps: []Cell{b}, Apply: func() error { a.Set(a.Value() + 1); return nil }})

	a.Set(1)

	if reported == nil || !errors.Is(reported, errors.ErrDispatchLimit) {
		t.Fatalf("expected ErrDispatchLimit, got %v", reported)
	}
	if total := a.Value() + b.Value(); total > 52 {
		t.Errorf("cycle ran %d steps, want it bounded by the limit", total)
	}

	// The hub must be usable again after a dropped cycle.
	c := NewState(0)
	ran := false
	h.Register(&Binding{Owner: o, Deps: []Cell{c}, Apply: func() error { ran = true; return nil }})
	c.Set(1)
	if !ran {
		t.Error("hub should accept new cycles after hitting the limit")
	}
}

func TestApplyFailureIsIsolated(t *testing.T) {
	var failures []*errors.BindingError
	restore := captureErrors(nil, func(err *errors.BindingError) { failures = append(failures, err) })
	defer restore()

	h := NewHub()
	a := NewState(0)
	o := &owner{}
	var log []string
	h.Register(&Binding{Owner: o, Component: "c", Kind: "text", Deps: []Cell{a}, Apply: func() error {
		return fmt.Errorf("bad expression")
	}})
	h.Register(&Binding{Owner: o, Kind: "class", Deps: []Cell{a}, Apply: func() error {
		panic("boom")
	}})
	h.Register(&Binding{Owner: o, Kind: "attr", Deps: []Cell{a}, Apply: record(&log, "attr")})

	a.Set(1)

	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(failures))
	}
	if failures[0].Binding != "text" || failures[0].Component != "c" || failures[0].Err == nil {
		t.Errorf("failures[0] = %+v, want text error from c", failures[0])
	}
	if failures[1].Recovered != "boom" {
		t.Errorf("failures[1].Recovered = %v, want boom", failures[1].Recovered)
	}
	if diff := cmp.Diff([]string{"attr"}, log); diff != "" {
		t.Errorf("later binding should still apply (-want +got):\n%s", diff)
	}
}

func TestApplyObserver(t *testing.T) {
	var events []ApplyEvent
	h := NewHub(WithApplyObserver(func(e ApplyEvent) { events = append(events, e) }))
	a := NewState(0)
	b := &Binding{Owner: &owner{}, Kind: "text", Deps: []Cell{a}, Apply: func() error { return nil }}
	h.Register(b)

	if err := h.Run(b); err != nil {
		t.Fatalf("Run: %v", err)
	}
	a.Set(1)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Cell != nil {
		t.Error("initial Run should report a nil cell")
	}
	if events[1].Cell != Cell(a) || events[1].Binding != b {
		t.Errorf("events[1] = %+v, want binding b triggered by a", events[1])
	}
}

func TestSetWithoutHubOnlyStores(t *testing.T) {
	s := NewState("x")
	s.Set("y")
	if s.Value() != "y" {
		t.Errorf("Value() = %q, want %q", s.Value(), "y")
	}
}
