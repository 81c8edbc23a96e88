package reactive

import (
	"fmt"
	"time"

	"github.com/weft-ui/weft/pkg/errors"
)

// DefaultDispatchLimit bounds the number of binding applications in one
// update cycle.
const DefaultDispatchLimit = 10000

// Binding is one registered re-render: a DOM location kept in sync with the
// cells its accessor depends on.
type Binding struct {
	// Owner identifies the owning component. Bindings are notified grouped
	// by owner in the order owners first registered against a cell.
	Owner any
	// Component is the owner's name, used in diagnostics.
	Component string
	// Kind is the binding kind (text, attr, class, if, ...).
	Kind string
	// Deps are the cells the binding observes.
	Deps []Cell
	// Apply re-renders the binding. It must be idempotent.
	Apply func() error
}

// ApplyEvent describes one binding application.
type ApplyEvent struct {
	Binding *Binding
	// Cell is the cell whose Set queued the binding, or nil for an
	// initial or deferred application.
	Cell Cell
	Err  error
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithDispatchLimit sets the maximum number of applications per update
// cycle. Values below 1 disable the limit.
func WithDispatchLimit(n int) HubOption {
	return func(h *Hub) { h.limit = n }
}

// WithApplyObserver registers fn to be called after each application.
func WithApplyObserver(fn func(ApplyEvent)) HubOption {
	return func(h *Hub) { h.observer = fn }
}

type ownerEntry struct {
	owner    any
	bindings []*Binding
}

type pending struct {
	binding *Binding
	cell    Cell
}

// Hub owns the cell-to-binding table and the dispatch queue of one render
// session.
type Hub struct {
	owners   map[uint64][]*ownerEntry
	queue    []pending
	draining bool
	limit    int
	observer func(ApplyEvent)
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		owners: make(map[uint64][]*ownerEntry),
		limit:  DefaultDispatchLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds b to the ownership table under each of its dependencies.
// A cell listed twice in b.Deps is registered once.
func (h *Hub) Register(b *Binding) {
	seen := make(map[uint64]bool, len(b.Deps))
	for _, c := range b.Deps {
		if c == nil || seen[c.ID()] {
			continue
		}
		seen[c.ID()] = true
		c.attach(h)
		entries := h.owners[c.ID()]
		var entry *ownerEntry
		for _, e := range entries {
			if e.owner == b.Owner {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ownerEntry{owner: b.Owner}
			h.owners[c.ID()] = append(entries, entry)
		}
		entry.bindings = append(entry.bindings, b)
	}
}

// Bindings returns the bindings registered against c in notification order.
func (h *Hub) Bindings(c Cell) []*Binding {
	var out []*Binding
	for _, e := range h.owners[c.ID()] {
		out = append(out, e.bindings...)
	}
	return out
}

// Notify queues every binding registered against c and drains the queue.
// Called while a drain is in progress, it only queues: the running drain
// picks the work up after the bindings already queued.
func (h *Hub) Notify(c Cell) {
	for _, e := range h.owners[c.ID()] {
		for _, b := range e.bindings {
			h.queue = append(h.queue, pending{binding: b, cell: c})
		}
	}
	if h.draining {
		return
	}
	h.drain()
}

func (h *Hub) drain() {
	h.draining = true
	defer func() {
		h.draining = false
	}()

	applied := 0
	for len(h.queue) > 0 {
		if h.limit > 0 && applied >= h.limit {
			dropped := len(h.queue)
			h.queue = nil
			errors.Report(&errors.WeftError{
				Op:   "reactive.Hub.Notify",
				Kind: errors.KindBinding,
				Err:  fmt.Errorf("%w: %d applications, %d dropped", errors.ErrDispatchLimit, applied, dropped),
			})
			return
		}
		next := h.queue[0]
		h.queue[0] = pending{}
		h.queue = h.queue[1:]
		applied++
		h.apply(next.binding, next.cell)
	}
	h.queue = nil
}

// Run applies b once, outside any update cycle. Failures are isolated and
// reported like those of queued applications.
func (h *Hub) Run(b *Binding) error {
	return h.apply(b, nil)
}

func (h *Hub) apply(b *Binding, cell Cell) error {
	err := safeApply(b)
	if h.observer != nil {
		h.observer(ApplyEvent{Binding: b, Cell: cell, Err: err})
	}
	return err
}

func safeApply(b *Binding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			be := &errors.BindingError{
				Component:  b.Component,
				Binding:    b.Kind,
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			}
			errors.ReportBindingError(be)
			err = be
		}
	}()
	if b.Apply == nil {
		return nil
	}
	if applyErr := b.Apply(); applyErr != nil {
		be := &errors.BindingError{
			Component: b.Component,
			Binding:   b.Kind,
			Err:       applyErr,
		}
		errors.ReportBindingError(be)
		return be
	}
	return nil
}
