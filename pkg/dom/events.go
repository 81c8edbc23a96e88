package dom

import "github.com/weft-ui/weft/pkg/errors"

// Event is delivered to listeners by Dispatch.
type Event struct {
	// Type is the event name without the "on" prefix (e.g., "click").
	Type string
	// Target is the node the event was dispatched on.
	Target *Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node
	// Data carries an optional payload for custom events.
	Data any
}

// Listener handles a dispatched event.
type Listener func(Event)

// Events lists the DOM event names recognized as data-<event> bindings.
var Events = map[string]bool{
	"abort": true, "animationend": true, "animationiteration": true, "animationstart": true,
	"beforeinput": true, "blur": true, "cancel": true, "canplay": true, "change": true,
	"click": true, "close": true, "contextmenu": true, "copy": true, "cut": true,
	"dblclick": true, "drag": true, "dragend": true, "dragenter": true, "dragleave": true,
	"dragover": true, "dragstart": true, "drop": true, "ended": true, "error": true,
	"focus": true, "focusin": true, "focusout": true, "input": true, "invalid": true,
	"keydown": true, "keypress": true, "keyup": true, "load": true, "mousedown": true,
	"mouseenter": true, "mouseleave": true, "mousemove": true, "mouseout": true,
	"mouseover": true, "mouseup": true, "paste": true, "pause": true, "play": true,
	"pointerdown": true, "pointerenter": true, "pointerleave": true, "pointermove": true,
	"pointerup": true, "reset": true, "resize": true, "scroll": true, "select": true,
	"submit": true, "toggle": true, "touchend": true, "touchmove": true, "touchstart": true,
	"transitionend": true, "wheel": true,
}

// IsEvent reports whether name is a recognized DOM event.
func IsEvent(name string) bool {
	return Events[name]
}

// AddEventListener registers l for events of the given type on n.
func (n *Node) AddEventListener(typ string, l Listener) {
	if l == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]Listener)
	}
	n.listeners[typ] = append(n.listeners[typ], l)
}

// ListenerCount returns the number of listeners registered for typ on n.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// Dispatch delivers e to the listeners of n and then of each ancestor.
// Target defaults to n. A panicking listener is reported and does not stop
// delivery to the others. Dispatch returns the number of listeners invoked.
func (n *Node) Dispatch(e Event) int {
	if e.Target == nil {
		e.Target = n
	}
	count := 0
	for cur := n; cur != nil; cur = cur.Parent() {
		listeners := append([]Listener(nil), cur.listeners[e.Type]...)
		for _, l := range listeners {
			e.CurrentTarget = cur
			invoke(l, e)
			count++
		}
	}
	return count
}

func invoke(l Listener, e Event) {
	defer errors.Recover("dom.Node.Dispatch")
	l(e)
}
