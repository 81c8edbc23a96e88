package testing

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/dom"
)

// Click dispatches a click on the first node matched by finder.
func (t *Tester) Click(finder Finder) error {
	return t.Dispatch(finder, "click", nil)
}

// Type sets the value of the first form control matched by finder and
// dispatches keyup, the way a keystroke would.
func (t *Tester) Type(finder Finder, value string) error {
	return t.setValue("Type", finder, value, "keyup")
}

// Change sets the value of the first form control matched by finder and
// dispatches change.
func (t *Tester) Change(finder Finder, value string) error {
	return t.setValue("Change", finder, value, "change")
}

func (t *Tester) setValue(op string, finder Finder, value, event string) error {
	node, err := t.target(op, finder)
	if err != nil {
		return err
	}
	if !node.IsFormControl() {
		return fmt.Errorf("%s: <%s> is not a form control: %s", op, node.Tag(), finder.Description())
	}
	node.SetValue(value)
	node.Dispatch(dom.Event{Type: event})
	return nil
}

// Dispatch dispatches an event of the given type, with an optional payload,
// on the first node matched by finder.
func (t *Tester) Dispatch(finder Finder, event string, data any) error {
	node, err := t.target("Dispatch", finder)
	if err != nil {
		return err
	}
	node.Dispatch(dom.Event{Type: event, Data: data})
	return nil
}

func (t *Tester) target(op string, finder Finder) (*dom.Node, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return nil, fmt.Errorf("%s: finder matched no nodes: %s", op, finder.Description())
	}
	return result.First(), nil
}
