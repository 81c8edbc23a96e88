package showcase

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/dom"
)

// Step is one scripted interaction with the rendered showcase.
type Step struct {
	Target string // element id
	Event  string
	Value  string // set before dispatch when non-empty
}

// Script clicks the counter past its note, renames the greeter and
// finishes the second todo.
var Script = []Step{
	{Target: "increment", Event: "click"},
	{Target: "increment", Event: "click"},
	{Target: "increment", Event: "click"},
	{Target: "name", Event: "keyup", Value: "Grace"},
	{Target: "todo-2", Event: "change"},
}

// Play runs steps against doc. Targets of change events that are not form
// controls are resolved to their first form control descendant.
func Play(doc *dom.Document, steps []Step) error {
	for i, step := range steps {
		node := doc.QueryAttr("id", step.Target)
		if node == nil {
			return fmt.Errorf("step %d: no element with id %q", i, step.Target)
		}
		if !node.IsFormControl() && step.Event == "change" {
			node = firstControl(node)
			if node == nil {
				return fmt.Errorf("step %d: no form control under %q", i, step.Target)
			}
		}
		if step.Value != "" {
			node.SetValue(step.Value)
		}
		node.Dispatch(dom.Event{Type: step.Event})
	}
	return nil
}

func firstControl(root *dom.Node) *dom.Node {
	var found *dom.Node
	root.Walk(func(n *dom.Node) bool {
		if found != nil {
			return false
		}
		if n.IsFormControl() {
			found = n
			return false
		}
		return true
	})
	return found
}
