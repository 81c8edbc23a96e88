package showcase

import (
	"github.com/weft-ui/weft/pkg/core"
)

// Demo represents a showcase section.
type Demo struct {
	Name    string
	Title   string
	Summary string
	Build   func(s *core.Session) (*core.Component, error)
}

// demos is the registry of all showcase sections.
// Add new demos here to include them in the page and the link list.
var demos = []Demo{
	{"counter", "Counter", "Text, class, if and click bindings", buildCounter},
	{"greeter", "Greeter", "Two-way text input and a custom tooltip binding", buildGreeter},
	{"todos", "Todo list", "A list of item components built as a tree", buildTodos},
}

// Demos returns the registered demos in page order.
func Demos() []Demo {
	return append([]Demo(nil), demos...)
}
