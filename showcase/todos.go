package showcase

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

var initialTodos = []struct {
	text string
	done bool
}{
	{"Write the template", true},
	{"Bind the state", false},
	{"Ship it", false},
}

// buildItem builds one todo entry as a structured tree.
func buildItem(s *core.Session, id int, text string, done *reactive.State[bool]) (*core.Component, error) {
	status := reactive.Map(done, func(d bool) string {
		if d {
			return "done"
		}
		return "open"
	})
	c := s.NewComponent("todo-item")
	err := c.Build(
		core.El("li", core.Attr("id", fmt.Sprintf("todo-%d", id)), core.Bind("data-class", core.Is(status)),
			core.El("input",
				core.Attr("type", "checkbox"),
				core.Attr("class", "toggle"),
				core.Bind("aria-checked", core.State(done)),
				core.Bind("data-change", core.Handler(func(dom.Event) { done.Toggle() })),
			),
			core.El("span", core.Text(text)),
		),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func buildTodos(s *core.Session) (*core.Component, error) {
	var items []*core.Component
	var operands []any
	for i, t := range initialTodos {
		done := reactive.NewState(t.done)
		item, err := buildItem(s, i+1, t.text, done)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		operands = append(operands, done)
	}
	remaining := reactive.Is(func(args ...any) any {
		n := 0
		for _, d := range args {
			if !d.(bool) {
				n++
			}
		}
		return n
	}, operands...)
	allDone := reactive.Eq(remaining, 0)

	c := s.NewComponent("todos")
	err := c.Markup(`<section class="demo" id="todos">
  <h2>Todo list</h2>
  <ul><li data-list="{}"></li></ul>
  <p class="remaining">{} left</p>
  <div data-if="{}"><p class="celebrate">All done!</p></div>
</section>`,
		core.List(items...),
		core.Is(remaining),
		core.Is(allDone),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
