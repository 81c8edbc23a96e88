// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"strconv"

	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Counter displays a count and increments it on click.
type Counter struct {
	Initial int
	OnTap   func(count int)
}

// Build returns the counter component and its state cell.
func (c Counter) Build(s *core.Session) (*core.Component, *reactive.State[int]) {
	count := reactive.NewState(c.Initial)
	comp := s.NewComponent("counter")
	label := reactive.Map(count, strconv.Itoa)
	err := comp.Markup(`<button class="counter" data-click="{}"><span>{}</span></button>`,
		core.Handler(func(dom.Event) {
			count.Update(func(n int) int { return n + 1 })
			if c.OnTap != nil {
				c.OnTap(count.Value())
			}
		}),
		core.Is(label),
	)
	if err != nil {
		panic(err)
	}
	return comp, count
}

// Form binds a text input and a checkbox to two cells and mirrors both.
type Form struct {
	Name    string
	Checked bool
}

// Build returns the form component and its cells.
func (f Form) Build(s *core.Session) (*core.Component, *reactive.State[string], *reactive.State[bool]) {
	name := reactive.NewState(f.Name)
	checked := reactive.NewState(f.Checked)
	comp := s.NewComponent("form")
	err := comp.Markup(`<form>`+
		`<input id="name" data-textinput="{}">`+
		`<input id="agree" type="checkbox" value="{}">`+
		`<p id="mirror">{} {}</p>`+
		`</form>`,
		core.State(name), core.State(checked), core.State(name), core.State(checked),
	)
	if err != nil {
		panic(err)
	}
	return comp, name, checked
}
