package showcase

import (
	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/reactive"
)

func buildGreeter(s *core.Session) (*core.Component, error) {
	name := reactive.NewState("world")
	hint := reactive.Map(name, func(n string) string { return "Greets " + n })
	empty := reactive.Eq(name, "")

	c := s.NewComponent("greeter")
	c.AddParam("name", name)
	err := c.Markup(`<section class="demo" id="greeter">
  <h2 data-tooltip="{}">Greeter</h2>
  <label>Name <input id="name" data-textinput="{}"></label>
  <p class="greeting">Hello, {}!</p>
  <div data-if="{}"><p class="warning">Type a name.</p></div>
</section>`,
		core.Is(hint),
		core.State(name),
		core.State(name),
		core.Is(empty),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
