package showcase

import (
	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// manyClicks is the count at which the counter shows its note.
const manyClicks = 3

func buildCounter(s *core.Session) (*core.Component, error) {
	count := reactive.NewState(0)
	parity := reactive.Map(count, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})
	many, err := reactive.Compile("count >= limit", reactive.Vars{"count": count, "limit": manyClicks})
	if err != nil {
		return nil, err
	}

	c := s.NewComponent("counter")
	c.AddParam("count", count)
	err = c.Markup(`<section class="demo" id="counter">
  <h2>Counter</h2>
  <button id="increment" data-click="{}">+1</button>
  <button id="reset" data-click="{}">Reset</button>
  <p class="count" data-class="{}">Count: {}</p>
  <div data-if="{}"><p class="note">That is a lot of clicks.</p></div>
</section>`,
		core.Handler(func(dom.Event) { count.Update(func(n int) int { return n + 1 }) }),
		core.Handler(func(dom.Event) { count.Set(0) }),
		core.Is(parity),
		core.State(count),
		core.Is(many),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
