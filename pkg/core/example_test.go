package core_test

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// This example renders a counter and clicks its button.
func ExampleSession_Render() {
	doc, _ := dom.ParseString(`<html><body><div data-is="root"></div></body></html>`)
	s := core.NewSession(doc)

	count := reactive.NewState(0)
	counter := s.NewComponent("counter")
	_ = counter.Markup(`<button data-click="{}">+1</button><span>{}</span>`,
		core.Handler(func(dom.Event) { count.Update(func(n int) int { return n + 1 }) }),
		core.State(count),
	)
	if err := s.Render(counter); err != nil {
		fmt.Println(err)
		return
	}

	counter.Nodes()[0].Dispatch(dom.Event{Type: "click"})
	fmt.Println(doc.Body().InnerHTML())

	// Output:
	// <div><button>+1</button><span>1</span></div>
}

// This example builds a template as a tree instead of markup.
func ExampleComponent_Build() {
	s := core.NewSession(nil)
	name := reactive.NewState("Ann")

	greeter := s.NewComponent("greeter")
	_ = greeter.Build(
		core.El("p", core.Attr("class", "greeting"),
			core.Text("Hello, ", core.State(name), "!"),
		),
	)
	name.Set("Bob")
	fmt.Println(greeter.Fragment().HTML())

	// Output:
	// <p class="greeting">Hello, Bob!</p>
}

// This example shows a conditional range driven by a compiled expression.
func ExampleComponent_Markup_conditional() {
	doc, _ := dom.ParseString(`<html><body><div data-is="root"></div></body></html>`)
	s := core.NewSession(doc)
	items := reactive.NewState(0)
	empty := reactive.MustCompile("items == 0", reactive.Vars{"items": items})

	list := s.NewComponent("list")
	_ = list.Markup(`<p data-if="{}">Nothing here</p>`, core.Is(empty))
	_ = s.Render(list)

	fmt.Println(doc.Body().InnerHTML())
	items.Set(2)
	fmt.Println(doc.Body().InnerHTML())

	// Output:
	// <div><!--weft:if-->Nothing here<!--/weft:if--></div>
	// <div><!--weft:if--><!--/weft:if--></div>
}
