package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
	"github.com/weft-ui/weft/pkg/reactive"
)

func TestRenderAttachesAtRootMarker(t *testing.T) {
	s, root := newTestSession(t)
	var mountedNodes []*dom.Node
	c := mustMarkup(t, s.NewComponent("app"), `<h1>app</h1>`)
	c.OnMount(func(nodes []*dom.Node) { mountedNodes = nodes })
	mustRender(t, s, c)

	if root.HasAttr(DefaultRootAttr) {
		t.Error("root marker attribute should be removed")
	}
	if got, want := root.InnerHTML(), `<h1>app</h1>`; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
	if len(mountedNodes) != 1 || mountedNodes[0].Tag() != "h1" || !mountedNodes[0].IsConnected() {
		t.Errorf("mount callback got %v, want the connected h1", mountedNodes)
	}
	if !c.Attached() || !c.Mounted() {
		t.Error("root should be attached and mounted")
	}
}

func TestRenderErrors(t *testing.T) {
	s := NewSession(nil)
	c := mustMarkup(t, s.NewComponent("app"), `<p>x</p>`)
	err := s.Render(c)
	if !errors.Is(err, errors.ErrRootNotFound) {
		t.Errorf("Render() without a marker = %v, want ErrRootNotFound", err)
	}

	s2, _ := newTestSession(t)
	if err := s2.Render(s2.NewComponent("empty")); !errors.Is(err, errors.ErrNotTemplated) {
		t.Errorf("Render(untemplated) = %v, want ErrNotTemplated", err)
	}
}

func TestCustomRootMarker(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><div id="app"></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s := NewSession(doc, WithRootMarker("id", "app"))
	mustRender(t, s, mustMarkup(t, s.NewComponent("app"), `<p>x</p>`))

	if got, want := doc.Body().InnerHTML(), `<div><p>x</p></div>`; got != want {
		t.Errorf("Body().InnerHTML() = %q, want %q", got, want)
	}
}

func TestOnMountAfterMountRunsImmediately(t *testing.T) {
	s, _ := newTestSession(t)
	c := mustMarkup(t, s.NewComponent("app"), `<p>x</p>`)
	mustRender(t, s, c)

	ran := false
	c.OnMount(func([]*dom.Node) { ran = true })
	if !ran {
		t.Error("OnMount on a mounted component should run immediately")
	}
}

func TestOnMountPanicIsRecovered(t *testing.T) {
	r := captureReports(t)
	s, _ := newTestSession(t)
	c := mustMarkup(t, s.NewComponent("app"), `<p>x</p>`)
	second := false
	c.OnMount(func([]*dom.Node) { panic("mount failed") })
	c.OnMount(func([]*dom.Node) { second = true })
	mustRender(t, s, c)

	if len(r.panics) != 1 {
		t.Errorf("got %d panics, want 1", len(r.panics))
	}
	if !second {
		t.Error("later mount callbacks should still run")
	}
}

func TestNestedMountOrder(t *testing.T) {
	s, _ := newTestSession(t)
	var order []string
	track := func(c *Component) *Component {
		c.OnMount(func([]*dom.Node) { order = append(order, c.Name()) })
		return c
	}
	leaf := track(mustMarkup(t, s.NewComponent("leaf"), `<i>leaf</i>`))
	mid := track(mustMarkup(t, s.NewComponent("mid"), `<div data-component="{}"></div>`, Comp(leaf)))
	top := track(mustMarkup(t, s.NewComponent("top"), `<section data-component="{}"></section>`, Comp(mid)))
	mustRender(t, s, top)

	if diff := cmp.Diff([]string{"leaf", "mid", "top"}, order); diff != "" {
		t.Errorf("mount order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderNamed(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><main data-is="root"></main>` +
		`<ul data-x="1"><li data-list="items"></li></ul><aside data-component="missing"></aside></body></html>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s := NewSession(doc)
	label := reactive.NewState("A")
	a := mustMarkup(t, s.NewComponent("a"), `<li>{}</li>`, State(label))
	b := mustMarkup(t, s.NewComponent("b"), `<li>B</li>`)
	s.Register("items", a, b)
	mustRender(t, s, mustMarkup(t, s.NewComponent("app"), `<h1>app</h1>`))

	want := `<main><h1>app</h1></main><ul data-x="1"><li>A</li><li>B</li></ul>`
	if diff := cmp.Diff(want, doc.Body().InnerHTML()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if !a.Mounted() || !b.Mounted() {
		t.Error("named components should be mounted")
	}

	label.Set("A2")
	if got := doc.Body().Children()[1].FirstChild().Text(); got != "A2" {
		t.Errorf("named component text = %q, want A2", got)
	}
}

func TestDispatchLimitOption(t *testing.T) {
	r := captureReports(t)
	s, _ := newTestSession(t, WithHubOptions(reactive.WithDispatchLimit(10)))
	a := reactive.NewState(0)
	c := mustMarkup(t, s.NewComponent("loop"), `<p>{}</p>`, State(a))
	s.AddBinding("bump", func(ctx BindingContext) func() error {
		return func() error {
			a.Set(a.Value() + 1)
			return nil
		}
	})
	loop := mustMarkup(t, s.NewComponent("bump"), `<b data-bump="{}"></b>`, State(a))
	mustRender(t, s, mustMarkup(t, s.NewComponent("app"), `<div data-list="{}"></div>`, List(c, loop)))

	a.Set(100)

	found := false
	for _, err := range r.errors {
		if errors.Is(err, errors.ErrDispatchLimit) {
			found = true
		}
	}
	if !found {
		t.Errorf("reported %v, want ErrDispatchLimit", r.errors)
	}
}
