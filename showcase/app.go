// Package showcase provides the weft demo application.
// It demonstrates idiomatic patterns for building UIs with weft.
package showcase

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Named markers the host page may carry.
const (
	BannerName = "banner"
	LinksName  = "links"
)

// App is the showcase application: a root component with every demo, and
// the named components the host page refers to.
type App struct {
	Session *core.Session
	Root    *core.Component
	Banner  *core.Component
	Links   []*core.Component

	// TitleWidth is the rendered width of the heading, set on mount.
	TitleWidth *reactive.State[int]
}

// New builds the showcase in s. The tooltip binding is registered on s.
func New(s *core.Session, title string) (*App, error) {
	s.AddBinding("tooltip", Tooltip)

	app := &App{Session: s, TitleWidth: reactive.NewState(0)}
	var sections []*core.Component
	for _, d := range demos {
		c, err := d.Build(s)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", d.Name, err)
		}
		sections = append(sections, c)

		link := s.NewComponent("link")
		if err := link.Markup(`<li><a href="#{}">{}</a></li>`, core.Str(d.Name), core.Obj(d.Title)); err != nil {
			return nil, err
		}
		app.Links = append(app.Links, link)
	}

	measured := reactive.Map(app.TitleWidth, func(w int) bool { return w > 0 })
	root := s.NewComponent("app")
	err := root.Markup(`<h1 id="title">{}</h1>
<div data-if="{}"><p id="title-width">The heading is {}px wide.</p></div>
<div data-list="{}"></div>`,
		core.Obj(title),
		core.Is(measured),
		core.State(app.TitleWidth),
		core.List(sections...),
	)
	if err != nil {
		return nil, err
	}
	root.OnMount(func(nodes []*dom.Node) {
		for _, n := range nodes {
			if id, _ := n.Attr("id"); id == "title" {
				app.TitleWidth.Set(n.Measure().Width)
			}
		}
	})
	app.Root = root

	banner := s.NewComponent("banner")
	if err := banner.Markup(`<p class="banner">{} demos</p>`, core.Num(len(demos))); err != nil {
		return nil, err
	}
	app.Banner = banner
	return app, nil
}

// Render registers the named components and renders the root.
func (a *App) Render() error {
	a.Session.Register(BannerName, a.Banner)
	a.Session.Register(LinksName, a.Links...)
	return a.Session.Render(a.Root)
}
