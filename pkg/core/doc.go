// Package core provides components, templates and the binding engine.
//
// A Component owns a fragment of the document. Its template is materialized
// once, scanned for bindings, and every binding is registered against the
// state cells it depends on. Setting a cell re-applies exactly those
// bindings; there is no virtual DOM and no diffing.
//
// # Templates
//
// Values interpolated into a template are tagged explicitly:
//
//	count := reactive.NewState(0)
//	c := session.NewComponent("counter")
//	err := c.Markup(`
//	    <button data-click="{}">+1</button>
//	    <p data-class="{}">Count: {}</p>`,
//	    core.Handler(func(dom.Event) { count.Update(inc) }),
//	    core.Is(reactive.Map(count, parity)),
//	    core.State(count),
//	)
//
// Markup and Template serialize pooled values as _<pool>_<index>_ tokens,
// parse the result and resolve the tokens back. Build materializes a
// structured tree directly and keeps value references without tokens:
//
//	err := c.Build(
//	    core.El("button", core.Bind("data-click", core.Handler(onClick)), core.Text("+1")),
//	    core.El("p", core.Text("Count: ", core.State(count))),
//	)
//
// # Bindings
//
// The attribute vocabulary is data-<event>, data-component, data-list,
// data-if, data-class, data-textinput, any plain attribute, and custom
// data-<name> bindings registered with Session.AddBinding. Text nodes with
// state or expression values become text bindings. Every data-* attribute
// that carried a value is removed once processed.
//
// # Sessions
//
// A Session is the context of one render: the document, the dispatch hub,
// custom bindings and named components. Session.Render attaches a root
// component at the data-is="root" marker, applies deferred bindings and
// fires mount callbacks.
//
// Components, sessions and cells are NOT thread-safe. Drive them from the
// goroutine that owns the document.
package core
