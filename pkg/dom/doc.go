// Package dom provides the document substrate weft binds against.
//
// A Document is an in-memory HTML tree backed by golang.org/x/net/html. It
// offers the primitives a browser DOM offers to the binding engine: node
// creation, attribute and class storage, form values, event listeners with
// bubbling, insertion and removal, connectivity queries, and text metrics
// for mount callbacks that measure their nodes.
//
// Every mutation goes through a Node method and is counted, so tests can
// check that re-applying a binding with unchanged state mutates nothing:
//
//	before := doc.Mutations()
//	binding.Apply()
//	if doc.Mutations() != before {
//	    t.Error("apply was not idempotent")
//	}
//
// Fragments are detached containers. Appending a fragment moves its children
// and leaves the fragment empty, as in the browser.
package dom
