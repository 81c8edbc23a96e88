// Package testing provides a component testing framework for weft.
//
// # Quick Start
//
// Create a tester, render a component, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := wefttest.NewTesterWithT(t)
//	    count := reactive.NewState(0)
//	    c := tester.NewComponent("counter")
//	    c.Markup(`<button data-click="{}">+</button><span>{}</span>`,
//	        core.Handler(func(dom.Event) { count.Set(count.Value() + 1) }),
//	        core.State(count))
//	    tester.Render(c)
//
//	    // Simulate events
//	    tester.Click(wefttest.ByTag("button"))
//
//	    // Assert on the document
//	    if !tester.Find(wefttest.ByText("1")).Exists() {
//	        t.Error("expected '1'")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare document snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	WEFT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Errors
//
// A tester routes reported errors to itself until cleanup. Inspect them
// with Errors.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import wefttest "github.com/weft-ui/weft/pkg/testing"
package testing
