package testing

import (
	"testing"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/testing/internal/testbed"
)

func TestClick_Counter(t *testing.T) {
	var lastCount int
	tester := NewTesterWithT(t)
	comp, count := testbed.Counter{
		Initial: 10,
		OnTap:   func(n int) { lastCount = n },
	}.Build(tester.Session())
	if err := tester.Render(comp); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if err := tester.Click(ByTag("button")); err != nil {
			t.Fatalf("Click failed: %v", err)
		}
	}

	if count.Value() != 13 {
		t.Errorf("count = %d, want 13", count.Value())
	}
	if lastCount != 13 {
		t.Errorf("callback got %d, want 13", lastCount)
	}
	if !tester.Find(ByText("13")).Exists() {
		t.Error("expected '13' after three clicks")
	}
}

func TestClick_Bubbles(t *testing.T) {
	tester := NewTesterWithT(t)
	comp, count := testbed.Counter{}.Build(tester.Session())
	tester.Render(comp)

	// The listener sits on the button; clicking the inner span bubbles up.
	if err := tester.Click(ByTag("span")); err != nil {
		t.Fatal(err)
	}
	if count.Value() != 1 {
		t.Errorf("count = %d, want 1", count.Value())
	}
}

func TestClick_NoMatch(t *testing.T) {
	tester := NewTesterWithT(t)
	if err := tester.Click(ByTag("button")); err == nil {
		t.Error("expected an error when nothing matches")
	}
}

func TestType_TextInput(t *testing.T) {
	tester := NewTesterWithT(t)
	comp, name, _ := testbed.Form{Name: "Ann"}.Build(tester.Session())
	if err := tester.Render(comp); err != nil {
		t.Fatal(err)
	}

	if err := tester.Type(ByAttr("id", "name"), "Bob"); err != nil {
		t.Fatal(err)
	}
	if name.Value() != "Bob" {
		t.Errorf("name = %q, want Bob", name.Value())
	}
	if got := tester.Find(ByAttr("id", "mirror")).Text(); got != "Bob false" {
		t.Errorf("mirror = %q, want %q", got, "Bob false")
	}
}

func TestChange_ValueAttr(t *testing.T) {
	tester := NewTesterWithT(t)
	comp, _, checked := testbed.Form{}.Build(tester.Session())
	tester.Render(comp)

	if err := tester.Change(ByAttr("id", "agree"), "true"); err != nil {
		t.Fatal(err)
	}
	if !checked.Value() {
		t.Error("checked should be true after change")
	}

	if err := tester.Change(ByAttr("id", "agree"), "maybe"); err != nil {
		t.Fatal(err)
	}
	if len(tester.Errors()) != 1 {
		t.Errorf("Errors() = %v, want one type mismatch", tester.Errors())
	}
}

func TestType_NotFormControl(t *testing.T) {
	tester := NewTesterWithT(t)
	comp, _ := testbed.Counter{}.Build(tester.Session())
	tester.Render(comp)
	if err := tester.Type(ByTag("span"), "x"); err == nil {
		t.Error("expected an error typing into a span")
	}
}

func TestDispatch_Payload(t *testing.T) {
	tester := NewTesterWithT(t)
	comp := tester.NewComponent("custom")
	if err := comp.Markup(`<div id="target"></div>`); err != nil {
		t.Fatal(err)
	}
	tester.Render(comp)

	var got any
	target := tester.Find(ByAttr("id", "target")).First()
	target.AddEventListener("pick", func(e dom.Event) { got = e.Data })

	if err := tester.Dispatch(ByAttr("id", "target"), "pick", 42); err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("payload = %v, want 42", got)
	}
}
