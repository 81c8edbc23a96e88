package testing

import (
	"testing"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/testing/internal/testbed"
)

func renderCounter(t *testing.T, initial int) *Tester {
	t.Helper()
	tester := NewTesterWithT(t)
	comp, _ := testbed.Counter{Initial: initial}.Build(tester.Session())
	if err := tester.Render(comp); err != nil {
		t.Fatal(err)
	}
	return tester
}

func TestByText(t *testing.T) {
	tester := renderCounter(t, 42)

	result := tester.Find(ByText("42"))
	if result.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", result.Count())
	}
	if tag := result.First().Tag(); tag != "span" {
		t.Errorf("ByText matched <%s>, want the innermost <span>", tag)
	}
	if tester.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := renderCounter(t, 123)

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByTagAttrAndClass(t *testing.T) {
	tester := renderCounter(t, 0)

	tests := []struct {
		name   string
		finder Finder
		want   int
	}{
		{"tag", ByTag("button"), 1},
		{"tag upper case", ByTag("SPAN"), 1},
		{"attr any value", ByAttr("class", ""), 1},
		{"attr value", ByAttr("class", "counter"), 1},
		{"attr wrong value", ByAttr("class", "other"), 0},
		{"class", ByClass("counter"), 1},
		{"no such tag", ByTag("table"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tester.Find(tt.finder).Count(); got != tt.want {
				t.Errorf("%s Count() = %d, want %d", tt.finder.Description(), got, tt.want)
			}
		})
	}
}

func TestByPredicate(t *testing.T) {
	tester := renderCounter(t, 7)
	result := tester.Find(ByPredicate(func(n *dom.Node) bool {
		return n.Type() == dom.TextNode && n.Text() == "7"
	}))
	if result.Count() != 1 {
		t.Errorf("Count() = %d, want 1", result.Count())
	}
}

func TestDescendantAndAncestor(t *testing.T) {
	tester := renderCounter(t, 5)

	if !tester.Find(Descendant(ByTag("button"), ByText("5"))).Exists() {
		t.Error("expected text under the button")
	}
	if tester.Find(Descendant(ByTag("span"), ByTag("button"))).Exists() {
		t.Error("button is not under the span")
	}
	anc := tester.Find(Ancestor(ByText("5"), ByTag("button")))
	if anc.Count() != 1 {
		t.Errorf("Ancestor Count() = %d, want 1", anc.Count())
	}
}

func TestFinderResult_Panics(t *testing.T) {
	tester := renderCounter(t, 0)
	result := tester.Find(ByTag("table"))

	if result.FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil without matches")
	}
	defer func() {
		if recover() == nil {
			t.Error("First should panic without matches")
		}
	}()
	result.First()
}
