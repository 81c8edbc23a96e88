package testing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/weft-ui/weft/pkg/dom"
)

// Finder locates nodes in the document.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *dom.Node) []*dom.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*dom.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *dom.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*dom.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Text returns the text content of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return r.First().Text()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// textFinder matches the innermost elements whose text equals text.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *dom.Node) []*dom.Node {
	return innermost(root, func(n *dom.Node) bool {
		return strings.TrimSpace(n.Text()) == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches elements whose trimmed text content
// equals text. Only the innermost matching element of a subtree is returned.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches the innermost elements containing substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *dom.Node) []*dom.Node {
	return innermost(root, func(n *dom.Node) bool {
		return strings.Contains(n.Text(), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches elements whose text
// contains substring. Only the innermost matching element of a subtree is
// returned.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// tagFinder matches elements by tag name.
type tagFinder struct {
	tag string
}

func (f *tagFinder) Evaluate(root *dom.Node) []*dom.Node {
	tag := strings.ToLower(f.tag)
	return collectMatches(root, func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && n.Tag() == tag
	})
}

func (f *tagFinder) Description() string {
	return fmt.Sprintf("ByTag(%q)", f.tag)
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	return &tagFinder{tag: tag}
}

// attrFinder matches elements carrying an attribute.
type attrFinder struct {
	name, value string
}

func (f *attrFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool {
		v, ok := n.Attr(f.name)
		return ok && (f.value == "" || v == f.value)
	})
}

func (f *attrFinder) Description() string {
	return fmt.Sprintf("ByAttr(%q, %q)", f.name, f.value)
}

// ByAttr returns a finder that matches elements whose attribute name equals
// value. An empty value matches any value.
func ByAttr(name, value string) Finder {
	return &attrFinder{name: name, value: value}
}

// classFinder matches elements with a class.
type classFinder struct {
	class string
}

func (f *classFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool {
		return slices.Contains(n.Classes(), f.class)
	})
}

func (f *classFinder) Description() string {
	return fmt.Sprintf("ByClass(%q)", f.class)
}

// ByClass returns a finder that matches elements with the given class.
func ByClass(class string) Finder {
	return &classFinder{class: class}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*dom.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *dom.Node) []*dom.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*dom.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Node) []*dom.Node {
	var results []*dom.Node
	seen := make(map[*dom.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree (skip the ancestor itself)
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds nodes matching 'matching' that are ancestors of
// nodes matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *dom.Node) []*dom.Node {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []*dom.Node
	for _, candidate := range f.matching.Evaluate(root) {
		for _, desc := range descendants {
			if candidate != desc && candidate.Contains(desc) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches nodes satisfying 'matching'
// that are ancestors of nodes matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(root *dom.Node, predicate func(*dom.Node) bool) []*dom.Node {
	var results []*dom.Node
	root.Walk(func(n *dom.Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// innermost collects matching elements that have no matching element
// child.
func innermost(root *dom.Node, predicate func(*dom.Node) bool) []*dom.Node {
	return collectMatches(root, func(n *dom.Node) bool {
		if n.Type() != dom.ElementNode || !predicate(n) {
			return false
		}
		for _, c := range n.Children() {
			if c.Type() == dom.ElementNode && predicate(c) {
				return false
			}
		}
		return true
	})
}
