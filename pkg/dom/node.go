package dom

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	// ElementNode is an HTML element.
	ElementNode NodeType = iota
	// TextNode is a run of character data.
	TextNode
	// CommentNode is an HTML comment.
	CommentNode
	// FragmentNode is a detached container whose children move on insertion.
	FragmentNode
	// DocumentNode is the root of a Document.
	DocumentNode
	// OtherNode covers doctype and raw nodes.
	OtherNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	case DocumentNode:
		return "document"
	default:
		return "other"
	}
}

// Attr is a single attribute of an element.
type Attr struct {
	Name  string
	Value string
}

// Node is a handle to one node of a Document. Handles are canonical: the
// same underlying node always yields the same *Node, so handles compare
// with ==.
type Node struct {
	h         *html.Node
	doc       *Document
	fragment  bool
	listeners map[string][]Listener
	value     string
	valueSet  bool
}

// Type returns the node type.
func (n *Node) Type() NodeType {
	switch n.h.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DocumentNode:
		if n.fragment {
			return FragmentNode
		}
		return DocumentNode
	default:
		return OtherNode
	}
}

// Tag returns the lower-case tag name of an element, or "" for other nodes.
func (n *Node) Tag() string {
	if n.h.Type != html.ElementNode {
		return ""
	}
	return n.h.Data
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Text returns the text content: the data of a text or comment node, or the
// concatenated descendant text of an element or fragment.
func (n *Node) Text() string {
	switch n.h.Type {
	case html.TextNode, html.CommentNode:
		return n.h.Data
	}
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(h *html.Node) {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			} else if c.Type == html.ElementNode {
				collect(c)
			}
		}
	}
	collect(n.h)
	return sb.String()
}

// SetText replaces the text content. For elements and fragments every child
// is removed and replaced by one text node.
func (n *Node) SetText(text string) {
	switch n.h.Type {
	case html.TextNode, html.CommentNode:
		n.h.Data = text
		n.doc.mutated()
		return
	}
	for c := n.h.FirstChild; c != nil; {
		next := c.NextSibling
		n.h.RemoveChild(c)
		c = next
	}
	if text != "" {
		n.h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	n.doc.mutated()
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n.h.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Attrs returns a copy of the element's attributes in document order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, 0, len(n.h.Attr))
	for _, a := range n.h.Attr {
		out = append(out, Attr{Name: a.Key, Value: a.Val})
	}
	return out
}

// SetAttr sets an attribute, adding it if missing.
func (n *Node) SetAttr(name, value string) {
	if n.h.Type != html.ElementNode {
		return
	}
	for i, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			n.h.Attr[i].Val = value
			n.doc.mutated()
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: name, Val: value})
	n.doc.mutated()
}

// RemoveAttr removes an attribute. Removing a missing attribute is a no-op.
func (n *Node) RemoveAttr(name string) {
	for i, a := range n.h.Attr {
		if a.Namespace == "" && a.Key == name {
			n.h.Attr = slices.Delete(n.h.Attr, i, i+1)
			n.doc.mutated()
			return
		}
	}
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// SetClasses replaces the class list. An empty list removes the attribute.
func (n *Node) SetClasses(classes []string) {
	if len(classes) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(classes, " "))
}

// AddClass adds classes that are not already present.
func (n *Node) AddClass(names ...string) {
	list := n.Classes()
	changed := false
	for _, name := range names {
		if name != "" && !slices.Contains(list, name) {
			list = append(list, name)
			changed = true
		}
	}
	if changed {
		n.SetClasses(list)
	}
}

// RemoveClass removes the given classes.
func (n *Node) RemoveClass(names ...string) {
	list := n.Classes()
	kept := slices.DeleteFunc(slices.Clone(list), func(c string) bool {
		return slices.Contains(names, c)
	})
	if len(kept) != len(list) {
		n.SetClasses(kept)
	}
}

// IsFormControl reports whether the node is an input, textarea or select.
func (n *Node) IsFormControl() bool {
	switch n.Tag() {
	case "input", "textarea", "select":
		return true
	}
	return false
}

// Value returns the live value of a form control. Until SetValue is called
// it reflects the markup: the value attribute of an input, the text of a
// textarea, the selected option of a select.
func (n *Node) Value() string {
	if n.valueSet {
		return n.value
	}
	switch n.Tag() {
	case "textarea":
		return n.Text()
	case "select":
		return n.selectedOption()
	}
	v, _ := n.Attr("value")
	return v
}

// SetValue sets the live value of a form control.
func (n *Node) SetValue(v string) {
	n.value = v
	n.valueSet = true
	n.doc.mutated()
}

func (n *Node) selectedOption() string {
	var first, selected *Node
	n.Walk(func(c *Node) bool {
		if c.Tag() != "option" {
			return true
		}
		if first == nil {
			first = c
		}
		if selected == nil && c.HasAttr("selected") {
			selected = c
		}
		return false
	})
	if selected == nil {
		selected = first
	}
	if selected == nil {
		return ""
	}
	if v, ok := selected.Attr("value"); ok {
		return v
	}
	return selected.Text()
}

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node { return n.doc.wrap(n.h.Parent) }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.doc.wrap(n.h.FirstChild) }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.doc.wrap(n.h.LastChild) }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.doc.wrap(n.h.NextSibling) }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.doc.wrap(n.h.PrevSibling) }

// Children returns a snapshot of the child nodes.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, n.doc.wrap(c))
	}
	return out
}

// AppendChild appends child. A fragment child moves all of its children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child right before ref. A nil ref, or a ref that is
// not a child of n, appends. A fragment child moves all of its children.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child == n {
		return
	}
	var refH *html.Node
	if ref != nil && ref.h.Parent == n.h {
		refH = ref.h
	}
	if child.fragment {
		for _, c := range child.Children() {
			c.detach()
			n.h.InsertBefore(c.h, refH)
		}
	} else {
		child.detach()
		n.h.InsertBefore(child.h, refH)
	}
	n.doc.mutated()
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.h.Parent == nil {
		return
	}
	n.detach()
	n.doc.mutated()
}

// ReplaceWith puts replacement where n is and detaches n.
// A fragment replacement moves all of its children.
func (n *Node) ReplaceWith(replacement *Node) {
	parent := n.Parent()
	if parent == nil || replacement == n {
		return
	}
	if replacement != nil {
		parent.InsertBefore(replacement, n)
	}
	n.Remove()
}

func (n *Node) detach() {
	if n.h.Parent != nil {
		n.h.Parent.RemoveChild(n.h)
	}
}

// IsConnected reports whether the node is attached to its document root.
func (n *Node) IsConnected() bool {
	for h := n.h; h != nil; h = h.Parent {
		if h == n.doc.root {
			return true
		}
	}
	return false
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for h := other.h; h != nil; h = h.Parent {
		if h == n.h {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.h.FirstChild; c != nil; {
		next := c.NextSibling
		n.doc.wrap(c).Walk(fn)
		c = next
	}
}

// HTML returns the node serialized as HTML. Fragments and documents
// serialize their children.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	switch n.h.Type {
	case html.DocumentNode:
		for c := n.h.FirstChild; c != nil; c = c.NextSibling {
			_ = html.Render(&buf, c)
		}
	default:
		_ = html.Render(&buf, n.h)
	}
	return buf.String()
}

// InnerHTML returns the children of n serialized as HTML.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}
