package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document owns a node tree and the per-node state that x/net/html does not
// model: listeners, form values, and wrapper identity.
type Document struct {
	root      *html.Node
	nodes     map[*html.Node]*Node
	face      font.Face
	mutations uint64
}

// Option configures a Document.
type Option func(*Document)

// WithFontFace sets the face used by Node.Measure.
// The default is basicfont.Face7x13.
func WithFontFace(face font.Face) Option {
	return func(d *Document) {
		if face != nil {
			d.face = face
		}
	}
}

// NewDocument returns an empty HTML document with a head and a body.
func NewDocument(opts ...Option) *Document {
	d, err := ParseString(blankPage, opts...)
	if err != nil {
		// The blank page is constant and always parses.
		panic(err)
	}
	return d
}

// Parse reads a full HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	d := &Document{
		root:  root,
		nodes: make(map[*html.Node]*Node),
		face:  basicfont.Face7x13,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the document node.
func (d *Document) Root() *Node {
	return d.wrap(d.root)
}

// Body returns the body element, or nil if the document has none.
func (d *Document) Body() *Node {
	var body *Node
	d.Root().Walk(func(n *Node) bool {
		if body != nil {
			return false
		}
		if n.Type() == ElementNode && n.Tag() == "body" {
			body = n
			return false
		}
		return true
	})
	return body
}

// Face returns the font face used for measurement.
func (d *Document) Face() font.Face {
	return d.face
}

// Mutations returns the number of mutation primitives applied so far.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Node {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// CreateText returns a detached text node.
func (d *Document) CreateText(text string) *Node {
	return d.wrap(&html.Node{Type: html.TextNode, Data: text})
}

// CreateComment returns a detached comment node.
func (d *Document) CreateComment(text string) *Node {
	return d.wrap(&html.Node{Type: html.CommentNode, Data: text})
}

// CreateFragment returns an empty detached fragment.
func (d *Document) CreateFragment() *Node {
	n := d.wrap(&html.Node{Type: html.DocumentNode})
	n.fragment = true
	return n
}

// ParseFragment parses markup in a body context into a new fragment.
func (d *Document) ParseFragment(markup string) (*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	frag := d.CreateFragment()
	for _, h := range parsed {
		if h.Parent != nil {
			h.Parent.RemoveChild(h)
		}
		frag.h.AppendChild(h)
	}
	return frag, nil
}

// QueryAttr returns the first element carrying attribute name. An empty value
// matches any attribute value.
func (d *Document) QueryAttr(name, value string) *Node {
	var found *Node
	d.Root().Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr(name); ok && (value == "" || v == value) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAllAttr returns every element carrying attribute name, in document order.
func (d *Document) QueryAllAttr(name string) []*Node {
	var out []*Node
	d.Root().Walk(func(n *Node) bool {
		if n.HasAttr(name) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the document as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(h *html.Node) *Node {
	if h == nil {
		return nil
	}
	if n, ok := d.nodes[h]; ok {
		return n
	}
	n := &Node{h: h, doc: d}
	d.nodes[h] = n
	return n
}

func (d *Document) mutated() {
	d.mutations++
}
