// Package page builds the host page the weft CLI renders into.
package page

import (
	"io"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Options configures the host page.
type Options struct {
	Title string
	// RootMarker is the data-is value of the mount element.
	RootMarker string
	// Banner names the component inserted into the header.
	Banner string
	// Links names the component list inserted into the footer.
	Links string
}

// Host returns the host page: a header with a named component marker, a main
// mount point, and a footer list with a named list marker.
func Host(opts Options) g.Node {
	root := opts.RootMarker
	if root == "" {
		root = "root"
	}
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(opts.Title)),
			),
			h.Body(
				h.Header(g.Attr("data-component", opts.Banner)),
				h.Main(g.Attr("data-is", root)),
				h.Footer(
					h.Ul(h.Li(g.Attr("data-list", opts.Links))),
				),
			),
		),
	)
}

// Write renders the host page to w.
func Write(w io.Writer, opts Options) error {
	return Host(opts).Render(w)
}

// String renders the host page.
func String(opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}
