package dom

import (
	"strings"

	"golang.org/x/image/font"
)

// Size is a measured extent in pixels.
type Size struct {
	Width  int
	Height int
}

// Measure lays out the text content of n with the document's font face,
// one line per newline, and returns the bounding size. Mount callbacks use
// it for measurements that assume the node is in the document.
func (n *Node) Measure() Size {
	text := n.Text()
	if text == "" {
		return Size{}
	}
	face := n.doc.face
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	return Size{
		Width:  width,
		Height: len(lines) * face.Metrics().Height.Ceil(),
	}
}
