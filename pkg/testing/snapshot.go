package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/weft-ui/weft/pkg/dom"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the document body and the root component's bindings.
type Snapshot struct {
	Tree     []*SnapNode `json:"tree"`
	Bindings []string    `json:"bindings,omitempty"`
}

// SnapNode represents a node in the serialized document.
type SnapNode struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*SnapNode       `json:"children,omitempty"`
}

// CaptureSnapshot captures the current document body and the kinds of the
// root component's bindings.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if body := t.doc.Body(); body != nil {
		counter := &typeCounter{}
		for _, child := range body.Children() {
			if n := captureNode(child, counter); n != nil {
				snap.Tree = append(snap.Tree, n)
			}
		}
	}
	if t.root != nil {
		for _, b := range t.root.Bindings() {
			snap.Bindings = append(snap.Bindings, b.Kind)
		}
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When WEFT_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("WEFT_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: WEFT_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: WEFT_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff between other (expected) and this snapshot (actual).
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return cmp.Diff(strings.Split(string(b), "\n"), strings.Split(string(a), "\n"))
}

// --- Internal ---

// typeCounter assigns stable IDs like "div#0", "div#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

// captureNode serializes n. Whitespace-only text is skipped.
func captureNode(n *dom.Node, counter *typeCounter) *SnapNode {
	switch n.Type() {
	case dom.TextNode:
		text := n.Text()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return &SnapNode{ID: counter.next("#text"), Type: "text", Text: text}
	case dom.CommentNode:
		return &SnapNode{ID: counter.next("#comment"), Type: "comment", Text: n.Text()}
	case dom.ElementNode:
	default:
		return nil
	}

	node := &SnapNode{ID: counter.next(n.Tag()), Type: n.Tag()}
	for _, a := range n.Attrs() {
		if node.Attrs == nil {
			node.Attrs = make(map[string]string)
		}
		node.Attrs[a.Name] = a.Value
	}
	for _, child := range n.Children() {
		if c := captureNode(child, counter); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
