package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weft-ui/weft/pkg/testing/internal/testbed"
)

func captureCounter(t *testing.T, initial int) *Snapshot {
	t.Helper()
	tester := renderCounter(t, initial)
	return tester.CaptureSnapshot()
}

func TestCaptureSnapshot_Tree(t *testing.T) {
	snap := captureCounter(t, 3)

	want := []*SnapNode{{
		ID:   "div#0",
		Type: "div",
		Children: []*SnapNode{{
			ID:    "button#0",
			Type:  "button",
			Attrs: map[string]string{"class": "counter"},
			Children: []*SnapNode{{
				ID:       "span#0",
				Type:     "span",
				Children: []*SnapNode{{ID: "#text#0", Type: "text", Text: "3"}},
			}},
		}},
	}}
	if diff := cmp.Diff(want, snap.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"text"}, snap.Bindings); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := captureCounter(t, 1)
	b := captureCounter(t, 1)

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := captureCounter(t, 1)
	b := captureCounter(t, 2)

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv("WEFT_UPDATE_SNAPSHOTS", "")
	snap := captureCounter(t, 4)

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "counter.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("WEFT_UPDATE_SNAPSHOTS", "")
	snap := captureCounter(t, 0)

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("WEFT_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	comp, count := testbed.Counter{}.Build(tester.Session())
	tester.Render(comp)

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	count.Set(99)
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	tester.CaptureSnapshot().MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := captureCounter(t, 6)

	dir := t.TempDir()
	path := filepath.Join(dir, "update.snapshot.json")

	t.Setenv("WEFT_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
