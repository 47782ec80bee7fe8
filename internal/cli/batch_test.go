package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/podoc/pkg/render/po"
)

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "c.toml", "notes.txt", ".hidden.json", "d.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := collectDocuments(dir)
	if err != nil {
		t.Fatalf("collectDocuments() error: %v", err)
	}
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	want := []string{"a.json", "b.yaml", "c.toml", "d.yml"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("collectDocuments() = %v, want %v", names, want)
	}

	if _, err := collectDocuments(filepath.Join(dir, "missing")); err == nil {
		t.Error("collectDocuments(missing) should fail")
	}
}

func TestRunBatchPlain(t *testing.T) {
	c, cfg := newTestCLI(t)
	buf := captureOutput(t)
	in, outDir := t.TempDir(), t.TempDir()

	writeDocument(t, in, "po-1.json", testDocument("PO-2025-08-01", 3))
	writeDocument(t, in, "po-2.yaml", testDocument("PO-2025-08-02", 45))
	writeDocument(t, in, "po-3.toml", testDocument("PO-2025-08-03", 8))
	if err := os.WriteFile(filepath.Join(in, "po-4.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &batchOpts{outputDir: outDir, concurrency: 2, plain: true}
	err := c.runBatch(context.Background(), cfg, in, opts)
	if err == nil || !strings.Contains(err.Error(), "1 of 4 documents failed") {
		t.Fatalf("runBatch() error = %v, want one failure", err)
	}

	for _, name := range []string{"po-1.pdf", "po-2.pdf", "po-3.pdf"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "po-4.pdf")); !os.IsNotExist(err) {
		t.Error("failed document should not produce a PDF")
	}
	if !strings.Contains(buf.String(), "Rendered 3 of 4 documents") {
		t.Errorf("missing summary:\n%s", buf.String())
	}
}

func TestRunBatchEmpty(t *testing.T) {
	c, cfg := newTestCLI(t)
	buf := captureOutput(t)

	if err := c.runBatch(context.Background(), cfg, t.TempDir(), &batchOpts{plain: true}); err != nil {
		t.Fatalf("runBatch() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No documents found") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderAllCancelled(t *testing.T) {
	c, cfg := newTestCLI(t)
	dir := t.TempDir()
	files := []string{
		writeDocument(t, dir, "a.json", testDocument("PO-A", 2)),
		writeDocument(t, dir, "b.json", testDocument("PO-B", 2)),
	}
	runner, err := c.newRunner(cfg, true)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := renderAll(ctx, runner, (&renderFlags{}).options(cfg), files, &batchOpts{concurrency: 1}, func(batchResult) {})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("renderAll() error = %v, want context.Canceled", err)
	}
	for _, r := range results {
		if r.Output != "" {
			t.Errorf("%s rendered after cancellation", r.Path)
		}
	}
}

func TestBatchModel(t *testing.T) {
	var m tea.Model = newBatchModel(3)

	m, cmd := m.Update(batchResult{Path: "a.json", Output: "a.pdf"})
	if cmd != nil {
		t.Error("model quit before all results arrived")
	}
	m, _ = m.Update(batchResult{Path: "b.json", CacheHit: true, Report: po.Report{Items: 40, Omitted: 12}})
	m, cmd = m.Update(batchResult{Path: "c.json", Err: errors.New("boom")})

	bm := m.(batchModel)
	if bm.Done != 3 || bm.Failed != 1 || bm.Cached != 1 || bm.Truncated != 1 {
		t.Errorf("counts = done %d failed %d cached %d truncated %d", bm.Done, bm.Failed, bm.Cached, bm.Truncated)
	}
	if cmd == nil {
		t.Fatal("model should quit after the last result")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("last result should return tea.Quit")
	}

	view := bm.View()
	for _, want := range []string{"3/3", "1 failed", "1 cached", "boom", "12 omitted"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBatchModelInterrupt(t *testing.T) {
	m, cmd := newBatchModel(5).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.(batchModel).Interrupted {
		t.Error("ctrl+c should mark the model interrupted")
	}
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestBatchModelKeepsRecent(t *testing.T) {
	m := newBatchModel(20)
	for i := range 10 {
		next, _ := m.Update(batchResult{Path: string(rune('a'+i)) + ".json"})
		m = next.(batchModel)
	}
	if len(m.Recent) != batchRecent {
		t.Fatalf("recent = %d, want %d", len(m.Recent), batchRecent)
	}
	if got := m.Recent[batchRecent-1].Path; got != "j.json" {
		t.Errorf("last recent = %q, want j.json", got)
	}
}
