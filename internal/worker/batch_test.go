package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dexdogs/physaudit/internal/model"
)

// fakeAuditor implements DocumentAuditor without any HTTP
type fakeAuditor struct {
	calls    atomic.Int32
	failPath string
}

func (f *fakeAuditor) Audit(ctx context.Context, sectorID, documentPath string) (*model.Report, error) {
	f.calls.Add(1)
	if documentPath == f.failPath {
		return nil, errors.New("extraction failed")
	}
	return &model.Report{
		Sector:   model.Sector{ID: sectorID},
		Verdicts: []model.Verdict{{Outcome: model.OutcomeMatch}},
	}, nil
}

func writePDFs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "b.pdf", "a.PDF")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	paths, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 PDFs, got %d: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.PDF" {
		t.Errorf("expected sorted order, got %v", paths)
	}
}

func TestListDocuments_Empty(t *testing.T) {
	if _, err := ListDocuments(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without PDFs")
	}
}

func TestBatchProcessor_ProcessDir(t *testing.T) {
	dir := t.TempDir()
	paths := writePDFs(t, dir, "one.pdf", "two.pdf", "three.pdf")

	auditor := &fakeAuditor{failPath: paths[0]}
	processor := NewBatchProcessor(auditor, 2)

	results, err := processor.ProcessDir(context.Background(), "13", dir)
	if err != nil {
		t.Fatalf("ProcessDir failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if auditor.calls.Load() != 3 {
		t.Errorf("expected 3 audits, got %d", auditor.calls.Load())
	}

	var failed int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Report != nil {
				t.Error("failed audit carried a report")
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed audit, got %d", failed)
	}
}

func TestBatchProcessor_NoDocuments(t *testing.T) {
	processor := NewBatchProcessor(&fakeAuditor{}, 2)
	results := processor.ProcessDocuments(context.Background(), "13", nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
