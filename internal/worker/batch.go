package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dexdogs/physaudit/internal/model"
)

// DocumentAuditor runs the full audit flow for one document.
// Satisfied by audit.Auditor (through the cli wiring); an interface here
// keeps the pool testable without HTTP.
type DocumentAuditor interface {
	Audit(ctx context.Context, sectorID, documentPath string) (*model.Report, error)
}

// AuditJob audits one document
type AuditJob struct {
	SectorID     string
	DocumentPath string
	Auditor      DocumentAuditor
}

// Execute runs the audit
func (j *AuditJob) Execute(ctx context.Context) Result {
	report, err := j.Auditor.Audit(ctx, j.SectorID, j.DocumentPath)
	return &AuditResult{
		DocumentPath: j.DocumentPath,
		Report:       report,
		Error:        err,
	}
}

// AuditResult is the outcome of one document audit
type AuditResult struct {
	DocumentPath string
	Report       *model.Report
	Error        error
}

// GetError returns the audit error, if any
func (r *AuditResult) GetError() error {
	return r.Error
}

// BatchProcessor audits many documents concurrently against one sector's
// reference
type BatchProcessor struct {
	auditor     DocumentAuditor
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(auditor DocumentAuditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		auditor:     auditor,
		concurrency: concurrency,
	}
}

// ProcessDocuments audits the given documents concurrently
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, sectorID string, paths []string) []*AuditResult {
	if len(paths) == 0 {
		return []*AuditResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AuditJob{
			SectorID:     sectorID,
			DocumentPath: path,
			Auditor:      b.auditor,
		})
	}

	results := pool.Wait()

	auditResults := make([]*AuditResult, len(results))
	for i, result := range results {
		auditResults[i] = result.(*AuditResult)
	}
	return auditResults
}

// ProcessDir audits every PDF in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, sectorID, dir string) ([]*AuditResult, error) {
	paths, err := ListDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return b.ProcessDocuments(ctx, sectorID, paths), nil
}

// ListDocuments returns the PDF files in dir, sorted by name
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF documents in %s", dir)
	}
	return paths, nil
}
