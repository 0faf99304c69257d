package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dexdogs/physaudit/internal/audit"
	"github.com/dexdogs/physaudit/internal/model"
	"github.com/dexdogs/physaudit/internal/worker"
)

var (
	batchSector  string
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Audit every PDD in a directory in parallel",
	Long: `Batch audits a directory of Project Design Documents concurrently:
- Every *.pdf in the directory is audited against the sector's standard
- Oracle fetches share one rate limiter so the host is not hammered
- One JSON report is written per document

Example:
  physaudit batch ./pdds --sector 13
  physaudit batch ./pdds --sector 13 --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchSector, "sector", "", "sectoral scope code (01-15)")
	_ = batchCmd.MarkFlagRequired("sector")

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./physaudit-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

// batchAuditor adapts audit.Auditor to worker.DocumentAuditor, giving
// every document its own session.
type batchAuditor struct {
	auditor *audit.Auditor
}

func (b *batchAuditor) Audit(ctx context.Context, sectorID, documentPath string) (*model.Report, error) {
	return b.auditor.AuditDocument(ctx, audit.NewSession(), sectorID, documentPath)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  physaudit Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Sector:       %s\n", batchSector)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := loadConfig()
	cfg.Concurrency.Workers = concurrency

	auditor, err := audit.NewAuditor(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	processor := worker.NewBatchProcessor(&batchAuditor{auditor: auditor}, concurrency)
	results, err := processor.ProcessDir(ctx, batchSector, dir)
	if err != nil {
		return err
	}

	renderer := audit.NewRenderer(cfg.Output.IncludeFooter)
	var passed, failed, errored int
	for _, result := range results {
		name := filepath.Base(result.DocumentPath)
		if result.Error != nil {
			errored++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", name, result.Error)
			continue
		}

		reportPath := filepath.Join(outputDir, strings.TrimSuffix(name, filepath.Ext(name))+".json")
		if err := renderer.RenderJSON(result.Report, reportPath); err != nil {
			errored++
			fmt.Fprintf(os.Stderr, "  ✗ %s: write report: %v\n", name, err)
			continue
		}

		if result.Report.Passed() {
			passed++
			fmt.Fprintf(os.Stderr, "  ✓ %s: PASS → %s\n", name, reportPath)
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: FAIL → %s\n", name, reportPath)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Done: %d passed, %d failed, %d errored (of %d)\n", passed, failed, errored, len(results))
	fmt.Fprintf(os.Stderr, "\n")

	if errored > 0 {
		return fmt.Errorf("%d of %d audits errored", errored, len(results))
	}
	return nil
}
