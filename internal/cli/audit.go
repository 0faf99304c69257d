package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dexdogs/physaudit/internal/audit"
	"github.com/dexdogs/physaudit/internal/model"
)

var (
	auditSector    string
	auditTolerance float64
	extractorMode  string
	outJSON        string
	outMD          string
	auditTimeout   time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noFooter       bool
	respectRobots  bool
	httpProxy      string
	httpsProxy     string
	llmModel       string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <pdd-file>",
	Short: "Audit one Project Design Document against its sector's physics standard",
	Long: `Audit runs the full verification flow for one PDD:
- Sync the sector's reference constants from the scientific oracle
- Extract the claimed physical values from the document
- Compare claimed against reference under an explicit tolerance
- Render a verdict report

Example:
  physaudit audit project.pdf --sector 13
  physaudit audit project.pdf --sector 13 --tolerance 0.0005 --json report.json --md report.md
  physaudit audit project.pdf --sector 13 --extractor llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&auditSector, "sector", "", "sectoral scope code (01-15)")
	_ = auditCmd.MarkFlagRequired("sector")

	auditCmd.Flags().Float64Var(&auditTolerance, "tolerance", 0.001, "max absolute difference still counted as MATCH")
	auditCmd.Flags().StringVar(&extractorMode, "extractor", "stub", "claim extractor (stub, llm)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "model for the llm extractor")

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 2*time.Minute, "overall audit timeout")
	auditCmd.Flags().StringVar(&userAgent, "ua", "physaudit/0.1 (+https://github.com/dexdogs/physaudit)", "HTTP User-Agent")
	auditCmd.Flags().Int64Var(&maxBytes, "max-bytes", 1<<20, "max response bytes to read")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	auditCmd.Flags().BoolVar(&respectRobots, "robots", false, "honor the oracle host's robots.txt")
	auditCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	auditCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	cfg, err := buildAuditConfig(cmd)
	if err != nil {
		return err
	}

	auditor, err := audit.NewAuditor(cfg)
	if err != nil {
		return err
	}

	session := audit.NewSession()
	report, err := auditor.AuditDocument(ctx, session, auditSector, docPath)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Reference synced from %s\n", report.Reference.SourceURL)
		fmt.Fprintf(os.Stderr, "✓ Claim extracted by %s\n", report.Claim.Extractor)
		fmt.Fprintf(os.Stderr, "✓ Session state: %s\n", session.State())
	}

	renderer := audit.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	renderer.RenderSummary(report, os.Stdout)

	return nil
}

// buildAuditConfig overlays audit flags on the loaded configuration
func buildAuditConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := loadConfig()

	cfg.HTTP.Timeout = auditTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	if noCache {
		cfg.Cache.Enabled = false
	}
	if respectRobots {
		cfg.Oracle.RespectRobots = true
	}
	cfg.Output.IncludeFooter = !noFooter

	if cmd.Flags().Changed("tolerance") {
		cfg.Verify.Tolerance = auditTolerance
	}
	if cmd.Flags().Changed("extractor") {
		cfg.Extract.Mode = extractorMode
	}
	if cmd.Flags().Changed("llm-model") {
		cfg.Extract.LLM.Model = llmModel
	}

	if cfg.Extract.Mode == "llm" {
		cfg.Extract.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Extract.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
