package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dexdogs/physaudit/internal/model"
)

// Renderer writes audit reports as JSON, Markdown, and a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown audit sheet
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Physics Audit — %s\n\n", report.Claim.ProjectID)
	fmt.Fprintf(&b, "- **Sector**: %s — %s\n", report.Sector.ID, report.Sector.Name)
	fmt.Fprintf(&b, "- **Document**: %s\n", report.Claim.Document)
	fmt.Fprintf(&b, "- **Methodology**: %s\n", report.Claim.Methodology)
	fmt.Fprintf(&b, "- **Audited**: %s\n\n", report.AuditedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Reference (%s)\n\n", report.Reference.SourceURL)
	if report.Reference.DeprecatedSchema {
		b.WriteString("> Document uses the deprecated `physics_constraints` schema.\n\n")
	}
	b.WriteString("| Constant | Value |\n|---|---|\n")
	for _, name := range sortedKeys(report.Reference.Constants) {
		fmt.Fprintf(&b, "| %s | %g |\n", name, report.Reference.Constants[name])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Claim (extracted by %s)\n\n", report.Claim.Extractor)
	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, name := range sortedKeys(report.Claim.Values) {
		fmt.Fprintf(&b, "| %s | %g |\n", name, report.Claim.Values[name])
	}
	b.WriteString("\n")

	b.WriteString("## Verdicts\n\n")
	b.WriteString("| Claim field | Reference field | Claimed | Reference | Difference | Tolerance | Outcome |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, v := range report.Verdicts {
		fmt.Fprintf(&b, "| %s | %s | %g | %g | %g | %g | %s |\n",
			v.ClaimField, v.ReferenceField, v.ClaimedValue, v.ReferenceValue,
			v.Difference, v.Tolerance, v.Outcome)
	}
	b.WriteString("\n")

	if report.Passed() {
		b.WriteString("**Result: PASS** — claimed values are within tolerance of the published standard.\n")
	} else {
		b.WriteString("**Result: FAIL** — at least one claimed value violates the published standard. Do not issue credits without review.\n")
	}

	if r.includeFooter {
		b.WriteString("\n---\n_Generated by physaudit. The verdict compares numbers; it does not certify the project._\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the pass/fail banner with per-field details
func (r *Renderer) RenderSummary(report *model.Report, w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Physics Audit — sector %s (%s)\n", report.Sector.ID, report.Sector.Name)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Project:      %s\n", report.Claim.ProjectID)
	fmt.Fprintf(w, "  Methodology:  %s\n", report.Claim.Methodology)
	fmt.Fprintf(w, "  Document:     %s\n", report.Claim.Document)
	fmt.Fprintf(w, "\n")

	for _, v := range report.Verdicts {
		mark := "✓"
		if !v.Passed() {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %s: claimed %g, reference %g (diff %g, tolerance %g) → %s\n",
			mark, v.ClaimField, v.ClaimedValue, v.ReferenceValue, v.Difference, v.Tolerance, v.Outcome)
	}

	fmt.Fprintf(w, "\n")
	if report.Passed() {
		fmt.Fprintf(w, "  PASS: claimed values are physically consistent with the standard.\n")
	} else {
		fmt.Fprintf(w, "  FAIL: physics violation detected. Do not issue credits without review.\n")
	}
	fmt.Fprintf(w, "\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
