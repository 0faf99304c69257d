package model

import "time"

// Report is the complete audit record for one project design document:
// the reference constants, the extracted claim, and the verdicts.
type Report struct {
	Sector    Sector    `json:"sector"`
	AuditedAt time.Time `json:"audited_at"`

	Reference *ReferenceRecord `json:"reference"`
	Claim     *ClaimRecord     `json:"claim"`
	Verdicts  []Verdict        `json:"verdicts"`
}

// Passed reports whether every verdict in the report is a MATCH.
// A report with no verdicts did not pass.
func (r *Report) Passed() bool {
	if len(r.Verdicts) == 0 {
		return false
	}
	for _, v := range r.Verdicts {
		if !v.Passed() {
			return false
		}
	}
	return true
}
