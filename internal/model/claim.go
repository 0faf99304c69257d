package model

import "time"

// ClaimRecord is the structured claim produced from a submitted project
// design document. Produced once per document; never defaulted into
// existence when extraction fails.
type ClaimRecord struct {
	ProjectID   string    `json:"project_id"`            // Registry project identifier (e.g., "VCS-2491")
	Methodology string    `json:"methodology,omitempty"` // Methodology code (e.g., "ACM0001")
	Document    string    `json:"document"`              // Source document name
	Extractor   string    `json:"extractor"`             // Which extractor produced the record
	ExtractedAt time.Time `json:"extracted_at"`

	// Values holds the numeric fields under audit. At least one audited
	// field must be present; absence is an extraction error, not a zero.
	Values map[string]float64 `json:"values"`
}

// Value returns the named extracted value and whether it exists
func (c *ClaimRecord) Value(name string) (float64, bool) {
	v, ok := c.Values[name]
	return v, ok
}
