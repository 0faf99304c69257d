package model

// Outcome classifies a single field comparison
type Outcome string

const (
	OutcomeMatch    Outcome = "MATCH"
	OutcomeMismatch Outcome = "MISMATCH"
)

// Verdict is the result of comparing one claimed value against its
// reference constant. Derived, never persisted.
type Verdict struct {
	Outcome        Outcome `json:"outcome"`
	ClaimField     string  `json:"claim_field"`     // Field name in the claim record
	ReferenceField string  `json:"reference_field"` // Field name in the reference record
	ClaimedValue   float64 `json:"claimed_value"`
	ReferenceValue float64 `json:"reference_value"`
	Difference     float64 `json:"difference"` // |claimed - reference|
	Tolerance      float64 `json:"tolerance"`  // Tolerance used for this comparison
}

// Passed reports whether the verdict is a MATCH
func (v Verdict) Passed() bool {
	return v.Outcome == OutcomeMatch
}
