// Package verify implements the comparison engine: claimed values against
// reference constants under an explicit numeric tolerance.
//
// Policy: |claimed - reference| <= tolerance is a MATCH. The tolerance is
// always explicit; bare float equality is not offered because it turns
// representation noise into false mismatches. Callers who want exactness
// pass tolerance 0.
package verify

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dexdogs/physaudit/internal/model"
)

// DefaultTolerance is the maximum absolute difference still counted as a
// MATCH when the caller does not choose one.
const DefaultTolerance = 0.001

// Precondition errors: a verdict may only be computed when both records
// exist. Never a vacuous MATCH.
var (
	ErrNilClaim     = errors.New("no claim record: extract a document first")
	ErrNilReference = errors.New("no reference record: sync the oracle first")
)

// MissingFieldError indicates a mapped field is absent from one side of
// the comparison. Absence is never treated as zero or auto-pass.
type MissingFieldError struct {
	Side  string // "claim" or "reference"
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record has no field %q", e.Side, e.Field)
}

// Verifier compares claim records against reference records
type Verifier struct {
	tolerance float64
	fieldMap  map[string]string // claim field -> reference field
}

// NewVerifier creates a verifier. A nil or empty field map uses the
// default mapping; a negative tolerance is a usage error.
func NewVerifier(tolerance float64, fieldMap map[string]string) (*Verifier, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0, got %v", tolerance)
	}
	if len(fieldMap) == 0 {
		fieldMap = model.DefaultFieldMap()
	}
	return &Verifier{tolerance: tolerance, fieldMap: fieldMap}, nil
}

// Verify compares every mapped field and returns one verdict per mapping,
// ordered by claim field name. It fails fast when either record is nil or
// a mapped field is absent; partial verdicts are never returned.
func (v *Verifier) Verify(claim *model.ClaimRecord, reference *model.ReferenceRecord) ([]model.Verdict, error) {
	if claim == nil {
		return nil, ErrNilClaim
	}
	if reference == nil {
		return nil, ErrNilReference
	}

	claimFields := make([]string, 0, len(v.fieldMap))
	for cf := range v.fieldMap {
		claimFields = append(claimFields, cf)
	}
	sort.Strings(claimFields)

	verdicts := make([]model.Verdict, 0, len(claimFields))
	for _, claimField := range claimFields {
		refField := v.fieldMap[claimField]

		claimed, ok := claim.Value(claimField)
		if !ok {
			return nil, &MissingFieldError{Side: "claim", Field: claimField}
		}
		expected, ok := reference.Constant(refField)
		if !ok {
			return nil, &MissingFieldError{Side: "reference", Field: refField}
		}

		verdicts = append(verdicts, compare(claimField, refField, claimed, expected, v.tolerance))
	}

	return verdicts, nil
}

// compare produces the verdict for a single field pair
func compare(claimField, refField string, claimed, expected, tolerance float64) model.Verdict {
	diff := math.Abs(claimed - expected)

	outcome := model.OutcomeMismatch
	if diff <= tolerance {
		outcome = model.OutcomeMatch
	}

	return model.Verdict{
		Outcome:        outcome,
		ClaimField:     claimField,
		ReferenceField: refField,
		ClaimedValue:   claimed,
		ReferenceValue: expected,
		Difference:     diff,
		Tolerance:      tolerance,
	}
}
