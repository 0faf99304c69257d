package audit

import "github.com/dexdogs/physaudit/internal/model"

// State is the audit session lifecycle position
type State string

const (
	StateEmpty           State = "EMPTY"
	StateReferenceLoaded State = "REFERENCE_LOADED"
	StateClaimLoaded     State = "CLAIM_LOADED"
	StateReady           State = "READY" // Both records present, not yet verified
	StateVerified        State = "VERIFIED"
)

// Session holds the state of one audit: the current reference record, the
// current claim record, and the verdicts once both have been compared.
//
// Sessions are explicit objects passed to each operation, never package
// globals, so a server embedding this package can run one per user. A
// session has a single writer; it is not safe for concurrent mutation.
type Session struct {
	reference *model.ReferenceRecord
	claim     *model.ClaimRecord
	verdicts  []model.Verdict
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// State derives the current lifecycle position
func (s *Session) State() State {
	switch {
	case s.verdicts != nil:
		return StateVerified
	case s.reference != nil && s.claim != nil:
		return StateReady
	case s.reference != nil:
		return StateReferenceLoaded
	case s.claim != nil:
		return StateClaimLoaded
	default:
		return StateEmpty
	}
}

// SetReference installs a freshly synced reference record. Verdicts are
// downstream of the reference, so they are cleared; the claim is not.
func (s *Session) SetReference(ref *model.ReferenceRecord) {
	s.reference = ref
	s.verdicts = nil
}

// SetClaim installs a freshly extracted claim record, clearing any
// verdicts derived from the previous claim.
func (s *Session) SetClaim(claim *model.ClaimRecord) {
	s.claim = claim
	s.verdicts = nil
}

// SetVerdicts records the verification outcome
func (s *Session) SetVerdicts(verdicts []model.Verdict) {
	s.verdicts = verdicts
}

// Reference returns the current reference record (nil when not synced)
func (s *Session) Reference() *model.ReferenceRecord { return s.reference }

// Claim returns the current claim record (nil when not extracted)
func (s *Session) Claim() *model.ClaimRecord { return s.claim }

// Verdicts returns the current verdicts (nil before verification)
func (s *Session) Verdicts() []model.Verdict { return s.verdicts }

// Reset returns the session to EMPTY
func (s *Session) Reset() {
	s.reference = nil
	s.claim = nil
	s.verdicts = nil
}
