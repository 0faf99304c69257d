package extract

import (
	"context"
	"time"

	"github.com/dexdogs/physaudit/internal/model"
)

// stubSleepFunc is the sleep used to simulate extraction latency
// (injectable for tests)
var stubSleepFunc = sleepCtx

// StubExtractor stands in for a real document-understanding service. It
// returns a deterministic claim record after a visible processing delay,
// the way the demo simulated its managed extraction backend.
type StubExtractor struct {
	latency time.Duration
}

// NewStubExtractor creates a stub extractor with the given simulated latency
func NewStubExtractor(latency time.Duration) *StubExtractor {
	return &StubExtractor{latency: latency}
}

// Name identifies the extractor
func (e *StubExtractor) Name() string { return "stub" }

// Extract returns the deterministic demo claim record
func (e *StubExtractor) Extract(ctx context.Context, doc Document) (*model.ClaimRecord, error) {
	if e.latency > 0 {
		if err := stubSleepFunc(ctx, e.latency); err != nil {
			return nil, err
		}
	}

	record := &model.ClaimRecord{
		ProjectID:   "VCS-2491",
		Methodology: "ACM0001",
		Document:    doc.Name,
		Extractor:   e.Name(),
		ExtractedAt: time.Now().UTC(),
		Values: map[string]float64{
			"extracted_k_value": 0.05,
			"gas_density":       0.717,
		},
	}

	if err := validateRecord(record, doc); err != nil {
		return nil, err
	}
	return record, nil
}

// sleepCtx sleeps for d or until the context is cancelled
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
