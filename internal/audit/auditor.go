package audit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dexdogs/physaudit/internal/cache"
	"github.com/dexdogs/physaudit/internal/extract"
	"github.com/dexdogs/physaudit/internal/model"
	"github.com/dexdogs/physaudit/internal/oracle"
	"github.com/dexdogs/physaudit/internal/util"
	"github.com/dexdogs/physaudit/internal/verify"
	"github.com/dexdogs/physaudit/internal/worker"
)

// Auditor wires the fetcher, extractor, and verifier into the complete
// audit flow for one document.
type Auditor struct {
	fetcher   *oracle.Fetcher
	extractor extract.Extractor
	verifier  *verify.Verifier
	config    *model.Config
}

// NewAuditor builds an auditor from configuration
func NewAuditor(cfg *model.Config) (*Auditor, error) {
	var opts []oracle.Option

	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
		opts = append(opts, oracle.WithCache(store, cfg.Cache.MemoryTTL))
	}

	if cfg.Oracle.RespectRobots {
		opts = append(opts, oracle.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)))
	}

	if cfg.Concurrency.OracleRPS > 0 {
		opts = append(opts, oracle.WithLimiter(worker.NewLimiter(cfg.Concurrency.OracleRPS, cfg.Concurrency.Burst)))
	}

	extractor, err := extract.New(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	verifier, err := verify.NewVerifier(cfg.Verify.Tolerance, cfg.Verify.FieldMap)
	if err != nil {
		return nil, fmt.Errorf("create verifier: %w", err)
	}

	return &Auditor{
		fetcher:   oracle.NewFetcher(cfg.Oracle, cfg.HTTP, opts...),
		extractor: extractor,
		verifier:  verifier,
		config:    cfg,
	}, nil
}

// Fetcher exposes the oracle fetcher for standalone sync operations
func (a *Auditor) Fetcher() *oracle.Fetcher { return a.fetcher }

// AuditDocument runs the full flow for one document: sync the reference,
// extract the claim, verify, and assemble the report. Each step updates
// the session; a failed step leaves upstream session state intact.
func (a *Auditor) AuditDocument(ctx context.Context, session *Session, sectorID, documentPath string) (*model.Report, error) {
	sector, err := model.LookupSector(sectorID)
	if err != nil {
		return nil, err
	}

	a.progress("Syncing reference for sector %s...", sector.ID)
	reference, err := a.fetcher.Fetch(ctx, sector.ID)
	if err != nil {
		return nil, fmt.Errorf("sync reference: %w", err)
	}
	session.SetReference(reference)
	if reference.DeprecatedSchema {
		fmt.Fprintf(os.Stderr, "Warning: sector %s reference document uses the deprecated physics_constraints schema\n", sector.ID)
	}

	doc, err := extract.OpenDocument(documentPath)
	if err != nil {
		return nil, err
	}

	a.progress("Extracting claim from %s via %s...", doc.Name, a.extractor.Name())
	claim, err := a.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extract claim: %w", err)
	}
	session.SetClaim(claim)

	verdicts, err := a.verifier.Verify(session.Claim(), session.Reference())
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	session.SetVerdicts(verdicts)

	return &model.Report{
		Sector:    sector,
		AuditedAt: time.Now().UTC(),
		Reference: session.Reference(),
		Claim:     session.Claim(),
		Verdicts:  session.Verdicts(),
	}, nil
}

// progress writes a verbose-mode progress line to stderr
func (a *Auditor) progress(format string, args ...interface{}) {
	if a.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
