package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dexdogs/physaudit/internal/cache"
	"github.com/dexdogs/physaudit/internal/model"
	"github.com/dexdogs/physaudit/internal/util"
	"github.com/dexdogs/physaudit/internal/worker"
)

// legacyDecayKey is the decay-constant name used by the deprecated
// physics_constraints schema; it is lifted to the canonical name on read.
const legacyDecayKey = "decay_k_value"

// canonicalDecayKey is the decay-constant name in the canonical schema
const canonicalDecayKey = "methane_decay_k"

// Fetcher retrieves sector reference documents from the oracle repository.
// One attempt per invocation; retry policy belongs to the caller.
type Fetcher struct {
	httpClient *http.Client
	oracle     model.OracleConfig
	userAgent  string
	maxBytes   int64

	store    cache.Cache // nil disables caching
	cacheTTL time.Duration

	robots  *util.RobotsChecker // nil disables the politeness gate
	limiter *worker.Limiter     // nil disables rate limiting

	// nowFunc supplies the cache-busting timestamp (injectable for tests)
	nowFunc func() time.Time
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithCache enables snapshot caching keyed by sector
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.store = store
		f.cacheTTL = ttl
	}
}

// WithRobots enables the robots.txt politeness gate
func WithRobots(checker *util.RobotsChecker) Option {
	return func(f *Fetcher) {
		f.robots = checker
	}
}

// WithLimiter shares a per-host rate limiter with other fetch paths
func WithLimiter(limiter *worker.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

// NewFetcher creates a Fetcher from oracle and HTTP configuration
func NewFetcher(oracleCfg model.OracleConfig, httpCfg model.HTTPConfig, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		oracle:    oracleCfg,
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		nowFunc:   time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// DocumentURL builds the reference document URL for a sector, without the
// cache-busting parameter.
func (f *Fetcher) DocumentURL(sector model.Sector) string {
	return fmt.Sprintf("%s/%s/%s/%s/sector_%s_%s.yaml",
		f.oracle.BaseURL, f.oracle.Owner, f.oracle.Repo, f.oracle.Branch,
		sector.ID, sector.Slug)
}

// Fetch retrieves and parses the reference document for a sector.
// Unknown sectors are rejected before any network activity. Failures are
// typed: *NotFoundError, *NetworkError, or *ParseError.
func (f *Fetcher) Fetch(ctx context.Context, sectorID string) (*model.ReferenceRecord, error) {
	sector, err := model.LookupSector(sectorID)
	if err != nil {
		return nil, err
	}

	if f.store != nil {
		if data, found := f.store.Get(cache.SectorKey(sector.ID)); found {
			var record model.ReferenceRecord
			if err := json.Unmarshal(data, &record); err == nil {
				return &record, nil
			}
			// Corrupt snapshot: drop it and fall through to a live fetch
			_ = f.store.Delete(cache.SectorKey(sector.ID))
		}
	}

	record, err := f.fetchLive(ctx, sector)
	if err != nil {
		return nil, err
	}

	if f.store != nil {
		if data, err := json.Marshal(record); err == nil {
			_ = f.store.Set(cache.SectorKey(sector.ID), data, f.cacheTTL)
		}
	}

	return record, nil
}

// fetchLive performs the single HTTP attempt
func (f *Fetcher) fetchLive(ctx context.Context, sector model.Sector) (*model.ReferenceRecord, error) {
	docURL := f.DocumentURL(sector)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, docURL); err != nil {
			return nil, &NetworkError{URL: docURL, Err: err}
		}
	}

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, docURL)
		if err != nil {
			return nil, &NetworkError{URL: docURL, Err: err}
		}
		if !allowed {
			return nil, &NetworkError{URL: docURL, Err: errors.New("robots.txt disallows fetching this path")}
		}
	}

	// Uniquifying timestamp defeats intermediate caches so every sync
	// observes the latest published document.
	busted := fmt.Sprintf("%s?t=%d", docURL, f.nowFunc().Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, busted, nil)
	if err != nil {
		return nil, &NetworkError{URL: docURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain;q=0.9, */*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: docURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, &NotFoundError{SectorID: sector.ID, URL: docURL}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &NetworkError{URL: docURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &NetworkError{URL: docURL, Err: fmt.Errorf("read body: %w", err)}
	}

	record, err := parseReference(body, docURL)
	if err != nil {
		return nil, err
	}

	record.SectorID = sector.ID
	record.SourceURL = docURL
	record.FetchedAt = time.Now().UTC()
	record.FetchMeta = meta

	return record, nil
}

// referenceDoc is the on-the-wire shape of a reference document. The
// canonical schema nests constants under physics_standards; the legacy
// schema under physics_constraints.methane_generation is read for
// migration only.
type referenceDoc struct {
	Sector             string             `yaml:"sector"`
	Name               string             `yaml:"name"`
	PhysicsStandards   map[string]float64 `yaml:"physics_standards"`
	PhysicsConstraints struct {
		MethaneGeneration map[string]float64 `yaml:"methane_generation"`
	} `yaml:"physics_constraints"`
}

// parseReference decodes a YAML body into a ReferenceRecord.
// A body with neither constants mapping is a ParseError, never an empty
// success.
func parseReference(body []byte, docURL string) (*model.ReferenceRecord, error) {
	var doc referenceDoc
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{URL: docURL, Err: err}
	}

	record := &model.ReferenceRecord{Name: doc.Name}

	switch {
	case len(doc.PhysicsStandards) > 0:
		record.Constants = doc.PhysicsStandards

	case len(doc.PhysicsConstraints.MethaneGeneration) > 0:
		record.DeprecatedSchema = true
		record.Constants = make(map[string]float64, len(doc.PhysicsConstraints.MethaneGeneration))
		for k, v := range doc.PhysicsConstraints.MethaneGeneration {
			if k == legacyDecayKey {
				k = canonicalDecayKey
			}
			record.Constants[k] = v
		}

	default:
		return nil, &ParseError{URL: docURL, Err: errors.New("no physics_standards mapping in document")}
	}

	return record, nil
}

// Invalidate drops the cached snapshot for a sector, forcing the next
// Fetch to hit the oracle.
func (f *Fetcher) Invalidate(sectorID string) {
	if f.store == nil {
		return
	}
	_ = f.store.Delete(cache.SectorKey(model.NormalizeSectorID(sectorID)))
}
