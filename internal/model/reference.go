package model

import "time"

// ReferenceRecord is a sector's published physical constants, as fetched
// from the oracle repository. Lifetime is one fetch; the oracle layer may
// cache serialized copies keyed by sector.
type ReferenceRecord struct {
	SectorID  string    `json:"sector_id"`
	Name      string    `json:"name,omitempty"` // Document's own name field, if present
	SourceURL string    `json:"source_url"`
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta"`

	// Constants holds the audited physical constants flattened from the
	// canonical physics_standards mapping.
	Constants map[string]float64 `json:"constants"`

	// DeprecatedSchema is set when the document used the legacy
	// physics_constraints.methane_generation key path.
	DeprecatedSchema bool `json:"deprecated_schema,omitempty"`
}

// FetchMeta contains HTTP metadata from fetching the reference document
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// Constant returns the named constant and whether it exists
func (r *ReferenceRecord) Constant(name string) (float64, bool) {
	v, ok := r.Constants[name]
	return v, ok
}
