package model

import (
	"fmt"
	"sort"
	"strings"
)

// Sector identifies a CDM sectoral scope
type Sector struct {
	ID   string `json:"id"`   // Two-digit, zero-padded scope code
	Name string `json:"name"` // Official scope name
	Slug string `json:"slug"` // Short token used in reference document filenames
}

// sectors is the fixed registry of CDM sectoral scopes.
// Reference data only; never mutated at runtime.
var sectors = map[string]Sector{
	"01": {ID: "01", Name: "Energy industries (renewable/non-renewable sources)", Slug: "energy"},
	"02": {ID: "02", Name: "Energy distribution", Slug: "distribution"},
	"03": {ID: "03", Name: "Energy demand", Slug: "demand"},
	"04": {ID: "04", Name: "Manufacturing industries", Slug: "manufacturing"},
	"05": {ID: "05", Name: "Chemical industry", Slug: "chemical"},
	"06": {ID: "06", Name: "Construction", Slug: "construction"},
	"07": {ID: "07", Name: "Transport", Slug: "transport"},
	"08": {ID: "08", Name: "Mining/mineral production", Slug: "mining"},
	"09": {ID: "09", Name: "Metal production", Slug: "metal"},
	"10": {ID: "10", Name: "Fugitive emissions from fuels (solid, oil and gas)", Slug: "fugitive"},
	"11": {ID: "11", Name: "Fugitive emissions from production and consumption of halocarbons and SF6", Slug: "halocarbons"},
	"12": {ID: "12", Name: "Solvents use", Slug: "solvents"},
	"13": {ID: "13", Name: "Waste handling and disposal", Slug: "waste"},
	"14": {ID: "14", Name: "Afforestation and reforestation", Slug: "forestry"},
	"15": {ID: "15", Name: "Agriculture", Slug: "agriculture"},
}

// ErrUnknownSector indicates a sector ID outside the registry
type ErrUnknownSector struct {
	ID string
}

func (e *ErrUnknownSector) Error() string {
	return fmt.Sprintf("unknown sector %q (valid: 01-15)", e.ID)
}

// LookupSector returns the sector for the given ID.
// IDs are normalized to two digits, so "7" and "07" are equivalent.
func LookupSector(id string) (Sector, error) {
	norm := NormalizeSectorID(id)
	s, ok := sectors[norm]
	if !ok {
		return Sector{}, &ErrUnknownSector{ID: id}
	}
	return s, nil
}

// NormalizeSectorID zero-pads single-digit sector IDs
func NormalizeSectorID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) == 1 {
		return "0" + id
	}
	return id
}

// Sectors returns the registry sorted by ID
func Sectors() []Sector {
	out := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
