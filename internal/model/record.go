package model

import "time"

// Record is a schema-agnostic row from any feed.
type Record map[string]interface{}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SourceKind identifies which dashboard feed a session is bound to.
type SourceKind string

const (
	SourceQuake SourceKind = "quake"
	SourceCSV   SourceKind = "csv"
	SourceCovid SourceKind = "covid"
)

// Valid reports whether the kind is one of the known feeds.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceQuake, SourceCSV, SourceCovid:
		return true
	}
	return false
}

// SourceSpec is the configuration of a session's data source.
type SourceSpec struct {
	Kind    SourceKind `json:"kind"` // quake, csv, covid
	URL     string     `json:"url"`
	Window  string     `json:"window,omitempty"`  // quake only: "hour" or "day"
	IDField string     `json:"idField,omitempty"` // dedup key, default "id"
	// covid only: column holding population for per-capita rates
	PopulationField string `json:"populationField,omitempty"`
}

// DedupField returns the configured dedup key, defaulting to "id".
func (s SourceSpec) DedupField() string {
	if s.IDField != "" {
		return s.IDField
	}
	return "id"
}

// PopulationKey returns the configured population column, defaulting to
// "population".
func (s SourceSpec) PopulationKey() string {
	if s.PopulationField != "" {
		return s.PopulationField
	}
	return "population"
}

// FetchResult summarizes one fetch-and-merge step.
type FetchResult struct {
	Fetched   int       `json:"fetched"`
	Added     int       `json:"added"`
	StoreSize int       `json:"store_size"`
	FetchedAt time.Time `json:"fetched_at"`
	SourceURL string    `json:"source_url"`
}

// Range is the observed min and max of a numeric column.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TransformResult summarizes one derive-columns step.
type TransformResult struct {
	Rows           int              `json:"rows"`
	DerivedColumns []string         `json:"derived_columns"`
	MissingLoc     int              `json:"missing_loc,omitempty"`
	NumericRanges  map[string]Range `json:"numeric_ranges,omitempty"`
	Note           string           `json:"note,omitempty"`
}
