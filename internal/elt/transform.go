package elt

import (
	"fmt"
	"time"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// Fixed bin edges matching the dashboard's magnitude and depth buckets.
var (
	MagEdges  = []float64{-1, 1, 2, 3, 4, 5, 10}
	MagLabels = []string{"<1", "1-2", "2-3", "3-4", "4-5", ">=5"}

	DepthEdges  = []float64{-1, 10, 50, 200, 1000}
	DepthLabels = []string{"shallow", "intermediate", "deep", "very_deep"}
)

// Bucket maps v into fixed (lo, hi] bins described by edges, returning the
// matching label. Values outside every bin map to "".
func Bucket(v float64, edges []float64, labels []string) string {
	for i := 0; i+1 < len(edges) && i < len(labels); i++ {
		if v > edges[i] && v <= edges[i+1] {
			return labels[i]
		}
	}
	return ""
}

// Transform derives the feature columns for the session's source,
// mutating rows in place. An empty store is not an error: the result
// carries an informational note and no work is done.
func Transform(store *Store, spec model.SourceSpec) (model.TransformResult, error) {
	if store.Len() == 0 {
		return model.TransformResult{Note: "Store is empty. Fetch events first."}, nil
	}

	var res model.TransformResult
	switch spec.Kind {
	case model.SourceQuake:
		store.Update(func(rows []model.Record) []model.Record {
			res = transformQuakes(rows)
			return rows
		})
	case model.SourceCovid:
		store.Update(func(rows []model.Record) []model.Record {
			res = transformCovid(rows, spec.PopulationKey())
			return rows
		})
	case model.SourceCSV:
		store.Update(func(rows []model.Record) []model.Record {
			res = transformCSV(rows)
			return rows
		})
	default:
		return res, fmt.Errorf("unknown source kind: %s", spec.Kind)
	}

	return res, nil
}

// transformQuakes adds hour-of-day and the magnitude/depth buckets, and
// counts missing coordinate entries as a quality metric.
func transformQuakes(rows []model.Record) model.TransformResult {
	missingLoc := 0
	for _, rec := range rows {
		if ts, ok := rec["time_utc"].(time.Time); ok {
			rec["hour_utc"] = ts.UTC().Hour()
		}
		rec["mag_bucket"] = Bucket(utils.Numeric(rec["mag"]), MagEdges, MagLabels)
		rec["depth_bucket"] = Bucket(utils.Numeric(rec["depth_km"]), DepthEdges, DepthLabels)

		if rec["lat"] == nil {
			missingLoc++
		}
		if rec["lon"] == nil {
			missingLoc++
		}
	}
	return model.TransformResult{
		Rows:           len(rows),
		DerivedColumns: []string{"hour_utc", "mag_bucket", "depth_bucket"},
		MissingLoc:     missingLoc,
	}
}

// transformCovid adds per-100k rates where a positive population exists.
func transformCovid(rows []model.Record, popField string) model.TransformResult {
	for _, rec := range rows {
		pop := utils.Numeric(rec[popField])
		if pop <= 0 {
			continue
		}
		rec["cases_per_100k"] = utils.Numeric(rec["cases"]) / pop * 100000
		rec["deaths_per_100k"] = utils.Numeric(rec["deaths"]) / pop * 100000
	}
	return model.TransformResult{
		Rows:           len(rows),
		DerivedColumns: []string{"cases_per_100k", "deaths_per_100k"},
	}
}

// transformCSV adds per-row field and numeric-cell counts; generic uploads
// have no fixed schema, so the quality metrics are the observed min/max of
// every numeric column.
func transformCSV(rows []model.Record) model.TransformResult {
	derived := map[string]bool{"field_count": true, "numeric_count": true}
	ranges := make(map[string]model.Range)
	for _, rec := range rows {
		fields, numeric := 0, 0
		for k, v := range rec {
			if derived[k] {
				continue
			}
			fields++
			if !utils.IsNumeric(v) {
				continue
			}
			numeric++
			f := utils.Numeric(v)
			r, ok := ranges[k]
			if !ok {
				r = model.Range{Min: f, Max: f}
			}
			if f < r.Min {
				r.Min = f
			}
			if f > r.Max {
				r.Max = f
			}
			ranges[k] = r
		}
		rec["field_count"] = fields
		rec["numeric_count"] = numeric
	}
	return model.TransformResult{
		Rows:           len(rows),
		DerivedColumns: []string{"field_count", "numeric_count"},
		NumericRanges:  ranges,
	}
}
