// Package analysis implements the dashboard's two-step explainable
// walkthrough: an analysis step that summarizes the store and flags strong
// events, and a strategy step that turns the flags into a recommended
// action. Each step records its reasoning as human-readable notes.
package analysis

import (
	"fmt"
	"sort"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// Analyze computes summary statistics over the metric field and extracts
// the rows at or above the strong threshold.
func Analyze(rows []model.Record, metricField string, threshold float64) model.Analysis {
	a := model.Analysis{
		Thoughts: []string{
			"Analysis: computing summary statistics and detecting spikes.",
		},
	}

	total := len(rows)
	var sum, max float64
	for i, rec := range rows {
		v := utils.Numeric(rec[metricField])
		sum += v
		if i == 0 || v > max {
			max = v
		}
	}

	avg := 0.0
	if total > 0 {
		avg = sum / float64(total)
	}

	var strong []model.Record
	for _, rec := range rows {
		if utils.Numeric(rec[metricField]) >= threshold {
			strong = append(strong, rec)
		}
	}

	a.Summary = model.Summary{
		Rows:      total,
		AvgMag:    avg,
		MaxMag:    max,
		Strong:    len(strong),
		Threshold: threshold,
	}
	a.Strong = strong

	a.Thoughts = append(a.Thoughts,
		fmt.Sprintf("Total events in store: %d. Average %s: %.2f. Max %s: %.2f.",
			total, metricField, avg, metricField, max),
		fmt.Sprintf("Number of strong events (%s >= %g): %d.", metricField, threshold, len(strong)),
	)
	return a
}

// Recommend turns the strong-event subset into a recommendation. With no
// strong events the action is to keep monitoring; otherwise the top event
// by metric drives an alert.
func Recommend(strong []model.Record, metricField, labelField string) model.Strategy {
	if len(strong) == 0 {
		return model.Strategy{
			Thoughts: []string{"Strategy: No strong events — continue monitoring."},
			Action:   "Monitor",
		}
	}

	top := make([]model.Record, len(strong))
	copy(top, strong)
	sort.SliceStable(top, func(i, j int) bool {
		return utils.Numeric(top[i][metricField]) > utils.Numeric(top[j][metricField])
	})

	label := fmt.Sprintf("%v", top[0][labelField])
	return model.Strategy{
		Thoughts: []string{
			fmt.Sprintf("Strategy: Strong event detected at %s (%s %v). Recommend alerting regional operations.",
				label, metricField, top[0][metricField]),
		},
		Action: fmt.Sprintf("Alert for %s", label),
	}
}

// MetricField returns the analysis metric for a source kind.
func MetricField(kind model.SourceKind) (metric, label string) {
	switch kind {
	case model.SourceCovid:
		return "cases_per_100k", "country"
	case model.SourceQuake:
		return "mag", "place"
	default:
		return "value", "id"
	}
}
