// Package viz renders the dashboard charts as PNG images using go-chart.
package viz

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// ErrNoData signals that the store has nothing to draw. Handlers turn it
// into an informational payload rather than a failure.
var ErrNoData = errors.New("no data to visualize")

const (
	chartWidth  = 900
	chartHeight = 420
)

// TimeSeriesPNG renders event counts over time in fixed-size bins
// (15 minutes on the dashboard).
func TimeSeriesPNG(rows []model.Record, timeField string, bin time.Duration) ([]byte, error) {
	if bin <= 0 {
		bin = 15 * time.Minute
	}

	counts := make(map[time.Time]float64)
	for _, rec := range rows {
		ts, ok := rec[timeField].(time.Time)
		if !ok {
			continue
		}
		counts[ts.Truncate(bin)]++
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	bins := make([]time.Time, 0, len(counts))
	for t := range counts {
		bins = append(bins, t)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Before(bins[j]) })

	times := make([]time.Time, 0, len(bins))
	ys := make([]float64, 0, len(bins))
	for _, t := range bins {
		times = append(times, t)
		ys = append(ys, counts[t])
	}

	// Pad to at least two X values for go-chart
	if len(times) == 1 {
		times = append(times, times[0].Add(bin))
		ys = append(ys, ys[0])
	}

	// Pin the y-range; a flat series would otherwise produce a zero-delta
	// range that go-chart rejects.
	maxY := 0.0
	for _, y := range ys {
		if y > maxY {
			maxY = y
		}
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("Event count over time (%s bins)", bin),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28},
		},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY + 1},
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "events", XValues: times, YValues: ys},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render time series: %w", err)
	}
	return buf.Bytes(), nil
}

// HistogramPNG renders the distribution of a numeric field over nbins
// equal-width bins.
func HistogramPNG(rows []model.Record, field string, nbins int) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	if nbins <= 0 {
		nbins = 20
	}

	values := make([]float64, 0, len(rows))
	for _, rec := range rows {
		values = append(values, utils.Numeric(rec[field]))
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(nbins)
	if width <= 0 {
		width = 1
		nbins = 1
	}

	counts := make([]float64, nbins)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		counts[i]++
	}

	bars := make([]chart.Value, 0, nbins)
	for i, c := range counts {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.1f", lo+width*float64(i)),
			Value: c,
		})
	}

	ch := chart.BarChart{
		Title:    fmt.Sprintf("%s distribution", field),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartWidth / (nbins + 4),
		Background: chart.Style{
			Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// BucketBarPNG renders counts per bucket label. labelOrder fixes the bar
// order for known bucket sets; unknown labels go last alphabetically.
func BucketBarPNG(rows []model.Record, bucketField string, labelOrder []string) ([]byte, error) {
	counts := bucketCounts(rows, bucketField)
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	labels := orderedLabels(counts, labelOrder)
	bars := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		bars = append(bars, chart.Value{Label: label, Value: counts[label]})
	}

	ch := chart.BarChart{
		Title:    fmt.Sprintf("%s counts", bucketField),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bucket bars: %w", err)
	}
	return buf.Bytes(), nil
}

// PiePNG renders the share of each bucket label.
func PiePNG(rows []model.Record, bucketField string) ([]byte, error) {
	counts := bucketCounts(rows, bucketField)
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	labels := orderedLabels(counts, nil)
	values := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		values = append(values, chart.Value{Label: label, Value: counts[label]})
	}

	ch := chart.PieChart{
		Title:  fmt.Sprintf("%s distribution", bucketField),
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

func bucketCounts(rows []model.Record, bucketField string) map[string]float64 {
	counts := make(map[string]float64)
	for _, rec := range rows {
		label, ok := rec[bucketField].(string)
		if !ok || label == "" {
			continue
		}
		counts[label]++
	}
	return counts
}

func orderedLabels(counts map[string]float64, labelOrder []string) []string {
	labels := make([]string, 0, len(counts))
	seen := make(map[string]bool)
	for _, label := range labelOrder {
		if _, ok := counts[label]; ok {
			labels = append(labels, label)
			seen[label] = true
		}
	}

	rest := make([]string, 0, len(counts))
	for label := range counts {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}
