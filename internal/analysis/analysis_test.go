package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-elt-dashboard/internal/model"
)

func quakes() []model.Record {
	return []model.Record{
		{"id": "a", "mag": 1.0, "place": "Alpha Ridge"},
		{"id": "b", "mag": 5.5, "place": "Beta Trench"},
		{"id": "c", "mag": 6.2, "place": "Gamma Fault"},
		{"id": "d", "mag": 3.3, "place": "Delta Basin"},
	}
}

func TestAnalyze_SummaryAndStrong(t *testing.T) {
	a := Analyze(quakes(), "mag", 5.0)

	assert.Equal(t, 4, a.Summary.Rows)
	assert.InDelta(t, 4.0, a.Summary.AvgMag, 1e-9)
	assert.InDelta(t, 6.2, a.Summary.MaxMag, 1e-9)
	assert.Equal(t, 2, a.Summary.Strong)
	require.Len(t, a.Strong, 2)
	assert.NotEmpty(t, a.Thoughts)
}

func TestAnalyze_AllNegativeMagnitudes(t *testing.T) {
	rows := []model.Record{
		{"id": "a", "mag": -0.8, "place": "Quarry Blast"},
		{"id": "b", "mag": -0.2, "place": "Shale Ridge"},
	}
	a := Analyze(rows, "mag", 5.0)

	assert.InDelta(t, -0.2, a.Summary.MaxMag, 1e-9, "max tracks the true maximum, not zero")
	assert.InDelta(t, -0.5, a.Summary.AvgMag, 1e-9)
	assert.Empty(t, a.Strong)
}

func TestAnalyze_EmptyStore(t *testing.T) {
	a := Analyze(nil, "mag", 5.0)
	assert.Equal(t, 0, a.Summary.Rows)
	assert.Equal(t, 0.0, a.Summary.AvgMag)
	assert.Empty(t, a.Strong)
}

func TestRecommend_MonitorWhenNoStrongEvents(t *testing.T) {
	s := Recommend(nil, "mag", "place")
	assert.Equal(t, "Monitor", s.Action)
	require.Len(t, s.Thoughts, 1)
	assert.Contains(t, s.Thoughts[0], "continue monitoring")
}

func TestRecommend_AlertsForTopEvent(t *testing.T) {
	a := Analyze(quakes(), "mag", 5.0)
	s := Recommend(a.Strong, "mag", "place")

	assert.Equal(t, "Alert for Gamma Fault", s.Action, "top event by magnitude drives the alert")
	assert.Contains(t, s.Thoughts[0], "Gamma Fault")
}

func TestMetricField_PerKind(t *testing.T) {
	m, l := MetricField(model.SourceQuake)
	assert.Equal(t, "mag", m)
	assert.Equal(t, "place", l)

	m, l = MetricField(model.SourceCovid)
	assert.Equal(t, "cases_per_100k", m)
	assert.Equal(t, "country", l)
}
