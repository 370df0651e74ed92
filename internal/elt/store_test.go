package elt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-elt-dashboard/internal/model"
)

func quakeRow(id string, mag float64, ts time.Time) model.Record {
	return model.Record{
		"id":       id,
		"mag":      mag,
		"depth_km": 12.5,
		"place":    "somewhere",
		"time_utc": ts,
	}
}

// --- Merge / dedup ---

func TestMerge_KeepsLastOccurrence(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()

	s.Merge([]model.Record{
		quakeRow("a", 1.0, now),
		quakeRow("b", 2.0, now),
	}, "id")

	// Re-fetch replays "a" with an updated magnitude.
	added, total := s.Merge([]model.Record{
		quakeRow("a", 3.5, now),
		quakeRow("c", 0.5, now),
	}, "id")

	assert.Equal(t, 1, added, "only c is net new")
	assert.Equal(t, 3, total)

	byID := map[string]model.Record{}
	for _, rec := range s.Rows() {
		byID[rec["id"].(string)] = rec
	}
	require.Len(t, byID, 3)
	assert.Equal(t, 3.5, byID["a"]["mag"], "latest occurrence wins")
}

func TestMerge_RefetchedRowMovesToNewPosition(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()

	s.Merge([]model.Record{quakeRow("a", 1, now), quakeRow("b", 2, now)}, "id")
	s.Merge([]model.Record{quakeRow("a", 1.1, now)}, "id")

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0]["id"])
	assert.Equal(t, "a", rows[1]["id"], "re-fetched row takes its later position")
}

func TestMerge_RowsWithoutIDAreKept(t *testing.T) {
	s := NewStore()

	added, total := s.Merge([]model.Record{
		{"mag": 1.0},
		{"mag": 2.0},
	}, "id")

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, total)
}

func TestClear_EmptiesStore(t *testing.T) {
	s := NewStore()
	s.Merge([]model.Record{quakeRow("a", 1, time.Now())}, "id")
	require.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.LastFetch().IsZero())
}

// --- Preview ---

func TestPreview_SortsDescendingByTime(t *testing.T) {
	s := NewStore()
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	s.Merge([]model.Record{
		quakeRow("old", 1, base),
		quakeRow("new", 2, base.Add(time.Hour)),
		quakeRow("mid", 3, base.Add(30*time.Minute)),
	}, "id")

	rows := s.Preview(2, "time_utc")
	require.Len(t, rows, 2)
	assert.Equal(t, "new", rows[0]["id"])
	assert.Equal(t, "mid", rows[1]["id"])
}

// --- CSV roundtrip ---

func TestWriteCSV_And_MergeCSV(t *testing.T) {
	s := NewStore()
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.Merge([]model.Record{quakeRow("q1", 4.2, ts)}, "id")

	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf, "id"))

	out := buf.String()
	header := strings.SplitN(out, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "id,"), "id column comes first, got %q", header)
	assert.Contains(t, out, "q1")
	assert.Contains(t, out, "4.2")

	// Upload the same CSV into a fresh store.
	fresh := NewStore()
	added, total, err := fresh.MergeCSV(strings.NewReader(out), "id")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, total)

	rec := fresh.Rows()[0]
	assert.Equal(t, "q1", rec["id"])
	assert.Equal(t, 4.2, rec["mag"])
}

func TestMergeCSV_InvalidCSV(t *testing.T) {
	s := NewStore()
	_, _, err := s.MergeCSV(strings.NewReader(""), "id")
	assert.Error(t, err)
}
