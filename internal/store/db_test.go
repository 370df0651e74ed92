package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB initializes an in-memory database for a test.
func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(":memory:"))
	t.Cleanup(func() { CloseDB() })
}

func TestSaveFetch_And_ListHistory(t *testing.T) {
	openTestDB(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, SaveFetch(FetchEntry{
			SessionID:   "s1",
			SourceKind:  "quake",
			SourceURL:   "http://example.com/feed",
			RowsFetched: 10 + i,
			StoreSize:   10 + i,
			FetchedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := ListFetchHistory(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 12, entries[0].RowsFetched, "newest entry first")
	assert.Equal(t, 11, entries[1].RowsFetched)
}

func TestSnapshots_SaveListDownload(t *testing.T) {
	openTestDB(t)

	csvData := []byte("id,mag\nq1,4.2\n")
	require.NoError(t, SaveSnapshot("snap-1", "s1", csvData, 1))
	require.NoError(t, SaveSnapshot("snap-2", "s1", csvData, 1))
	require.NoError(t, SaveSnapshot("snap-3", "other", csvData, 1))

	snaps, err := ListSnapshots("s1")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	data, err := GetSnapshotCSV("snap-1")
	require.NoError(t, err)
	assert.Equal(t, csvData, data)

	_, err = GetSnapshotCSV("missing")
	assert.Error(t, err)
}
