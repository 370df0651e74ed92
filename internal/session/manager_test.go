package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-elt-dashboard/internal/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(30 * time.Minute)
	t.Cleanup(m.Close)
	return m
}

func TestCreate_Get_Delete(t *testing.T) {
	m := newTestManager(t)

	s := m.Create(model.SourceSpec{Kind: model.SourceQuake})
	require.NotEmpty(t, s.ID)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	require.NoError(t, m.Delete(s.ID))
	_, err = m.Get(s.ID)
	assert.Error(t, err)
	assert.Error(t, m.Delete(s.ID), "double delete reports not found")
}

func TestGet_UnknownSession(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Get("nope")
	assert.Error(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	m := newTestManager(t)

	a := m.Create(model.SourceSpec{Kind: model.SourceQuake})
	time.Sleep(2 * time.Millisecond)
	b := m.Create(model.SourceSpec{Kind: model.SourceCSV, URL: "http://example.com/x.csv"})

	infos := m.List()
	require.Len(t, infos, 2)
	assert.Equal(t, b.ID, infos[0].ID)
	assert.Equal(t, a.ID, infos[1].ID)
}

func TestEvictIdle_DropsStaleSessions(t *testing.T) {
	m := newTestManager(t)

	stale := m.Create(model.SourceSpec{Kind: model.SourceQuake})
	fresh := m.Create(model.SourceSpec{Kind: model.SourceQuake})

	stale.mu.Lock()
	stale.lastUsed = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	m.evictIdle()

	_, err := m.Get(stale.ID)
	assert.Error(t, err, "idle session evicted")
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionInfo_ReflectsStore(t *testing.T) {
	m := newTestManager(t)
	s := m.Create(model.SourceSpec{Kind: model.SourceQuake})
	s.Store.Merge([]model.Record{{"id": "x"}}, "id")

	info := s.Info()
	assert.Equal(t, 1, info.Rows)
	require.NotNil(t, info.LastFetch)
}
