package elt

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/internal/source"
	"go-elt-dashboard/pkg/utils"
)

// Store is the session-scoped in-memory table. It lives for the lifetime
// of a dashboard session and is discarded when the session expires.
type Store struct {
	mu        sync.RWMutex
	rows      []model.Record
	lastFetch time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of rows currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// LastFetch returns the time of the most recent merge, zero if none.
func (s *Store) LastFetch() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

// Clear drops all rows.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.lastFetch = time.Time{}
}

// Merge appends fetched rows and deduplicates by idField keeping the LAST
// occurrence, so a re-fetched record replaces its earlier copy. Rows
// without the id field are kept as-is. Returns the number of net new rows
// and the resulting store size.
func (s *Store) Merge(incoming []model.Record, idField string) (added, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.rows)
	combined := make([]model.Record, 0, before+len(incoming))
	combined = append(combined, s.rows...)
	combined = append(combined, incoming...)

	lastIdx := make(map[string]int, len(combined))
	for i, rec := range combined {
		if id, ok := recordID(rec, idField); ok {
			lastIdx[id] = i
		}
	}

	deduped := combined[:0]
	for i, rec := range combined {
		if id, ok := recordID(rec, idField); ok && lastIdx[id] != i {
			continue
		}
		deduped = append(deduped, rec)
	}

	s.rows = deduped
	s.lastFetch = time.Now().UTC()
	return len(s.rows) - before, len(s.rows)
}

// recordID extracts the dedup key as a string.
func recordID(rec model.Record, idField string) (string, bool) {
	v, ok := rec[idField]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case int:
		return strconv.Itoa(id), true
	case float64:
		return strconv.FormatFloat(id, 'g', -1, 64), true
	default:
		return fmt.Sprintf("%v", id), true
	}
}

// Rows returns a shallow copy of the row slice.
func (s *Store) Rows() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Record, len(s.rows))
	copy(out, s.rows)
	return out
}

// Preview returns up to n rows sorted descending by sortField (time or
// numeric). With an empty sortField rows come back in store order.
func (s *Store) Preview(n int, sortField string) []model.Record {
	rows := s.Rows()
	if sortField != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return sortLess(rows[j], rows[i], sortField)
		})
	}
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func sortLess(a, b model.Record, field string) bool {
	av, bv := a[field], b[field]
	at, aok := av.(time.Time)
	bt, bok := bv.(time.Time)
	if aok && bok {
		return at.Before(bt)
	}
	return utils.Numeric(av) < utils.Numeric(bv)
}

// Update runs fn against the live row slice under the write lock. fn may
// mutate rows in place and return a replacement slice.
func (s *Store) Update(fn func(rows []model.Record) []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = fn(s.rows)
}

// WriteCSV streams the store as CSV. Columns are the sorted union of row
// keys with the id column first, so output is deterministic.
func (s *Store) WriteCSV(w io.Writer, idField string) error {
	rows := s.Rows()

	cols := columnOrder(rows, idField)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	line := make([]string, len(cols))
	for _, rec := range rows {
		for i, col := range cols {
			line[i] = formatCell(rec[col])
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MergeCSV parses uploaded CSV and merges it with keep-last dedup.
func (s *Store) MergeCSV(r io.Reader, idField string) (added, total int, err error) {
	rows, err := source.ReadCSV(r)
	if err != nil {
		return 0, s.Len(), err
	}
	added, total = s.Merge(rows, idField)
	return added, total, nil
}

func columnOrder(rows []model.Record, idField string) []string {
	seen := make(map[string]bool)
	for _, rec := range rows {
		for k := range rec {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		if k != idField {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	if seen[idField] {
		cols = append([]string{idField}, cols...)
	}
	return cols
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
