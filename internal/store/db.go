package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates tables if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	historyTable := `
	CREATE TABLE IF NOT EXISTS fetch_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		source_kind TEXT,
		source_url TEXT,
		rows_fetched INTEGER,
		store_size INTEGER,
		fetched_at DATETIME
	);
	`
	snapshotTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		session_id TEXT,
		csv_data BLOB,
		row_count INTEGER,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(historyTable); err != nil {
		return err
	}
	if _, err := db.Exec(snapshotTable); err != nil {
		return err
	}

	return nil
}

// CloseDB closes the database handle.
func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// FetchEntry is one row of the fetch audit log.
type FetchEntry struct {
	SessionID   string    `json:"session_id"`
	SourceKind  string    `json:"source_kind"`
	SourceURL   string    `json:"source_url"`
	RowsFetched int       `json:"rows_fetched"`
	StoreSize   int       `json:"store_size"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// SaveFetch records one fetch-and-merge step in the audit log.
func SaveFetch(entry FetchEntry) error {
	_, err := db.Exec(
		`INSERT INTO fetch_history (session_id, source_kind, source_url, rows_fetched, store_size, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.SourceKind, entry.SourceURL,
		entry.RowsFetched, entry.StoreSize, entry.FetchedAt)
	return err
}

// ListFetchHistory returns the most recent fetch log entries, newest first.
func ListFetchHistory(limit int) ([]FetchEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(
		`SELECT session_id, source_kind, source_url, rows_fetched, store_size, fetched_at
		 FROM fetch_history ORDER BY fetched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []FetchEntry
	for rows.Next() {
		var e FetchEntry
		if err := rows.Scan(&e.SessionID, &e.SourceKind, &e.SourceURL,
			&e.RowsFetched, &e.StoreSize, &e.FetchedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Snapshot is a saved copy of a session store as CSV.
type Snapshot struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveSnapshot stores a CSV copy of a session's store.
func SaveSnapshot(id, sessionID string, csvData []byte, rowCount int) error {
	_, err := db.Exec(
		`INSERT INTO snapshots (id, session_id, csv_data, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, sessionID, csvData, rowCount, time.Now().UTC())
	return err
}

// ListSnapshots returns snapshot metadata for a session, newest first.
func ListSnapshots(sessionID string) ([]Snapshot, error) {
	rows, err := db.Query(
		`SELECT id, session_id, row_count, created_at FROM snapshots
		 WHERE session_id = ? ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.SessionID, &s.RowCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// GetSnapshotCSV returns the stored CSV for a snapshot id.
func GetSnapshotCSV(id string) ([]byte, error) {
	var data []byte
	err := db.QueryRow(`SELECT csv_data FROM snapshots WHERE id = ?`, id).Scan(&data)
	if err != nil {
		return nil, err
	}
	return data, nil
}
