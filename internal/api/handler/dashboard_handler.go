package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-elt-dashboard/internal/analysis"
	"go-elt-dashboard/internal/config"
	"go-elt-dashboard/internal/elt"
	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/internal/session"
	"go-elt-dashboard/internal/source"
	"go-elt-dashboard/internal/store"
	"go-elt-dashboard/internal/viz"
	"go-elt-dashboard/pkg/utils"
)

// Dashboard carries the service dependencies shared by all handlers.
type Dashboard struct {
	Sessions *session.Manager
	Client   *source.Client
	Cache    *source.Cache
	Config   *config.Config
	Exports  *utils.ExportManager
}

// NewDashboard builds the handler set from loaded configuration.
func NewDashboard(cfg *config.Config, sessions *session.Manager) *Dashboard {
	return &Dashboard{
		Sessions: sessions,
		Client:   source.NewClient(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second),
		Cache:    source.NewCache(time.Duration(cfg.Fetch.CacheTTLSeconds) * time.Second),
		Config:   cfg,
		Exports:  utils.NewExportManager(cfg.Storage.ExportDir),
	}
}

// CreateSession creates a new dashboard session
// @Summary Create a new session
// @Description Create a dashboard session bound to a data source (quake feed, CSV, or COVID snapshot)
// @Tags sessions
// @Accept json
// @Produce json
// @Param source body model.SourceSpec true "Source configuration"
// @Success 200 {object} map[string]interface{} "Session created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Router /sessions [post]
func (h *Dashboard) CreateSession(w http.ResponseWriter, r *http.Request) {
	var spec model.SourceSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if !spec.Kind.Valid() {
		http.Error(w, "Source kind must be one of: quake, csv, covid", http.StatusBadRequest)
		return
	}
	if spec.URL == "" && spec.Kind != model.SourceQuake {
		http.Error(w, "Source URL is required", http.StatusBadRequest)
		return
	}

	s := h.Sessions.Create(spec)

	resp := map[string]interface{}{
		"message":   "Session created successfully!",
		"sessionID": s.ID,
		"source":    s.Source,
		"createdAt": s.CreatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListSessions lists all live sessions
// @Summary List sessions
// @Description Get all live dashboard sessions with their store sizes
// @Tags sessions
// @Produce json
// @Success 200 {array} model.SessionInfo "List of sessions"
// @Router /sessions [get]
func (h *Dashboard) ListSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Sessions.List())
}

// DeleteSession clears and drops a session
// @Summary Delete session
// @Description Clear the in-memory store and drop the session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session deleted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [delete]
func (h *Dashboard) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}

	if err := h.Sessions.Delete(sessionID); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "In-memory store cleared.",
		"sessionID": sessionID,
	})
}

// Fetch pulls the latest rows from the session's feed into the store
// @Summary Fetch latest rows
// @Description Fetch the session's feed (60s cached) and merge into the store with keep-last dedup
// @Tags pipeline
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.FetchResult "Fetch result"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 502 {object} map[string]interface{} "Feed fetch failed"
// @Router /sessions/{id}/fetch [post]
func (h *Dashboard) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/fetch")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	url := h.resolveURL(s.Source)
	if url == "" {
		http.Error(w, "No feed URL configured for this session", http.StatusBadRequest)
		return
	}

	rows, err := h.Cache.Fetch(r.Context(), url, h.fetchFunc(s.Source.Kind))
	if err != nil {
		// Show the message and halt the step; no retry.
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Fetch failed: %v", err))
		return
	}

	added, total := s.Store.Merge(rows, s.Source.DedupField())

	result := model.FetchResult{
		Fetched:   len(rows),
		Added:     added,
		StoreSize: total,
		FetchedAt: s.Store.LastFetch(),
		SourceURL: url,
	}

	if err := store.SaveFetch(store.FetchEntry{
		SessionID:   sessionID,
		SourceKind:  string(s.Source.Kind),
		SourceURL:   url,
		RowsFetched: len(rows),
		StoreSize:   total,
		FetchedAt:   result.FetchedAt,
	}); err != nil {
		// history is best-effort; the fetch already succeeded
		fmt.Printf("⚠️ failed to record fetch history: %v\n", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Transform derives feature columns for the session's source kind
// @Summary Run transform
// @Description Compute derived columns (hour, magnitude/depth buckets, per-capita rates)
// @Tags pipeline
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.TransformResult "Transform result"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/transform [post]
func (h *Dashboard) Transform(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/transform")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	result, err := elt.Transform(s.Store, s.Source)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Transform failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Analyze runs the analysis and strategy steps
// @Summary Run analysis
// @Description Summarize the store, flag strong events, and recommend an action
// @Tags pipeline
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Analysis and strategy output"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/analyze [post]
func (h *Dashboard) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/analyze")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if s.Store.Len() == 0 {
		writeInfo(w, "No data to analyze. Fetch & transform first.")
		return
	}

	metric, label := analysis.MetricField(s.Source.Kind)
	rows := s.Store.Rows()
	a := analysis.Analyze(rows, metric, h.Config.Analysis.StrongMagnitude)
	strat := analysis.Recommend(a.Strong, metric, label)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"analysis": a,
		"strategy": strat,
	})
}

// GetStore previews the current store
// @Summary Preview store
// @Description Return up to limit rows, newest first for timestamped feeds
// @Tags store
// @Produce json
// @Param id path string true "Session ID"
// @Param limit query int false "Row limit (default 50)"
// @Success 200 {object} map[string]interface{} "Store preview"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/store [get]
func (h *Dashboard) GetStore(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/store")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	sortField := ""
	if s.Source.Kind == model.SourceQuake {
		sortField = "time_utc"
	}

	rows := s.Store.Preview(limit, sortField)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionID": sessionID,
		"rows":      rows,
		"count":     len(rows),
		"storeSize": s.Store.Len(),
	})
}

// GetSummary returns the headline store metrics
// @Summary Store summary
// @Description Row count and last fetch time for the session store
// @Tags store
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Summary"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/summary [get]
func (h *Dashboard) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/summary")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"sessionID": sessionID,
		"rows":      s.Store.Len(),
	}
	if lf := s.Store.LastFetch(); !lf.IsZero() {
		resp["lastFetch"] = lf.Format("2006-01-02 15:04:05")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ExportCSV downloads the store as CSV
// @Summary Download store CSV
// @Description Stream the current store as a CSV attachment
// @Tags store
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/export [get]
func (h *Dashboard) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/export")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if s.Store.Len() == 0 {
		writeInfo(w, "Store is empty. Fetch events first.")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="store.csv"`)
	if err := s.Store.WriteCSV(w, s.Source.DedupField()); err != nil {
		fmt.Printf("❌ CSV export failed for session %s: %v\n", sessionID, err)
	}
}

// UploadCSV merges an uploaded CSV into the store
// @Summary Upload CSV
// @Description Merge an uploaded CSV body into the store with keep-last dedup
// @Tags store
// @Accept text/csv
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Merge result"
// @Failure 400 {object} map[string]interface{} "Invalid CSV"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/upload [post]
func (h *Dashboard) UploadCSV(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/upload")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	added, total, err := s.Store.MergeCSV(r.Body, s.Source.DedupField())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionID": sessionID,
		"added":     added,
		"storeSize": total,
	})
}

// GetChart renders one of the dashboard charts as PNG
// @Summary Render chart
// @Description Render a chart (timeseries, histogram, buckets, depth) of the store as PNG
// @Tags charts
// @Produce image/png
// @Param id path string true "Session ID"
// @Param name path string true "Chart name"
// @Success 200 {string} binary "PNG image"
// @Failure 404 {object} map[string]interface{} "Session or chart not found"
// @Router /sessions/{id}/charts/{name} [get]
func (h *Dashboard) GetChart(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// api v1 sessions {id} charts {name}
	if len(segments) != 6 {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	sessionID, chartName := segments[3], segments[5]

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if s.Store.Len() == 0 {
		writeInfo(w, "No events to visualize. Fetch and transform events first.")
		return
	}

	rows := s.Store.Rows()
	metric, _ := analysis.MetricField(s.Source.Kind)
	if q := r.URL.Query().Get("field"); q != "" {
		metric = q
	}

	var png []byte
	switch chartName {
	case "timeseries":
		png, err = viz.TimeSeriesPNG(rows, "time_utc", 15*time.Minute)
	case "histogram":
		png, err = viz.HistogramPNG(rows, metric, 20)
	case "buckets":
		png, err = viz.BucketBarPNG(rows, "mag_bucket", elt.MagLabels)
	case "depth":
		png, err = viz.PiePNG(rows, "depth_bucket")
	default:
		http.Error(w, "Unknown chart: "+chartName, http.StatusNotFound)
		return
	}

	if err == viz.ErrNoData {
		writeInfo(w, "Chart not available for the current store. Run transform first.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Chart render failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// SaveSnapshot persists the store as a CSV snapshot
// @Summary Save snapshot
// @Description Persist a CSV copy of the current store to the database
// @Tags snapshots
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Snapshot saved"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 500 {object} map[string]interface{} "Save failed"
// @Router /sessions/{id}/snapshot [post]
func (h *Dashboard) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/snapshot")
	if !ok {
		return
	}

	s, err := h.Sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	if s.Store.Len() == 0 {
		writeInfo(w, "Store is empty. Fetch events first.")
		return
	}

	var buf bytes.Buffer
	if err := s.Store.WriteCSV(&buf, s.Source.DedupField()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Snapshot failed: %v", err))
		return
	}

	snapshotID := uuid.New().String()
	if err := store.SaveSnapshot(snapshotID, sessionID, buf.Bytes(), s.Store.Len()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Snapshot save failed: %v", err))
		return
	}

	// Mirror the snapshot into the export directory for direct download.
	fileName := snapshotID + ".csv"
	resp := map[string]interface{}{
		"message":    "Snapshot saved successfully!",
		"snapshotID": snapshotID,
		"sessionID":  sessionID,
		"rows":       s.Store.Len(),
	}
	if path, err := h.Exports.ExportFilePath(sessionID, fileName); err == nil {
		if err := os.WriteFile(path, buf.Bytes(), 0644); err == nil {
			resp["downloadURL"] = h.Exports.DownloadURL(sessionID, fileName)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DownloadExport serves a file previously written to the export directory
// @Summary Download export
// @Description Serve an exported snapshot file from the export directory
// @Tags snapshots
// @Produce text/csv
// @Param id path string true "Session ID"
// @Param file path string true "File name"
// @Success 200 {string} string "File payload"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{id}/{file} [get]
func (h *Dashboard) DownloadExport(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// api v1 download {id} {file}
	if len(segments) != 5 {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	sessionID, fileName := segments[3], segments[4]

	path, err := h.Exports.ExportFilePath(sessionID, fileName)
	if err != nil {
		http.Error(w, "Export not available", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	if h.Exports.FileType(fileName) == "csv" {
		w.Header().Set("Content-Type", "text/csv")
	}
	http.ServeFile(w, r, path)
}

// ListSnapshots lists saved snapshots for a session
// @Summary List snapshots
// @Description List snapshot metadata for a session, newest first
// @Tags snapshots
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Snapshots"
// @Failure 500 {object} map[string]interface{} "Lookup failed"
// @Router /sessions/{id}/snapshots [get]
func (h *Dashboard) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromPath(w, r.URL.Path, "/snapshots")
	if !ok {
		return
	}

	snaps, err := store.ListSnapshots(sessionID)
	if err != nil {
		http.Error(w, "Failed to retrieve snapshots", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionID": sessionID,
		"snapshots": snaps,
		"count":     len(snaps),
	})
}

// DownloadSnapshot streams a saved snapshot CSV
// @Summary Download snapshot
// @Description Stream a saved snapshot as a CSV attachment
// @Tags snapshots
// @Produce text/csv
// @Param id path string true "Snapshot ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} map[string]interface{} "Snapshot not found"
// @Router /snapshots/{id} [get]
func (h *Dashboard) DownloadSnapshot(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/snapshots/"
	if !strings.HasPrefix(path, prefix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	snapshotID := path[len(prefix):]
	if snapshotID == "" {
		http.Error(w, "Snapshot ID is required", http.StatusBadRequest)
		return
	}

	data, err := store.GetSnapshotCSV(snapshotID)
	if err != nil {
		http.Error(w, "Snapshot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="snapshot.csv"`)
	w.Write(data)
}

// GetHistory returns the fetch audit log
// @Summary Fetch history
// @Description Return recent fetch-and-merge operations across sessions
// @Tags history
// @Produce json
// @Param limit query int false "Entry limit (default 100)"
// @Success 200 {object} map[string]interface{} "History entries"
// @Failure 500 {object} map[string]interface{} "Lookup failed"
// @Router /history [get]
func (h *Dashboard) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := store.ListFetchHistory(limit)
	if err != nil {
		http.Error(w, "Failed to retrieve history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// resolveURL picks the feed URL for a session, falling back to the
// configured quake feeds by window.
func (h *Dashboard) resolveURL(spec model.SourceSpec) string {
	if spec.URL != "" {
		return spec.URL
	}
	if spec.Kind == model.SourceQuake {
		if spec.Window == "day" {
			return h.Config.Feeds.QuakeDayURL
		}
		return h.Config.Feeds.QuakeHourURL
	}
	return ""
}

// fetchFunc returns the feed fetcher for a source kind.
func (h *Dashboard) fetchFunc(kind model.SourceKind) source.FetchFunc {
	switch kind {
	case model.SourceQuake:
		return h.Client.FetchQuakes
	case model.SourceCovid:
		return h.Client.FetchCovid
	default:
		return h.Client.FetchCSV
	}
}

// sessionIDFromPath extracts the session id between the API prefix and an
// optional suffix, writing a 400 when the path is malformed.
func sessionIDFromPath(w http.ResponseWriter, path, suffix string) (string, bool) {
	prefix := "/api/v1/sessions/"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}

	sessionID := path[len(prefix) : len(path)-len(suffix)]
	if sessionID == "" || strings.Contains(sessionID, "/") {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return "", false
	}
	return sessionID, true
}

// writeInfo returns an informational note with a 200 status; the dashboard
// treats an empty store as a prompt, not an error.
func writeInfo(w http.ResponseWriter, note string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"note": note})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": msg})
}
