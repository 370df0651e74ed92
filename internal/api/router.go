package api

import (
	"go-elt-dashboard/internal/api/handler"
	"go-elt-dashboard/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Dashboard) {
	r.POST("/api/v1/sessions", h.CreateSession)
	r.GET("/api/v1/sessions", h.ListSessions)
	r.GET("/api/v1/history", h.GetHistory)
	// More specific routes first
	r.POST("/api/v1/sessions/*/fetch", h.Fetch)
	r.POST("/api/v1/sessions/*/transform", h.Transform)
	r.POST("/api/v1/sessions/*/analyze", h.Analyze)
	r.GET("/api/v1/sessions/*/store", h.GetStore)
	r.GET("/api/v1/sessions/*/summary", h.GetSummary)
	r.GET("/api/v1/sessions/*/export", h.ExportCSV)
	r.POST("/api/v1/sessions/*/upload", h.UploadCSV)
	r.POST("/api/v1/sessions/*/snapshot", h.SaveSnapshot)
	r.GET("/api/v1/sessions/*/snapshots", h.ListSnapshots)
	r.GET("/api/v1/sessions/*/charts/*", h.GetChart)
	r.GET("/api/v1/snapshots/*", h.DownloadSnapshot)
	r.GET("/api/v1/download/*/*", h.DownloadExport)
	// Generic session route last
	r.DELETE("/api/v1/sessions/*", h.DeleteSession)
}
