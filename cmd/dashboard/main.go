package main

import (
	"flag"
	"log"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-elt-dashboard/docs"
	"go-elt-dashboard/internal/api"
	"go-elt-dashboard/internal/api/handler"
	"go-elt-dashboard/internal/config"
	"go-elt-dashboard/internal/session"
	"go-elt-dashboard/internal/store"
	"go-elt-dashboard/pkg/router"
)

// @title ELT Dashboard API
// @version 1.0
// @description Real-time ELT dashboard: fetch public feeds, merge into session stores, derive columns, render charts, and run explainable analysis.
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Init DB
	if err := store.InitDB(cfg.Storage.SQLitePath); err != nil {
		log.Fatalf("init db: %v", err)
	}
	defer store.CloseDB()

	sessions := session.NewManager(time.Duration(cfg.Sessions.IdleTTLMinutes) * time.Minute)
	defer sessions.Close()

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, handler.NewDashboard(cfg, sessions))

	// Swagger UI
	r.Handle("/swagger/", httpSwagger.WrapHandler)

	// Start server
	if err := r.Start(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
