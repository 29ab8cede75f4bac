/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the timeclock engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env / environment, overridable by flags)
  2. Initialize SQLite store
  3. Load organization settings JSON, if configured
  4. Create API handler and recompute scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (overrides PORT)
  -db        SQLite database path (overrides DB_PATH)
             Use ":memory:" for an in-memory database
  -settings  Organization settings JSON file (overrides SETTINGS_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the background recompute scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/timeclock.db"

  # Run with in-memory database and explicit settings
  ./server -db=":memory:" -settings=./settings.json

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/timeclock-engine/api"
	"github.com/warp/timeclock-engine/config"
	"github.com/warp/timeclock-engine/factory"
	"github.com/warp/timeclock-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	settingsPath := flag.String("settings", cfg.SettingsPath, "organization settings JSON file")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Organization settings; nil falls back to the handler defaults
	var settings *factory.Settings
	if *settingsPath != "" {
		raw, err := os.ReadFile(*settingsPath)
		if err != nil {
			log.Fatalf("Failed to read settings file: %v", err)
		}
		settings, err = factory.ParseSettings(string(raw))
		if err != nil {
			log.Fatalf("Failed to parse settings file: %v", err)
		}
	}

	// Initialize handler and router
	handler := api.NewHandler(store, settings)
	router := api.NewRouter(handler)

	// Background cache repair
	scheduler := api.NewRecomputeScheduler(store, handler.Settings)
	scheduler.Enabled = cfg.SchedulerEnabled
	scheduler.CheckInterval = cfg.SchedulerInterval
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
