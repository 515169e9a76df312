package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ffcteam/slotwatch/app/api"
	"github.com/ffcteam/slotwatch/app/cfg"
	"github.com/ffcteam/slotwatch/app/schedule"
	"github.com/ffcteam/slotwatch/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	log.Println("Starting Slotwatch server...")

	// Reference timezone: all slot filtering decisions are made in this zone
	loc, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", appConfig.Timezone, err)
	}
	time.Local = loc
	log.Printf("Reference timezone: %s", appConfig.Timezone)

	// Load venue configurations
	log.Printf("Loading venue configurations from %s...", appConfig.VenuesDir)
	venueCache := schedule.NewVenueCache(appConfig.VenuesDir)
	if err := venueCache.Run(); err != nil {
		log.Fatalf("Failed to load venue configurations: %v", err)
	}
	log.Printf("Loaded %d venue configurations", venueCache.GetConfigCount())

	// Initialize core components
	httpClient := &http.Client{}
	client := schedule.NewClient(httpClient, appConfig.APIBaseURL, appConfig.UserAgent,
		time.Duration(appConfig.FetchTimeout)*time.Second)
	normalizer := schedule.NewNormalizer(loc)
	filterer := schedule.NewFilterer()
	scanner := schedule.NewScanner(client, normalizer, filterer, venueCache, loc, appConfig.FetchWorkers)
	reportCache := schedule.NewReportCache(scanner.Run, time.Duration(appConfig.CacheTTL)*time.Second)
	formatter := schedule.NewFormatter(appConfig.MaxBlockLength)

	// Initialize and start scheduler
	log.Printf("Starting background scheduler with %d workers...", appConfig.WorkerCount)
	scheduler := tasks.NewScheduler(reportCache, venueCache)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(venueCache, reportCache, formatter)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("  Report:        http://localhost:%s/report", appConfig.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)

		if appConfig.APIAccessKey != "" {
			log.Printf("  Venues:        http://localhost:%s/api/venues (requires API key)", appConfig.Port)
			log.Printf("  Refresh:       http://localhost:%s/api/report/refresh (POST, requires API key)", appConfig.Port)
			log.Printf("  Reload venues: http://localhost:%s/api/venues/reload (POST, requires API key)", appConfig.Port)
		} else {
			log.Printf("  API endpoints: DISABLED (API_ACCESS_KEY not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Slotwatch server started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Slotwatch server shutdown complete")
}
