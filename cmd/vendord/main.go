package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pickup-vendor-backend/config"
	"pickup-vendor-backend/internal/api"
	"pickup-vendor-backend/internal/db"
	"pickup-vendor-backend/internal/feed"
	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/reconcile"
	"pickup-vendor-backend/internal/tokenstore"
	"pickup-vendor-backend/internal/upstream"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "vendord ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize the token database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := tokenstore.NewGormStore(gormDB)
	client := upstream.NewClient(&cfg.Upstream, tokens)

	// The draft ledger flushes edits to the session store in the background.
	drafts := ledger.NewDraftStore(cfg.Drafts.TTL)
	priceLedger := ledger.New(drafts, cfg.Drafts.FlushDebounce)
	priceLedger.Start(ctx)
	logger.Println("price ledger started")

	loc := time.Local
	if cfg.Upstream.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Upstream.Timezone)
		if err != nil {
			logger.Fatalf("invalid timezone %q: %v", cfg.Upstream.Timezone, err)
		}
	}

	today := feed.New("today", upstream.ResourceToday, client, priceLedger, &cfg.Feeds,
		feed.Options{TodayOnly: true, Location: loc})
	history := feed.New("history", upstream.ResourceHistory, client, priceLedger, &cfg.Feeds,
		feed.Options{Location: loc})

	reconciler := reconcile.New(client, priceLedger)

	// Initialize router
	handler := api.NewHandler([]*feed.Feed{today, history}, priceLedger, reconciler, client, tokens)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
