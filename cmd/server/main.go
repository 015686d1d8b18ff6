package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fruitstand/fruitstand/internal/config"
	"github.com/fruitstand/fruitstand/internal/handlers"
	"github.com/fruitstand/fruitstand/internal/middleware"
	"github.com/fruitstand/fruitstand/internal/repository"
	"github.com/fruitstand/fruitstand/internal/service"
	"github.com/fruitstand/fruitstand/internal/view"
	"github.com/fruitstand/fruitstand/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting fruit stand server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize the catalog: an explicit file wins over the built-in seed,
	// and a broken file refuses to start rather than serving the wrong data
	var fruitRepo *repository.InMemoryFruitRepository
	if cfg.Catalog.File != "" {
		fruitRepo, err = repository.NewInMemoryFruitRepositoryFromFile(cfg.Catalog.File)
		if err != nil {
			log.Error("failed to load catalog file", "file", cfg.Catalog.File, "error", err)
			os.Exit(1)
		}
		log.Info("catalog loaded from file", "file", cfg.Catalog.File, "records", fruitRepo.Len())
	} else {
		fruitRepo = repository.NewInMemoryFruitRepository()
		log.Info("catalog loaded from built-in seed", "records", fruitRepo.Len())
	}

	// Initialize the view renderer
	renderer, err := view.NewRenderer(view.Options{
		TemplateDir: cfg.View.TemplateDir,
		Minify:      cfg.View.Minify,
		Logger:      log,
	})
	if err != nil {
		log.Error("failed to initialize view renderer", "error", err)
		os.Exit(1)
	}

	// Initialize services
	fruitService := service.NewFruitService(fruitRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	fruitHandler := handlers.NewFruitHandler(fruitService, renderer, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Fruit catalog routes
	r.Get("/fruits", fruitHandler.ListFruits)
	r.Get("/fruits/{index}", fruitHandler.GetFruit)

	// Template live reload for development
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.View.LiveReload {
		go func() {
			if err := renderer.Watch(watchCtx); err != nil {
				log.Error("template watcher stopped", "error", err)
			}
		}()
		log.Info("template live reload enabled", "dir", cfg.View.TemplateDir)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopWatch()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
