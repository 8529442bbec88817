package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/cache"
	"github.com/stemsi/roomgrid-backend/internal/config"
	"github.com/stemsi/roomgrid-backend/internal/database"
	"github.com/stemsi/roomgrid-backend/internal/handler"
	"github.com/stemsi/roomgrid-backend/internal/logger"
	"github.com/stemsi/roomgrid-backend/internal/repository"
	"github.com/stemsi/roomgrid-backend/internal/router"
	"github.com/stemsi/roomgrid-backend/internal/service"
	"github.com/stemsi/roomgrid-backend/internal/source"
	"github.com/stemsi/roomgrid-backend/internal/validator"
	"github.com/stemsi/roomgrid-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting RoomGrid Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	buildingRepo := repository.NewBuildingRepository(pool)
	termRepo := repository.NewTermRepository(pool)
	courseCache := cache.NewRedisStore(rdb, cfg.CourseCacheTTL)
	fetcher := source.NewFetcher(cfg.FetchTimeout, cfg.ProxyURL, log)

	// ─── Initialize Services ──────────────────────────────────────────
	catalogService := service.NewCatalogService(buildingRepo, termRepo, log)
	if err := catalogService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load building catalog")
	}
	courseService := service.NewCourseService(fetcher, courseCache, log)
	roomService, err := service.NewRoomService(catalogService, courseService, courseCache, cfg.LegacyMemoSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create room service")
	}
	scheduleService := service.NewScheduleService(catalogService, courseService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Building: handler.NewBuildingHandler(catalogService, roomService),
		Term:     handler.NewTermHandler(catalogService, courseService),
		Room:     handler.NewRoomHandler(roomService),
		Schedule: handler.NewScheduleHandler(scheduleService),
		Ingest:   handler.NewIngestHandler(),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	refreshWorker := worker.NewRefreshWorker(rdb, roomService, log)
	go func() {
		defer close(workerDone)
		refreshWorker.Start(workerCtx)
	}()

	// ─── Prewarm Caches ───────────────────────────────────────────────
	// Load the active term and the legacy inventory before accepting
	// traffic so the first requests do not all hit the course sources.
	prewarm(ctx, catalogService, roomService, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the refresh worker; queued terms stay in Redis.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(3 * time.Second):
		log.Warn().Msg("Refresh worker did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

func prewarm(ctx context.Context, catalog *service.CatalogService, rooms *service.RoomService, log zerolog.Logger) {
	active, err := catalog.ActiveTerm(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Prewarm skipped: no active term")
		return
	}
	if _, err := rooms.MergedInventory(ctx, active.Code); err != nil {
		log.Warn().Err(err).Str("term", active.Code).Msg("Cache prewarm failed")
		return
	}
	log.Info().Str("term", active.Code).Msg("Caches prewarmed")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
