package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/config"
	"github.com/stemsi/roomgrid-backend/internal/handler"
	"github.com/stemsi/roomgrid-backend/internal/middleware"
	"github.com/stemsi/roomgrid-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Building *handler.BuildingHandler
	Term     *handler.TermHandler
	Room     *handler.RoomHandler
	Schedule *handler.ScheduleHandler
	Ingest   *handler.IngestHandler
}

// catalogMaxAge is the Cache-Control max-age of catalog listings.
const catalogMaxAge = 300

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background middleware goroutines.
func SetupRouter(ctx context.Context, handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AccessLog(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)

	api := router.Group("/api/v1")
	api.Use(limiter.Middleware())

	// ─── 1. Catalog (cacheable) ────────────────────────────────────────
	catalog := api.Group("")
	catalog.Use(middleware.CacheControl(catalogMaxAge))
	{
		catalog.GET("/buildings", handlers.Building.ListBuildings)
		catalog.GET("/terms", handlers.Term.ListTerms)
		catalog.GET("/terms/:term/rooms", handlers.Room.GetInventory)
		catalog.GET("/terms/:term/buildings/:code/rooms", handlers.Room.GetBuildingRooms)
	}

	// ─── 2. Schedules ──────────────────────────────────────────────────
	api.POST("/schedule", handlers.Schedule.GetRoomSchedule)

	// ─── 3. Data management ────────────────────────────────────────────
	api.POST("/ingest/csv", handlers.Ingest.PreviewCSV)
	api.POST("/terms/:term/refresh", handlers.Term.RefreshTerm)

	return router
}
