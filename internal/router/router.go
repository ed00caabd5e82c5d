package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "docanalyzer/docs"
	"docanalyzer/internal/config"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger zerolog.Logger,
	healthH *handler.HealthHandler,
	analyzeH *handler.AnalyzeHandler,
) *gin.Engine {
	r := gin.New()

	// Keep small uploads in memory; larger ones spill to temp files.
	r.MaxMultipartMemory = 32 << 20

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/", healthH.Root)
	r.GET("/healthz", healthH.Liveness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	analyze := r.Group("/analyze")
	analyze.Use(middleware.RateLimit(middleware.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))
	analyze.POST("", analyzeH.Analyze)
	analyze.POST("/export", analyzeH.Export)

	return r
}
