// @title Document Analyzer API
// @version 1.0
// @description Upload a PDF and receive the document type, key fields and a short summary as JSON.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"docanalyzer/internal/analysis"
	"docanalyzer/internal/completion"
	"docanalyzer/internal/completion/providers"
	"docanalyzer/internal/config"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/logging"
	"docanalyzer/internal/pdftext"
	"docanalyzer/internal/router"
	"docanalyzer/internal/service"
)

const shutdownGracePeriod = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Log, cfg.Server.ServiceName)
	zerolog.DefaultContextLogger = &logger

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize completion client
	providers.RegisterAll()
	client, err := completion.NewClient(&cfg.Completion)
	if err != nil {
		return fmt.Errorf("failed to initialize completion client: %w", err)
	}

	// Initialize services
	extractor := pdftext.NewExtractor()
	analyzer := analysis.NewAnalyzer(client)
	documentSvc := service.NewDocumentService(extractor, analyzer, &cfg.Upload)

	// Initialize handlers
	healthH := handler.NewHealthHandler(cfg.Server.ServiceName)
	analyzeH := handler.NewAnalyzeHandler(documentSvc)

	// Setup router
	r := router.Setup(cfg, logger, healthH, analyzeH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Server.Port).
			Str("provider", cfg.Completion.Provider).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
