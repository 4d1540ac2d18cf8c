package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chillcharlie357/watermark/internal/config"
	"github.com/chillcharlie357/watermark/internal/http/handlers"
	"github.com/chillcharlie357/watermark/internal/http/routes"
	"github.com/chillcharlie357/watermark/internal/services/exporter"
	"github.com/chillcharlie357/watermark/internal/services/processor"
	"github.com/chillcharlie357/watermark/internal/services/queue"
	"github.com/chillcharlie357/watermark/internal/services/storage"
	"github.com/chillcharlie357/watermark/internal/services/template"
	"go.uber.org/zap"
)

const queueWorkers = 2

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	fonts := processor.NewFontResolver(cfg.Fonts.Path, cfg.Fonts.CJKPath, logger)
	pipeline := processor.NewPipeline(fonts, logger)
	exp := exporter.New(pipeline, logger, cfg.Export.Workers)
	templates := template.NewStore(cfg.Export.TemplatePath)

	store, err := storage.NewService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queueService, err := queue.NewQueueService(cfg.RabbitMQ.URL, exp, logger)
	if err != nil {
		logger.Warn("Failed to initialize queue service, async export disabled", zap.Error(err))
		queueService = nil
	} else {
		defer queueService.Close()
		for i := 1; i <= queueWorkers; i++ {
			if err := queueService.StartWorker(ctx, i); err != nil {
				logger.Error("Failed to start export worker", zap.Int("worker_id", i), zap.Error(err))
			}
		}
	}

	// Initialize handlers
	handler := handlers.NewWatermarkHandler(pipeline, exp, templates, store, queueService, logger, cfg)

	router := routes.NewRouter(handler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
