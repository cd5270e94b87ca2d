package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gitlab.com/ingwane/api/enquiry-service/internal/config"
	"gitlab.com/ingwane/api/enquiry-service/internal/mailer"
	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/internal/server"
	"gitlab.com/ingwane/api/enquiry-service/internal/storage"
	"gitlab.com/ingwane/api/enquiry-service/internal/usecase"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"gitlab.com/ingwane/api/enquiry-service/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Set timezone to UTC
	time.Local = time.UTC

	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize metrics conditionally
	observer.InitMetrics(cfg.Metrics.Enabled)

	logger.Log.Info("Starting Ingwane Enquiry Service",
		zap.String("environment", cfg.Environment),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("smtp_enabled", cfg.SMTP.Enabled),
	)

	// Initialize repository
	postgresRepo, err := initPostgresRepo(cfg.Database.PostgresDSN, cfg.Database.PostgresAutoMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize Postgres repository", zap.Error(err))
	}
	enquiryRepo := storage.NewEnquiryRepoAdapter(postgresRepo)

	// Initialize mail dispatcher and verify the SMTP connection up front.
	// A failed verification is logged but does not prevent startup; the
	// API keeps accepting enquiries and mail sends fail individually.
	dispatcher := mailer.NewDispatcher(cfg)
	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := dispatcher.Verify(verifyCtx); err != nil {
		logger.Log.Warn("SMTP verification failed, continuing without confirmed mail transport", zap.Error(err))
	} else if cfg.SMTP.Enabled {
		logger.Log.Info("SMTP server is ready to send messages",
			zap.String("host", cfg.SMTP.Host),
			zap.Int("port", cfg.SMTP.Port),
		)
	}
	verifyCancel()

	// Create mail worker pool
	mailWorker, err := usecase.NewMailWorker(cfg.WorkerPools.Mail, dispatcher, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mail worker pool", zap.Error(err))
	}

	// Create service, injecting the worker pool
	service := usecase.NewEnquiryService(enquiryRepo, mailWorker)

	// Create and start the HTTP server
	srv := server.NewServer(cfg, service, logger.Log)
	srv.Start()

	logger.Log.Info("HTTP endpoints available",
		zap.String("api", fmt.Sprintf("http://localhost:%d/api/enquiries", cfg.Server.Port)),
		zap.String("health", fmt.Sprintf("http://localhost:%d/api/health", cfg.Server.Port)),
	)
	if cfg.Metrics.Enabled {
		logger.Log.Info("Metrics endpoint enabled", zap.String("path", "/metrics"), zap.Int("port", cfg.Server.Port))
	}

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Log.Info("Received termination signal", zap.String("signal", sig.String()))

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Log.Info("Starting graceful shutdown", zap.Duration("timeout", 30*time.Second))

	var wg sync.WaitGroup
	wg.Add(3)

	// Shutdown HTTP server first so no new work arrives
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping HTTP server")
		start := time.Now()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Error stopping HTTP server", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] HTTP server stopped",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping HTTP server",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Shutdown mail worker pool
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping mail worker pool")
		start := time.Now()
		mailWorker.Stop()
		logger.Log.Info("[shutdown] Mail worker pool stopped",
			zap.Duration("duration", time.Since(start)))
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping mail worker pool",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Close database connection
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Closing PostgreSQL connection")
		start := time.Now()
		if err := postgresRepo.Close(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Failed to close PostgreSQL connection", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] PostgreSQL connection closed",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while closing PostgreSQL connection",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Wait with a timeout for all components to shut down
	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Log.Info("[shutdown] All components stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Log.Warn("[shutdown] Graceful shutdown timed out, forcing exit")
	}

	logger.Log.Info("Ingwane Enquiry Service shutdown complete")
}

// Initialize PostgreSQL repository
func initPostgresRepo(dsn string, autoMigrate bool) (*storage.PostgresRepo, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	repo, err := storage.NewPostgresRepo(dsn, autoMigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres repository: %w", err)
	}

	logger.Log.Info("Initialized PostgreSQL repository")
	return repo, nil
}
