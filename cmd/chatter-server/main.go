package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/config"
	"github.com/mikepea/chatter/pkg/chatter/database"
	"github.com/mikepea/chatter/pkg/chatter/logging"
	"github.com/mikepea/chatter/pkg/chatter/messages"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/server"
	"github.com/mikepea/chatter/pkg/chatter/store/gormstore"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := models.AutoMigrate(db); err != nil {
		return err
	}
	logger.Info("database migrations completed", zap.String("driver", cfg.DBDriver))

	gin.SetMode(gin.ReleaseMode)
	router := server.New(gormstore.New(db), logger, server.Options{
		Messages: messages.Options{
			PageSize: cfg.MessagePageSize,
			Sanitize: cfg.SanitizeMessages,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting chatter server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
