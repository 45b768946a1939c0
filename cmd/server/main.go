package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/config"
	"github.com/maxviazov/cricket-stats-service/internal/handler"
	"github.com/maxviazov/cricket-stats-service/internal/logger"
	"github.com/maxviazov/cricket-stats-service/internal/service"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load application config; APP_CONFIG points elsewhere, an empty value means env only
	path, ok := os.LookupEnv("APP_CONFIG")
	if !ok {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		stdlog.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger; the app section fills whatever the logger section leaves out
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		stdlog.Fatalf("❌ Logger initialization failed: %v", err)
	}
	log.Logger = appLogger
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStorage(ctx, cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.close()

	if err := store.schema.Init(ctx); err != nil {
		return fmt.Errorf("schema init: %w", err)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	playerSvc := service.NewPlayerService(store.players, log.Logger)
	matchSvc := service.NewMatchService(store.matches, log.Logger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.RequestLogger(log.Logger))
	if err := handler.Register(engine, store.pinger, playerSvc, matchSvc); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
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

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
