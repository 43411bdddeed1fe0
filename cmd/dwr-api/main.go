package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"dwr-api/internal/config"
	"dwr-api/internal/database"
	httpapi "dwr-api/internal/http"
	"dwr-api/internal/logger"
	"dwr-api/internal/metrics"
	"dwr-api/internal/repository"
	"dwr-api/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString("failed to read .env: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("dwr-api stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Connecting to database...")
	db, err := database.Open(ctx, cfg.DatabaseURL, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connection successful")

	refs := repository.NewReferenceRepository(db, log)
	reports := repository.NewDWRRepository(db, cfg.DWR.AtomicSubmit, log)
	if !cfg.DWR.AtomicSubmit {
		log.Warn("atomic DWR submission disabled; a failed child insert leaves a partial report")
	}

	api := httpapi.NewAPI(refs, reports, db, metrics.NewManager(), log, httpapi.Options{
		Prefix:       cfg.API.Prefix,
		MaxBodyBytes: cfg.API.MaxBodyBytes,
		ExposeErrors: cfg.API.ExposeErrors,
		PingTimeout:  cfg.DB.PingTimeout,
	})

	srv := service.NewServer(cfg.Addr, api.Handler(), cfg.HTTP.ReadHeaderTimeout, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
