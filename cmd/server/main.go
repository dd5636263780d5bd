package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	httpdelivery "github.com/tbhalla11/CrossPaymentService/internal/delivery/http"
	"github.com/tbhalla11/CrossPaymentService/internal/infrastructure/config"
	"github.com/tbhalla11/CrossPaymentService/internal/infrastructure/fxclient"
	"github.com/tbhalla11/CrossPaymentService/internal/infrastructure/postgres"
	"github.com/tbhalla11/CrossPaymentService/internal/usecase/payments"
)

const (
	dbMaxConns        = 10
	dbMinConns        = 2
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute

	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	pool, err := initDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	uow := postgres.NewUnitOfWork(pool)
	fxClient := fxclient.NewClient(cfg.FXServiceURL, cfg.FX, logger)
	paymentsUC := payments.NewUseCase(uow, fxClient, logger)

	handler := httpdelivery.NewHandler(paymentsUC)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
