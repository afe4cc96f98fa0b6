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

	"github.com/mcoutinho/retail-ledger-go/internal/config"
	"github.com/mcoutinho/retail-ledger-go/internal/handler"
	"github.com/mcoutinho/retail-ledger-go/internal/infra/observability"
	"github.com/mcoutinho/retail-ledger-go/internal/repository"
	"github.com/mcoutinho/retail-ledger-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "retail-ledger"

func main() {
	if err := config.LoadDotEnv(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, serviceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	metrics := observability.NewMetrics()
	registry := repository.NewMemory()
	ledgerSvc := service.NewLedgerService(registry, cfg.WithdrawalLimit, cfg.WithdrawalCap, metrics, logger)

	var authSvc *service.AuthService
	if cfg.AdminPasswordHash != "" {
		authSvc = service.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
	} else {
		logger.Warn("ADMIN_PASSWORD_HASH not set, mutating endpoints are unauthenticated")
	}

	router := handler.NewRouter(ledgerSvc, authSvc, metrics, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			zap.Int("port", cfg.Port),
			zap.String("withdrawal_limit", cfg.WithdrawalLimit.StringFixed(2)),
			zap.Int("withdrawal_cap", cfg.WithdrawalCap),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
