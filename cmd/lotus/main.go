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

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/app"
	"github.com/lotus-studio/lotus/internal/auth"
	"github.com/lotus-studio/lotus/internal/instructors"
	"github.com/lotus-studio/lotus/internal/observability"
	"github.com/lotus-studio/lotus/internal/platform/cache"
	"github.com/lotus-studio/lotus/internal/platform/db"
	"github.com/lotus-studio/lotus/internal/sessions"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// The service stays up without Redis, instructor lookups just skip the cache.
	var instructorsCache *instructors.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, instructor cache disabled", slog.Any("error", err))
	} else {
		instructorsCache = instructors.NewCache(redisClient, cfg.CacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo)
	accountsHandler := accounts.NewHandler(logger, accountsService)

	tokenCodec := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(accountsRepo)
	authMiddleware := auth.NewMiddleware(logger, tokenCodec, authService)
	authHandler := auth.NewHandler(logger, authService, tokenCodec)

	instructorsRepo := instructors.NewRepository(dbpool)
	instructorsService := instructors.NewService(instructorsRepo, instructorsCache)
	instructorsHandler := instructors.NewHandler(logger, instructorsService)

	sessionsRepo := sessions.NewRepository(dbpool)
	sessionsService := sessions.NewService(sessionsRepo, accountsRepo)
	sessionsHandler := sessions.NewHandler(logger, sessionsService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthMiddleware:     authMiddleware,
		AuthHandler:        authHandler,
		AccountsHandler:    accountsHandler,
		InstructorsHandler: instructorsHandler,
		SessionsHandler:    sessionsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
