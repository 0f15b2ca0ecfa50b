package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/appointment-admin/internal/application"
	"github.com/example/appointment-admin/internal/config"
	httptransport "github.com/example/appointment-admin/internal/http"
	"github.com/example/appointment-admin/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	appointmentRepo := sqlite.NewAppointmentRepository(pool)
	clientRepo := sqlite.NewClientRepository(pool)
	categoryRepo := sqlite.NewCategoryRepository(pool)
	subCategoryRepo := sqlite.NewSubCategoryRepository(pool)
	userRepo := sqlite.NewUserRepository(pool)
	settingRepo := sqlite.NewSettingRepository(pool)

	settingsService := application.NewSettingsService(settingRepo, logger)
	appointmentService := application.NewAppointmentService(appointmentRepo, settingsService, idGenerator, now, logger)
	clientService := application.NewClientService(clientRepo, logger)
	categoryService := application.NewCategoryService(categoryRepo, settingsService, idGenerator, now, logger)
	subCategoryService := application.NewSubCategoryService(subCategoryRepo, categoryRepo, settingsService, idGenerator, now, logger)
	userService := application.NewUserService(userRepo, settingsService, idGenerator, now, nil, logger)
	dashboardService := application.NewDashboardService(appointmentRepo, userRepo, now, logger)

	validator := httptransport.NewStaticTokenValidator(cfg.APIToken, httptransport.Actor{ID: "api", Name: "API Client"})
	limiter := httptransport.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Appointments:  httptransport.NewAppointmentHandler(appointmentService, logger),
		Categories:    httptransport.NewCategoryHandler(categoryService, logger),
		SubCategories: httptransport.NewSubCategoryHandler(subCategoryService, logger),
		Users:         httptransport.NewUserHandler(userService, logger),
		Clients:       httptransport.NewClientHandler(clientService, logger),
		Stats:         httptransport.NewStatsHandler(dashboardService, logger),
		Settings:      httptransport.NewSettingsHandler(settingsService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RateLimit(limiter, logger),
			httptransport.RequireActor(validator, logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("admin API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
