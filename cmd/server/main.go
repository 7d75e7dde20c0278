package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"daycare-backend/internal/auth"
	"daycare-backend/internal/cache"
	"daycare-backend/internal/config"
	"daycare-backend/internal/database"
	"daycare-backend/internal/db"
	"daycare-backend/internal/handlers"
	"daycare-backend/internal/health"
	h "daycare-backend/internal/http"
	"daycare-backend/internal/logger"
	"daycare-backend/internal/middleware"
	"daycare-backend/internal/notify"
	"daycare-backend/internal/reports"
	"daycare-backend/internal/repositories"
	"daycare-backend/internal/services"
	"daycare-backend/migrations"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrateOnly := flag.Bool("migrate-only", false, "Apply pending migrations and exit")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "daycare-backend")
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()
	zl.Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".", zl)
	if err := migrator.RunMigrations(ctx); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}
	if *migrateOnly {
		return
	}

	store, err := cache.Connect(ctx, cfg, zl)
	if err != nil {
		zl.Warn("redis unavailable, running without cache and token revocation", zap.Error(err))
	}
	defer store.Close()

	var archive services.Archiver
	if cfg.Reports.S3.Enabled {
		s3Archiver, err := reports.NewS3Archiver(ctx, cfg)
		if err != nil {
			zl.Warn("export archive disabled", zap.Error(err))
		} else {
			archive = s3Archiver
		}
	}

	// Repositories
	managerRepo := repositories.NewManagerRepository(pool)
	babysitterRepo := repositories.NewBabysitterRepository(pool)
	childRepo := repositories.NewChildRepository(pool)
	scheduleRepo := repositories.NewScheduleRepository(pool)
	incidentRepo := repositories.NewIncidentRepository(pool)
	paymentRepo := repositories.NewParentPaymentRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	mailer := notify.FromConfig(cfg, zl)

	identityService := services.NewIdentityService(managerRepo, babysitterRepo, childRepo)
	authService := services.NewAuthService(managerRepo, babysitterRepo, jwtManager, store, zl)
	scheduleService := services.NewScheduleService(scheduleRepo, cfg.SessionRate)
	incidentService := services.NewIncidentService(incidentRepo, childRepo, babysitterRepo, mailer, zl)
	paymentService := services.NewPaymentService(paymentRepo, childRepo, mailer, store, zl)
	expenseService := services.NewExpenseService(expenseRepo, store)
	financeService := services.NewFinanceService(paymentRepo, expenseRepo, store, cfg.Budget, archive, zl)

	// Health: Redis only counts when it is actually connected
	var cachePinger health.Pinger
	if store.Enabled() {
		cachePinger = store
	}
	healthChecker := health.NewHealthChecker(pool, cachePinger)

	secure := cfg.Server.SecureCookies
	router := h.NewRouter(h.Handlers{
		Auth:       handlers.NewAuthHandler(authService, secure, zl),
		Operations: handlers.NewOperationsHandler(identityService, authService, secure, zl),
		Schedules:  handlers.NewScheduleHandler(scheduleService, zl),
		Incidents:  handlers.NewIncidentHandler(incidentService, zl),
		Payments:   handlers.NewParentPaymentHandler(paymentService, zl),
		Expenses:   handlers.NewExpenseHandler(expenseService, zl),
		Finances:   handlers.NewFinanceHandler(financeService, zl),
		Babysitter: handlers.NewBabysitterHandler(scheduleService, incidentService, identityService, zl),
		Health:     handlers.NewHealthHandler(healthChecker),
	}, middleware.NewAuthMiddleware(jwtManager, store, managerRepo, babysitterRepo, zl))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h.Wrap(cfg, router, zl),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
