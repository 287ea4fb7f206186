package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zylentrix_crm_backend/internal/adapters"
	"zylentrix_crm_backend/internal/auth"
	"zylentrix_crm_backend/internal/dashboard"
	"zylentrix_crm_backend/internal/digizign"
	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/email"
	"zylentrix_crm_backend/internal/events"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/http/router"
	"zylentrix_crm_backend/internal/internzity"
	"zylentrix_crm_backend/internal/leads"
	"zylentrix_crm_backend/internal/notification"
	"zylentrix_crm_backend/internal/scheduler"
	"zylentrix_crm_backend/internal/tasks"
	"zylentrix_crm_backend/internal/zurelabs"
	"zylentrix_crm_backend/migrations"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/db"
	"zylentrix_crm_backend/platform/logger"
	"zylentrix_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg.DatabaseURL, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()
	if err := domain.RegisterValidations(val); err != nil {
		log.Error("failed to register domain validations", "error", err)
		panic("failed to register domain validations: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(sender, reminderScheduler, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, eventBus, log, val)
	tasksModule := tasks.NewModule(pool, eventBus, log, val)

	// Leads only know the TaskAssigner port; the adapter closes the loop.
	leadAssigner := adapters.NewLeadTaskAssigner(tasksModule.Assigner())
	leadsModule := leads.NewModule(pool, leadAssigner, eventBus, log, val)

	digizignModule := digizign.NewModule(pool, val)
	zurelabsModule := zurelabs.NewModule(pool, val)
	internzityModule := internzity.NewModule(cfg.InternzityBackendURL, log)
	dashboardModule := dashboard.NewModule()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			tasksModule,
			digizignModule,
			zurelabsModule,
			internzityModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg *config.Config, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not configured; task deadline reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
