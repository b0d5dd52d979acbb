package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/openshelf/libra-api/internal/config"
	"github.com/openshelf/libra-api/internal/events"
	"github.com/openshelf/libra-api/internal/platform/postgres"
	platformredis "github.com/openshelf/libra-api/internal/platform/redis"
	"github.com/openshelf/libra-api/internal/service"
	"github.com/openshelf/libra-api/internal/service/auth"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/openshelf/libra-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	redisClient *goredis.Client

	// Stores
	userStore     store.UserStore
	patronStore   store.PatronStore
	authorStore   store.AuthorStore
	genreStore    store.GenreStore
	bookStore     store.BookStore
	loanStore     store.LoanStore
	progressStore store.ProgressStore
	reviewStore   store.ReviewStore
	taskStore     *postgres.PostgresTaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	tokenRevoker     auth.TokenRevoker
	accountService   service.AccountService
	bookService      service.BookService
	loanService      service.LoanService
	reviewService    service.ReviewService
	shelfService     service.ShelfService

	// Event system
	eventEmitter events.EventEmitter

	// Background processing
	taskRunner *task.TaskRunner
	scheduler  *task.OverdueScanScheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.redisClient, err = platformredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.tokenRevoker = platformredis.NewRevocationStore(app.redisClient)
	logger.Info("Token revocation store initialized", "redis_address", cfg.Redis.Address)

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.patronStore = postgres.NewPostgresPatronStore(db, logger)
	app.authorStore = postgres.NewPostgresAuthorStore(db, logger)
	app.genreStore = postgres.NewPostgresGenreStore(db, logger)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)
	app.loanStore = postgres.NewPostgresLoanStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Services
	app.accountService, err = service.NewAccountService(
		app.userStore, app.patronStore, app.authorStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.bookService, err = service.NewBookService(
		app.bookStore, app.genreStore, app.authorStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create book service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	loanPeriod := time.Duration(cfg.Loan.PeriodDays) * 24 * time.Hour
	app.loanService, err = service.NewLoanService(
		app.loanStore, app.bookStore, app.patronStore, db,
		loanPeriod, cfg.Loan.OverdueFine, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan service: %w", err)
	}

	app.reviewService, err = service.NewReviewService(
		app.reviewStore, app.bookStore, app.patronStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	app.shelfService, err = service.NewShelfService(
		app.progressStore, app.bookStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create shelf service: %w", err)
	}

	// Recovered overdue scans need an execution function bound at load time.
	app.taskStore.RegisterExecutor(task.TaskTypeOverdueScan,
		func(ctx context.Context, payload []byte) error {
			_, err := app.loanService.AssessOverdueFines(ctx, time.Now().UTC())
			return err
		})

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Fine scan schedule and the event handler behind on-demand sweeps
	scanFactory := task.NewOverdueScanTaskFactory(app.loanService, logger)
	taskFactoryHandler := task.NewTaskFactoryEventHandler(
		scanFactory,
		app.taskRunner,
		logger.With("component", "task_factory_event_handler"),
	)
	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	scanInterval := time.Duration(cfg.Task.OverdueScanIntervalMinutes) * time.Minute
	app.scheduler = task.NewOverdueScanScheduler(scanFactory, app.taskRunner, scanInterval, logger)
	app.scheduler.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner initializes and starts the background task processor.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		QueueSize:    app.config.Task.QueueSize,
		WorkerCount:  app.config.Task.WorkerCount,
		StuckTaskAge: time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute,
	}, app.logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
