// internal/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	router "bethouse/internal/api"
	"bethouse/internal/api/handler"
	"bethouse/internal/auth"
	"bethouse/internal/config"
	"bethouse/internal/game"
	"bethouse/internal/repository"
	"bethouse/internal/repository/postgres"
	"bethouse/internal/repository/redisstore"
	"bethouse/internal/service"
	"bethouse/internal/util"
	"bethouse/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	AccountRepository   repository.AccountRepository
	RoundRepository     repository.RoundRepository
	BetRecordRepository repository.BetRecordRepository

	// Services
	BalanceService service.BalanceService
	GameService    service.GameService

	// Auth
	Tokens *auth.TokenManager

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	logger, err := util.NewLogger("bethouse", cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	app.Logger = logger
	app.Logger.Info("application configuration loaded")

	// 3. Connect to the stores
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("database connection established")

	rdb, err := db.NewRedisClient(app.Config.RedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.Redis = rdb
	app.Logger.Info("redis connection established")

	// 4. Initialize Repositories
	app.AccountRepository = redisstore.NewAccountRepository(app.Redis)
	app.RoundRepository = redisstore.NewRoundRepository(app.Redis)
	app.BetRecordRepository = postgres.NewBetRecordRepository(app.DB)
	app.Logger.Info("repositories initialized")

	// 5. Initialize Services
	app.BalanceService = service.NewBalanceService(app.AccountRepository, app.Logger)
	app.GameService = service.NewGameService(
		app.BalanceService,
		app.RoundRepository,
		app.BetRecordRepository,
		app.DB,
		game.NewSource(),
		app.Logger,
	)
	app.Logger.Info("services initialized")

	// 6. Initialize auth, HTTP handlers and router
	app.Tokens = auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	accountHandler := handler.NewAccountHandler(app.BalanceService, app.Tokens, app.Logger)
	gameHandler := handler.NewGameHandler(app.GameService, app.Logger)
	app.HTTPHandler = router.NewRouter(accountHandler, gameHandler, app.Tokens, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("shutting down application")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("failed to close redis connection", zap.Error(err))
			return fmt.Errorf("failed to close redis connection: %w", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("failed to close database connection", zap.Error(err))
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}
	app.Logger.Info("application shut down gracefully")
	return nil
}
