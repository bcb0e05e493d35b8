// Package bootstrap wires configuration, storage and HTTP layers together
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/placemate/placemate/internal/app/controllers"
	"github.com/placemate/placemate/internal/app/migrations"
	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/app/routes"
	"github.com/placemate/placemate/internal/app/services"
	"github.com/placemate/placemate/internal/config"
	"github.com/placemate/placemate/internal/db"
	"github.com/placemate/placemate/internal/middleware"
	"github.com/placemate/placemate/internal/pkg/auth"
	"github.com/placemate/placemate/internal/pkg/email"
	"github.com/placemate/placemate/internal/pkg/logger"
	"github.com/placemate/placemate/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *repositories.Repositories
	Services *services.Services

	AuthController        *controllers.AuthController
	UserController        *controllers.UserController
	StudentController     *controllers.StudentController
	CompanyController     *controllers.CompanyController
	PlacementController   *controllers.PlacementController
	ApplicationController *controllers.ApplicationController
	LookupController      *controllers.LookupController

	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	JWTService     *auth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(dbPool, lgr)

	migrationsDir := filepath.Join("internal", "app", "migrations", "sql")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenDuration(),
		RefreshTokenExp: cfg.RefreshTokenDuration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.Services = services.NewServices(cfg, deps.Repos, deps.JWTService, mailer, lgr)

	deps.AuthController = controllers.NewAuthController(deps.Services.AuthService, cfg, lgr)
	deps.UserController = controllers.NewUserController(deps.Services.UserService, lgr)
	deps.StudentController = controllers.NewStudentController(deps.Services.StudentService, lgr)
	deps.CompanyController = controllers.NewCompanyController(deps.Services.CompanyService, lgr)
	deps.PlacementController = controllers.NewPlacementController(deps.Services.PlacementService, lgr)
	deps.ApplicationController = controllers.NewApplicationController(deps.Services.ApplicationService, lgr)
	deps.LookupController = controllers.NewLookupController(deps.Services.LookupService)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)
	deps.RateLimiter = middleware.NewRateLimiter(setupRedis(cfg, lgr), cfg.RateLimit.Rate, cfg.RateLimit.Burst, lgr)

	return deps, nil
}

// setupRedis connects to Redis for rate limiting. A nil return disables
// the limiter.
func setupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, rate limiting disabled")
		client.Close()
		return nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established for rate limiting")
	return client
}

// SetupRouter creates the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Logging.Level) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.StudentController,
		deps.CompanyController,
		deps.PlacementController,
		deps.ApplicationController,
		deps.LookupController,
		deps.AuthMiddleware,
		deps.RateLimiter,
	)

	return router
}

// requestLogger logs each request with method, path, status and latency
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := lgr.Info()
		if c.Writer.Status() >= 500 {
			event = lgr.Error()
		} else if c.Writer.Status() >= 400 {
			event = lgr.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("Request handled")
	}
}
