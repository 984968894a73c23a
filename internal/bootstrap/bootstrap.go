package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jromero/examcal/docs" // Import generated swagger docs
	appAuth "github.com/jromero/examcal/internal/app/auth"
	appControllers "github.com/jromero/examcal/internal/app/controllers"
	appMigrations "github.com/jromero/examcal/internal/app/migrations"
	appRepos "github.com/jromero/examcal/internal/app/repositories"
	appRoutes "github.com/jromero/examcal/internal/app/routes"
	"github.com/jromero/examcal/internal/app/scheduling"
	appServices "github.com/jromero/examcal/internal/app/services"
	"github.com/jromero/examcal/internal/config"
	"github.com/jromero/examcal/internal/db"
	appMiddleware "github.com/jromero/examcal/internal/middleware"
	pkgAuth "github.com/jromero/examcal/internal/pkg/auth"
	"github.com/jromero/examcal/internal/pkg/helpers"
	"github.com/jromero/examcal/internal/pkg/logger"
	"github.com/jromero/examcal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services           *appServices.Services
	AuthController     *appControllers.AuthController
	CatalogController  *appControllers.CatalogController
	ExamController     *appControllers.ExamController
	CalendarController *appControllers.CalendarController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	AuthzService       *appAuth.AuthorizationService
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	ConflictIndex      *scheduling.ConflictIndex
	Logger             zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers, and
// primes the shared conflict index from persisted exams.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.ConflictIndex = scheduling.NewConflictIndex()
	deps.Services = appServices.NewServices(database, deps.Repos, deps.JWTService, deps.ConflictIndex)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := deps.Services.ExamService.PrimeConflictIndex(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to prime conflict index")
		return nil, fmt.Errorf("failed to prime conflict index: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.CatalogService)
	deps.ExamController = appControllers.NewExamController(deps.Services.ExamService, deps.AuthzService)
	deps.CalendarController = appControllers.NewCalendarController(deps.Services.CalendarService, deps.AuthzService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.ExamController,
		deps.CalendarController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
