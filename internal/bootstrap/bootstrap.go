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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/tomwyatt/hillcrest/internal/app/controllers"
	appMigrations "github.com/tomwyatt/hillcrest/internal/app/migrations"
	appRepos "github.com/tomwyatt/hillcrest/internal/app/repositories"
	appRoutes "github.com/tomwyatt/hillcrest/internal/app/routes"
	appServices "github.com/tomwyatt/hillcrest/internal/app/services"
	"github.com/tomwyatt/hillcrest/internal/config"
	"github.com/tomwyatt/hillcrest/internal/db"
	appMiddleware "github.com/tomwyatt/hillcrest/internal/middleware"
	pkgAuth "github.com/tomwyatt/hillcrest/internal/pkg/auth"
	"github.com/tomwyatt/hillcrest/internal/pkg/helpers"
	"github.com/tomwyatt/hillcrest/internal/pkg/logger"
	"github.com/tomwyatt/hillcrest/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	CatalogueService    *appServices.CatalogueService
	EnrolmentService    *appServices.EnrolmentService
	DirectoryService    *appServices.DirectoryService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	CatalogueController *appControllers.CatalogueController
	EnrolmentController *appControllers.EnrolmentController
	DirectoryController *appControllers.DirectoryController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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
	migrator := appMigrations.NewMigrator(dbPool)

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	if _, err := deps.AuthService.PurgeExpiredTokens(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens, proceeding anyway...")
	}

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.CatalogueService = appServices.NewCatalogueService(
		deps.Repos.SubjectRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.EnrolmentService = appServices.NewEnrolmentService(
		deps.Repos.EnrolmentRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		lgr,
	)
	deps.DirectoryService = appServices.NewDirectoryService(deps.Repos.UserRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CatalogueController = appControllers.NewCatalogueController(deps.CatalogueService)
	deps.EnrolmentController = appControllers.NewEnrolmentController(deps.EnrolmentService)
	deps.DirectoryController = appControllers.NewDirectoryController(deps.DirectoryService)

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

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CatalogueController,
		deps.EnrolmentController,
		deps.DirectoryController,
		deps.AuthMiddleware,
	)

	return router
}
