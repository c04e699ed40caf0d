package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/veles/academia/internal/app/controllers"
	"github.com/veles/academia/internal/app/migrations"
	"github.com/veles/academia/internal/app/repositories"
	"github.com/veles/academia/internal/app/routes"
	"github.com/veles/academia/internal/app/services"
	"github.com/veles/academia/internal/config"
	"github.com/veles/academia/internal/db"
	"github.com/veles/academia/internal/middleware"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
	"github.com/veles/academia/internal/pkg/filestorage"
	"github.com/veles/academia/internal/pkg/helpers"
	"github.com/veles/academia/internal/pkg/logger"
	"github.com/veles/academia/internal/seed"
)

const migrationsDir = "migrations"

// Dependencies holds the wired application components
type Dependencies struct {
	Services       *services.Services
	Repos          *repositories.Repositories
	JWTService     *pkgauth.JWTService
	FileStorage    filestorage.FileStorage
	AuthMiddleware *middleware.AuthMiddleware

	HomeController          *controllers.HomeController
	AuthController          *controllers.AuthController
	StudentController       *controllers.StudentController
	TeacherController       *controllers.TeacherController
	CourseController        *controllers.CourseController
	GradebookController     *controllers.GradebookController
	StudentPortalController *controllers.StudentPortalController
}

// LoadConfigAndSetupLogger loads the configuration and configures the
// global logger from it. A .env file, when present, is loaded first so
// its values participate in the environment overrides.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	logger.Info().
		Str("mode", cfg.Server.Mode).
		Str("port", cfg.Server.Port).
		Msg("Configuration loaded")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations and
// seeds the default data
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, database.Pool); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed default data: %w", err)
	}

	return database.Pool, nil
}

// BuildDependencies constructs repositories, services, controllers and
// middleware over the connection pool
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	repos := repositories.NewRepositories(dbPool)

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, "uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	svcs := services.NewServices(repos, jwtService, fileStorage, cfg)

	return &Dependencies{
		Services:       svcs,
		Repos:          repos,
		JWTService:     jwtService,
		FileStorage:    fileStorage,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService, repos.Users),

		HomeController:          controllers.NewHomeController(dbPool, jwtService),
		AuthController:          controllers.NewAuthController(svcs.Auth),
		StudentController:       controllers.NewStudentController(svcs.Students),
		TeacherController:       controllers.NewTeacherController(svcs.Teachers),
		CourseController:        controllers.NewCourseController(svcs.Courses, svcs.Enrollments),
		GradebookController:     controllers.NewGradebookController(svcs.Gradebook),
		StudentPortalController: controllers.NewStudentPortalController(svcs.StudentPortal),
	}, nil
}

// SetupRouter builds the gin engine and registers all routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	routes.SetupRouter(
		router,
		deps.HomeController,
		deps.AuthController,
		deps.StudentController,
		deps.TeacherController,
		deps.CourseController,
		deps.GradebookController,
		deps.StudentPortalController,
		deps.AuthMiddleware,
	)

	return router
}
