package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/config"
	deliveryHttp "github.com/ryderthieu/hospital-management-sub003/internal/delivery/http"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/http/handler"
	"github.com/ryderthieu/hospital-management-sub003/internal/delivery/http/middleware"
	"github.com/ryderthieu/hospital-management-sub003/internal/infrastructure/cache"
	"github.com/ryderthieu/hospital-management-sub003/internal/infrastructure/database"
	"github.com/ryderthieu/hospital-management-sub003/internal/repository"
	"github.com/ryderthieu/hospital-management-sub003/internal/usecase"
	"github.com/ryderthieu/hospital-management-sub003/pkg/jwt"
	"github.com/ryderthieu/hospital-management-sub003/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Redis only backs the directory read-through cache; the dashboard can
	// still serve views without it.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logrus.Warnf("Redis unavailable, directory lookups will hit the database: %+v", err)
		redisClient = nil
	}
	app.RedisClient = redisClient

	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	log := logrus.StandardLogger()

	// Data sources
	scheduleSource := repository.NewScheduleSource(db)
	appointmentSource := repository.NewAppointmentSource(db)
	directorySource := repository.NewDirectorySource(db, redisClient, log, cfg.View.DirectoryTTL)

	// Usecases
	queryUsecase := usecase.NewAppointmentQueryUsecase(log, appointmentSource, directorySource)
	registry := usecase.NewViewEngineRegistry(scheduleSource, directorySource, queryUsecase, cfg.View.CacheTTL, cfg.View.PageSize, log)

	// Handlers
	scheduleViewHandler := handler.NewScheduleViewHandler(registry, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(queryUsecase, customValidator)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Router
	router := deliveryHttp.NewRouter(scheduleViewHandler, appointmentHandler, authMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
