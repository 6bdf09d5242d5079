package app

import (
	"fmt"

	"flatmates_backend/database"
	"flatmates_backend/internal/config"
	"flatmates_backend/internal/handlers"
	"flatmates_backend/internal/logger"
	"flatmates_backend/internal/middleware"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/routes"
	"flatmates_backend/internal/services"
	"flatmates_backend/internal/utils"
	"flatmates_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run loads configuration, connects to the database, runs migrations
// and serves HTTP until the process exits.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	if err := repositories.NewUserRepository().CleanExpiredRefreshTokens(gormDB); err != nil {
		logger.Warn("Failed to clean expired refresh tokens", "error", err)
	}

	emailSender := newEmailSender(cfg)
	ginRouter := SetupRouter(cfg, gormDB, emailSender)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. Tests call this
// directly with their own database handle and a mock email sender.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, emailSender utils.EmailSender) *gin.Engine {
	validator.RegisterGinValidations()

	serviceContainer := services.NewServiceContainer(cfg, emailSender)
	appHandlers := handlers.NewAppHandlers(validator.New(), serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func newEmailSender(cfg *config.Config) utils.EmailSender {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
		return &MockEmailSender{}
	}
	return utils.NewEmailSender(cfg)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
