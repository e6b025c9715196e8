package app

import (
	"context"
	"errors"
	"fmt"

	"trailbook_backend/database"
	"trailbook_backend/internal/auth"
	"trailbook_backend/internal/config"
	"trailbook_backend/internal/email"
	"trailbook_backend/internal/handlers"
	"trailbook_backend/internal/logger"
	"trailbook_backend/internal/middleware"
	"trailbook_backend/internal/models"
	"trailbook_backend/internal/repositories"
	"trailbook_backend/internal/routes"
	"trailbook_backend/internal/services"
	"trailbook_backend/internal/validator"
	"trailbook_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	reminder := workers.NewReminderWorker(gormDB, newEmailProvider(cfg))
	reminder.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// Tests call it directly with their own *gorm.DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := InitializeServices(cfg, gormDB)

	verifier := auth.NewHSVerifier(cfg.Identity.TokenSecret, cfg.Identity.Issuer)
	authMiddleware := middleware.AuthMiddleware(verifier, serviceContainer.UserService)

	appHandlers := handlers.NewAppHandlers(validator.New(), serviceContainer, authMiddleware)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

// InitializeServices builds the full service graph over a live database
// handle. Exported so integration tests can reach services directly.
func InitializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	hikeRepo := repositories.NewHikeRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	roleRequestRepo := repositories.NewRoleRequestRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)

	notificationService := services.NewNotificationService(emailProvider)
	userService := services.NewUserService(userRepo)
	hikeService := services.NewHikeService(hikeRepo, userRepo, bookingRepo, reviewRepo, notificationService)
	bookingService := services.NewBookingService(bookingRepo, hikeRepo, userRepo, notificationService)
	roleRequestService := services.NewRoleRequestService(roleRequestRepo, userRepo, notificationService)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, hikeRepo, userRepo)
	lifecycleService := services.NewAccountLifecycleService(userRepo)

	return &services.ServiceContainer{
		UserService:         userService,
		HikeService:         hikeService,
		BookingService:      bookingService,
		RoleRequestService:  roleRequestService,
		ReviewService:       reviewService,
		LifecycleService:    lifecycleService,
		NotificationService: notificationService,
	}
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, outbound email goes to the log only")
		return &LogEmailProvider{}
	}
	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)
	return ginRouter
}

// seedFirstAdmin promotes (or creates) the configured identity as the first
// admin account. Identity is external, so the seed is keyed by provider
// subject and email rather than a password.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	externalID := cfg.FirstAdmin.ExternalID
	adminEmail := cfg.FirstAdmin.Email

	if externalID == "" || adminEmail == "" {
		logger.Warn("FIRST_ADMIN not configured, skipping admin seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("external_id = ?", externalID).First(&existing).Error

		if err == nil {
			if existing.Role == models.UserRoleAdmin {
				logger.Info("Admin user already exists, skipping seed", "email", existing.Email)
				return nil
			}
			logger.Warn("Promoting existing user to admin", "email", existing.Email)
			return tx.Model(&existing).Update("role", models.UserRoleAdmin).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		displayName := cfg.FirstAdmin.DisplayName
		if displayName == "" {
			displayName = "Administrator"
		}

		logger.Warn("No admin user found, creating first admin", "email", adminEmail)
		newAdmin := &models.User{
			ExternalID:  externalID,
			Email:       adminEmail,
			DisplayName: displayName,
			Role:        models.UserRoleAdmin,
			Status:      models.UserStatusActive,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Successfully created first admin user", "email", adminEmail)
		return nil
	})
}
