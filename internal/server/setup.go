package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelms/internal/app/controllers"
	"github.com/yigit/hostelms/internal/app/migrations"
	"github.com/yigit/hostelms/internal/app/repositories"
	"github.com/yigit/hostelms/internal/app/routes"
	"github.com/yigit/hostelms/internal/app/services"
	"github.com/yigit/hostelms/internal/config"
	"github.com/yigit/hostelms/internal/db"
	"github.com/yigit/hostelms/internal/middleware"
	pkgAuth "github.com/yigit/hostelms/internal/pkg/auth"
	"github.com/yigit/hostelms/internal/pkg/email"
	"github.com/yigit/hostelms/internal/pkg/logger"
	"github.com/yigit/hostelms/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	JWTService   *pkgAuth.JWTService
	EmailService email.EmailService

	Repos struct {
		UserRepository    *repositories.UserRepository
		RoomRepository    *repositories.RoomRepository
		LeaveRepository   *repositories.LeaveRequestRepository
		PaymentRepository *repositories.PaymentRepository
		TokenRepository   *repositories.TokenRepository
	}

	TokenSweeper *services.TokenSweeper

	AuthService      services.AuthService
	UserService      services.UserService
	RoomService      services.RoomService
	LeaveService     services.LeaveRequestService
	PaymentService   services.PaymentService
	DashboardService services.DashboardService

	AuthMiddleware *middleware.AuthMiddleware

	AuthController      *controllers.AuthController
	UserController      *controllers.UserController
	RoomController      *controllers.RoomController
	LeaveController     *controllers.LeaveRequestController
	PaymentController   *controllers.PaymentController
	DashboardController *controllers.DashboardController
}

// LoadConfigAndSetupLogger loads configuration and configures logging
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, logger.Get(), nil
}

// SetupDatabase connects, migrates and optionally seeds the database
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), database.Pool); err != nil {
			lgr.Warn().Err(err).Msg("Failed to seed default data")
		}
	}

	return database.Pool, nil
}

// BuildDependencies wires repositories, services, middleware and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos.UserRepository = repositories.NewUserRepository(dbPool)
	deps.Repos.RoomRepository = repositories.NewRoomRepository(dbPool)
	deps.Repos.LeaveRepository = repositories.NewLeaveRequestRepository(dbPool)
	deps.Repos.PaymentRepository = repositories.NewPaymentRepository(dbPool)
	deps.Repos.TokenRepository = repositories.NewTokenRepository(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: config.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.AuthService = services.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
		config.ParseDuration(cfg.Tokens.VerificationExpiration, 24*time.Hour),
		config.ParseDuration(cfg.Tokens.PasswordResetExpiration, 1*time.Hour),
		lgr,
	)
	deps.UserService = services.NewUserService(deps.Repos.UserRepository)
	deps.RoomService = services.NewRoomService(deps.Repos.RoomRepository, deps.Repos.UserRepository)
	deps.LeaveService = services.NewLeaveRequestService(deps.Repos.LeaveRepository)
	deps.PaymentService = services.NewPaymentService(deps.Repos.PaymentRepository, deps.Repos.UserRepository)
	deps.DashboardService = services.NewDashboardService(
		deps.Repos.UserRepository,
		deps.Repos.RoomRepository,
		deps.Repos.LeaveRepository,
		deps.Repos.PaymentRepository,
	)

	deps.TokenSweeper = services.NewTokenSweeper(
		deps.Repos.TokenRepository,
		config.ParseDuration(cfg.Tokens.CleanupInterval, 1*time.Hour),
		lgr,
	)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService)
	deps.UserController = controllers.NewUserController(deps.UserService)
	deps.RoomController = controllers.NewRoomController(deps.RoomService)
	deps.LeaveController = controllers.NewLeaveRequestController(deps.LeaveService)
	deps.PaymentController = controllers.NewPaymentController(deps.PaymentService)
	deps.DashboardController = controllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	routes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.RoomController,
		deps.LeaveController,
		deps.PaymentController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	return router
}
