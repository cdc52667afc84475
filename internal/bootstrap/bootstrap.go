package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/controllers"
	"github.com/dawitf/ece-backend/internal/app/migrations"
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/app/routes"
	"github.com/dawitf/ece-backend/internal/app/services"
	"github.com/dawitf/ece-backend/internal/config"
	"github.com/dawitf/ece-backend/internal/db"
	"github.com/dawitf/ece-backend/internal/middleware"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/email"
	"github.com/dawitf/ece-backend/internal/pkg/filestorage"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
	"github.com/dawitf/ece-backend/internal/seed"
)

// Application holds the assembled dependency graph.
type Application struct {
	Config *config.Config
	DB     *db.PostgresDB
	Router *gin.Engine
}

// InitializeApplication wires configuration, database, migrations, seed
// data and the HTTP layer into a runnable application.
func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}

	if err := migrations.Migrate(ctx, database.Pool); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	if err := seed.Run(ctx, database.Pool, cfg); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	mailService := email.NewMailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, logger.Logger())

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("storage initialization failed: %w", err)
	}

	repos := repositories.NewRepositories(database.Pool)
	svc := services.NewServices(repos, jwtService, mailService, storage, cfg)
	ctrl := controllers.NewControllers(svc)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	routes.Setup(router, ctrl, jwtService, cfg.Server.StoragePath)

	return &Application{
		Config: cfg,
		DB:     database,
		Router: router,
	}, nil
}

// Close releases application resources.
func (a *Application) Close() {
	a.DB.Close()
}
