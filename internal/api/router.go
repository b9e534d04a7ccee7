package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fluxt/fluxt-api/internal/api/handler"
	"github.com/fluxt/fluxt-api/internal/api/middleware"
	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
	"github.com/fluxt/fluxt-api/internal/core/service"
	"github.com/fluxt/fluxt-api/internal/infrastructure/config"
	mongodb "github.com/fluxt/fluxt-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fluxt/fluxt-api/internal/infrastructure/db/redis"
	"github.com/fluxt/fluxt-api/internal/infrastructure/storage"
	"github.com/fluxt/fluxt-api/internal/pkg/password"
	"github.com/fluxt/fluxt-api/internal/pkg/token"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fluxt"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	fileRepo := mongodb.NewFileRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	blobStore, err := storage.NewLocalStore(cfg.FilesDir)
	if err != nil {
		return nil, err
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec(cfg.SecretKey)

	authService := service.NewAuthService(userRepo, sessionStore, hasher, cfg.AdminPassword, log)
	userService := service.NewUserService(userRepo, fileRepo, codec, hasher, mailer, log)
	fileService := service.NewFileService(fileRepo, blobStore, log)
	messageService := service.NewMessageService(messageRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService)
	messageHandler := handler.NewMessageHandler(messageService)

	authenticated := middleware.Auth(authService)
	adminOnly := middleware.RequireRoles(domain.RoleAdministrator)
	anyRole := middleware.RequireRoles(domain.RoleAdministrator, domain.RoleUser)

	// --- Auth ---
	e.GET("/auth", authHandler.Info, authenticated)
	e.GET("/deauth", authHandler.Deauth)

	// --- Users (administrator only) ---
	e.POST("/users", userHandler.Create, authenticated, adminOnly)
	e.GET("/users", userHandler.List, authenticated, adminOnly)
	e.GET("/users/:id", userHandler.Get, authenticated, adminOnly)
	e.PUT("/users/:id", userHandler.Update, authenticated, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authenticated, adminOnly)
	e.POST("/users/:id/send-created-email", userHandler.SendCreatedEmail, authenticated, adminOnly)

	// --- Password-action token flows (no auth: the token is the capability) ---
	e.GET("/set-password/:token", userHandler.PasswordTokenState)
	e.POST("/set-password/:token", userHandler.SetPassword)
	e.GET("/reset-password/:email", userHandler.SendResetEmail)
	e.POST("/reset-password/:token", userHandler.ResetPassword)

	// --- Messages ---
	e.GET("/messages", messageHandler.List)
	e.POST("/messages", messageHandler.Post)
	e.DELETE("/messages/:id", messageHandler.Delete, authenticated, adminOnly)

	// --- Files ---
	e.POST("/files", fileHandler.Upload, authenticated, anyRole)
	e.GET("/files/:filename", fileHandler.Download)
	e.DELETE("/files/:filename", fileHandler.Delete, authenticated, anyRole)

	// --- Probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
