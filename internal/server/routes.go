package server

import (
	"context"
	"net/http"
	"os"
	"time"

	accountsHandler "account_service/internal/accounts/handler"
	accountsRepository "account_service/internal/accounts/repository"
	accountsUsecase "account_service/internal/accounts/usecase"
	authHandler "account_service/internal/auth/handler"
	authRepository "account_service/internal/auth/repository"
	authUsecase "account_service/internal/auth/usecase"
	sessionMiddleware "account_service/internal/middleware"
	"account_service/pkg/logger"
	"account_service/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Validator = validator.NewEchoValidator()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XFrameOptions:         "DENY",
		ContentTypeNosniff:    "nosniff",
		XSSProtection:         "1; mode=block",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(100),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
		},
	}))
	e.Use(middleware.BodyLimit("5MB"))
	sessionMiddleware.InitSessionMiddleware(s.db.Pool())

	e.GET("/health", s.healthHandler)

	apiGroup := e.Group("")
	s.setupAuthRoutes(e, apiGroup)
	s.setupAccountRoutes(apiGroup)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func (s *Server) setupAuthRoutes(e *echo.Echo, apiGroup *echo.Group) {
	store := authRepository.NewAccountStore(s.db)
	uc := authUsecase.NewAuthService(store, s.mailer)
	h := authHandler.NewAuthHandler(uc)

	authGroup := apiGroup.Group("/auth")
	h.Bind(authGroup)
	h.BindActivation(e)

	s.bootstrapAdmin(uc)
}

func (s *Server) setupAccountRoutes(apiGroup *echo.Group) {
	store := accountsRepository.NewAccountStore(s.db)
	uc := accountsUsecase.NewAccountUsecase(store, s.uploader)
	h := accountsHandler.NewAccountHandler(uc)

	usersGroup := apiGroup.Group("/users", sessionMiddleware.TokenSessionMiddleware())
	h.Bind(usersGroup)

	adminGroup := usersGroup.Group("", sessionMiddleware.RequireAdmin())
	h.BindAdmin(adminGroup)
}

// bootstrapAdmin provisions the superuser named by the environment at
// startup, so a fresh deployment has a privileged account to manage others.
func (s *Server) bootstrapAdmin(uc authUsecase.AuthUsecase) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := uc.EnsureAdminAccount(ctx, authUsecase.RegisterInput{
			Email:     adminEmail,
			FirstName: "Admin",
			LastName:  "User",
			Gender:    "M",
			Password:  adminPassword,
		})
		if err != nil {
			logger.Error("Failed to bootstrap admin account:", err)
		}
	}()
}
