package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/api/handler"
	"github.com/codeologic/whatsapp-dashboard/internal/api/middleware"
	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
	"github.com/codeologic/whatsapp-dashboard/internal/core/service"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/config"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/db/memory"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, store *memory.Store, gateway ports.MessagingGateway, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("whatsapp_dashboard"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Dependencies ---
	users := memory.NewUserRepository(store)
	templates := memory.NewTemplateRepository(store)
	messages := memory.NewMessageRepository(store)
	campaigns := memory.NewCampaignRepository(store)
	activity := memory.NewActivityRepository(store)

	tokenTTL := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authService := service.NewAuthService(users, activity, cfg.JWTSecret, tokenTTL, log)
	messageService := service.NewMessageService(gateway, templates, messages, campaigns, activity, log)
	templateService := service.NewTemplateService(templates, activity, log)
	userService := service.NewUserService(users, activity, cfg.MaxUsers, log)
	analyticsService := service.NewAnalyticsService(messages, templates, campaigns, users, activity, log)

	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(authService)
	messageHandler := handler.NewMessageHandler(messageService)
	templateHandler := handler.NewTemplateHandler(templateService)
	userHandler := handler.NewUserHandler(userService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	webhookHandler := handler.NewWebhookHandler(messageService, cfg.WhatsApp.VerifyToken, log)

	authMW := middleware.Auth(cfg.JWTSecret)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	// --- Service banner and health probe ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authMW)
	auth.GET("/me", authHandler.Me, authMW)
	auth.POST("/change-password", authHandler.ChangePassword, authMW)

	// --- Messaging ---
	msgs := e.Group("/api/messages", authMW)
	msgs.POST("/send", messageHandler.Send)
	msgs.POST("/bulk", messageHandler.SendBulk)
	msgs.GET("/logs", messageHandler.Logs)
	msgs.GET("/campaigns", messageHandler.Campaigns)
	msgs.GET("/campaigns/:id", messageHandler.Campaign)

	// --- Templates ---
	tmpl := e.Group("/api/templates", authMW)
	tmpl.GET("", templateHandler.List)
	tmpl.GET("/:id", templateHandler.Get)
	tmpl.POST("", templateHandler.Create)
	tmpl.PUT("/:id", templateHandler.Update)
	tmpl.DELETE("/:id", templateHandler.Delete, adminMW)
	tmpl.POST("/:id/approve", templateHandler.Approve, adminMW)

	// --- Users ---
	usersGroup := e.Group("/api/users", authMW)
	usersGroup.GET("", userHandler.List)
	usersGroup.POST("", userHandler.Create, adminMW)
	usersGroup.PUT("/:id", userHandler.Update, adminMW)
	usersGroup.DELETE("/:id", userHandler.Deactivate, adminMW)

	// --- Analytics ---
	analytics := e.Group("/api/analytics", authMW)
	analytics.GET("/overview", analyticsHandler.Overview)
	analytics.GET("/activity-logs", analyticsHandler.ActivityLogs)

	// --- Provider webhook (unauthenticated) ---
	e.GET("/api/webhook", webhookHandler.Verify)
	e.POST("/api/webhook", webhookHandler.Receive)

	return e
}
