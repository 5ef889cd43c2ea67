package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/guda/guda-backend/docs"
	"github.com/guda/guda-backend/internal/api/handler"
	"github.com/guda/guda-backend/internal/api/middleware"
	"github.com/guda/guda-backend/internal/core/ports"
	"github.com/guda/guda-backend/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Users        ports.UserService
	Transactions ports.TransactionService
	Contacts     ports.ContactService
	Admins       ports.AdminService
	Themes       ports.ThemeService

	// Mongo and Redis back the readiness probe. Redis may be nil.
	Mongo *mongo.Database
	Redis *redis.Client

	MaxUploadBytes int64
	Logger         zerolog.Logger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(middleware.CORS())
	e.Use(prometheusMiddleware(d.Registry))

	users := handler.NewUserHandler(d.Users, d.MaxUploadBytes)
	txs := handler.NewTransactionHandler(d.Transactions)
	contacts := handler.NewContactHandler(d.Contacts)
	admins := handler.NewAdminHandler(d.Admins, d.MaxUploadBytes)
	themes := handler.NewThemeHandler(d.Themes)

	api := e.Group("/api")

	// --- User routes ---
	api.POST("/auth/wallet", users.Authenticate)
	api.POST("/user", users.Register)
	api.PUT("/user", users.UpdateProfile)
	api.POST("/user/profile-pic", users.UploadProfilePic)
	api.POST("/user/document", users.UploadDocument)
	api.GET("/user/document/:index", users.DownloadDocument)
	api.GET("/user/wallet/:walletAddress", users.GetByWallet)
	api.GET("/user/balances/:walletAddress", users.Balances)

	// --- Transaction routes ---
	api.POST("/user/transaction", txs.Save)
	api.PUT("/user/transaction/:walletAddress", txs.UpdateStatus)
	api.GET("/user/transactions/history/:walletAddress", txs.History)
	api.GET("/user/transactions/recent", txs.Recent)
	api.GET("/user/transactions/status/:walletAddress", txs.ByStatus)
	api.GET("/user/transactions/type/:walletAddress", txs.ByType)
	api.GET("/user/transactions/count/:walletAddress", txs.CountByStatus)

	// --- Contact routes ---
	api.POST("/contacts", contacts.Create)
	api.GET("/contacts/:walletAddress", contacts.List)
	api.GET("/contacts/favorites/:walletAddress", contacts.Favorites)
	api.PUT("/contacts/:contactId", contacts.Update)
	api.DELETE("/contacts/:contactId", contacts.Delete)

	// --- Admin routes (admin gate runs inside each service call) ---
	admin := api.Group("/admin")
	admin.POST("/auth/wallet", admins.Authenticate)
	admin.POST("", admins.Create)
	admin.GET("", admins.List)
	admin.GET("/by-wallet", admins.Self)
	admin.PUT("", admins.Update)
	admin.POST("/profile-pic", admins.UploadProfilePic)
	admin.DELETE("", admins.Delete)
	admin.PUT("/user/kyc/:walletAddress", admins.SetUserKYC)
	admin.GET("/users", admins.ListUsers)
	admin.DELETE("/user", admins.DeleteUser)
	admin.GET("/transactions/count", admins.CountAllTransactions)

	// --- Theme routes ---
	css := api.Group("/css")
	css.POST("", themes.Create)
	css.GET("", themes.List)
	css.GET("/:id", themes.Get)
	css.PUT("/:id", themes.Update)
	css.DELETE("/:id", themes.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Namespace: "guda"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
