package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/storemgmt/store-management-api/docs"
	"github.com/storemgmt/store-management-api/internal/api/handler"
	"github.com/storemgmt/store-management-api/internal/api/middleware"
	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/service"
	"github.com/storemgmt/store-management-api/internal/infrastructure/config"
	"github.com/storemgmt/store-management-api/internal/infrastructure/db/postgres"
	redisdb "github.com/storemgmt/store-management-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("store"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	tokenTTL := time.Duration(cfg.JWTExpiration) * time.Second
	authService := service.NewAuthService(userRepo, limiter, cfg.JWTSecret, tokenTTL, log)
	productService := service.NewProductService(productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	// --- Public routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected routes ---
	// RBAC is set membership per route; roles carry no hierarchy.
	anyRole := middleware.RBAC(domain.RoleUser, domain.RoleManager, domain.RoleAdmin)
	staff := middleware.RBAC(domain.RoleManager, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	products := e.Group("/api/products", middleware.Auth(cfg.JWTSecret))
	products.POST("", productHandler.Create, staff)
	products.GET("", productHandler.List, anyRole)
	products.GET("/search", productHandler.Search, anyRole)
	products.GET("/price-range", productHandler.PriceRange, anyRole)
	products.GET("/low-stock", productHandler.LowStock, staff)
	products.GET("/category/:category", productHandler.ByCategory, anyRole)
	products.GET("/:id", productHandler.Get, anyRole)
	products.PUT("/:id/price", productHandler.ChangePrice, staff)
	products.PUT("/:id/stock", productHandler.UpdateStock, staff)
	products.PATCH("/:id/stock/increment", productHandler.IncrementStock, staff)
	products.PATCH("/:id/stock/decrement", productHandler.DecrementStock, staff)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	return e
}
