package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/metrics"
	"github.com/polkiloo/ordermart/internal/server/http/handlers"
	"github.com/polkiloo/ordermart/internal/server/http/middleware"
)

// Params lists router dependencies. Metrics and Health are optional.
type Params struct {
	fx.In

	Facade  handlers.Facade
	Logger  *slog.Logger
	Metrics *metrics.Metrics       `optional:"true"`
	Health  handlers.HealthChecker `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	facade, m := p.Facade, p.Metrics
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger, m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/healthz", handlers.NewHealthHandler(p.Health).Ready)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/me", middleware.AuthRequired(facade), authHandler.Me)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/payment", middleware.RequireRole(model.RoleAdmin, model.RoleEmployee), orderHandler.ConfirmPayment)

	admin := api.Group("/admin/orders")
	admin.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleAdmin, model.RoleEmployee))
	admin.PUT("/:id", adminHandler.UpdateDetails)
	admin.POST("/:id/processing", adminHandler.StartProcessing)
	admin.POST("/:id/shipment", adminHandler.Ship)
	admin.POST("/:id/cancellation", adminHandler.Cancel)
	admin.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), adminHandler.Delete)

	return engine
}
