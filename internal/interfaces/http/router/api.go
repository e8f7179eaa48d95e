package router

import (
	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/grocery/backend/internal/interfaces/http/handler"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers mounted by RegisterAPI
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Grocery *handler.GroceryHandler
	Order   *handler.OrderHandler
	System  *handler.SystemHandler
}

// APIConfig holds the cross-cutting pieces of the route table
type APIConfig struct {
	// Authenticate validates the bearer token, normally JWTAuthMiddlewareWithConfig
	Authenticate gin.HandlerFunc
	// AuthLimiter throttles login and refresh per client IP; nil disables it
	AuthLimiter *middleware.RateLimiter
	Swagger     config.SwaggerConfig
}

// RegisterAPI mounts the probes, the API docs and every versioned route
func RegisterAPI(engine *gin.Engine, h Handlers, cfg APIConfig) *Router {
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticated := []gin.HandlerFunc{cfg.Authenticate, middleware.SpanAttributes()}
	perm := middleware.RequirePermission

	throttled := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.AuthLimiter == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{middleware.RateLimit(cfg.AuthLimiter), next}
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", throttled(h.Auth.Login)...)
	authRoutes.POST("/refresh", throttled(h.Auth.Refresh)...)
	authRoutes.Group("session", "").Use(authenticated...).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)

	groceryRoutes := NewDomainGroup("groceries", "/groceries").Use(authenticated...)
	groceryRoutes.GET("", perm(identity.PermGroceryRead), h.Grocery.List)

	orderRoutes := NewDomainGroup("orders", "/orders").Use(authenticated...)
	orderRoutes.GET("", perm(identity.PermOrderRead), h.Order.List)
	orderRoutes.POST("", perm(identity.PermOrderCreate), h.Order.Create)
	orderRoutes.PUT("/:id", perm(identity.PermOrderUpdate), h.Order.UpdateStatus)
	orderRoutes.DELETE("/:id", perm(identity.PermOrderDelete), h.Order.Delete)

	orderItemRoutes := NewDomainGroup("order-items", "/order-items").Use(authenticated...)
	orderItemRoutes.GET("/:id", perm(identity.PermOrderItemRead), h.Order.GetItem)

	userRoutes := NewDomainGroup("users", "/users").Use(authenticated...)
	userRoutes.GET("", perm(identity.PermUserRead), h.User.List)
	userRoutes.POST("", perm(identity.PermUserCreate), h.User.Create)
	userRoutes.PUT("/:id", perm(identity.PermUserUpdate), h.User.Update)
	userRoutes.DELETE("/:id", perm(identity.PermUserDelete), h.User.Delete)

	adminRoutes := NewDomainGroup("admin", "/admin").Use(authenticated...)

	adminGroceries := adminRoutes.Group("admin-groceries", "/groceries")
	adminGroceries.GET("", perm(identity.PermGroceryCreate), h.Grocery.AdminList)
	adminGroceries.POST("", perm(identity.PermGroceryCreate), h.Grocery.Create)
	adminGroceries.PUT("/:id", perm(identity.PermGroceryUpdate), h.Grocery.Update)
	adminGroceries.PATCH("/:id/quantity", perm(identity.PermGroceryUpdate), h.Grocery.UpdateQuantity)
	adminGroceries.POST("/:id/image", perm(identity.PermGroceryUpdate), h.Grocery.UploadImage)
	adminGroceries.DELETE("/:id", perm(identity.PermGroceryDelete), h.Grocery.Delete)

	adminOrders := adminRoutes.Group("admin-orders", "/orders").Use(middleware.RequireAdmin())
	adminOrders.GET("", perm(identity.PermOrderRead), h.Order.AdminList)
	adminOrders.PUT("/:id", perm(identity.PermOrderUpdate), h.Order.AdminUpdateStatus)
	adminOrders.DELETE("/:id", perm(identity.PermOrderDelete), h.Order.AdminDelete)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(authRoutes).
		Register(systemRoutes).
		Register(groceryRoutes).
		Register(orderRoutes).
		Register(orderItemRoutes).
		Register(userRoutes).
		Register(adminRoutes)
	r.Setup()
	return r
}
