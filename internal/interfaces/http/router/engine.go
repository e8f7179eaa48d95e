package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/grocery/backend/internal/infrastructure/logger"
	"github.com/grocery/backend/internal/infrastructure/telemetry"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig holds what the global middleware chain needs
type EngineConfig struct {
	Logger     *zap.Logger
	HTTP       config.HTTPConfig
	Production bool
	Tracing    middleware.TracingConfig
	// Metrics may be nil
	Metrics *telemetry.HTTPMetrics
}

// NewEngine builds a gin engine with the global middleware chain:
// request id, tracing, request logging, recovery, security headers, CORS,
// body limit and HTTP metrics, in that order.
func NewEngine(cfg EngineConfig) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			cfg.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig(cfg.Production)))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(cfg.Metrics))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(logger.GinRequestIDKey)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Method not allowed", c.GetString(logger.GinRequestIDKey)))
	})

	return engine
}
