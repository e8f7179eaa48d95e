package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/grocery/backend/internal/application/catalog"
	appevent "github.com/grocery/backend/internal/application/event"
	identityapp "github.com/grocery/backend/internal/application/identity"
	orderapp "github.com/grocery/backend/internal/application/order"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/auth"
	"github.com/grocery/backend/internal/infrastructure/cache"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/grocery/backend/internal/infrastructure/event"
	"github.com/grocery/backend/internal/infrastructure/logger"
	"github.com/grocery/backend/internal/infrastructure/persistence"
	"github.com/grocery/backend/internal/infrastructure/storage"
	"github.com/grocery/backend/internal/infrastructure/telemetry"
	"github.com/grocery/backend/internal/interfaces/http/handler"
	"github.com/grocery/backend/internal/interfaces/http/middleware"
	"github.com/grocery/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/grocery/backend/docs"
)

//	@title			Grocery Backend API
//	@version		1.0
//	@description	Grocery ordering backend: catalog, inventory-checked orders and user administration.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/grocery/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Bootstrap logger until the OTLP log bridge is available
	bootLog, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, cfg.App.Version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, cfg.Log, cfg.App.Version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log provider", zap.Error(err))
	}

	var extraCores []zapcore.Core
	if cfg.Log.OTLPExport && logProvider.IsEnabled() {
		extraCores = append(extraCores, logProvider.ZapCore())
	}
	log, err := logger.New(cfg.Log, extraCores...)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	// Flushed last so shutdown logs still reach the collector
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for name, shutdown := range map[string]func(context.Context) error{
			"tracer": tracerProvider.Shutdown,
			"meter":  meterProvider.Shutdown,
			"logs":   logProvider.Shutdown,
		} {
			if err := shutdown(shutdownCtx); err != nil {
				bootLog.Error("Error shutting down telemetry", zap.String("provider", name), zap.Error(err))
			}
		}
	}()

	log.Info("Starting Grocery Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	profiler := telemetry.NewProfiler(cfg.Telemetry, cfg.App.Env, cfg.App.Version, log)
	if err := profiler.Start(); err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else if cfg.Telemetry.ProfilingEnabled {
		tracerProvider.EnableSpanProfiles()
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.DBName); err != nil {
			log.Warn("Failed to instrument database", zap.Error(err))
		}
	}
	if reg, err := telemetry.RegisterDBPoolMetrics(meterProvider.Meter(), db.Stats); err != nil {
		log.Warn("Failed to register database pool metrics", zap.Error(err))
	} else {
		defer func() { _ = reg.Unregister() }()
	}

	// Redis backs token revocation and event idempotency when configured
	var (
		redisClient *redis.Client
		blacklist   auth.TokenBlacklist
	)
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, token revocation is process-local")
	}
	idempotencyStore := cache.NewIdempotencyStore(redisClient, log)

	// Repositories
	groceryRepo := persistence.NewGormGroceryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderItemRepo := persistence.NewGormOrderItemRepository(db.DB)
	ledger := persistence.NewGormInventoryLedger(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	permRepo := persistence.NewGormPermissionRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, permRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)

	groceryService := catalogapp.NewGroceryService(groceryRepo, ledger)
	groceryService.SetLogger(log)
	if cfg.Storage.Enabled() {
		images, err := storage.NewS3ImageStorage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		if err := images.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare image bucket", zap.Error(err))
		}
		groceryService.SetImageStorage(images)
		log.Info("Image storage ready", zap.String("bucket", images.Bucket()))
	} else {
		log.Warn("Image storage not configured, uploads are disabled")
	}

	orderService := orderapp.NewOrderService(orderRepo, orderItemRepo, txScope)
	orderService.SetLogger(log)

	orderMetrics, err := telemetry.NewOrderMetrics(meterProvider.Meter())
	if err != nil {
		log.Fatal("Failed to create order metrics", zap.Error(err))
	}
	orderService.SetMetrics(orderMetrics)

	httpMetrics, err := telemetry.NewHTTPMetrics(meterProvider.Meter())
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	metricsHandler := appevent.NewOrderMetricsHandler(orderMetrics, log)
	eventBus.Subscribe(metricsHandler)
	auditHandler := appevent.NewAuditLogHandler(log)
	eventBus.Subscribe(auditHandler)

	if cfg.Kafka.Enabled() {
		writer, err := event.NewKafkaWriter(cfg.Kafka, tracerProvider.Provider())
		if err != nil {
			log.Fatal("Failed to create kafka writer", zap.Error(err))
		}
		publisher := event.NewKafkaPublisher(writer, event.NewDomainCodec(), event.OrderEventTypes, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Error closing kafka publisher", zap.Error(err))
			}
		}()
		// Only the external side effect is deduplicated; the store is keyed by event id alone
		idempotencyCfg := shared.IdempotencyConfig{TTL: cfg.Event.IdempotencyTTL, Enabled: true}
		eventBus.Subscribe(event.NewIdempotentHandler(publisher, idempotencyStore, idempotencyCfg, log))
		log.Info("Kafka forwarding enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	log.Info("Event handlers registered",
		zap.Strings("order_metrics_events", metricsHandler.EventTypes()),
		zap.Strings("audit_events", auditHandler.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	orderService.SetEventPublisher(eventBus)
	groceryService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	checks := map[string]handler.HealthCheck{
		"database": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Grocery: handler.NewGroceryHandler(groceryService),
		Order:   handler.NewOrderHandler(orderService),
		System:  handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, checks),
	}

	engine := router.NewEngine(router.EngineConfig{
		Logger:     log,
		HTTP:       cfg.HTTP,
		Production: cfg.App.IsProduction(),
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
			Provider:    tracerProvider.Provider(),
			SkipPaths:   []string{"/health", "/ready"},
		},
		Metrics: httpMetrics,
	})

	apiCfg := router.APIConfig{
		Authenticate: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		Swagger: cfg.Swagger,
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		apiCfg.AuthLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	r := router.RegisterAPI(engine, handlers, apiCfg)
	log.Info("Routes registered", zap.String("base_path", r.BasePath()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
