package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	artikelapp "github.com/fleischhandel/backend/internal/application/artikel"
	auftragapp "github.com/fleischhandel/backend/internal/application/auftrag"
	bestandapp "github.com/fleischhandel/backend/internal/application/bestand"
	kundeapp "github.com/fleischhandel/backend/internal/application/kunde"
	mitarbeiterapp "github.com/fleischhandel/backend/internal/application/mitarbeiter"
	preisapp "github.com/fleischhandel/backend/internal/application/preis"
	tourapp "github.com/fleischhandel/backend/internal/application/tour"
	zerlegungapp "github.com/fleischhandel/backend/internal/application/zerlegung"
	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/fleischhandel/backend/internal/infrastructure/cache"
	"github.com/fleischhandel/backend/internal/infrastructure/config"
	"github.com/fleischhandel/backend/internal/infrastructure/event"
	"github.com/fleischhandel/backend/internal/infrastructure/logger"
	"github.com/fleischhandel/backend/internal/infrastructure/persistence"
	"github.com/fleischhandel/backend/internal/infrastructure/telemetry"
	"github.com/fleischhandel/backend/internal/interfaces/http/handler"
	"github.com/fleischhandel/backend/internal/interfaces/http/middleware"
	"github.com/fleischhandel/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Fleischhandel Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers (no-ops when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logs provider", zap.Error(err))
		}
	}()

	// When the logs bridge is active, replace the plain logger with one
	// that also exports to the OTLP collector
	if logsProvider.IsEnabled() {
		bridged, err := telemetry.CreateBridgedLoggerFromConfig(&telemetry.BaseLoggerConfig{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			Output:     cfg.Log.Output,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		}, logsProvider, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Warn("Failed to create bridged logger, keeping plain logger", zap.Error(err))
		} else {
			log = bridged
		}
	}

	// Continuous profiling via Pyroscope (no-op when disabled)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilerEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerEndpoint,
		ApplicationName:   cfg.Telemetry.ServiceName,
		ProfileCPU:        true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}
	if profiler != nil && profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	db.DB.Logger = logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	log.Info("Database connected successfully")

	// Database tracing and pool metrics
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
	dbMetricsCfg.Enabled = cfg.Telemetry.Enabled
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	} else if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	// Redis client for health checks; the idempotency store factory opens
	// its own connection and falls back to memory when Redis is down
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	// Initialize repositories
	artikelRepo := persistence.NewGormArtikelRepository(db.DB)
	kundeRepo := persistence.NewGormKundeRepository(db.DB)
	verkaeuferRepo := persistence.NewGormVerkaeuferRepository(db.DB)
	mitarbeiterRepo := persistence.NewGormMitarbeiterRepository(db.DB)
	preisRepo := persistence.NewGormKundenPreisRepository(db.DB)
	auftragRepo := persistence.NewGormAuftragRepository(db.DB)
	tourRepo := persistence.NewGormTourRepository(db.DB)
	regionRuleRepo := persistence.NewGormRegionRuleRepository(db.DB)
	vorlageRepo := persistence.NewGormVorlageRepository(db.DB)
	chargeRepo := persistence.NewGormChargeRepository(db.DB)
	bewegungRepo := persistence.NewGormBewegungRepository(db.DB)
	zerlegungRepo := persistence.NewGormZerlegungRepository(db.DB)

	// Idempotency store (Redis, in-memory fallback)
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idemStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idemStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Event bus with the tour sync handler: order lifecycle events keep
	// tour stops in sync without the auftrag context calling into touren
	eventBus := event.NewInMemoryEventBus(log)
	tourSync := tourapp.NewTourSyncHandler(tourRepo, vorlageRepo, kundeRepo, cfg.Tour, log)
	eventBus.Subscribe(event.NewIdempotentHandler(tourSync, idemStore, log))
	log.Info("Event handlers registered", zap.Strings("tour_sync_events", tourSync.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	artikelService := artikelapp.NewArtikelService(artikelRepo)
	kundeService := kundeapp.NewKundeService(kundeRepo)
	verkaeuferService := kundeapp.NewVerkaeuferService(verkaeuferRepo)
	mitarbeiterService := mitarbeiterapp.NewMitarbeiterService(mitarbeiterRepo)
	preisService := preisapp.NewPreisService(preisRepo, kundeRepo, artikelRepo)
	auftragService := auftragapp.NewAuftragService(auftragRepo, kundeRepo, artikelRepo, preisRepo, regionRuleRepo, eventBus, log)
	tourService := tourapp.NewTourService(tourRepo, cfg.Tour, log)
	regionRuleService := tourapp.NewRegionRuleService(regionRuleRepo)
	vorlageService := tourapp.NewVorlageService(vorlageRepo)
	bestandService := bestandapp.NewBestandService(chargeRepo, bewegungRepo, artikelRepo, log)
	zerlegungService := zerlegungapp.NewZerlegungService(zerlegungRepo, artikelRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not reachable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	authService := mitarbeiterapp.NewAuthService(mitarbeiterRepo, jwtService, blacklist, log)

	// Business metrics with periodic stock gauge collection
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter(cfg.Telemetry.ServiceName),
			Logger:          log,
			BestandProvider: telemetry.NewGormBestandMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			auftragService.SetBusinessMetrics(businessMetrics)
			tourService.SetBusinessMetrics(businessMetrics)
			bestandService.SetBusinessMetrics(businessMetrics)
			businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize HTTP handlers
	artikelHandler := handler.NewArtikelHandler(artikelService)
	kundeHandler := handler.NewKundeHandler(kundeService, preisService)
	verkaeuferHandler := handler.NewVerkaeuferHandler(verkaeuferService)
	mitarbeiterHandler := handler.NewMitarbeiterHandler(mitarbeiterService)
	auftragHandler := handler.NewAuftragHandler(auftragService)
	tourHandler := handler.NewTourHandler(tourService)
	regionRuleHandler := handler.NewRegionRuleHandler(regionRuleService)
	vorlageHandler := handler.NewVorlageHandler(vorlageService)
	bestandHandler := handler.NewBestandHandler(bestandService)
	zerlegungHandler := handler.NewZerlegungHandler(zerlegungService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(db.DB, redisClient)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics/Profiling - Telemetry per request
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	if cfg.Telemetry.ProfilerEnabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		"/api/v1/ping",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Authentication (login/refresh are public via JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.POST("/login", middleware.AuthRateLimit(authLimiter), authHandler.Login)
	} else {
		authRoutes.POST("/login", authHandler.Login)
	}
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentMitarbeiter)
	authRoutes.PUT("/passwort", authHandler.ChangePasswort)

	// Artikel catalog: reads for all authenticated staff, writes for lager
	artikelRoutes := router.NewDomainGroup("artikel", "/artikel")
	artikelRoutes.GET("", artikelHandler.List)
	artikelRoutes.GET("/:id", artikelHandler.GetByID)
	artikelRoutes.POST("", middleware.RequireRollen(mitarbeiter.RolleLager), artikelHandler.Create)
	artikelRoutes.PUT("/:id", middleware.RequireRollen(mitarbeiter.RolleLager), artikelHandler.Update)
	artikelRoutes.PUT("/:id/ausverkauft", middleware.RequireRollen(mitarbeiter.RolleLager, mitarbeiter.RolleVerkauf), artikelHandler.SetAusverkauft)
	artikelRoutes.PUT("/:id/aktiv", middleware.RequireRollen(mitarbeiter.RolleLager), artikelHandler.SetAktiv)
	artikelRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), artikelHandler.Delete)

	// Kunden with nested customer prices
	kundenRoutes := router.NewDomainGroup("kunden", "/kunden")
	kundenRoutes.GET("", kundeHandler.List)
	kundenRoutes.GET("/:id", kundeHandler.GetByID)
	kundenRoutes.POST("", middleware.RequireRollen(mitarbeiter.RolleVerkauf), kundeHandler.Create)
	kundenRoutes.PUT("/:id", middleware.RequireRollen(mitarbeiter.RolleVerkauf), kundeHandler.Update)
	kundenRoutes.POST("/:id/genehmigen", middleware.RequireRolle(mitarbeiter.RolleAdmin), kundeHandler.Genehmigen)
	kundenRoutes.PUT("/:id/aktiv", middleware.RequireRollen(mitarbeiter.RolleVerkauf), kundeHandler.SetAktiv)
	kundenRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), kundeHandler.Delete)
	kundenRoutes.POST("/:id/preise", middleware.RequireRollen(mitarbeiter.RolleVerkauf), kundeHandler.SetPreis)
	kundenRoutes.GET("/:id/preise", kundeHandler.ListPreise)
	kundenRoutes.GET("/:id/preise/effektiv", kundeHandler.GetEffektiverPreis)
	kundenRoutes.DELETE("/:id/preise/:preisId", middleware.RequireRollen(mitarbeiter.RolleVerkauf), kundeHandler.DeletePreis)

	// Verkaeufer management
	verkaeuferRoutes := router.NewDomainGroup("verkaeufer", "/verkaeufer")
	verkaeuferRoutes.GET("", verkaeuferHandler.List)
	verkaeuferRoutes.GET("/:id", verkaeuferHandler.GetByID)
	verkaeuferRoutes.POST("", middleware.RequireRolle(mitarbeiter.RolleAdmin), verkaeuferHandler.Create)
	verkaeuferRoutes.PUT("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), verkaeuferHandler.Update)
	verkaeuferRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), verkaeuferHandler.Delete)

	// Mitarbeiter management is admin-only
	mitarbeiterRoutes := router.NewDomainGroup("mitarbeiter", "/mitarbeiter")
	mitarbeiterRoutes.Use(middleware.RequireRolle(mitarbeiter.RolleAdmin))
	mitarbeiterRoutes.POST("", mitarbeiterHandler.Create)
	mitarbeiterRoutes.GET("", mitarbeiterHandler.List)
	mitarbeiterRoutes.GET("/:id", mitarbeiterHandler.GetByID)
	mitarbeiterRoutes.PUT("/:id", mitarbeiterHandler.Update)
	mitarbeiterRoutes.PUT("/:id/rollen", mitarbeiterHandler.SetRollen)
	mitarbeiterRoutes.PUT("/:id/aktiv", mitarbeiterHandler.SetAktiv)
	mitarbeiterRoutes.POST("/:id/passwort-reset", mitarbeiterHandler.ResetPasswort)
	mitarbeiterRoutes.DELETE("/:id", mitarbeiterHandler.Delete)

	// Auftraege: capture by verkauf, fulfillment by kommissionierung/kontrolle
	auftragRoutes := router.NewDomainGroup("auftraege", "/auftraege")
	if cfg.Idempotency.Enabled {
		auftragRoutes.POST("",
			middleware.RequireRollen(mitarbeiter.RolleVerkauf),
			middleware.Idempotency(idemStore, cfg.Idempotency.TTL),
			auftragHandler.Create)
	} else {
		auftragRoutes.POST("", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.Create)
	}
	auftragRoutes.GET("", auftragHandler.List)
	auftragRoutes.GET("/:id", auftragHandler.GetByID)
	auftragRoutes.PUT("/:id", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.Update)
	auftragRoutes.POST("/:id/positionen", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.AddPosition)
	auftragRoutes.PUT("/:id/positionen/:positionId", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.UpdatePosition)
	auftragRoutes.DELETE("/:id/positionen/:positionId", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.RemovePosition)
	auftragRoutes.PUT("/:id/lieferdatum", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.SetLieferdatum)
	auftragRoutes.POST("/:id/kommissionierung/start", middleware.RequireRollen(mitarbeiter.RolleKommissionierung), auftragHandler.StartKommissionierung)
	auftragRoutes.PUT("/:id/kommissionierung/positionen/:positionId", middleware.RequireRollen(mitarbeiter.RolleKommissionierung), auftragHandler.KommissionierePosition)
	auftragRoutes.POST("/:id/kommissionierung/abschluss", middleware.RequireRollen(mitarbeiter.RolleKommissionierung), auftragHandler.FinishKommissionierung)
	auftragRoutes.POST("/:id/kontrolle/start", middleware.RequireRollen(mitarbeiter.RolleKontrolle), auftragHandler.StartKontrolle)
	auftragRoutes.POST("/:id/kontrolle/abschluss", middleware.RequireRollen(mitarbeiter.RolleKontrolle), auftragHandler.FinishKontrolle)
	auftragRoutes.POST("/:id/stornieren", middleware.RequireRollen(mitarbeiter.RolleVerkauf), auftragHandler.Stornieren)
	auftragRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), auftragHandler.Delete)

	// Touren: planning by verkauf, status changes also by fahrer
	tourRoutes := router.NewDomainGroup("touren", "/touren")
	tourRoutes.GET("", tourHandler.List)
	tourRoutes.GET("/datum/:datum", tourHandler.ListByDatum)
	tourRoutes.GET("/:id", tourHandler.GetByID)
	tourRoutes.POST("", middleware.RequireRollen(mitarbeiter.RolleVerkauf), tourHandler.Create)
	tourRoutes.PUT("/:id", middleware.RequireRollen(mitarbeiter.RolleVerkauf), tourHandler.Update)
	tourRoutes.PUT("/:id/status", middleware.RequireRollen(mitarbeiter.RolleVerkauf, mitarbeiter.RolleFahrer), tourHandler.SetStatus)
	tourRoutes.PUT("/:id/reihenfolge", middleware.RequireRollen(mitarbeiter.RolleVerkauf), tourHandler.ReorderStops)
	tourRoutes.PUT("/:id/stops/:stopId/verschieben", middleware.RequireRollen(mitarbeiter.RolleVerkauf), tourHandler.MoveStop)
	tourRoutes.DELETE("/:id", middleware.RequireRollen(mitarbeiter.RolleVerkauf), tourHandler.Delete)

	// Delivery day rules and stop order templates are admin-only
	regionRuleRoutes := router.NewDomainGroup("region-rules", "/region-rules")
	regionRuleRoutes.GET("", regionRuleHandler.List)
	regionRuleRoutes.GET("/:region", regionRuleHandler.GetByRegion)
	regionRuleRoutes.POST("", middleware.RequireRolle(mitarbeiter.RolleAdmin), regionRuleHandler.Set)
	regionRuleRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), regionRuleHandler.Delete)

	vorlageRoutes := router.NewDomainGroup("vorlagen", "/vorlagen")
	vorlageRoutes.GET("", vorlageHandler.List)
	vorlageRoutes.GET("/:region", vorlageHandler.GetByRegion)
	vorlageRoutes.PUT("/:region", middleware.RequireRolle(mitarbeiter.RolleAdmin), vorlageHandler.Set)
	vorlageRoutes.DELETE("/:region", middleware.RequireRolle(mitarbeiter.RolleAdmin), vorlageHandler.Delete)

	// Bestand: bookings by lager, overviews for everyone authenticated
	bestandRoutes := router.NewDomainGroup("bestand", "/bestand")
	bestandRoutes.POST("/eingang", middleware.RequireRollen(mitarbeiter.RolleLager), bestandHandler.BucheEingang)
	bestandRoutes.POST("/ausgang", middleware.RequireRollen(mitarbeiter.RolleLager), bestandHandler.BucheAusgang)
	bestandRoutes.POST("/korrektur", middleware.RequireRollen(mitarbeiter.RolleLager), bestandHandler.BucheKorrektur)
	bestandRoutes.POST("/muell", middleware.RequireRollen(mitarbeiter.RolleLager), bestandHandler.BucheMuell)
	bestandRoutes.GET("/uebersicht", bestandHandler.UebersichtAlle)
	bestandRoutes.GET("/uebersicht/:artikelId", bestandHandler.Uebersicht)
	bestandRoutes.GET("/bewegungen", bestandHandler.ListBewegungen)
	bestandRoutes.GET("/chargen/:artikelId", bestandHandler.ListChargen)

	// Zerlegung: cutting orders by zerleger and lager
	zerlegungRoutes := router.NewDomainGroup("zerlegung", "/zerlegeauftraege")
	zerlegungRoutes.GET("", zerlegungHandler.List)
	zerlegungRoutes.GET("/:id", zerlegungHandler.GetByID)
	zerlegungRoutes.POST("", middleware.RequireRollen(mitarbeiter.RolleZerleger, mitarbeiter.RolleLager), zerlegungHandler.Create)
	zerlegungRoutes.POST("/:id/start", middleware.RequireRollen(mitarbeiter.RolleZerleger), zerlegungHandler.Start)
	zerlegungRoutes.POST("/:id/teile", middleware.RequireRollen(mitarbeiter.RolleZerleger), zerlegungHandler.AddTeil)
	zerlegungRoutes.DELETE("/:id/teile/:teilId", middleware.RequireRollen(mitarbeiter.RolleZerleger), zerlegungHandler.RemoveTeil)
	zerlegungRoutes.POST("/:id/abschluss", middleware.RequireRollen(mitarbeiter.RolleZerleger), zerlegungHandler.Complete)
	zerlegungRoutes.DELETE("/:id", middleware.RequireRolle(mitarbeiter.RolleAdmin), zerlegungHandler.Delete)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(artikelRoutes).
		Register(kundenRoutes).
		Register(verkaeuferRoutes).
		Register(mitarbeiterRoutes).
		Register(auftragRoutes).
		Register(tourRoutes).
		Register(regionRuleRoutes).
		Register(vorlageRoutes).
		Register(bestandRoutes).
		Register(zerlegungRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Versioned health endpoint for load balancers probing through the API path
	engine.GET("/api/v1/health", systemHandler.Health)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
