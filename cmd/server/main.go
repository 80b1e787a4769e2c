package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers/admin"
	"storefront/internal/handlers/shared"
	"storefront/internal/handlers/shop"
	"storefront/internal/middleware"
	"storefront/internal/repositories/mongodb"
	"storefront/internal/services"
	"storefront/pkg/cache"
	"storefront/pkg/database"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/maps"
	"storefront/pkg/metrics"
	"storefront/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Caller:  cfg.Log.Caller,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	mongoDB, err := database.NewMongoDB(cfg.Database.MongoConfig())
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer mongoDB.Close()

	if cfg.Database.RunMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.NewMigrator(mongoDB.Database, appLogger).Up(ctx)
		cancel()
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	healthChecks := map[string]shared.Pinger{"mongodb": mongoDB}

	// Cache is optional: without redis every lookup goes to MongoDB.
	var cacheBackend services.CacheBackend
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.CacheConfig())
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, caching disabled")
		} else {
			defer redisCache.Close()
			cacheBackend = redisCache
			healthChecks["redis"] = redisCache
		}
	}
	cacheService := services.NewCacheService(cacheBackend, appLogger, "storefront:", cfg.Promo.CacheTTL)

	var geocoder maps.Geocoder
	if cfg.Maps.Enabled() {
		provider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMapsAPIKey, cfg.Maps.Region)
		if err != nil {
			appLogger.WithError(err).Warn("Google Maps unavailable, address lookup disabled")
		} else {
			geocoder = provider
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.PromoTopic, cfg.Kafka.WriteTimeout)
	}
	defer publisher.Close()

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Repositories
	storeRepo := mongodb.NewStoreRepository(mongoDB.Database)
	productRepo := mongodb.NewProductRepository(mongoDB.Database)
	promoRepo := mongodb.NewPromoCodeRepository(mongoDB.Database, cacheService, cfg.Promo.CacheTTL)

	// Services
	catalogService := services.NewCatalogService(
		storeRepo,
		productRepo,
		services.NewGeoFilter(),
		geocoder,
		appMetrics,
		appLogger,
		services.CatalogConfig{
			DefaultRadiusKM:   cfg.Geo.DefaultRadiusKM,
			MaxSearchRadiusKM: cfg.Geo.MaxSearchRadiusKM,
		},
	)
	promoService := services.NewPromoService(promoRepo, services.NewPromoEngine(cfg.App.Currency), publisher, appMetrics, appLogger)
	storeService := services.NewStoreService(storeRepo, productRepo, appLogger)

	// Router
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Fatal("Invalid trusted proxies")
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.MetricsMiddleware(appMetrics))

	routes.SetupSystemRoutes(router, shared.NewHealthHandler(cfg.App.Version, healthChecks), prometheus.DefaultGatherer)

	v1 := router.Group("/api/v1")
	{
		routes.SetupStorefrontRoutes(v1,
			shop.NewCatalogHandler(catalogService, appLogger),
			shop.NewPromoHandler(promoService, appLogger),
		)
		routes.SetupAdminRoutes(v1, cfg.Security.JWTSecret,
			admin.NewPromoCodeHandler(promoService, appLogger),
			admin.NewStoreHandler(storeService, appLogger),
		)
	}

	server := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	go func() {
		appLogger.Infof("Starting %s on %s", cfg.App.Name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}
}
