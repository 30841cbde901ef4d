// File: washbook/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"washbook/config"
	"washbook/cron"
	"washbook/database"
	catalogueRepo "washbook/database/repository/catalogue"
	"washbook/handlers"
	"washbook/middleware"
	"washbook/routes"
	"washbook/services/booking"
	"washbook/services/catalogue"
	"washbook/services/location"
	"washbook/services/notification"
	"washbook/services/reservation"
	"washbook/services/tasks"
	"washbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	cacheClient := utils.GetCacheClient()

	// catalogue.
	src, err := catalogueSource(cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to configure catalogue source", zap.Error(err))
	}
	cat, err := catalogue.Load(context.Background(), src, logger)
	if err != nil {
		logger.Fatal("main: failed to load catalogue", zap.Error(err))
	}

	rules, err := buildRules(cfg, cat)
	if err != nil {
		logger.Fatal("main: invalid scheduling configuration", zap.Error(err))
	}

	// metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := utils.NewBookingMetrics(registry)

	// services.
	resolver := location.NewLocationResolver(cat.Locations, metrics)
	locator := location.NewLocator(resolver, logger, metrics)
	ipGeo := location.NewIPGeolocator(cfg.GeoIPAPIURL, cacheClient, logger)
	geoOpts := location.GeoOptions{
		EnableHighAccuracy: cfg.GeoHighAccuracy,
		Timeout:            cfg.GeoTimeout,
		MaxCacheAge:        cfg.GeoMaxCacheAge,
	}

	var submitter reservation.Submitter
	if cfg.BookingAPIURL != "" {
		submitter = reservation.NewHTTPClient(cfg.BookingAPIURL, logger)
	} else {
		logger.Warn("BOOKING_API_URL not set; using simulated booking API")
		submitter = reservation.NewSimulatedAPI(cfg.SimulatedAPILatency, logger)
	}

	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	reminders := &tasks.ReminderScheduler{
		Client: queueClient,
		Lead:   cfg.ReminderLead,
		TZ:     rules.Zone(),
		Logger: logger,
	}
	worker := cron.InitReminderWorker(notification.NewLogNotificationService(logger), logger)

	bookingService := &booking.DefaultBookingSessionService{
		Store:         booking.NewRedisSessionStore(cacheClient, cfg.SessionTTL),
		Rules:         rules,
		Resolver:      resolver,
		Submitter:     submitter,
		Reminders:     reminders,
		SubmitTimeout: cfg.SubmitTimeout,
		Logger:        logger,
		Metrics:       metrics,
	}

	// handlers.
	handlerBundle := handlers.NewHandlerBundle(
		&handlers.CatalogueHandler{Catalogue: cat, Rules: rules, HorizonDays: cfg.BookingHorizonDays},
		&handlers.LocationHandler{Resolver: resolver, Locator: locator, IPGeo: ipGeo, Options: geoOpts},
		handlers.NewBookingHandler(bookingService),
		registry,
	)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	monitor := utils.StartHealthMonitor([]*redis.Client{cacheClient}, database.MongoClient)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), utils.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	<-monitor.Stop().Done()
	worker.Shutdown()
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}

// catalogueSource picks where the catalogue comes from; Mongo is only dialled when selected.
func catalogueSource(cfg config.Config, logger *zap.Logger) (catalogue.Source, error) {
	switch cfg.CatalogueSource {
	case "", "default":
		return catalogue.DefaultSource{}, nil
	case "file":
		return catalogue.FileSource{Path: cfg.CatalogueFile}, nil
	case "mongo":
		database.InitDB()
		db := database.Database()
		if err := catalogueRepo.EnsureIndexes(db); err != nil {
			logger.Warn("main: failed to ensure catalogue indexes", zap.Error(err))
		}
		return catalogue.MongoSource{Repo: catalogueRepo.NewMongoCatalogueRepo(db)}, nil
	default:
		return nil, fmt.Errorf("unknown CATALOGUE_SOURCE %q", cfg.CatalogueSource)
	}
}

func buildRules(cfg config.Config, cat *catalogue.Catalogue) (booking.Rules, error) {
	tz, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return booking.Rules{}, fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
	}
	window, err := booking.NewSlotWindow(cfg.SlotOpen, cfg.SlotClose, cfg.SlotGranularityMinutes)
	if err != nil {
		return booking.Rules{}, err
	}
	pricing := booking.DefaultPricing()
	pricing.MembershipDiscountPercent = cfg.MembershipDiscountPercent

	return booking.Rules{
		Catalogue:    cat,
		Window:       window,
		Availability: booking.SimulatedAvailability{OpenRatio: cfg.SlotOpenRatio},
		Pricing:      pricing,
		TZ:           tz,
	}, nil
}
