package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/handlers"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/repositories"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/services"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/middleware"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/sales-tracker-be/cmd/saas-api/docs"
)

const (
	refreshTimeout  = 30 * time.Second
	pruneSchedule   = "0 0 3 * * *"
	shutdownTimeout = 10 * time.Second
)

// @title Sales Tracker API
// @version 1.0
// @description Parses free-text sale descriptions into structured sales with per-field confidence
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	utils.LogInfo("🚀 Starting sales-api", map[string]interface{}{
		"port":      cfg.Port,
		"env":       cfg.Env,
		"db_driver": cfg.DBDriver,
	})

	// Init storage
	var (
		strainRepo repositories.StrainRepo
		auditStore audit.Store
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := database.NewDB(cfg.DatabaseURL, !cfg.IsProduction())
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to connect to postgres")
		}
		defer db.Close()
		strainRepo = repositories.NewStrainRepo(db.GORM)
		if cfg.AuditEnabled {
			auditStore = audit.NewGormStore(db.GORM)
		}
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to open sqlite")
		}
		defer db.Close()
		strainRepo = repositories.NewStrainSQLiteRepo(db)
		if cfg.AuditEnabled {
			auditStore = audit.NewSQLiteStore(db)
		}
	case config.DriverNone:
		utils.LogWarn("⚠️  No database configured, strains are read-only and parse logs are off", nil)
	default:
		log.Fatal().Str("db_driver", cfg.DBDriver).Msg("❌ Unknown DB_DRIVER (use postgres, sqlite or none)")
	}

	// Init strain catalog
	sources := []catalog.Source{catalog.DefaultSource()}
	if strainRepo != nil {
		sources = append(sources, repositories.NewStrainSource(cfg.DBDriver, strainRepo))
	}
	if cfg.S3Enabled() {
		s3Source, err := catalog.NewS3Source(context.Background(),
			cfg.AWSAccessKeyID, cfg.AWSSecretKey, cfg.StrainS3Region, cfg.StrainS3Bucket, cfg.StrainS3Key)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to init S3 strain source")
		}
		sources = append(sources, s3Source)
	}
	strainCatalog := catalog.NewService(cfg.StrainCacheTTL, sources...)

	// Init metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(registry)

	// Init services
	saleService := services.NewSaleService(strainCatalog, auditStore, collector, cfg.ReviewThreshold)
	strainService := services.NewStrainService(strainRepo, strainCatalog, collector)

	initCtx, cancelInit := context.WithTimeout(context.Background(), refreshTimeout)
	if n, err := strainService.Refresh(initCtx); err != nil {
		utils.LogError("⚠️  Initial strain load failed, using built-in list", err, nil)
	} else {
		utils.LogInfo("🌿 Strain catalog loaded", map[string]interface{}{"strains": n, "sources": len(sources)})
	}
	cancelInit()

	// Init scheduler
	scheduler := catalog.NewScheduler()
	if err := catalog.ScheduleRefresh(scheduler, strainService, cfg.StrainRefreshCron, refreshTimeout); err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid STRAIN_REFRESH_CRON")
	}
	if auditStore != nil && cfg.ParseLogRetention > 0 {
		if err := scheduler.Schedule("parse_log_prune", pruneSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			if _, err := saleService.PruneParseLogs(ctx, cfg.ParseLogRetention); err != nil {
				utils.LogError("Parse log prune failed", err, nil)
			}
		}); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to schedule parse log pruning")
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init handlers
	routes := handlers.Handlers{
		Health:   handlers.NewHealthHandler(strainCatalog, cfg.DBDriver),
		Sale:     handlers.NewSaleHandler(saleService),
		Strain:   handlers.NewStrainHandler(strainService),
		ParseLog: handlers.NewParseLogHandler(saleService),
	}

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Sales Tracker API",
	})

	// Middleware
	stopLimiter := make(chan struct{})
	defer close(stopLimiter)
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}, stopLimiter)
	app.Use(cors.New())

	// Swagger and metrics stay outside the rate limit
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.Use(limiter.Handler())
	handlers.RegisterRoutes(app, routes)

	// Start server
	go func() {
		utils.LogInfo("✅ sales-api running", map[string]interface{}{
			"addr":    ":" + cfg.Port,
			"swagger": "http://localhost:" + cfg.Port + "/swagger/",
		})
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("❌ Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("🔌 Shutting down sales-api...", nil)
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		utils.LogError("Shutdown failed", err, nil)
	}
}
