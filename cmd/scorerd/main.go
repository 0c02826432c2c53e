package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/TSCosta20/housing-project/internal/adminref"
	"github.com/TSCosta20/housing-project/internal/config"
	cronrunner "github.com/TSCosta20/housing-project/internal/cron"
	"github.com/TSCosta20/housing-project/internal/db"
	"github.com/TSCosta20/housing-project/internal/geoapi"
	"github.com/TSCosta20/housing-project/internal/handler"
	"github.com/TSCosta20/housing-project/internal/logger"
	"github.com/TSCosta20/housing-project/internal/pipeline"
	"github.com/TSCosta20/housing-project/internal/push"
	gormrepository "github.com/TSCosta20/housing-project/internal/repository/gorm"
	"github.com/TSCosta20/housing-project/internal/stream"
	"github.com/TSCosta20/housing-project/internal/zone"

	_ "github.com/TSCosta20/housing-project/docs"
)

func main() {
	// A local .env feeds viper's AutomaticEnv; absence is fine.
	_ = godotenv.Load()

	cfgPath := os.Getenv("HS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("HS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	refIndex := adminref.NewIndex(nil, nil)
	if cfg.AdminRef.Enabled {
		refClient := geoapi.NewClient(&http.Client{Timeout: cfg.AdminRef.Timeout}, cfg.AdminRef.BaseURL, cfg.AdminRef.PageLimit)
		refCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		refIndex = adminref.Build(refCtx, refClient, logger)
		cancel()
		if refIndex.Empty() {
			logger.Warn("admin reference index is empty, admin zones match on parsed text only")
		} else {
			logger.Info("admin reference index loaded")
		}
	}

	matcher := &zone.Matcher{
		Index:             refIndex,
		EarthRadiusM:      cfg.Pipeline.EarthRadiusM,
		AllowGeolessMatch: cfg.Pipeline.AllowGeolessMatch,
	}
	hub := stream.NewHub()

	notifier := &push.Notifier{Repo: store, Logger: logger}
	if cfg.Push.Enabled {
		if key := strings.TrimSpace(cfg.Push.FCMServerKey); key != "" {
			notifier.Sender = &push.FCMSender{
				Endpoint:  cfg.Push.FCMEndpoint,
				ServerKey: key,
				HTTP:      &http.Client{Timeout: cfg.Push.Timeout},
			}
		}
		if url := strings.TrimSpace(cfg.Push.WebhookURL); url != "" {
			notifier.Webhook = &push.WebhookSender{URL: url, HTTP: &http.Client{Timeout: cfg.Push.Timeout}}
		}
	}

	loc := time.UTC
	if cfg.Pipeline.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Pipeline.Timezone)
		if err != nil {
			logger.Warn("invalid pipeline timezone, falling back to UTC",
				zap.String("timezone", cfg.Pipeline.Timezone), zap.Error(err))
		} else {
			loc = parsed
		}
	}

	pipe := &pipeline.Pipeline{
		Repo:         store,
		Matcher:      matcher,
		Hub:          hub,
		Notifier:     notifier,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		Logger:       logger,
		Timezone:     loc,
		CooldownDays: cfg.Pipeline.CooldownDays,
		PriceDropPct: cfg.Pipeline.PriceDropPct,
		MinSample:    cfg.Pipeline.MinSample,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(handler.APIKeyMiddleware(cfg.API))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	zoneHandler := &handler.ZoneHandler{Repo: store, Logger: logger}
	zoneHandler.Register(engine)
	listingHandler := &handler.ListingHandler{Repo: store, Logger: logger}
	listingHandler.Register(engine)
	dealsHandler := &handler.DealsHandler{Repo: store, Hub: hub, Buffer: cfg.Stream.Buffer, Logger: logger}
	dealsHandler.Register(engine)
	deviceHandler := &handler.DeviceHandler{Repo: store, Logger: logger}
	deviceHandler.Register(engine)
	sourceHandler := &handler.SourceHandler{Repo: store, Logger: logger}
	sourceHandler.Register(engine)
	runHandler := &handler.RunHandler{Pipeline: pipe, Repo: store, Logger: logger}
	runHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Pipeline.Enabled {
		spec := cronrunner.Spec(cfg.Pipeline.Timezone, cfg.Pipeline.Schedule)
		_, err := cronRunner.Add("daily pipeline", spec, func(ctx context.Context) {
			result, err := pipe.RunOnce(ctx)
			if err != nil {
				if errors.Is(err, pipeline.ErrAlreadyRunning) {
					logger.Warn("cron pipeline skipped, a run is already in progress")
					return
				}
				logger.Warn("cron pipeline run failed", zap.Error(err))
				return
			}
			logger.Info("cron pipeline run ok",
				zap.String("run_id", result.RunID),
				zap.String("stats_date", result.StatsDate),
				zap.Int("raw_items", result.RawItems),
				zap.Int("listings", result.Listings),
				zap.Int("source_errors", result.SourceErrors),
				zap.Int("zones_scored", result.ZonesScored),
				zap.Int("score_rows", result.ScoreRows),
				zap.Int("deal_events", result.DealEvents),
				zap.Int("price_drop_events", result.PriceDropEvents),
				zap.Int("push_sent", result.PushSent),
			)
		})
		if err != nil {
			logger.Warn("cron register pipeline failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	if cfg.Pipeline.RunOnStart {
		go func() {
			logger.Info("running startup pipeline pass")
			if _, err := pipe.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("startup pipeline run failed", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
