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
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	identityapp "github.com/salesreport/backend/internal/application/identity"
	reportapp "github.com/salesreport/backend/internal/application/report"
	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/infrastructure/auth"
	"github.com/salesreport/backend/internal/infrastructure/cache"
	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/logger"
	"github.com/salesreport/backend/internal/infrastructure/persistence"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/infrastructure/scheduler"
	"github.com/salesreport/backend/internal/infrastructure/storage"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
	"github.com/salesreport/backend/internal/interfaces/http/handler"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
	"github.com/salesreport/backend/internal/interfaces/http/router"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs --parseInternal

//	@title			Sales Report API
//	@version		1.0
//	@description	Upload sales sheets and print filtered PDF sales summaries.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting sales report backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.App, cfg.Telemetry), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Warn("Logger provider shutdown failed", zap.Error(err))
		}
	}()
	log = lp.Bridge(log, telemetry.TracerName)

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.App, cfg.Telemetry), log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.App, cfg.Telemetry), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Warn("Meter provider shutdown failed", zap.Error(err))
		}
	}()
	appMetrics, err := telemetry.NewAppMetrics(mp)
	if err != nil {
		return err
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.App, cfg.Telemetry), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler stop failed", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tp.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	db, err := openDatabase(cfg, tp, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect()))

	// Repositories
	recordRepo := persistence.NewGormSalesRecordRepository(db.DB)
	lookupRepo := persistence.NewGormLookupRepository(db.DB)
	sheetRepo := persistence.NewGormSheetRepository(db.DB, cfg.Upload.InsertBatchSize)
	userRepo := persistence.NewGormUserRepository(db.DB)

	lookups := cache.NewLookupCache(cfg.Redis, log)
	defer func() {
		_ = lookups.Close()
	}()

	sink, err := storage.NewDocumentSink(ctx, &cfg.Storage, log)
	if err != nil {
		return err
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	sheetService := salesapp.NewSheetService(sheetRepo, lookups, cfg.Upload.MaxRowErrors, log).
		WithMetrics(appMetrics)
	lookupService := salesapp.NewLookupService(lookupRepo, lookups, cfg.Redis.LookupTTL, log)
	reportService := reportapp.NewReportService(
		recordRepo, lookupRepo, sink, reportapp.NewPDFPipeline(cfg.Report, log), log,
	).WithMetrics(appMetrics)

	middleware.SetupValidator()
	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:            cfg.HTTP,
		ServiceName:     telemetry.ConfigFrom(cfg.App, cfg.Telemetry).ServiceName,
		TracingEnabled:  tp.IsEnabled(),
		TracerProvider:  tp.Provider(),
		MeterProvider:   mp,
		ProfilingLabels: profiler.IsEnabled(),
		JWTService:      jwtService,
		Swagger:         cfg.Swagger,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	router.NewRouter(engine, router.WithHealth(handler.NewHealthHandler(db, cfg.App.Version).Health)).
		Register(handler.NewAuthHandler(authService).WithLoginGuard(loginGuard(cfg.HTTP))).
		Register(handler.NewLookupHandler(lookupService)).
		Register(handler.NewSheetHandler(sheetService, handler.UploadLimits{
			MaxSize:           cfg.Upload.MaxSize,
			AllowedExtensions: cfg.Upload.AllowedExtensions,
		})).
		Register(handler.NewReportHandler(reportService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	retention := retentionTrigger(cfg.Storage, sink, log)
	if retention != nil {
		retention.WithMetrics(appMetrics)
		if err := retention.Start(gctx); err != nil {
			return err
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if retention != nil {
			if err := retention.Stop(shutdownCtx); err != nil {
				log.Warn("Retention trigger did not stop cleanly", zap.Error(err))
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openDatabase connects through gorm with zap logging and, when enabled,
// statement tracing. The sqlite driver creates its schema in place;
// postgres is migrated with cmd/migrate.
func openDatabase(cfg *config.Config, tp *telemetry.TracerProvider, log *zap.Logger) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	opts := []persistence.Option{persistence.WithLogger(gormLog)}
	if cfg.Telemetry.DBTraceEnabled && tp.IsEnabled() {
		dbCfg := telemetry.DefaultDBTracingConfig()
		dbCfg.Enabled = true
		dbCfg.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		if cfg.Telemetry.DBSlowQueryThresh > 0 {
			dbCfg.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		}
		if cfg.Database.Driver == persistence.DialectSQLite {
			dbCfg.DBSystem = "sqlite"
		}
		dbCfg.TracerProvider = tp.Provider()
		opts = append(opts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(dbCfg, log)))
	}

	db, err := persistence.NewDatabase(&cfg.Database, opts...)
	if err != nil {
		return nil, err
	}
	if db.Dialect() == persistence.DialectSQLite {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// retentionTrigger returns a daily sweep for filesystem storage with a
// retention period, or nil.
func retentionTrigger(cfg config.StorageConfig, sink printing.DocumentSink, log *zap.Logger) *scheduler.RetentionTrigger {
	fs, ok := sink.(*printing.FileSystemStorage)
	if !ok || fs.RetentionDays() <= 0 {
		return nil
	}
	schedule, err := scheduler.ParseDailySchedule(cfg.CleanupSchedule)
	if err != nil {
		log.Warn("Invalid cleanup schedule, using default", zap.String("schedule", cfg.CleanupSchedule), zap.Error(err))
	}
	rc := scheduler.DefaultRetentionConfig(time.Duration(fs.RetentionDays()) * 24 * time.Hour)
	rc.Schedule = schedule
	return scheduler.NewRetentionTrigger(rc, fs, log)
}

// loginGuard throttles login attempts per client IP
func loginGuard(cfg config.HTTPConfig) gin.HandlerFunc {
	if cfg.LoginRateLimit < 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow))
}
