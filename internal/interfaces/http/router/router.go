package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "github.com/salesreport/backend/docs"
	"github.com/salesreport/backend/internal/infrastructure/auth"
	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/logger"
	"github.com/salesreport/backend/internal/infrastructure/telemetry"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	health     gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithHealth mounts h at GET /health, outside the versioned group
func WithHealth(h gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.health = h
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	if r.health != nil {
		r.engine.GET("/health", r.health)
	}
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// EngineConfig gathers what the middleware chain needs
type EngineConfig struct {
	HTTP           config.HTTPConfig
	ServiceName    string
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	MeterProvider  *telemetry.MeterProvider
	// ProfilingLabels tags request goroutines for the continuous profiler.
	ProfilingLabels bool
	JWTService      *auth.JWTService
	Swagger         config.SwaggerConfig
	Logger          *zap.Logger
}

// NewEngine builds a gin engine with the standard middleware chain:
// request id, access log, panic recovery, CORS, tracing, metrics and
// profiling labels, body limit, then JWT authentication. Auth routes and
// /health stay public; /swagger is guarded by SwaggerProtection instead.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORSWithConfig(cors),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.TracingEnabled,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.SpanErrorMarker(),
	)
	httpMetrics, err := middleware.HTTPMetrics(cfg.MeterProvider)
	if err != nil {
		return nil, err
	}
	engine.Use(httpMetrics, middleware.ProfilingLabels(cfg.ProfilingLabels))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(skipPrefix("/api/v1/sheets/upload", middleware.BodyLimit(cfg.HTTP.MaxBodySize)))
	}
	var swaggerAuth gin.HandlerFunc
	if cfg.JWTService != nil {
		jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtCfg.Logger = cfg.Logger
		jwtCfg.SkipPathPrefixes = append(jwtCfg.SkipPathPrefixes, "/swagger/")
		engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
		swaggerAuth = middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: cfg.JWTService,
			Logger:     cfg.Logger,
		})
	}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	return engine, nil
}

// skipPrefix runs mw for every path except the given one, which applies
// its own limit.
func skipPrefix(path string, mw gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == path {
			c.Next()
			return
		}
		mw(c)
	}
}
