package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
	Report    ReportConfig
	Storage   StorageConfig
	Upload    UploadConfig
	Swagger   SwaggerConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Version string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings. An empty Host disables the
// redis lookup cache.
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	LookupTTL time.Duration
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
	// LoginRateLimit attempts per client IP per LoginRateWindow; negative disables
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
	// Metrics and logs share the collector endpoint with traces
	MetricsEnabled  bool
	MetricsInterval time.Duration
	LogsEnabled     bool
	// ProfilingServer is the Pyroscope server, e.g. http://pyroscope:4040
	ProfilingEnabled bool
	ProfilingServer  string
}

// ReportConfig tunes the PDF layout. Lengths are in points.
type ReportConfig struct {
	Orientation        string // landscape or portrait; the page is always A4
	Margin             float64
	BaseFontSize       float64
	MinFontSize        float64
	ColumnPadding      float64
	ColumnCap          float64
	ColumnFloor        float64
	LineHeightFactor   float64
	DistributorReserve float64
	AgencyReserve      float64
}

// StorageConfig selects where generated reports are written
type StorageConfig struct {
	Backend       string // filesystem, s3 or memory
	BasePath      string
	BaseURL       string
	RetentionDays int
	// CleanupSchedule is a "minute hour * * *" expression for the
	// filesystem retention sweep
	CleanupSchedule string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretKey       string
	ForcePathStyle  bool
}

// UploadConfig bounds sheet uploads
type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
	MaxRowErrors      int
	InsertBatchSize   int
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled     bool     // defaults to true outside production
	RequireAuth bool     // Require a bearer token to access Swagger
	AllowedIPs  []string // IP or CIDR whitelist (empty = allow all)
}

// Load reads config.toml from the usual locations and applies SR_ env overrides.
// Priority (highest to lowest):
// 1. Environment variables with SR_ prefix (e.g., SR_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./backend")
		v.AddConfigPath("/app")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			LookupTTL: v.GetDuration("redis.lookup_ttl"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			LoginRateLimit:   v.GetInt("http.login_rate_limit"),
			LoginRateWindow:  v.GetDuration("http.login_rate_window"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			ProfilingServer:   v.GetString("telemetry.profiling_server"),
		},
		Report: ReportConfig{
			Orientation:        v.GetString("report.orientation"),
			Margin:             v.GetFloat64("report.margin"),
			BaseFontSize:       v.GetFloat64("report.base_font_size"),
			MinFontSize:        v.GetFloat64("report.min_font_size"),
			ColumnPadding:      v.GetFloat64("report.column_padding"),
			ColumnCap:          v.GetFloat64("report.column_cap"),
			ColumnFloor:        v.GetFloat64("report.column_floor"),
			LineHeightFactor:   v.GetFloat64("report.line_height_factor"),
			DistributorReserve: v.GetFloat64("report.distributor_reserve"),
			AgencyReserve:      v.GetFloat64("report.agency_reserve"),
		},
		Storage: StorageConfig{
			Backend:         v.GetString("storage.backend"),
			BasePath:        v.GetString("storage.base_path"),
			BaseURL:         v.GetString("storage.base_url"),
			RetentionDays:   v.GetInt("storage.retention_days"),
			CleanupSchedule: v.GetString("storage.cleanup_schedule"),
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretKey:       v.GetString("storage.secret_key"),
			ForcePathStyle:  v.GetBool("storage.force_path_style"),
		},
		Upload: UploadConfig{
			MaxSize:           v.GetInt64("upload.max_size"),
			AllowedExtensions: v.GetStringSlice("upload.allowed_extensions"),
			MaxRowErrors:      v.GetInt("upload.max_row_errors"),
			InsertBatchSize:   v.GetInt("upload.insert_batch_size"),
		},
		Swagger: SwaggerConfig{
			Enabled:     swaggerEnabled(v),
			RequireAuth: v.GetBool("swagger.require_auth"),
			AllowedIPs:  v.GetStringSlice("swagger.allowed_ips"),
		},
	}
}

// swaggerEnabled keeps the docs endpoint on in development unless the
// config says otherwise. Production has to opt in.
func swaggerEnabled(v *viper.Viper) bool {
	if v.IsSet("swagger.enabled") {
		return v.GetBool("swagger.enabled")
	}
	return v.GetString("app.env") != "production"
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sales-report"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "5000"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "sales_report"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "sales_report.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}

	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.LookupTTL == 0 {
		cfg.Redis.LookupTTL = 10 * time.Minute
	}

	if cfg.JWT.Expiration == 0 {
		cfg.JWT.Expiration = time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "sales-report"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	// Report rendering over a large range can take a while.
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 2 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 15 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	if cfg.HTTP.LoginRateLimit == 0 {
		cfg.HTTP.LoginRateLimit = 10
	}
	if cfg.HTTP.LoginRateWindow == 0 {
		cfg.HTTP.LoginRateWindow = time.Minute
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "sales-report"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}

	applyReportDefaults(&cfg.Report)

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "filesystem"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./data/reports"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/reports"
	}
	if cfg.Storage.CleanupSchedule == "" {
		cfg.Storage.CleanupSchedule = "0 3 * * *"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}

	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 << 20
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{".xlsx", ".csv"}
	}
	if cfg.Upload.MaxRowErrors == 0 {
		cfg.Upload.MaxRowErrors = 100
	}
	if cfg.Upload.InsertBatchSize == 0 {
		cfg.Upload.InsertBatchSize = 500
	}
}

// DefaultReportConfig returns the layout used when nothing is configured
func DefaultReportConfig() ReportConfig {
	var r ReportConfig
	applyReportDefaults(&r)
	return r
}

func applyReportDefaults(r *ReportConfig) {
	if r.Orientation == "" {
		r.Orientation = "landscape"
	}
	if r.Margin == 0 {
		r.Margin = 20
	}
	if r.BaseFontSize == 0 {
		r.BaseFontSize = 7
	}
	if r.MinFontSize == 0 {
		r.MinFontSize = 5
	}
	if r.ColumnPadding == 0 {
		r.ColumnPadding = 10
	}
	if r.ColumnCap == 0 {
		r.ColumnCap = 50
	}
	if r.ColumnFloor == 0 {
		r.ColumnFloor = 30
	}
	if r.LineHeightFactor == 0 {
		r.LineHeightFactor = 1.5
	}
	if r.DistributorReserve == 0 {
		r.DistributorReserve = 150
	}
	if r.AgencyReserve == 0 {
		r.AgencyReserve = 100
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if err := c.Report.Validate(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case "filesystem", "memory":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("storage.backend must be filesystem, s3 or memory, got %q", c.Storage.Backend)
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver == "postgres" {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.sslmode cannot be 'disable' in production")
			}
		}
		if slices.Contains(c.HTTP.CORSAllowOrigins, "*") {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
		// Swagger must be disabled OR protected in production
		if c.Swagger.Enabled && !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if c.Telemetry.ProfilingEnabled && c.Telemetry.ProfilingServer == "" {
		return fmt.Errorf("telemetry.profiling_server is required when profiling is enabled")
	}
	return nil
}

// Validate checks the layout settings are usable
func (r ReportConfig) Validate() error {
	switch r.Orientation {
	case "landscape", "portrait":
	default:
		return fmt.Errorf("report.orientation must be landscape or portrait, got %q", r.Orientation)
	}
	if r.MinFontSize <= 0 || r.BaseFontSize < r.MinFontSize {
		return fmt.Errorf("report.base_font_size (%g) must be >= report.min_font_size (%g) > 0",
			r.BaseFontSize, r.MinFontSize)
	}
	if r.ColumnFloor > r.ColumnCap {
		return fmt.Errorf("report.column_floor (%g) cannot exceed report.column_cap (%g)", r.ColumnFloor, r.ColumnCap)
	}
	if r.Margin < 0 || r.Margin*2 >= 595 {
		return fmt.Errorf("report.margin %g does not leave room on an A4 page", r.Margin)
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns host:port for the redis client
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
