package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Redis   RedisConfig
	Log     LogConfig
	Queue   QueueConfig
	Email   EmailConfig
	PDF     PDFConfig
	Reports ReportsConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds report queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
	JobTimeoutSecs   int `mapstructure:"job_timeout_secs"`
}

// PDFConfig selects and configures the HTML to PDF engine.
type PDFConfig struct {
	// Engine is "gotenberg" or "chromium".
	Engine        string `mapstructure:"engine"`
	GotenbergURL  string `mapstructure:"gotenberg_url"`
	ChromiumBin   string `mapstructure:"chromium_bin"`
	RenderTimeout time.Duration
}

// ReportsConfig holds artifact generation settings.
type ReportsConfig struct {
	TempDir           string `mapstructure:"temp_dir"`
	DashboardCacheTTL time.Duration
	SettingsCacheTTL  time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`

	// AllowedOrigins lists the browser origins accepted by CORS.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CARBEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARBEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "carbex")
	v.SetDefault("db.password", "carbex_secret")
	v.SetDefault("db.name", "carbex_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.issuer", "carbex")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-3")
	v.SetDefault("s3.bucket", "carbex-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("queue.job_timeout_secs", 300)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.from_address", "noreply@carbex.fr")
	v.SetDefault("email.from_name", "Carbex")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// PDF defaults
	v.SetDefault("pdf.engine", "gotenberg")
	v.SetDefault("pdf.gotenberg_url", "http://localhost:3001")
	v.SetDefault("pdf.chromium_bin", "")
	v.SetDefault("pdf.render_timeout", "60s")

	// Reports defaults
	v.SetDefault("reports.temp_dir", os.TempDir())
	v.SetDefault("reports.dashboard_cache_ttl", "5m")
	v.SetDefault("reports.settings_cache_ttl", "1h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "CARBEX_SERVER_PORT",
		"server.read_timeout":         "CARBEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "CARBEX_SERVER_WRITE_TIMEOUT",
		"server.environment":          "CARBEX_SERVER_ENVIRONMENT",
		"server.allowed_origins":      "CARBEX_SERVER_ALLOWED_ORIGINS",
		"db.host":                     "CARBEX_DB_HOST",
		"db.port":                     "CARBEX_DB_PORT",
		"db.user":                     "CARBEX_DB_USER",
		"db.password":                 "CARBEX_DB_PASSWORD",
		"db.name":                     "CARBEX_DB_NAME",
		"db.sslmode":                  "CARBEX_DB_SSLMODE",
		"db.max_open":                 "CARBEX_DB_MAX_OPEN",
		"db.max_idle":                 "CARBEX_DB_MAX_IDLE",
		"jwt.secret":                  "CARBEX_JWT_SECRET",
		"jwt.access_expiry":           "CARBEX_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                  "CARBEX_JWT_ISSUER",
		"s3.region":                   "CARBEX_S3_REGION",
		"s3.bucket":                   "CARBEX_S3_BUCKET",
		"s3.endpoint":                 "CARBEX_S3_ENDPOINT",
		"s3.access_key":               "CARBEX_S3_ACCESS_KEY",
		"s3.secret_key":               "CARBEX_S3_SECRET_KEY",
		"s3.presign_expiry":           "CARBEX_S3_PRESIGN_EXPIRY",
		"redis.addr":                  "CARBEX_REDIS_ADDR",
		"redis.password":              "CARBEX_REDIS_PASSWORD",
		"redis.db":                    "CARBEX_REDIS_DB",
		"log.level":                   "CARBEX_LOG_LEVEL",
		"log.format":                  "CARBEX_LOG_FORMAT",
		"queue.poll_interval_secs":    "CARBEX_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":           "CARBEX_QUEUE_CONCURRENCY",
		"queue.job_timeout_secs":      "CARBEX_QUEUE_JOB_TIMEOUT_SECS",
		"email.provider":              "CARBEX_EMAIL_PROVIDER",
		"email.region":                "CARBEX_EMAIL_REGION",
		"email.from_address":          "CARBEX_EMAIL_FROM_ADDRESS",
		"email.from_name":             "CARBEX_EMAIL_FROM_NAME",
		"email.frontend_url":          "CARBEX_EMAIL_FRONTEND_URL",
		"pdf.engine":                  "CARBEX_PDF_ENGINE",
		"pdf.gotenberg_url":           "CARBEX_PDF_GOTENBERG_URL",
		"pdf.chromium_bin":            "CARBEX_PDF_CHROMIUM_BIN",
		"pdf.render_timeout":          "CARBEX_PDF_RENDER_TIMEOUT",
		"reports.temp_dir":            "CARBEX_REPORTS_TEMP_DIR",
		"reports.dashboard_cache_ttl": "CARBEX_REPORTS_DASHBOARD_CACHE_TTL",
		"reports.settings_cache_ttl":  "CARBEX_REPORTS_SETTINGS_CACHE_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it if CARBEX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARBEX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	for _, origin := range strings.Split(v.GetString("server.allowed_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, origin)
		}
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
		JobTimeoutSecs:   v.GetInt("queue.job_timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.PDF = PDFConfig{
		Engine:        v.GetString("pdf.engine"),
		GotenbergURL:  v.GetString("pdf.gotenberg_url"),
		ChromiumBin:   v.GetString("pdf.chromium_bin"),
		RenderTimeout: v.GetDuration("pdf.render_timeout"),
	}
	cfg.Reports = ReportsConfig{
		TempDir:           v.GetString("reports.temp_dir"),
		DashboardCacheTTL: v.GetDuration("reports.dashboard_cache_ttl"),
		SettingsCacheTTL:  v.GetDuration("reports.settings_cache_ttl"),
	}

	switch cfg.PDF.Engine {
	case "gotenberg", "chromium":
	default:
		return nil, fmt.Errorf("config: unsupported pdf engine %q", cfg.PDF.Engine)
	}
	if cfg.Queue.Concurrency < 1 {
		cfg.Queue.Concurrency = 1
	}

	return cfg, nil
}
