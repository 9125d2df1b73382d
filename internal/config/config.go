package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Exam      ExamConfig      `mapstructure:"exam"`
	Razorpay  RazorpayConfig  `mapstructure:"razorpay"`
	OTP       OTPConfig       `mapstructure:"otp"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Affiliate AffiliateConfig `mapstructure:"affiliate"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

// ExamConfig holds knobs of the scoring and analytics core that must never be
// hardcoded: section sizes and mark schemes live on the section rows, these
// are the cross-cutting limits.
type ExamConfig struct {
	CatalogCacheTTL   time.Duration `mapstructure:"catalog_cache_hours"`
	TrendMaxEntries   int           `mapstructure:"trend_max_entries"`
	AnalyticsRetries  int           `mapstructure:"analytics_retries"`
	WeakAreaBelow     float64       `mapstructure:"weak_area_below"`
	StrongAreaAtLeast float64       `mapstructure:"strong_area_at_least"`
}

type RazorpayConfig struct {
	KeyID            string `mapstructure:"key_id"`
	KeySecret        string `mapstructure:"key_secret"`
	BaseURL          string `mapstructure:"base_url"`
	PlanAmount       int64  `mapstructure:"plan_amount"` // paise
	PlanDurationDays int    `mapstructure:"plan_duration_days"`
}

type OTPConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	AuthToken   string `mapstructure:"auth_token"`
	CustomerID  string `mapstructure:"customer_id"`
	CountryCode string `mapstructure:"country_code"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type AffiliateConfig struct {
	CodeLength        int           `mapstructure:"code_length"`
	AttributionWindow time.Duration `mapstructure:"attribution_days"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EAMCETPRO")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Razorpay
	viper.BindEnv("razorpay.key_id", "RAZORPAY_KEY_ID")
	viper.BindEnv("razorpay.key_secret", "RAZORPAY_KEY_SECRET")

	// OTP provider
	viper.BindEnv("otp.auth_token", "OTP_AUTH_TOKEN")
	viper.BindEnv("otp.customer_id", "OTP_CUSTOMER_ID")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Exam.CatalogCacheTTL = cfg.Exam.CatalogCacheTTL * time.Hour
	cfg.Affiliate.AttributionWindow = cfg.Affiliate.AttributionWindow * 24 * time.Hour

	applyDefaults(&cfg)

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Exam.TrendMaxEntries == 0 {
		cfg.Exam.TrendMaxEntries = 50
	}
	if cfg.Exam.AnalyticsRetries == 0 {
		cfg.Exam.AnalyticsRetries = 3
	}
	if cfg.Exam.WeakAreaBelow == 0 {
		cfg.Exam.WeakAreaBelow = 50
	}
	if cfg.Exam.StrongAreaAtLeast == 0 {
		cfg.Exam.StrongAreaAtLeast = 75
	}
	if cfg.Exam.CatalogCacheTTL == 0 {
		cfg.Exam.CatalogCacheTTL = 24 * time.Hour
	}
	if cfg.Affiliate.CodeLength == 0 {
		cfg.Affiliate.CodeLength = 8
	}
	if cfg.Affiliate.AttributionWindow == 0 {
		cfg.Affiliate.AttributionWindow = 30 * 24 * time.Hour
	}
	if cfg.Razorpay.BaseURL == "" {
		cfg.Razorpay.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Razorpay.PlanDurationDays == 0 {
		cfg.Razorpay.PlanDurationDays = 365
	}
	if cfg.OTP.CountryCode == "" {
		cfg.OTP.CountryCode = "91"
	}
}
