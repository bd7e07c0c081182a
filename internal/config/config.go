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
	Auth      AuthConfig
	Email     EmailConfig
	Catalog   CatalogConfig
	Storage   StorageConfig
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ConfigDir string `mapstructure:"-"`
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

// AuthConfig 托管认证服务配置
type AuthConfig struct {
	Provider string        `mapstructure:"provider"` // identitytoolkit | local
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout_seconds"`
	// 本地模式下重置密码邮件中的链接前缀
	ResetURL string `mapstructure:"reset_url"`
}

type EmailConfig struct {
	Provider     string `mapstructure:"provider"` // resend | console
	ResendAPIKey string `mapstructure:"resend_api_key"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// CatalogConfig 课程目录数据来源
type CatalogConfig struct {
	Source          string `mapstructure:"source"` // builtin | local | minio | oss
	Path            string `mapstructure:"path"`   // 本地文件路径或对象存储中的 key
	Watch           bool   `mapstructure:"watch"`
	FilterCacheSize int    `mapstructure:"filter_cache_size"`
}

type StorageConfig struct {
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests     int `mapstructure:"max_requests"`
	WindowMinutes   int `mapstructure:"window_minutes"`
	AuthMaxRequests int `mapstructure:"auth_max_requests"`
}

type CacheConfig struct {
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl_seconds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("redis.port", 6379)
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("auth.provider", "identitytoolkit")
	v.SetDefault("auth.base_url", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("auth.timeout_seconds", 15)
	v.SetDefault("email.provider", "console")
	v.SetDefault("email.from_name", "SkillUp")
	v.SetDefault("catalog.source", "builtin")
	v.SetDefault("catalog.filter_cache_size", 256)
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("rate_limit.auth_max_requests", 20)
	v.SetDefault("cache.leaderboard_ttl_seconds", 300)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SKILLUP")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Auth
	v.BindEnv("auth.provider", "AUTH_PROVIDER")
	v.BindEnv("auth.api_key", "AUTH_API_KEY")

	// Email
	v.BindEnv("email.provider", "EMAIL_PROVIDER")
	v.BindEnv("email.resend_api_key", "RESEND_API_KEY")

	// Catalog / Storage
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ConfigDir = path
	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Auth.Timeout = cfg.Auth.Timeout * time.Second
	cfg.Cache.LeaderboardTTL = cfg.Cache.LeaderboardTTL * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验配置的组合是否合法
func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	switch c.Auth.Provider {
	case "identitytoolkit":
		if c.Server.Mode == "release" && c.Auth.APIKey == "" {
			return fmt.Errorf("auth.api_key is required for the identitytoolkit provider in release mode")
		}
	case "local":
	default:
		return fmt.Errorf("unknown auth provider %q", c.Auth.Provider)
	}

	switch c.Catalog.Source {
	case "builtin":
	case "local", "minio", "oss":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if c.Catalog.FilterCacheSize <= 0 {
		return fmt.Errorf("catalog.filter_cache_size must be positive")
	}

	return nil
}
