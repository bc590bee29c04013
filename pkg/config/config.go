package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Query        QueryConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Cache.Enabled && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("%s or %s is required when %s is true", EnvRedisURL, EnvRedisAddr, EnvCacheEnabled)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvCacheTTL)
	}
	if c.Query.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvQueryTimeout)
	}
	if c.Query.MaxResults <= 0 {
		return fmt.Errorf("%s must be positive", EnvQueryMaxResults)
	}
	if c.HTTP.RateLimitPerMinute < 0 {
		return errors.New("rate limit cannot be negative")
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"ANALYTICS_APP_ENV" default:"dev"`
	Name         string `envconfig:"ANALYTICS_APP_NAME" default:"Restaurant Analytics API"`
	Version      string `envconfig:"ANALYTICS_APP_VERSION" default:"1.0.0"`
	Port         string `envconfig:"ANALYTICS_APP_PORT" default:"8000"`
	APIPrefix    string `envconfig:"ANALYTICS_API_PREFIX" default:"/api/v1"`
	LogLevel     string `envconfig:"ANALYTICS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ANALYTICS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ANALYTICS_DB_DSN"`
	Driver string `envconfig:"ANALYTICS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ANALYTICS_DB_HOST"`
	LegacyPort     int    `envconfig:"ANALYTICS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ANALYTICS_DB_USER"`
	LegacyPassword string `envconfig:"ANALYTICS_DB_PASSWORD"`
	LegacyName     string `envconfig:"ANALYTICS_DB_NAME"`
	LegacySSLMode  string `envconfig:"ANALYTICS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ANALYTICS_DB_MAX_OPEN_CONNS" default:"30"`
	MaxIdleConns    int           `envconfig:"ANALYTICS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ANALYTICS_DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"ANALYTICS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ANALYTICS_REDIS_URL"`
	Address      string        `envconfig:"ANALYTICS_REDIS_ADDR"`
	Password     string        `envconfig:"ANALYTICS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ANALYTICS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ANALYTICS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ANALYTICS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ANALYTICS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ANALYTICS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ANALYTICS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// CacheConfig bounds the analytics response cache.
type CacheConfig struct {
	Enabled    bool          `envconfig:"ANALYTICS_CACHE_ENABLED" default:"true"`
	TTL        time.Duration `envconfig:"ANALYTICS_CACHE_TTL" default:"300s"`
	MaxEntries int64         `envconfig:"ANALYTICS_CACHE_MAX_ENTRIES" default:"5000"`
}

type QueryConfig struct {
	Timeout    time.Duration `envconfig:"ANALYTICS_QUERY_TIMEOUT" default:"30s"`
	MaxResults int           `envconfig:"ANALYTICS_QUERY_MAX_RESULTS" default:"10000"`
}

type HTTPConfig struct {
	CORSOrigins        []string      `envconfig:"ANALYTICS_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	RateLimitPerMinute int           `envconfig:"ANALYTICS_RATE_LIMIT_PER_MINUTE" default:"120"`
	ReadTimeout        time.Duration `envconfig:"ANALYTICS_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout       time.Duration `envconfig:"ANALYTICS_HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout    time.Duration `envconfig:"ANALYTICS_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	UseSQLite  bool   `envconfig:"ANALYTICS_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"ANALYTICS_SQLITE_PATH" default:"analytics.db"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
