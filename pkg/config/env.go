package config

const (
	EnvPrefix = "ANALYTICS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "ANALYTICS_APP_ENV"
	EnvAppName    = "ANALYTICS_APP_NAME"
	EnvAppVersion = "ANALYTICS_APP_VERSION"
	EnvPort       = "ANALYTICS_APP_PORT"
	EnvAPIPrefix  = "ANALYTICS_API_PREFIX"
	EnvLogLevel   = "ANALYTICS_LOG_LEVEL"

	EnvDBDSN      = "ANALYTICS_DB_DSN"
	EnvDBHost     = "ANALYTICS_DB_HOST"
	EnvDBPort     = "ANALYTICS_DB_PORT"
	EnvDBUser     = "ANALYTICS_DB_USER"
	EnvDBPassword = "ANALYTICS_DB_PASSWORD"
	EnvDBName     = "ANALYTICS_DB_NAME"
	EnvUseSQLite  = "ANALYTICS_USE_SQLITE"
	EnvSQLitePath = "ANALYTICS_SQLITE_PATH"

	EnvRedisURL  = "ANALYTICS_REDIS_URL"
	EnvRedisAddr = "ANALYTICS_REDIS_ADDR"

	EnvCacheEnabled    = "ANALYTICS_CACHE_ENABLED"
	EnvCacheTTL        = "ANALYTICS_CACHE_TTL"
	EnvCacheMaxEntries = "ANALYTICS_CACHE_MAX_ENTRIES"

	EnvQueryTimeout    = "ANALYTICS_QUERY_TIMEOUT"
	EnvQueryMaxResults = "ANALYTICS_QUERY_MAX_RESULTS"

	EnvCORSOrigins        = "ANALYTICS_CORS_ORIGINS"
	EnvRateLimitPerMinute = "ANALYTICS_RATE_LIMIT_PER_MINUTE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
