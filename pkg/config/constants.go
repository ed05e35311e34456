package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "PRINTSHOP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "PRINTSHOP_APP_ENV"
	EnvPort     = "PRINTSHOP_APP_PORT"
	EnvLogLevel = "PRINTSHOP_LOG_LEVEL"

	EnvDBDSN  = "PRINTSHOP_DB_DSN"
	EnvDBHost = "PRINTSHOP_DB_HOST"
	EnvDBUser = "PRINTSHOP_DB_USER"
	EnvDBName = "PRINTSHOP_DB_NAME"

	EnvRedisURL = "PRINTSHOP_REDIS_URL"

	EnvJWTSecret  = "PRINTSHOP_JWT_SECRET"
	EnvJWTIssuer  = "PRINTSHOP_JWT_ISSUER"
	EnvJWTExpMins = "PRINTSHOP_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "PRINTSHOP_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
