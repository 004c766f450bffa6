package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "CLEAREDCREW"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "CLEAREDCREW_APP_ENV"
	EnvPort                   = "CLEAREDCREW_APP_PORT"
	EnvDBDSN                  = "CLEAREDCREW_DB_DSN"
	EnvDBHost                 = "CLEAREDCREW_DB_HOST"
	EnvDBUser                 = "CLEAREDCREW_DB_USER"
	EnvDBName                 = "CLEAREDCREW_DB_NAME"
	EnvRedisURL               = "CLEAREDCREW_REDIS_URL"
	EnvJWTSecret              = "CLEAREDCREW_JWT_SECRET"
	EnvJWTIssuer              = "CLEAREDCREW_JWT_ISSUER"
	EnvJWTExpMins             = "CLEAREDCREW_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "CLEAREDCREW_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
