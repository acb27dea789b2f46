package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// INVENTORY_* names so the prefix only matters for unannotated fields.
const EnvPrefix = "inventory"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Canonical environment variable names, shared with tests and error text.
const (
	EnvAppEnv   = "INVENTORY_APP_ENV"
	EnvPort     = "INVENTORY_APP_PORT"
	EnvDBDSN    = "INVENTORY_DB_DSN"
	EnvDBDriver = "INVENTORY_DB_DRIVER"
	EnvDBHost   = "INVENTORY_DB_HOST"
	EnvDBUser   = "INVENTORY_DB_USER"
	EnvDBName   = "INVENTORY_DB_NAME"

	EnvRedisURL               = "INVENTORY_REDIS_URL"
	EnvJWTSecret              = "INVENTORY_JWT_SECRET"
	EnvJWTIssuer              = "INVENTORY_JWT_ISSUER"
	EnvJWTExpMins             = "INVENTORY_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "INVENTORY_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
