package config

// EnvPrefix is handed to envconfig; every field carries an explicit envconfig
// tag, so the prefix only matters for untagged fields.
const EnvPrefix = "FLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceDatabase = "database"
)

const (
	EnvAppEnv    = "FLOW_APP_ENV"
	EnvPort      = "FLOW_APP_PORT"
	EnvLogLevel  = "FLOW_LOG_LEVEL"
	EnvDBDSN     = "FLOW_DB_DSN"
	EnvDBHost    = "FLOW_DB_HOST"
	EnvDBUser    = "FLOW_DB_USER"
	EnvDBName    = "FLOW_DB_NAME"
	EnvDBDriver  = "FLOW_DB_DRIVER"
	EnvRedisURL  = "FLOW_REDIS_URL"
	EnvRedisAddr = "FLOW_REDIS_ADDR"

	EnvSessionSecret = "FLOW_SESSION_SECRET"
	EnvSessionIssuer = "FLOW_SESSION_ISSUER"
	EnvSessionTTL    = "FLOW_SESSION_TTL"

	EnvCatalogSource = "FLOW_CATALOG_SOURCE"

	EnvUseSQLite      = "FLOW_USE_SQLITE"
	EnvUseMemoryState = "FLOW_USE_MEMORY_STATE"
	EnvAutoMigrate    = "FLOW_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
