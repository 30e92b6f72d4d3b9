package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	RateLimit    RateLimitConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if cfg.NeedsDatabase() {
		if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
			return nil, err
		}
	}
	if !cfg.FeatureFlags.UseMemoryState && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required unless %s is set", EnvRedisURL, EnvRedisAddr, EnvUseMemoryState)
	}
	return &cfg, nil
}

// NeedsDatabase reports whether the process has to open a database connection.
func (c Config) NeedsDatabase() bool {
	return c.Catalog.Source == CatalogSourceDatabase
}

// RequireDatabase resolves the database DSN for tools that always need one,
// regardless of the catalog source.
func (c *Config) RequireDatabase() error {
	return c.DB.ensureDSN(c.FeatureFlags.UseSQLite)
}

type AppConfig struct {
	Env          string `envconfig:"FLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"FLOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FLOW_DB_DSN"`
	Driver string `envconfig:"FLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"FLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLOW_DB_USER"`
	LegacyPassword string `envconfig:"FLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLOW_REDIS_URL"`
	Address      string        `envconfig:"FLOW_REDIS_ADDR"`
	Password     string        `envconfig:"FLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls anonymous shopper session tokens and how long their
// cart/wishlist state is retained.
type SessionConfig struct {
	Secret   string        `envconfig:"FLOW_SESSION_SECRET" required:"true"`
	Issuer   string        `envconfig:"FLOW_SESSION_ISSUER" default:"flow-studios"`
	TTL      time.Duration `envconfig:"FLOW_SESSION_TTL" default:"720h"`
	StateTTL time.Duration `envconfig:"FLOW_SESSION_STATE_TTL" default:"720h"`
}

type RateLimitConfig struct {
	SessionWindow  time.Duration `envconfig:"FLOW_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
	SessionIPLimit int           `envconfig:"FLOW_RATE_LIMIT_SESSION_IP_LIMIT" default:"30"`
}

type CatalogConfig struct {
	Source            string `envconfig:"FLOW_CATALOG_SOURCE" default:"embedded"`
	SeedPath          string `envconfig:"FLOW_CATALOG_SEED_PATH"`
	HideOutOfStock    bool   `envconfig:"FLOW_CATALOG_HIDE_OUT_OF_STOCK" default:"true"`
	BestsellerDefault int    `envconfig:"FLOW_CATALOG_BESTSELLER_LIMIT" default:"8"`
}

func (c *CatalogConfig) validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case CatalogSourceEmbedded, CatalogSourceDatabase:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q, got %q", EnvCatalogSource, CatalogSourceEmbedded, CatalogSourceDatabase, c.Source)
}

type CheckoutConfig struct {
	ExpressShipping string `envconfig:"FLOW_CHECKOUT_EXPRESS_SHIPPING" default:"15.00"`
}

// ExpressShippingCost parses the configured express shipping price.
func (c CheckoutConfig) ExpressShippingCost() (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(c.ExpressShipping))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing express shipping cost: %w", err)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("express shipping cost must not be negative")
	}
	return cost, nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FLOW_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite      bool `envconfig:"FLOW_USE_SQLITE" default:"false"`
	UseMemoryState bool `envconfig:"FLOW_USE_MEMORY_STATE" default:"false"`
	AutoMigrate    bool `envconfig:"FLOW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(sqlite bool) error {
	if sqlite {
		db.Driver = DBDriverSQLite
	}
	if db.DSN != "" {
		return nil
	}
	if sqlite {
		db.DSN = "file:flow-studios.db?cache=shared"
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
