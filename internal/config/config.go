package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"

	AuthStrategyHMAC = "hmac"
	AuthStrategyJWT  = "jwt"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS" envDefault:":8080" validate:"required"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres" validate:"oneof=postgres mongo"`
	DatabaseURI   string `env:"DATABASE_URI" validate:"required_if=StorageDriver postgres"`
	MongoURI      string `env:"MONGO_URI" validate:"required_if=StorageDriver mongo"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"storeadmin" validate:"required"`

	AuthStrategy   string        `env:"AUTH_STRATEGY" envDefault:"hmac" validate:"oneof=hmac jwt"`
	AuthSecret     string        `env:"AUTH_SECRET" envDefault:"change-me-in-production" validate:"required"`
	AuthSecretFile string        `env:"AUTH_SECRET_FILE,file"`
	AuthIssuer     string        `env:"AUTH_ISSUER"`
	AuthTokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`

	SMSFunctionURL   string        `env:"SMS_FUNCTION_URL" validate:"omitempty,url"`
	SMSFunctionToken string        `env:"SMS_FUNCTION_TOKEN"`
	SMSTimeout       time.Duration `env:"SMS_TIMEOUT" envDefault:"10s"`

	CountsRefreshInterval time.Duration `env:"COUNTS_REFRESH_INTERVAL" envDefault:"30s"`
	CountsWorkers         int           `env:"COUNTS_WORKERS" envDefault:"3"`
	OrdersPageSize        int           `env:"ORDERS_PAGE_SIZE" envDefault:"20"`

	MaxRacks   int `env:"LOCATION_MAX_RACKS" envDefault:"10"`
	MaxShelves int `env:"LOCATION_MAX_SHELVES" envDefault:"10"`
	MaxBins    int `env:"LOCATION_MAX_BINS" envDefault:"20"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

const (
	defaultSMSTimeout            = 10 * time.Second
	defaultCountsRefreshInterval = 30 * time.Second
	defaultCountsWorkers         = 3
	defaultOrdersPageSize        = 20
	maxOrdersPageSize            = 100
	defaultShutdownTimeout       = 10 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], env.ToMap(os.Environ()))
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("storeadmin", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.StorageDriver, "driver", cfg.StorageDriver, "Document store backend: postgres or mongo")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	flags.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	flags.StringVar(&cfg.AuthStrategy, "auth", cfg.AuthStrategy, "Admin token strategy: hmac or jwt")
	flags.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for verifying admin tokens")
	flags.StringVar(&cfg.SMSFunctionURL, "sms-url", cfg.SMSFunctionURL, "Callable SMS function URL")
	flags.DurationVar(&cfg.CountsRefreshInterval, "counts-interval", cfg.CountsRefreshInterval, "Interval between order count refreshes")
	flags.IntVar(&cfg.CountsWorkers, "counts-workers", cfg.CountsWorkers, "Number of concurrent count workers")
	flags.IntVar(&cfg.OrdersPageSize, "page-size", cfg.OrdersPageSize, "Default orders page size")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if secret := strings.TrimSpace(cfg.AuthSecretFile); secret != "" {
		cfg.AuthSecret = secret
	}

	cfg.normalize()

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.AuthStrategy = strings.ToLower(strings.TrimSpace(c.AuthStrategy))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.SMSTimeout <= 0 {
		c.SMSTimeout = defaultSMSTimeout
	}
	if c.CountsRefreshInterval <= 0 {
		c.CountsRefreshInterval = defaultCountsRefreshInterval
	}
	if c.CountsWorkers <= 0 {
		c.CountsWorkers = defaultCountsWorkers
	}
	if c.OrdersPageSize <= 0 {
		c.OrdersPageSize = defaultOrdersPageSize
	}
	if c.OrdersPageSize > maxOrdersPageSize {
		c.OrdersPageSize = maxOrdersPageSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
}
