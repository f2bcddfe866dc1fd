package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends for the products and sales documents.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds runtime configuration for the store.
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"Farm Store v1.0"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	Port    string `envconfig:"PORT" default:"3000"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"farm_store"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`

	RedisAddr      string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"farm-store:"`

	CheckoutDelay time.Duration `envconfig:"CHECKOUT_DELAY" default:"2s"`

	AdminAuthEnabled bool          `envconfig:"ADMIN_AUTH_ENABLED" default:"false"`
	AdminEmail       string        `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword    string        `envconfig:"ADMIN_PASSWORD"`
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"your-super-secret-key-change-in-production"`
	JWTTTL           time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogMode string `envconfig:"LOG_MODE" default:"development"`
	LogFile string `envconfig:"LOG_FILE"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.AdminAuthEnabled && c.AdminPassword == "" {
		return fmt.Errorf("config: ADMIN_PASSWORD is required when ADMIN_AUTH_ENABLED is set")
	}
	if c.CheckoutDelay < 0 {
		return fmt.Errorf("config: CHECKOUT_DELAY must not be negative")
	}
	return nil
}

// PostgresDSN returns DATABASE_URL or a DSN assembled from the DB_* fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// IsProduction returns true when the store runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
