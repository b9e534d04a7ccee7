package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/fluxt/fluxt-api/internal/pkg/password"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SecretKey signs password-action tokens. Rotating it invalidates every
	// outstanding token.
	SecretKey string `env:"SECRET_KEY"`
	// AdminPassword is the super admin credential. The server refuses to
	// start without it.
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// PublicURL is the externally reachable base URL used in email links.
	PublicURL  string `env:"PUBLIC_URL, default=http://localhost:8080"`
	FilesDir   string `env:"FILES_DIR,  default=files"`
	BcryptCost int    `env:"BCRYPT_COST"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fluxt"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT, default=587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	From string `env:"SMTP_FROM"`
}

var ErrMissingAdminPassword = errors.New(
	"admin area left unprotected: set the ADMIN_PASSWORD environment variable")

var ErrMissingSecretKey = errors.New(
	"password tokens cannot be signed: set the SECRET_KEY environment variable")

// Load reads configuration from environment variables using go-envconfig and
// fails fast on the two secrets the auth core cannot run without.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}

	if cfg.AdminPassword == "" {
		return nil, ErrMissingAdminPassword
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = password.DefaultCost
	}
	return &cfg, nil
}

// IsDevelopment reports whether the server runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
