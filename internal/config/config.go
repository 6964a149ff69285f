// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const minSecretLength = 32

type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	DatabasePath string        `envconfig:"DATABASE_PATH" default:"reelnotes.db"`
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"10"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	TMDBAPIKey      string        `envconfig:"TMDB_API_KEY"`
	TMDBBearerToken string        `envconfig:"TMDB_BEARER_TOKEN"`
	TMDBBaseURL     string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	TMDBCacheTTL    time.Duration `envconfig:"TMDB_CACHE_TTL" default:"5m"`

	AuthRatePerSec float64 `envconfig:"AUTH_RATE_PER_SEC" default:"0.5"`
	AuthRateBurst  int     `envconfig:"AUTH_RATE_BURST" default:"10"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv populates a Config from the process environment only.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.AuthRatePerSec <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_PER_SEC and AUTH_RATE_BURST must be positive")
	}
	return nil
}

// CatalogEnabled reports whether any TMDB credential is configured.
func (c Config) CatalogEnabled() bool {
	return c.TMDBAPIKey != "" || c.TMDBBearerToken != ""
}

// TracingEnabled reports whether spans should be exported.
func (c Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}
