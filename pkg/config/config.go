package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Auth struct {
		JWTSecret  string `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL   int    `envconfig:"AUTH_TOKEN_TTL" default:"900"`
		RefreshTTL int    `envconfig:"AUTH_REFRESH_TTL" default:"604800"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// IsLocal reports whether the process runs in a development environment.
// It selects the relaxed CORS policy and disables out-of-band alerting.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "" || c.AppEnv == "local" || c.AppEnv == "development"
}

// Origins splits the configured comma-separated origin allowlist.
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.AllowOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
