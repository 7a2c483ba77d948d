package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"facturaas"`
		Port int    `envconfig:"PORT" default:"8080"`
		// LogLevel is one of debug, info, warn, error.
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// SeedOnStart runs the idempotent seed before serving.
		SeedOnStart bool `envconfig:"SEED_ON_START" default:"false"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"facturaas"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout      time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadMiB int64         `envconfig:"SERVER_MAX_UPLOAD_MIB" default:"5"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	Admin struct {
		Login    string `envconfig:"ADMIN_LOGIN" default:"admin"`
		Password string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
		Email    string `envconfig:"ADMIN_EMAIL" default:"admin@facturaas.local"`
	}

	// Demo is the sample account seeded alongside the administrator.
	Demo struct {
		Enabled  bool   `envconfig:"SEED_DEMO" default:"true"`
		Login    string `envconfig:"DEMO_LOGIN" default:"user"`
		Password string `envconfig:"DEMO_PASSWORD" default:"user123"`
		Email    string `envconfig:"DEMO_EMAIL" default:"user@facturaas.local"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Load reads .env files when present and then the process environment.
// Variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
