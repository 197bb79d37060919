package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Odyssey"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	// Storage selects where the preference store lives. sqlite is the
	// default (a local file next to the user's data); postgres is for
	// running the API against a shared server.
	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
		Path   string `envconfig:"STORAGE_PATH" default:"odyssey.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"odyssey"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	API struct {
		// Secret enables bearer-token auth on the HTTP API when set.
		Secret string `envconfig:"API_SECRET"`
	}
}

// DSN returns the connection string for the configured storage driver.
func (c *Config) DSN() string {
	if c.Storage.Driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}

	return c.Storage.Path
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
