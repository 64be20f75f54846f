// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config captures everything the server needs at startup. Defaults keep the
// service runnable with no environment at all.
type Config struct {
	Addr            string        `env:"FILMORATE_ADDR" env-default:":8080"`
	LogLevel        string        `env:"FILMORATE_LOG_LEVEL" env-default:"info"`
	LogFormat       string        `env:"FILMORATE_LOG_FORMAT" env-default:"text"`
	ShutdownTimeout time.Duration `env:"FILMORATE_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// PopularDefault is the film count returned by /films/popular when the
	// caller does not pass an explicit count.
	PopularDefault int `env:"FILMORATE_POPULAR_DEFAULT" env-default:"10"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}
