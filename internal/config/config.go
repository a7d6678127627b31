package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/lehrbaum/firefly/internal/amount"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"firefly-amounts"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8080"`
		AuthSecret     string        `envconfig:"AUTH_SECRET"`
	}

	Amount struct {
		Mode string `envconfig:"AMOUNT_MODE" default:"lenient"`
		// Empty means the POSIX locale environment, then en_US.
		DefaultLocale string `envconfig:"DEFAULT_LOCALE"`
		OverridesFile string `envconfig:"LOCALE_OVERRIDES_FILE"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid server timeout %s: must be positive", c.Server.Timeout))
	}

	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("invalid max upload size %d: must be positive", c.Server.MaxUploadBytes))
	}

	if _, err := amount.ParseMode(c.Amount.Mode); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Mode returns the configured amount mode. Call Validate first.
func (c *Config) Mode() amount.Mode {
	mode, _ := amount.ParseMode(c.Amount.Mode)
	return mode
}

func (c *Config) AuthEnabled() bool {
	return c.Server.AuthSecret != ""
}
