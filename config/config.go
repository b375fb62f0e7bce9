// Package config loads attemptguard settings from an optional YAML file
// and ATTEMPTGUARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codetesla51/attemptguard/limiter"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Limiter LimiterConfig `mapstructure:"limiter"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type LimiterConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1"`
	Window      time.Duration `mapstructure:"window" validate:"gt=0"`
	Lockout     time.Duration `mapstructure:"lockout" validate:"gt=0"`
}

type StoreConfig struct {
	Backend     string `mapstructure:"backend" validate:"oneof=memory redis postgres"`
	RedisAddr   string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr" validate:"required"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// LimiterSettings converts the loaded values into a limiter.Config.
func (c *Config) LimiterSettings() limiter.Config {
	return limiter.Config{
		MaxAttempts: c.Limiter.MaxAttempts,
		Window:      c.Limiter.Window,
		Lockout:     c.Limiter.Lockout,
	}
}

// Validate checks struct tags and the cross-field store rules, reporting
// every failing field at once.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if c.Store.Backend == BackendPostgres && strings.TrimSpace(c.Store.PostgresDSN) == "" {
		return errors.New("store.postgres_dsn is required when store.backend is postgres")
	}
	return nil
}

func formatValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fieldPath(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// fieldPath renders the failing field by its config key, e.g. "store.backend".
func fieldPath(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Config.")
}
