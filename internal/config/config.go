// Package config loads process configuration from environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/microblog/pkg/db"
	"github.com/dmitrymomot/microblog/pkg/logger"
)

var (
	ErrShortSecret = errors.New("config: COOKIE_SECRET must be at least 32 characters")
	ErrInvalid     = errors.New("config: invalid value")
)

const (
	// minSecretLength matches what pkg/cookie accepts.
	minSecretLength = 32

	// slugColumnLength is the width of posts.slug.
	slugColumnLength = 255
)

// App holds settings shared by the blog and events servers.
type App struct {
	HTTPAddress     string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	EventsAddress   string        `env:"EVENTS_ADDRESS" envDefault:":8081"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// Generated per process when empty, which signs everyone out on restart.
	CookieSecret string `env:"COOKIE_SECRET"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	SlugMaxLength    int `env:"SLUG_MAX_LENGTH" envDefault:"200"`
	SlugMaxAttempts  int `env:"SLUG_MAX_ATTEMPTS" envDefault:"1000"`
	PostSaveAttempts int `env:"POST_SAVE_ATTEMPTS" envDefault:"2"`

	// Optional YAML file replacing the built-in events seed.
	EventsSeedFile string `env:"EVENTS_SEED_FILE"`

	Sentry logger.SentryConfig
}

// Load parses App from the environment.
func Load() (App, error) {
	cfg, err := env.ParseAs[App]()
	if err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

// LoadDatabase parses the DATABASE_* variables. Only the blog needs them.
func LoadDatabase() (db.Config, error) {
	cfg, err := env.ParseAs[db.Config]()
	if err != nil {
		return db.Config{}, fmt.Errorf("parse database env: %w", err)
	}
	return cfg, nil
}

func (c *App) finalize() error {
	if c.CookieSecret == "" {
		c.CookieSecret = randomSecret()
	}
	if len(c.CookieSecret) < minSecretLength {
		return ErrShortSecret
	}

	var errs []error
	if c.SlugMaxLength <= 0 {
		errs = append(errs, fmt.Errorf("%w: SLUG_MAX_LENGTH=%d", ErrInvalid, c.SlugMaxLength))
	}
	if c.SlugMaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("%w: SLUG_MAX_ATTEMPTS=%d", ErrInvalid, c.SlugMaxAttempts))
	}
	if c.SlugMaxLength > 0 && c.SlugMaxAttempts > 0 {
		// base + "-" + the highest counter must fit the column
		if longest := c.SlugMaxLength + 1 + len(strconv.Itoa(c.SlugMaxAttempts-1)); longest > slugColumnLength {
			errs = append(errs, fmt.Errorf("%w: SLUG_MAX_LENGTH=%d with SLUG_MAX_ATTEMPTS=%d allows %d character slugs, posts.slug holds %d",
				ErrInvalid, c.SlugMaxLength, c.SlugMaxAttempts, longest, slugColumnLength))
		}
	}
	if c.PostSaveAttempts <= 0 {
		errs = append(errs, fmt.Errorf("%w: POST_SAVE_ATTEMPTS=%d", ErrInvalid, c.PostSaveAttempts))
	}
	return errors.Join(errs...)
}

// randomSecret returns 32 random bytes as hex.
func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
