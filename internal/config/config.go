package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"

	"myContacts/models"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"contacts.sqlite"` // SQLite database file path
}

// AuthConfig contains login session and credential seeding settings.
type AuthConfig struct {
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	SessionFile       string        `env:"SESSION_FILE" envDefault:".mycontacts-session"`
	AdminUsername     string        `env:"SEED_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string        `env:"SEED_ADMIN_PASSWORD" envDefault:"admin1234"`
	PlainUsername     string        `env:"SEED_USER_USERNAME" envDefault:"user"`
	PlainUserPassword string        `env:"SEED_USER_PASSWORD" envDefault:"1234"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE" envDefault:".logs/mycontacts.log"`
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load loads configuration from environment variables. SESSION_SECRET is required.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is not set; required for production")
	}
	return cfg, cfg.validate()
}

// LoadWithDefaults is like Load but SESSION_SECRET may be unset. The caller
// then takes the signing secret stored in the database.
func LoadWithDefaults() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Auth.AdminUsername == "" || c.Auth.PlainUsername == "" {
		return errors.New("seed usernames must not be empty")
	}
	if c.Auth.AdminUsername == c.Auth.PlainUsername {
		return errors.New("seed usernames must differ")
	}
	for _, u := range []struct{ env, value string }{
		{"SEED_ADMIN_USERNAME", c.Auth.AdminUsername},
		{"SEED_USER_USERNAME", c.Auth.PlainUsername},
	} {
		if utf8.RuneCountInString(u.value) > models.UsernameMaxLen {
			return fmt.Errorf("%s must be at most %d characters", u.env, models.UsernameMaxLen)
		}
	}
	for _, p := range []struct{ env, value string }{
		{"SEED_ADMIN_PASSWORD", c.Auth.AdminPassword},
		{"SEED_USER_PASSWORD", c.Auth.PlainUserPassword},
	} {
		if n := utf8.RuneCountInString(p.value); n < models.PasswordMinLen || n > models.PasswordMaxLen {
			return fmt.Errorf("%s must be %d to %d characters", p.env, models.PasswordMinLen, models.PasswordMaxLen)
		}
		if strings.TrimSpace(p.value) != p.value {
			return fmt.Errorf("%s must not start or end with spaces", p.env)
		}
	}
	return nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, SessionTTL: %s, SessionFile: %s, Log: %s@%s, Auth: *** (masked) ***}",
		c.Database.Path, c.Auth.SessionTTL, c.Auth.SessionFile, c.Log.Level, c.Log.File)
}
