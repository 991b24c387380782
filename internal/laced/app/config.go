package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// DatabaseDriver is sqlite or postgres. DatabaseFile applies to sqlite,
	// DatabaseURL to postgres.
	DatabaseDriver string `env:"LACED_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"LACED_DATABASE_FILE" envDefault:"laced.db"`
	DatabaseURL    string `env:"LACED_DATABASE_URL"`

	// PasswordAlgorithm is bcrypt or argon2id. The pepper is only used by
	// argon2id.
	PasswordAlgorithm string `env:"LACED_PASSWORD_ALGORITHM" envDefault:"bcrypt"`
	BcryptCost        int    `env:"LACED_BCRYPT_COST" envDefault:"12"`
	PepperFile        string `env:"LACED_PEPPER_FILE" envDefault:"pepper"`

	SessionTTL      time.Duration `env:"LACED_SESSION_TTL" envDefault:"168h"`
	GuestSessionTTL time.Duration `env:"LACED_GUEST_SESSION_TTL" envDefault:"168h"`
	// CookieSecure overrides the Secure cookie flag, which otherwise follows
	// Env == "prod".
	CookieSecure *bool `env:"LACED_COOKIE_SECURE"`
	CatalogSeed  bool  `env:"LACED_CATALOG_SEED" envDefault:"true"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("LACED_DATABASE_FILE must be set for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("LACED_DATABASE_URL must be set for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported LACED_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("LACED_SESSION_TTL must be positive"))
	}
	if c.GuestSessionTTL <= 0 {
		errs = append(errs, errors.New("LACED_GUEST_SESSION_TTL must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_GRACE_PERIOD must be positive"))
	}

	return errors.Join(errs...)
}

// SecureCookies reports whether cookies carry the Secure flag.
func (c Config) SecureCookies() bool {
	if c.CookieSecure != nil {
		return *c.CookieSecure
	}
	return c.Env == "prod"
}
