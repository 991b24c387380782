package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "laced.db", cfg.DatabaseFile)
	require.Equal(t, "bcrypt", cfg.PasswordAlgorithm)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 7*24*time.Hour, cfg.GuestSessionTTL)
	require.Nil(t, cfg.CookieSecure)
	require.True(t, cfg.CatalogSeed)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LACED_DATABASE_DRIVER", "Postgres")
	t.Setenv("LACED_DATABASE_URL", "postgres://laced@localhost/laced")
	t.Setenv("LACED_SESSION_TTL", "2h")
	t.Setenv("LACED_COOKIE_SECURE", "false")
	t.Setenv("LACED_CATALOG_SEED", "false")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.CatalogSeed)
	require.Equal(t, 9090, cfg.Port)
	require.False(t, cfg.SecureCookies(), "explicit override beats ENV")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("LACED_BCRYPT_COST", "lots")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DatabaseDriver:      DriverSQLite,
			DatabaseFile:        "laced.db",
			SessionTTL:          time.Hour,
			GuestSessionTTL:     time.Hour,
			Port:                8080,
			ShutdownGracePeriod: time.Second,
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "LACED_DATABASE_DRIVER"},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "LACED_DATABASE_URL"},
		{"sqlite without file", func(c *Config) { c.DatabaseFile = "" }, "LACED_DATABASE_FILE"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "LACED_SESSION_TTL"},
		{"zero guest ttl", func(c *Config) { c.GuestSessionTTL = 0 }, "LACED_GUEST_SESSION_TTL"},
		{"port range", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"grace period", func(c *Config) { c.ShutdownGracePeriod = 0 }, "SHUTDOWN_GRACE_PERIOD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSecureCookies(t *testing.T) {
	on, off := true, false

	require.False(t, Config{Env: "dev"}.SecureCookies())
	require.True(t, Config{Env: "prod"}.SecureCookies())
	require.True(t, Config{Env: "dev", CookieSecure: &on}.SecureCookies())
	require.False(t, Config{Env: "prod", CookieSecure: &off}.SecureCookies())
}
