package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.False(t, cfg.Ledger.StrictApproval)
	assert.Equal(t, time.Local, cfg.Ledger.Location)
	assert.Equal(t, 5*time.Second, cfg.Holiday.Timeout)
	assert.Empty(t, cfg.Holiday.URL)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APPROVAL_STRICT", "true")
	t.Setenv("LEDGER_TIMEZONE", "Asia/Tokyo")
	t.Setenv("HOLIDAY_API_URL", "https://cal.example/{year}.json")
	t.Setenv("HOLIDAY_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.Ledger.StrictApproval)
	assert.Equal(t, "Asia/Tokyo", cfg.Ledger.Location.String())
	assert.Equal(t, "https://cal.example/{year}.json", cfg.Holiday.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.Holiday.Timeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"APP_PORT":           "eighty",
		"APPROVAL_STRICT":    "maybe",
		"LEDGER_TIMEZONE":    "Mars/Olympus",
		"HOLIDAY_TIMEOUT":    "soon",
		"STORE_DRIVER":       "mongo",
		"HOLIDAY_API_URL":    "https://cal.example/2024.json",
		"DB_MAX_CONNS":       "many",
		"DB_CONNECT_TIMEOUT": "never",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{MaxConns: 10, MinConns: 2},
		Store:    StoreConfig{Driver: DriverPostgres},
		JWT:      JWTConfig{Secret: "secret"},
		Holiday:  HolidayConfig{Timeout: time.Second},
	}
	assert.EqualError(t, cfg.Validate(), "DB_PASSWORD is required")

	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())

	cfg.Database.MinConns = 20
	assert.Error(t, cfg.Validate())
	cfg.Database.MinConns = 2

	cfg.JWT.Secret = ""
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET_KEY is required")

	cfg.JWT.Secret = "secret"
	cfg.Store = StoreConfig{Driver: DriverSQLite}
	assert.EqualError(t, cfg.Validate(), "SQLITE_PATH is required")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_PoolSettings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_MAX_CONNS", "16")
	t.Setenv("DB_MIN_CONNS", "4")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.Database.PoolOptions()
	assert.Equal(t, int32(16), opts.MaxConns)
	assert.Equal(t, int32(4), opts.MinConns)
	assert.Equal(t, 15*time.Minute, opts.MaxConnLifetime)
	assert.Equal(t, 2*time.Second, opts.ConnectTimeout)
}
