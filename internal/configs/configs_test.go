package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "review-pool.com/review-pool/internal/models"
)

func validConfig() Config {
	return Config{
		AppURL:                  "127.0.0.1:8080",
		DatabaseDriver:          "sqlite",
		DatabaseDSN:             "file::memory:",
		RateLimit:               60,
		TransferCacheTTLSeconds: 60,
		ChainRPCURL:             "http://localhost:8899",
		TreasuryAddress:         "82oLAu5vM3vjMNBFithiTnF2qxWUYxjgEuAE83Jr1JjL",
		UnitPriceLamports:       100_000_000,
		JWTSecret:               "0123456789abcdef",
		ShutdownTimeoutSeconds:  20,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validate(validConfig()))

	cases := map[string]func(*Config){
		"driver":        func(c *Config) { c.DatabaseDriver = "mysql" },
		"dsn":           func(c *Config) { c.DatabaseDSN = "" },
		"rate limit":    func(c *Config) { c.RateLimit = 0 },
		"cache ttl":     func(c *Config) { c.TransferCacheEnabled = true; c.TransferCacheTTLSeconds = 0 },
		"treasury":      func(c *Config) { c.TreasuryAddress = "" },
		"unit price":    func(c *Config) { c.UnitPriceLamports = 0 },
		"short secret":  func(c *Config) { c.JWTSecret = "short" },
		"shutdown time": func(c *Config) { c.ShutdownTimeoutSeconds = 0 },
	}

	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		assert.Error(t, validate(cfg), name)
	}
}

func TestLoadJWTSecret_IgnoresServeSettings(t *testing.T) {
	t.Setenv("TREASURY_ADDRESS", "")
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	secret, err := LoadJWTSecret()
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", secret)

	t.Setenv("JWT_SECRET", "short")
	_, err = LoadJWTSecret()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TREASURY_ADDRESS", "82oLAu5vM3vjMNBFithiTnF2qxWUYxjgEuAE83Jr1JjL")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("APP_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:9090", cfg.AppURL)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, int64(100_000_000), cfg.UnitPriceLamports)
	assert.False(t, cfg.TransferCacheEnabled)
}

func TestNewDatabaseClient_SQLite(t *testing.T) {
	db, err := NewDatabaseClient("sqlite", "file::memory:", logrus.New())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.Submission{}))
	assert.True(t, db.Migrator().HasIndex(&model.Submission{}, "idx_submission_task_worker"))
	assert.True(t, db.Migrator().HasTable(&model.Payment{}))

	_, err = NewDatabaseClient("oracle", "x", logrus.New())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense", "text").GetLevel())
}
