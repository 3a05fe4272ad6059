package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "fleischhandel-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, float64(1200), cfg.Tour.DefaultMaxGewichtKg)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "Idempotency-Key")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("tour capacity must be positive", func(t *testing.T) {
		cfg := valid()
		cfg.Tour.DefaultMaxGewichtKg = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio range", func(t *testing.T) {
		cfg := valid()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires strong secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "a-very-long-production-secret-with-32-chars"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production forbids wildcard CORS", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.JWT.Secret = "a-very-long-production-secret-with-32-chars"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "fleisch",
		Password: "p@ss/word",
		DBName:   "fleischhandel",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6379}
	assert.Equal(t, "cache.internal:6379", r.Addr())
}
