// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			StoreTimeout: time.Second,
		},
		Database: DatabaseConfig{URL: "postgres://localhost/beanvoyage"},
		Redis:    RedisConfig{URL: "redis://localhost:6379/0"},
		Auth:     AuthConfig{PublicKeyPath: "keys/identity_public.pem"},
		Billing:  BillingConfig{CycleDays: 30, DefaultTierID: "tier-1"},
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "billing.cycle_days", envKeyReplacer("BILLING_CYCLE_DAYS"))
	assert.Equal(t, "match.clamp_negative_score", envKeyReplacer("MATCH_CLAMP_NEGATIVE_SCORE"))
	assert.Empty(t, envKeyReplacer("HOME"))
}

func TestLoadDefaults(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	var c Config
	require.NoError(t, k.Unmarshal("", &c))

	assert.Equal(t, 30, c.Billing.CycleDays)
	assert.Equal(t, "tier-1", c.Billing.DefaultTierID)
	assert.False(t, c.Match.ClampNegativeScore)
	assert.Equal(t, 24*time.Hour, c.Idempotency.TTL)
	assert.Equal(t, "@hourly", c.Renewal.Schedule)
	assert.Equal(t, 10*time.Minute, c.Renewal.Timeout)
	assert.Equal(t, 10*time.Second, c.Server.StoreTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing redis url",
			mutate:  func(c *Config) { c.Redis.URL = "" },
			wantErr: "REDIS_URL is required",
		},
		{
			name:    "missing public key",
			mutate:  func(c *Config) { c.Auth.PublicKeyPath = "" },
			wantErr: "AUTH_PUBLIC_KEY_PATH is required",
		},
		{
			name: "cors wildcard with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowCredentials = true
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: "CORS wildcard",
		},
		{
			name:    "zero billing cycle",
			mutate:  func(c *Config) { c.Billing.CycleDays = 0 },
			wantErr: "billing.cycle_days",
		},
		{
			name:    "zero store timeout",
			mutate:  func(c *Config) { c.Server.StoreTimeout = 0 },
			wantErr: "server.store_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBillingCycleLength(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, BillingConfig{CycleDays: 30}.CycleLength())
}
