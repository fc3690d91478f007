package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "visionx", cfg.DBName)
	assert.Equal(t, 30, cfg.TokenLifetimeDays)
	assert.Equal(t, 0.07, cfg.TaxRate)
	assert.Equal(t, 12.99, cfg.ShippingFlatRate)
	assert.False(t, cfg.RequirePaidBeforeDelivery)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.AllowedOrigins())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TAX_RATE", "0.05")
	t.Setenv("REQUIRE_PAID_BEFORE_DELIVERY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.05, cfg.TaxRate)
	assert.True(t, cfg.RequirePaidBeforeDelivery)
}

func TestValidateTokenLifetime(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_LIFETIME_DAYS", "0")

	_, err := Load()
	assert.Error(t, err)
}
