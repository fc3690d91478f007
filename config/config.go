package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration, loaded from environment
// variables. A .env file, if present, is loaded by main before parsing.
type Config struct {
	Port     string `env:"PORT" envDefault:"8000"`
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME" envDefault:"visionx"`

	JWTSecret         string `env:"JWT_SECRET"`
	TokenLifetimeDays int    `env:"TOKEN_LIFETIME_DAYS" envDefault:"30"`

	// CORS allow-list: the storefront and the admin back-office.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	AdminURL  string `env:"ADMIN_URL" envDefault:"http://localhost:5174"`

	// Seed credentials for the initial admin account. Seeding is skipped
	// when AdminEmail is empty or the user already exists.
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	TaxRate          float64 `env:"TAX_RATE" envDefault:"0.07"`
	ShippingFlatRate float64 `env:"SHIPPING_FLAT_RATE" envDefault:"12.99"`

	// When set, marking an unpaid order as delivered is rejected with 409.
	RequirePaidBeforeDelivery bool `env:"REQUIRE_PAID_BEFORE_DELIVERY" envDefault:"false"`

	PostmarkToken string `env:"POSTMARK_API_TOKEN"`
	EmailSender   string `env:"EMAIL_SENDER"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.TokenLifetimeDays <= 0 {
		return fmt.Errorf("TOKEN_LIFETIME_DAYS must be positive")
	}
	return nil
}

// AllowedOrigins returns the CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	return []string{c.ClientURL, c.AdminURL}
}
