package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/shoplite/storefront/internal/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (STOREFRONT_ prefix), flags, or YAML config files.
type Config struct {
	Addr      string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Store     StoreConfig
	Pricing   PricingConfig
	Promo     PromoConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// StoreConfig selects and configures the collection store backend.
type StoreConfig struct {
	Backend     string `default:"file" usage:"collection store backend: file or postgres"`
	DataDir     string `default:"data" usage:"directory for file-backed collection documents" flag:"data-dir"`
	DatabaseURL string `usage:"PostgreSQL connection URL (postgres backend; STOREFRONT_STORE_DATABASEURL or DATABASE_URL)" flag:"database-url"`
}

// PricingConfig holds the checkout pricing rules. Rates are decimal
// strings so they survive config parsing without float drift.
type PricingConfig struct {
	ShippingFeeCents           int64  `default:"899" usage:"Shipping fee below the free threshold, in cents"`
	FreeShippingThresholdCents int64  `default:"10000" usage:"Subtotal at which shipping becomes free, in cents"`
	PromoDiscountRate          string `default:"0.25" usage:"Promo discount as a fraction of the subtotal"`
	TaxRate                    string `default:"0.13" usage:"Tax rate applied to the discounted subtotal plus shipping"`
}

// PromoConfig configures promo code acceptance.
type PromoConfig struct {
	Code       string `default:"demo" usage:"Accepted promo code (case-insensitive)"`
	FilterPath string `usage:"Optional bloom filter sidecar of additional accepted codes (built by promo-ingest)" flag:"promo-filter"`
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		Files:     []string{"config.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.Store.Backend == "postgres" && cfg.Store.DatabaseURL == "" {
		return nil, errors.New("postgres backend needs a database URL: set STOREFRONT_STORE_DATABASEURL or DATABASE_URL")
	}
	return &cfg, nil
}

// PricingRules parses the configured rates into calculator config.
func (c *Config) PricingRules() (pricing.Config, error) {
	discountRate, err := decimal.NewFromString(c.Pricing.PromoDiscountRate)
	if err != nil {
		return pricing.Config{}, errors.Wrap(err, "parse promo discount rate")
	}
	taxRate, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return pricing.Config{}, errors.Wrap(err, "parse tax rate")
	}
	return pricing.Config{
		ShippingFeeCents:           c.Pricing.ShippingFeeCents,
		FreeShippingThresholdCents: c.Pricing.FreeShippingThresholdCents,
		PromoDiscountRate:          discountRate,
		TaxRate:                    taxRate,
	}, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) with standard names like DATABASE_URL and PORT
// onto the STOREFRONT_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Store.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.Store.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
