package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/imrulkk89/ebiw-grafana-ui/pkg/config"
)

// Config holds all configuration for the panel host.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	// HTTP server
	HTTPPort int `env:"PANEL_HTTP_PORT" envDefault:"3000"`

	// Catalog upstream
	CatalogURL          string        `env:"CATALOG_URL" envDefault:"https://dummyjson.com/products" validate:"required,url"`
	CatalogProductsPath string        `env:"CATALOG_PRODUCTS_PATH" envDefault:"products" validate:"required"`
	CatalogTimeout      time.Duration `env:"CATALOG_TIMEOUT" envDefault:"0s"`

	// Panel rendering
	Theme               string `env:"PANEL_THEME" envDefault:"dark" validate:"oneof=dark light"`
	TableHeight         int    `env:"PANEL_TABLE_HEIGHT" envDefault:"800" validate:"gte=1"`
	TableWidth          int    `env:"PANEL_TABLE_WIDTH" envDefault:"1500" validate:"gte=1"`
	TableColumnMinWidth int    `env:"PANEL_TABLE_COLUMN_MIN_WIDTH" envDefault:"200" validate:"gte=1"`
	TableResizable      bool   `env:"PANEL_TABLE_RESIZABLE" envDefault:"true"`

	// Rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50" validate:"gt=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100" validate:"gte=1"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318" validate:"required"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load panel config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CatalogTimeout < 0 {
		return fmt.Errorf("invalid catalog timeout: %s", c.CatalogTimeout)
	}
	return nil
}
