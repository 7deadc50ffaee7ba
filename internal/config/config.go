package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	pkgconfig "github.com/horizonte/storefront/pkg/config"
)

// Cart store backends.
const (
	CartBackendMemory = "memory"
	CartBackendRedis  = "redis"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Store identity used in the order message and the chat deep-link.
	StoreName      string `env:"STORE_NAME" envDefault:"Horizonte - Sorvete e Açaí"`
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"5565981041149"`

	// Catalog
	CatalogFile         string `env:"CATALOG_FILE"`
	CatalogCacheSeconds int    `env:"CATALOG_CACHE_SECONDS" envDefault:"0"`
	AdminToken          string `env:"ADMIN_TOKEN"`

	// Cart store
	CartBackend  string `env:"CART_BACKEND" envDefault:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`
	CartTTLHours int    `env:"CART_TTL_HOURS" envDefault:"24"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Order handoff webhook; empty disables it.
	NotifyWebhookURL string `env:"NOTIFY_WEBHOOK_URL"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Per-client throttle on checkout and admin writes; 0 disables it.
	WriteRateLimit float64 `env:"WRITE_RATE_LIMIT" envDefault:"2"`
	WriteRateBurst int     `env:"WRITE_RATE_BURST" envDefault:"10"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`
}

// Load reads configuration from .env (when present) and the environment.
func Load() (*Config, error) {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CartTTL is how long an idle cart survives in Redis.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) validate() error {
	var errs []error

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if strings.TrimSpace(c.StoreName) == "" {
		errs = append(errs, errors.New("STORE_NAME is required"))
	}
	if !isDigits(c.WhatsAppNumber) {
		errs = append(errs, fmt.Errorf("WHATSAPP_NUMBER must contain digits only, got %q", c.WhatsAppNumber))
	}
	switch c.CartBackend {
	case CartBackendMemory:
	case CartBackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis cart backend"))
		}
		if c.CartTTLHours < 1 {
			errs = append(errs, fmt.Errorf("CART_TTL_HOURS must be positive, got %d", c.CartTTLHours))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CART_BACKEND %q", c.CartBackend))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE must be within [0, 1], got %v", c.OTELSampleRate))
	}
	if c.CatalogCacheSeconds < 0 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_SECONDS must not be negative, got %d", c.CatalogCacheSeconds))
	}
	if c.WriteRateLimit < 0 {
		errs = append(errs, fmt.Errorf("WRITE_RATE_LIMIT must not be negative, got %v", c.WriteRateLimit))
	}
	if c.WriteRateLimit > 0 && c.WriteRateBurst < 1 {
		errs = append(errs, fmt.Errorf("WRITE_RATE_BURST must be positive, got %d", c.WriteRateBurst))
	}
	for _, cidr := range c.PprofAllowedCIDRs {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			errs = append(errs, fmt.Errorf("invalid PPROF_ALLOWED_CIDRS entry %q", cidr))
		}
	}

	return errors.Join(errs...)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
