package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manula2004/bagisto/internal/domain"
	pkgconfig "github.com/manula2004/bagisto/pkg/config"
)

// Search engine backends selectable at startup.
const (
	EngineElastic     = "elasticsearch"
	EngineElasticBool = "elasticsearch_bool"
	EngineDatabase    = "database"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8020"`

	// PostgreSQL
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"catalog"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"catalog_secret"`
	DBName     string `env:"DB_NAME" envDefault:"catalog"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Catalog query behavior
	DefaultSort   string `env:"CATALOG_DEFAULT_SORT" envDefault:"name-desc"`
	PageSizes     []int  `env:"CATALOG_PAGE_SIZES" envDefault:"12,24,48" envSeparator:","`
	SnapshotReads bool   `env:"CATALOG_SNAPSHOT_READS" envDefault:"false"`

	// Storefront scope applied when a request carries no scope headers.
	DefaultChannel       string `env:"CATALOG_DEFAULT_CHANNEL" envDefault:"default"`
	DefaultLocale        string `env:"CATALOG_DEFAULT_LOCALE" envDefault:"en"`
	DefaultCustomerGroup int64  `env:"CATALOG_DEFAULT_CUSTOMER_GROUP" envDefault:"1"`
	DefaultCurrency      string `env:"CATALOG_DEFAULT_CURRENCY" envDefault:"USD"`

	// Currency conversion for price filters. Rates are "CODE:rate" pairs
	// relative to the base currency.
	BaseCurrency  string   `env:"CATALOG_BASE_CURRENCY" envDefault:"USD"`
	CurrencyRates []string `env:"CATALOG_CURRENCY_RATES" envDefault:"" envSeparator:","`

	// Search engine selection (elasticsearch, elasticsearch_bool, or database)
	SearchEngine   string `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`
	SearchPageSize int    `env:"SEARCH_PAGE_SIZE" envDefault:"16"`

	// Elasticsearch
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"catalog_products"`

	// Kafka
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"catalog-index-sync"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.SearchEngine {
	case EngineElastic, EngineElasticBool, EngineDatabase:
	default:
		return fmt.Errorf("invalid search engine: %q", c.SearchEngine)
	}
	for _, size := range c.PageSizes {
		if size < 1 || size > 100 {
			return fmt.Errorf("invalid page size: %d", size)
		}
	}
	if c.SearchPageSize < 1 || c.SearchPageSize > 100 {
		return fmt.Errorf("invalid search page size: %d", c.SearchPageSize)
	}
	if c.DefaultChannel == "" || c.DefaultLocale == "" || c.DefaultCurrency == "" {
		return fmt.Errorf("default channel, locale and currency must not be empty")
	}
	if c.DefaultCustomerGroup < 1 {
		return fmt.Errorf("invalid default customer group: %d", c.DefaultCustomerGroup)
	}
	if _, err := c.Rates(); err != nil {
		return err
	}
	return nil
}

// StoreDefaults returns the configured storefront scope used for requests
// that omit scope headers.
func (c *Config) StoreDefaults() domain.StoreContext {
	return domain.StoreContext{
		Channel:         c.DefaultChannel,
		Locale:          c.DefaultLocale,
		CustomerGroupID: c.DefaultCustomerGroup,
		Currency:        c.DefaultCurrency,
	}
}

// Rates parses the configured currency rate pairs into a lookup table keyed
// by uppercase currency code.
func (c *Config) Rates() (map[string]float64, error) {
	rates := make(map[string]float64, len(c.CurrencyRates))
	for _, pair := range c.CurrencyRates {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, raw, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid currency rate %q, expected CODE:rate", pair)
		}
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid currency rate %q, rate must be a positive number", pair)
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return rates, nil
}
