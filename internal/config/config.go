package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/product-catalog/pkg/config"
	"github.com/utafrali/product-catalog/pkg/database"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8080"`

	// Postgres
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"catalog"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"catalog"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	PostgresMinConns int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`

	// Elasticsearch
	ElasticsearchURL   string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"products"`

	// Search backend selection (elasticsearch or memory)
	SearchBackend string `env:"SEARCH_BACKEND" envDefault:"elasticsearch"`

	// Timeouts
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"5s"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Load reads configuration from environment variables and checks its
// invariants.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants. Called by pkg/config during Load.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchBackend != "elasticsearch" && c.SearchBackend != "memory" {
		return fmt.Errorf("invalid search backend: %q (want elasticsearch or memory)", c.SearchBackend)
	}
	if c.StoreTimeout <= 0 || c.SearchTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// Postgres returns the pool configuration for the authoritative store.
func (c *Config) Postgres() *database.PostgresConfig {
	return &database.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		DBName:   c.PostgresDB,
		SSLMode:  c.PostgresSSLMode,
		MaxConns: c.PostgresMaxConns,
		MinConns: c.PostgresMinConns,
	}
}
