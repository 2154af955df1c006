package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "VENDING_"

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Logger   LoggerConfig   `koanf:"logger"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database" validate:"-"`
	Kafka    KafkaConfig    `koanf:"kafka" validate:"-"`
	Catalog  CatalogConfig  `koanf:"catalog"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=production staging development local"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
}

// DSN renders the lib/pq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type KafkaConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Brokers      []string      `koanf:"brokers" validate:"required,min=1"`
	TopicPrefix  string        `koanf:"topic_prefix"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
}

// CatalogConfig points at an optional YAML seed file; empty means the built-in catalog.
type CatalogConfig struct {
	File string `koanf:"file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                "development",
		"logger.level":               "info",
		"store.driver":               StoreMemory,
		"database.port":              5432,
		"database.ssl_mode":          "disable",
		"database.max_open_conns":    5,
		"database.max_idle_conns":    2,
		"database.conn_max_lifetime": "30m",
		"kafka.enabled":              false,
		"kafka.topic_prefix":         "vending.",
		"kafka.write_timeout":        "5s",
	}
}

// LoadConfig reads defaults, then VENDING_* environment variables (and a .env file if present).
// VENDING_DATABASE__HOST maps to database.host.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks the always-required sections, plus database and kafka when they are switched on.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Store.Driver == StorePostgres {
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database config validation failed: %w", err)
		}
	}

	if c.Kafka.Enabled {
		if err := validate.Struct(c.Kafka); err != nil {
			return fmt.Errorf("kafka config validation failed: %w", err)
		}
	}

	return nil
}
