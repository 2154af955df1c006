package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/vending-machine/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "vending.", cfg.Kafka.TopicPrefix)
	assert.Equal(t, 5*time.Second, cfg.Kafka.WriteTimeout)
	assert.Empty(t, cfg.Catalog.File)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("VENDING_PRIMARY__ENV", "production")
	t.Setenv("VENDING_LOGGER__LEVEL", "debug")
	t.Setenv("VENDING_STORE__DRIVER", "postgres")
	t.Setenv("VENDING_DATABASE__HOST", "db.local")
	t.Setenv("VENDING_DATABASE__USER", "vending")
	t.Setenv("VENDING_DATABASE__PASSWORD", "secret")
	t.Setenv("VENDING_DATABASE__NAME", "machine")
	t.Setenv("VENDING_CATALOG__FILE", "/etc/vending/catalog.yaml")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "/etc/vending/catalog.yaml", cfg.Catalog.File)
	assert.Equal(t,
		"host=db.local port=5432 user=vending password=secret dbname=machine sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoadConfig_PostgresRequiresDatabase(t *testing.T) {
	t.Setenv("VENDING_STORE__DRIVER", "postgres")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database config validation failed")
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("VENDING_STORE__DRIVER", "sqlite")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_KafkaBrokers(t *testing.T) {
	t.Run("enabled without brokers fails", func(t *testing.T) {
		t.Setenv("VENDING_KAFKA__ENABLED", "true")

		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka config validation failed")
	})

	t.Run("enabled with brokers", func(t *testing.T) {
		t.Setenv("VENDING_KAFKA__ENABLED", "true")
		t.Setenv("VENDING_KAFKA__BROKERS", "kafka-1:9092,kafka-2:9092")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Kafka.Enabled)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})
}
