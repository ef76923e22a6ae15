package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Nuevo", cfg.Business.OrderInitialStatus)
	assert.Equal(t, 300, cfg.Business.InstanceCacheTTLSeconds)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORDER_INITIAL_STATUS", "pendiente")
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg := Load()

	assert.Equal(t, "pendiente", cfg.Business.OrderInitialStatus)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}
