package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GRADING_CACHE_TTL", "")
	t.Setenv("CACHE_ENABLED", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.GradingCacheTTL)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GRADING_CACHE_TTL", "15m")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.GradingCacheTTL)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("GRADING_CACHE_TTL", "tomorrow")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestCreateEventPublisher_DisabledDropsEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	for _, cfg := range []EventConfig{
		{Enabled: false, Publisher: "kafka"},
		{Enabled: true, Publisher: "none"},
		{Enabled: true, Publisher: "rabbit"},
	} {
		publisher, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.NoopEventPublisher{}, publisher, "publisher %q enabled=%v", cfg.Publisher, cfg.Enabled)
	}
}
