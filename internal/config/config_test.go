package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig())
	require.NotNil(t, AppConfig)

	assert.Equal(t, "8002", AppConfig.Server.Port)
	assert.Equal(t, "en", AppConfig.Store.DefaultLanguage)
	assert.Equal(t, 50, AppConfig.Scanner.BatchSize)
	assert.Equal(t, 21600, AppConfig.Scanner.CacheTTLSeconds)
	assert.Equal(t, "kb:chunks", AppConfig.Scanner.CachePrefix)
	assert.False(t, AppConfig.Scanner.IncludePosts)
	assert.True(t, AppConfig.Redis.Enabled)
	assert.False(t, AppConfig.Kafka.Enabled)
	assert.Equal(t, "kb-scan-reports", AppConfig.Kafka.Topic)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("STORESCAN_SCANNER_BATCH_SIZE", "25")
	t.Setenv("STORESCAN_STORE_DEFAULT_LANGUAGE", "de")
	t.Setenv("STORESCAN_REDIS_ENABLED", "false")

	require.NoError(t, LoadConfig())

	assert.Equal(t, 25, AppConfig.Scanner.BatchSize)
	assert.Equal(t, "de", AppConfig.Store.DefaultLanguage)
	assert.False(t, AppConfig.Redis.Enabled)
}

func TestGetAppConfig(t *testing.T) {
	require.NoError(t, LoadConfig())
	assert.Same(t, AppConfig, GetAppConfig())
}
