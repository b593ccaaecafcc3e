package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USER", "flights")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "flightfinder")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "POSTGRES_PORT", "POSTGRES_SSLMODE", "REDIS_HOST", "REDIS_PORT",
		"CACHE_TTL_MINUTES", "SNOWFLAKE_NODE_ID", "KAFKA_BROKERS", "ROUTE_REFRESH_CRON",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME", "MIGRATIONS_PATH",
	} {
		t.Setenv(key, "")
	}

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", config.AppEnv)
	assert.Equal(t, "8080", config.AppPort)
	assert.Equal(t, "5432", config.Postgres.Port)
	assert.Equal(t, "disable", config.Postgres.SSLMode)
	assert.Equal(t, 5, config.CacheTTLMinutes)
	assert.Equal(t, int64(1), config.SnowflakeNodeID)
	assert.Equal(t, "*/15 * * * *", config.RouteRefreshCron)
	assert.Equal(t, "db/migrations", config.MigrationsPath)
	assert.Equal(t, "flightfinder", config.Observability.ServiceName)
	assert.Empty(t, config.Kafka.Brokers)
	assert.Empty(t, config.RedisConfig.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_TTL_MINUTES", "15")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Observability.Environment)
	assert.Equal(t, "cache:6380", config.RedisConfig.Addr())
	assert.Equal(t, 15, config.CacheTTLMinutes)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.Kafka.Brokers)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_USER", "flights")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "flightfinder")
	t.Setenv("CACHE_TTL_MINUTES", "ten")

	config, err := Load()

	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing env: POSTGRES_HOST")
	assert.Contains(t, err.Error(), "missing env: POSTGRES_PASSWORD")
	assert.Contains(t, err.Error(), "conversion failed env: CACHE_TTL_MINUTES")
}
