package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port, or "" when redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type KafkaConfig struct {
	Brokers        []string
	InventoryTopic string
	GroupID        string
}

type Config struct {
	AppEnv           string
	AppPort          string
	Postgres         PostgresConfig
	RedisConfig      RedisConfig
	Observability    ObservabilityConfig
	Kafka            KafkaConfig
	CacheTTLMinutes  int
	RouteRefreshCron string
	SnowflakeNodeID  int64
	MigrationsPath   string
}

func Load() (*Config, error) {
	var errs []error

	// .env is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := envOr("APP_ENV", "development")
	appPort := envOr("APP_PORT", "8080")

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDB := mustEnv("POSTGRES_DB", &errs)

	cacheTTLMinutes := intEnv("CACHE_TTL_MINUTES", 5, &errs)
	nodeID := intEnv("SNOWFLAKE_NODE_ID", 1, &errs)

	var brokers []string
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		Postgres: PostgresConfig{
			Host:     pgHost,
			Port:     envOr("POSTGRES_PORT", "5432"),
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDB,
			SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
		},
		RedisConfig: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     envOr("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  envOr("OTEL_SERVICE_NAME", "flightfinder"),
			Environment:  appEnv,
		},
		Kafka: KafkaConfig{
			Brokers:        brokers,
			InventoryTopic: envOr("KAFKA_INVENTORY_TOPIC", "flight-inventory"),
			GroupID:        envOr("KAFKA_GROUP_ID", "flightfinder-routesync"),
		},
		CacheTTLMinutes:  cacheTTLMinutes,
		RouteRefreshCron: envOr("ROUTE_REFRESH_CRON", "*/15 * * * *"),
		SnowflakeNodeID:  int64(nodeID),
		MigrationsPath:   envOr("MIGRATIONS_PATH", "db/migrations"),
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}
