package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool
	LogLevel     string

	DatabaseURL       string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration

	NATSURL      string
	StreamName   string
	Subject      string
	ConsumerName string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseTLS    bool
	ArchiveBucket  string

	WorkerBatchSize int
	WorkerFetchWait time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// Identifiers for the store, queue and archive are required; everything else
// falls back.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", ":8080"),
		AppMode:           strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:      parseBoolEnv("FIBER_PREFORK", false),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DBMaxConns:        parseInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        parseInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnLifetime: parseDurationEnv("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBMaxConnIdleTime: parseDurationEnv("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		StreamName:        getEnv("NATS_STREAM", "DEVICE_EVENTS"),
		Subject:           getEnv("NATS_SUBJECT", "events.device"),
		ConsumerName:      getEnv("NATS_CONSUMER", "aggregation-worker"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioUseTLS:       parseBoolEnv("MINIO_USE_TLS", false),
		WorkerBatchSize:   parseIntEnv("WORKER_BATCH_SIZE", 10),
		WorkerFetchWait:   parseDurationEnv("WORKER_FETCH_WAIT", 5*time.Second),
	}

	var missing []string

	for _, req := range []struct {
		key string
		dst *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"NATS_URL", &cfg.NATSURL},
		{"MINIO_ENDPOINT", &cfg.MinioEndpoint},
		{"ARCHIVE_BUCKET", &cfg.ArchiveBucket},
	} {
		*req.dst = os.Getenv(req.key)
		if *req.dst == "" {
			missing = append(missing, req.key)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env var(s): %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt32Env(key string, fallback int32) int32 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return int32(parsed)
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
