package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	// SnapshotPath is the file the record store persists to after every
	// mutation. Empty disables persistence (used by tests).
	SnapshotPath string

	LogLevel string

	// SnowflakeNodeID seeds the ID generator; distinct per deployment.
	SnowflakeNodeID int64

	// SeedDemoData controls whether a demo member is seeded alongside the
	// partner catalog.
	SeedDemoData bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:         getenv("APP_SERVICE", "subiclife"),
		AppVersion:      getenv("APP_VERSION", "0.1.0"),
		Environment:     getenv("ENVIRONMENT", "development"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		SnapshotPath:    getenv("STORE_SNAPSHOT_PATH", "subiclife-store.snap"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		SnowflakeNodeID: getenvInt64("SNOWFLAKE_NODE_ID", 1),
		SeedDemoData:    getenvBool("SEED_DEMO_DATA", true),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
