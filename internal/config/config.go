// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store backend modes.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds everything read from the environment at boot.
type Config struct {
	ListenAddr string

	StoreMode  string
	SQLitePath string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDatabase string

	RedisAddr string
	RedisDB   int
}

// FromEnv builds a Config from environment variables, with local-friendly
// defaults: sqlite storage in ./data, listening on :8080.
func FromEnv() *Config {
	return &Config{
		ListenAddr: ":" + getEnv("PORT", "8080"),

		StoreMode:  getEnv("WIZARD_STORE", StoreSQLite),
		SQLitePath: getEnv("WIZARD_DB_PATH", "data/wizard.db"),

		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresHost:     getEnv("PG_HOST", "localhost"),
		PostgresPort:     getEnv("PG_PORT", "5432"),
		PostgresDatabase: getEnv("PG_DATABASE", "wizard"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
	}
}

// PostgresURL assembles the pgx connection string.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDatabase)
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as an integer, else a default.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
