// Package config loads the crossgen serve subcommand's settings from
// the environment, with a .env file loaded first if present.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything internal/apiserver needs to start.
type Config struct {
	Port          string
	ServiceSecret string
	SQLitePath    string
	RedisURL      string // empty disables the distributed cache store
	DictionaryDir string
}

// Load reads a .env file if present (a missing file is not an error -
// it just means the process is relying on ambient environment
// variables, as in a container) and then reads configuration from the
// environment, falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		ServiceSecret: getEnv("SERVICE_SECRET", "change-me-in-production"),
		SQLitePath:    getEnv("JOB_DB_PATH", "fill_jobs.db"),
		RedisURL:      getEnv("REDIS_URL", ""),
		DictionaryDir: getEnv("DICTIONARY_DIR", "./dictionaries"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
