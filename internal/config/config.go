// Package config resolves the runtime configuration from the
// environment, including which persistence backend the repository
// factory selects.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// PlaceholderDBHost is the value shipped in the example environment
// file. A DB_HOST still set to it counts as "not configured".
const PlaceholderDBHost = "TU_DB_HOST_AQUI"

type Config struct {
	// UseLocalStore selects the durable local key-space store instead
	// of the relational backend.
	UseLocalStore bool

	// DataDir is the directory for the local store's collections.
	DataDir string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads the configuration from the environment, after loading a
// .env file when one is present.
//
// The local store is selected when USE_LOCAL_STORE is set to "true",
// or when DB_HOST is absent or still the placeholder value.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DataDir:    envDefault("DATA_DIR", "data"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}

	cfg.UseLocalStore = os.Getenv("USE_LOCAL_STORE") == "true" ||
		cfg.DBHost == "" ||
		cfg.DBHost == PlaceholderDBHost

	return cfg
}

// DSN builds the postgres connection string for the remote backend.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func envDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
