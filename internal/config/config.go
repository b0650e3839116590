package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cashflow/internal/kvstore"
)

type Config struct {
	// HTTP server (cashflow-server only)
	Port string

	// Storage backend selection
	DataBackend string

	// SQLite backend
	SQLiteDBPath string

	// File backend
	DataDirectory string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8090"),
		DataBackend:   getEnv("DATA_BACKEND", "file"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/cashflow.db"),
		DataDirectory: getEnv("DATA_DIR", "./data"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	backend := kvstore.BackendType(c.DataBackend)
	if !backend.IsValid() {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v",
			c.DataBackend, kvstore.BackendTypes()))
	}

	if backend == kvstore.SQLiteBackend {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if backend == kvstore.FileBackend && c.DataDirectory == "" {
		errors = append(errors, "data directory cannot be empty when using file backend")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// StoreOptions maps the config onto backend options for kvstore.Open.
func (c *Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Type:          kvstore.BackendType(c.DataBackend),
		DBPath:        c.SQLiteDBPath,
		DataDirectory: c.DataDirectory,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
