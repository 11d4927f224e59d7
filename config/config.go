package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8000
//	DATA_DIR=daily_technical_data
//	DATA_EXT=.csv
//	AGGREGATE_PARALLEL=0
//	REQUEST_TIMEOUT=10s
//	RATE_LIMIT_PER_MINUTE=60
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	Dataset    DatasetConfig    // Backing store location
	Aggregator AggregatorConfig // Summary listing tuning
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8000")
	RequestTimeout time.Duration // Deadline attached to every request context
	RateLimit      int           // Requests per client IP per minute; 0 disables the limiter
}

// DatasetConfig points at the directory holding one tabular file per ticker.
//
// Fields:
//   - Dir: directory scanned for ticker files.
//   - Ext: file extension including the leading dot (e.g., ".csv").
type DatasetConfig struct {
	Dir string
	Ext string
}

// AggregatorConfig bounds how many ticker files the summary listing reads at once.
type AggregatorConfig struct {
	Parallel int // 0 = auto
}

// LoadConfig builds a Config from defaults, an optional .env file and the environment.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The result is validated; a descriptive error lists every missing or invalid key.
func LoadConfig() (Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("DATA_DIR", "daily_technical_data")
	v.SetDefault("DATA_EXT", ".csv")
	v.SetDefault("AGGREGATE_PARALLEL", 0)
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
			RateLimit:      v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Dataset: DatasetConfig{
			Dir: strings.TrimSpace(v.GetString("DATA_DIR")),
			Ext: normalizeExt(v.GetString("DATA_EXT")),
		},
		Aggregator: AggregatorConfig{
			Parallel: v.GetInt("AGGREGATE_PARALLEL"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalizeExt guarantees a leading dot so "csv" and ".csv" are equivalent.
func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// validateConfig ensures required variables are present and sane.
//
// Behavior:
//   - Checks each critical field of cfg.
//   - Collects offending keys in a slice.
//   - Returns a single error naming all of them.
func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	if cfg.Server.RateLimit < 0 {
		missing = append(missing, "RATE_LIMIT_PER_MINUTE")
	}
	if cfg.Dataset.Dir == "" {
		missing = append(missing, "DATA_DIR")
	}
	if cfg.Dataset.Ext == "" {
		missing = append(missing, "DATA_EXT")
	}
	if cfg.Aggregator.Parallel < 0 {
		missing = append(missing, "AGGREGATE_PARALLEL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid configuration: %v", missing)
	}
	return nil
}
