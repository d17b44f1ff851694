// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// ConnectionString is either a postgres:// URL or a file:/sqlite: DSN
	// pointing at a local snapshot of the results view.
	ConnectionString string
	// View is the results view every query reads from.
	View         string
	MaxOpenConns int

	// Server
	Debug       bool
	LogLevel    string
	Port        string
	TLSDomains  []string
	StaticDir   string
	CORSOrigins []string
	// RateLimitRPM is the per-client request budget per minute. Zero disables limiting.
	RateLimitRPM int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. A missing connection string is fatal.
func Load() *Config {
	cfg := FromViper(newViper())
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromViper builds a Config from v, applying defaults. It does not validate.
func FromViper(v *viper.Viper) *Config {
	v.SetDefault("OCEANSWIMMER_VIEW", "vw_oceanswims_search")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("PORT", ":8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATIC_DIR", "wwwroot")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPM", 600)

	cfg := &Config{
		ConnectionString: strings.TrimSpace(v.GetString("OCEANSWIMMER_SQL")),
		View:             strings.TrimSpace(v.GetString("OCEANSWIMMER_VIEW")),
		MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		Debug:            v.GetBool("DEBUG"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		Port:             v.GetString("PORT"),
		TLSDomains:       splitTrimmed(v.GetString("TLS_DOMAINS")),
		StaticDir:        v.GetString("STATIC_DIR"),
		CORSOrigins:      splitTrimmed(v.GetString("CORS_ORIGINS")),
		RateLimitRPM:     v.GetInt("RATE_LIMIT_RPM"),
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

// Validate reports the first setting that prevents the server from starting.
func (c *Config) Validate() error {
	if c.ConnectionString == "" {
		return errors.New("missing OCEANSWIMMER_SQL connection string")
	}
	if c.View == "" {
		return errors.New("OCEANSWIMMER_VIEW must not be empty")
	}
	if c.RateLimitRPM < 0 {
		return errors.New("RATE_LIMIT_RPM must not be negative")
	}
	return nil
}

// IsSQLite reports whether the connection string points at a SQLite database.
func (c *Config) IsSQLite() bool {
	return strings.HasPrefix(c.ConnectionString, "file:") ||
		strings.HasPrefix(c.ConnectionString, "sqlite:")
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
