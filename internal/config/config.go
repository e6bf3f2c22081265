// Package config provides environment- and flag-driven configuration for
// campusnav. Flags win over environment variables, which win over defaults.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Map sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceMySQL    = "mysql"
	SourcePostgres = "postgres"
)

// Secret wraps a sensitive string to prevent accidental logging.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder. An
// empty secret prints as empty.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string { return s.String() }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Set and Type let a Secret be bound as a pflag value.
func (s *Secret) Set(v string) error { *s = Secret(v); return nil }
func (s *Secret) Type() string       { return "string" }

// MapConfig says where the campus map is loaded from.
type MapConfig struct {
	Source string
	File   string
	DSN    Secret
}

type ServerConfig struct {
	Addr            string
	Map             MapConfig
	CacheSize       int
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadMap reads the map settings from the environment.
func LoadMap() MapConfig {
	return MapConfig{
		Source: envOrDefault("MAP_SOURCE", SourceEmbedded),
		File:   os.Getenv("MAP_FILE"),
		DSN:    Secret(os.Getenv("DB_DSN")),
	}
}

// FromEnvServer reads the server configuration from the environment. Call
// BindFlags next to let the command line override it, then Validate.
func FromEnvServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:      envOrDefault("CAMPUSNAV_ADDR", ":8080"),
		Map:       LoadMap(),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	size, err := strconv.Atoi(envOrDefault("CACHE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_SIZE must be an integer: %w", err)
	}
	cfg.CacheSize = size

	timeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

// BindFlags registers the map flags on fs, defaulting to the current values.
func (m *MapConfig) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&m.Source, "map-source", m.Source, "Map source: embedded|file|mysql|postgres (env: MAP_SOURCE)")
	fs.StringVar(&m.File, "map-file", m.File, "YAML map file for --map-source=file (env: MAP_FILE)")
	fs.Var(&m.DSN, "dsn", "MySQL or Postgres DSN (env: DB_DSN)")
}

// BindFlags registers the server flags on fs, defaulting to the current values.
func (c *ServerConfig) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP bind address (env: CAMPUSNAV_ADDR)")
	fs.IntVar(&c.CacheSize, "cache-size", c.CacheSize, "Result cache entries, 0 disables (env: CACHE_SIZE)")
	fs.StringSliceVar(&c.CORSOrigins, "cors-origin", c.CORSOrigins, "Allowed CORS origin, repeatable (env: CORS_ORIGINS)")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "Grace period for in-flight requests (env: SHUTDOWN_TIMEOUT)")
	c.Map.BindFlags(fs)
}

// Validate checks the map settings.
func (m MapConfig) Validate() error {
	switch m.Source {
	case SourceEmbedded:
	case SourceFile:
		if m.File == "" {
			return fmt.Errorf("MAP_FILE is required when MAP_SOURCE is %q", SourceFile)
		}
	case SourceMySQL:
		if m.DSN.Value() == "" {
			return fmt.Errorf("DB_DSN is required when MAP_SOURCE is %q", SourceMySQL)
		}
	case SourcePostgres:
		if m.DSN.Value() == "" {
			return fmt.Errorf("DB_DSN is required when MAP_SOURCE is %q", SourcePostgres)
		}
		u, err := url.Parse(m.DSN.Value())
		if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			return fmt.Errorf("DB_DSN must be a postgres:// URL when MAP_SOURCE is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("MAP_SOURCE must be one of embedded, file, mysql, postgres, got %q", m.Source)
	}
	return nil
}

// Validate checks the whole server configuration.
func (c *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("CAMPUSNAV_ADDR %q is not host:port: %w", c.Addr, err)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return c.Map.Validate()
}

// NewLogger builds the process logger.
func NewLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("log format must be text or json, got %q", format)
	}
	return log, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
