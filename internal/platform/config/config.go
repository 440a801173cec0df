package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultBasePath        = "/admin"
	defaultAPIPrefix       = "/api/v1"
	defaultVenueName       = "Club Venue"
	defaultTimezone        = "Asia/Tokyo"
	defaultNominationFee   = 5000
	defaultLogLevel        = "info"
	defaultEnvironment     = "local"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server        ServerConfig
	HTTP          HTTPConfig
	Venue         VenueConfig
	Seed          SeedConfig
	Observability ObservabilityConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Address returns the listen address for the configured port.
func (c ServerConfig) Address() string {
	return ":" + c.Port
}

// HTTPConfig controls where the HTML views and the JSON API are mounted.
type HTTPConfig struct {
	BasePath  string
	APIPrefix string
}

// VenueConfig holds business settings of the venue.
type VenueConfig struct {
	Name          string
	Timezone      string
	Location      *time.Location
	NominationFee int64
}

// SeedConfig points at an optional seed file overriding the embedded one.
type SeedConfig struct {
	File string
}

// ObservabilityConfig controls logging.
type ObservabilityConfig struct {
	LogLevel    string
	Environment string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values taking precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process
// environment and explicit overrides, in increasing order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "ADMIN_SERVER_PORT", defaultPort),
			ReadTimeout:     durationWithDefault(lookup, "ADMIN_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "ADMIN_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "ADMIN_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "ADMIN_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		HTTP: HTTPConfig{
			BasePath:  normalizePath(stringWithDefault(lookup, "ADMIN_BASE_PATH", defaultBasePath)),
			APIPrefix: normalizePath(stringWithDefault(lookup, "ADMIN_API_PREFIX", defaultAPIPrefix)),
		},
		Venue: VenueConfig{
			Name:          stringWithDefault(lookup, "ADMIN_VENUE_NAME", defaultVenueName),
			Timezone:      stringWithDefault(lookup, "ADMIN_VENUE_TIMEZONE", defaultTimezone),
			NominationFee: int64WithDefault(lookup, "ADMIN_VENUE_NOMINATION_FEE", defaultNominationFee),
		},
		Seed: SeedConfig{
			File: stringWithDefault(lookup, "ADMIN_SEED_FILE", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:    strings.ToLower(stringWithDefault(lookup, "ADMIN_LOG_LEVEL", defaultLogLevel)),
			Environment: strings.ToLower(stringWithDefault(lookup, "ADMIN_ENVIRONMENT", defaultEnvironment)),
		},
	}

	if loc, err := time.LoadLocation(cfg.Venue.Timezone); err == nil {
		cfg.Venue.Location = loc
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	} else if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		missing = append(missing, "Server.IdleTimeout")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "Server.ShutdownTimeout")
	}
	if !strings.HasPrefix(cfg.HTTP.BasePath, "/") {
		missing = append(missing, "HTTP.BasePath")
	}
	if !strings.HasPrefix(cfg.HTTP.APIPrefix, "/") || cfg.HTTP.APIPrefix == "/" {
		missing = append(missing, "HTTP.APIPrefix")
	}
	if cfg.HTTP.BasePath == cfg.HTTP.APIPrefix {
		missing = append(missing, "HTTP.BasePath")
	}
	if cfg.Venue.Location == nil {
		missing = append(missing, "Venue.Timezone")
	}
	if cfg.Venue.NominationFee < 0 {
		missing = append(missing, "Venue.NominationFee")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func normalizePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return ""
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func int64WithDefault(lookup func(string) (string, bool), key string, fallback int64) int64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
