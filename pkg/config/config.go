package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/storage"
)

// EnvConfigFile names an optional YAML file read before the environment
const EnvConfigFile = "ADVOCATES_CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string

	// Origins allowed to call the API from a browser; empty disables CORS
	CORSOrigins []string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
	OTelSampleRatio    float64
}

// OTel returns the OpenTelemetry settings in the form InitOTel takes
func (o ObservabilityConfig) OTel() observability.OTelConfig {
	return observability.OTelConfig{
		Enabled:        o.OTelEnabled,
		Endpoint:       o.OTelEndpoint,
		ServiceName:    o.OTelServiceName,
		ServiceVersion: o.OTelServiceVersion,
		Insecure:       o.OTelInsecure,
		SampleRatio:    o.OTelSampleRatio,
	}
}

// Addr is the API listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// HealthAddr is the health/metrics listen address
func (s ServerConfig) HealthAddr() string {
	return s.Host + ":" + s.HealthPort
}

// LoadConfig loads configuration from the optional YAML file named by
// ADVOCATES_CONFIG_FILE, then from environment variables, which win.
func LoadConfig() (*Config, error) {
	src := source{}

	if path := os.Getenv(EnvConfigFile); path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		src.k = k
	}

	obs, err := loadObservabilityConfig(src)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server:        loadServerConfig(src),
		Storage:       loadStorageConfig(src),
		Observability: obs,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration
func loadServerConfig(src source) ServerConfig {
	return ServerConfig{
		Host:            src.str("server.host", "ADVOCATES_HOST", "0.0.0.0"),
		Port:            src.str("server.port", "ADVOCATES_PORT", "3000"),
		ReadTimeout:     src.duration("server.read_timeout", "ADVOCATES_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    src.duration("server.write_timeout", "ADVOCATES_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     src.duration("server.idle_timeout", "ADVOCATES_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: src.duration("server.shutdown_timeout", "ADVOCATES_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      src.str("server.health_port", "ADVOCATES_HEALTH_PORT", "9090"),
		CORSOrigins:     splitList(src.str("server.cors_origins", "ADVOCATES_CORS_ORIGINS", "")),
	}
}

// loadStorageConfig loads storage configuration
func loadStorageConfig(src source) storage.Config {
	cfg := storage.DefaultConfig()

	cfg.Type = src.str("storage.type", "ADVOCATES_STORE_TYPE", cfg.Type)
	cfg.PostgresURL = src.str("storage.postgres_url", "ADVOCATES_POSTGRES_URL", cfg.PostgresURL)
	cfg.PostgresReplicaURLs = src.str("storage.postgres_replica_urls", "ADVOCATES_POSTGRES_REPLICA_URLS", cfg.PostgresReplicaURLs)
	cfg.PostgresMaxConns = src.int("storage.postgres_max_conns", "ADVOCATES_POSTGRES_MAX_CONNS", cfg.PostgresMaxConns)
	cfg.PostgresMinConns = src.int("storage.postgres_min_conns", "ADVOCATES_POSTGRES_MIN_CONNS", cfg.PostgresMinConns)
	cfg.PostgresTimeout = src.duration("storage.postgres_timeout", "ADVOCATES_POSTGRES_TIMEOUT", cfg.PostgresTimeout)
	cfg.PostgresMaxLifetime = src.duration("storage.postgres_max_lifetime", "ADVOCATES_POSTGRES_MAX_LIFETIME", cfg.PostgresMaxLifetime)
	cfg.PostgresMaxIdleTime = src.duration("storage.postgres_max_idle_time", "ADVOCATES_POSTGRES_MAX_IDLE_TIME", cfg.PostgresMaxIdleTime)
	cfg.SeedFile = src.str("storage.seed_file", "ADVOCATES_SEED_FILE", cfg.SeedFile)

	return cfg
}

// loadObservabilityConfig loads observability configuration
func loadObservabilityConfig(src source) (ObservabilityConfig, error) {
	level, err := observability.ParseLogLevel(src.str("observability.log_level", "ADVOCATES_LOG_LEVEL", "info"))
	if err != nil {
		return ObservabilityConfig{}, fmt.Errorf("invalid log level: %w", err)
	}

	return ObservabilityConfig{
		LogLevel:           level,
		MetricsEnabled:     src.bool("observability.metrics_enabled", "ADVOCATES_METRICS_ENABLED", true),
		OTelEnabled:        src.bool("observability.otel_enabled", "ADVOCATES_OTEL_ENABLED", false),
		OTelEndpoint:       src.str("observability.otel_endpoint", "ADVOCATES_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    src.str("observability.otel_service_name", "ADVOCATES_OTEL_SERVICE_NAME", "advocates"),
		OTelServiceVersion: src.str("observability.otel_service_version", "ADVOCATES_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       src.bool("observability.otel_insecure", "ADVOCATES_OTEL_INSECURE", true),
		OTelSampleRatio:    src.float("observability.otel_sample_ratio", "ADVOCATES_OTEL_SAMPLE_RATIO", 1),
	}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	switch c.Storage.Type {
	case storage.TypePostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
		if c.Storage.PostgresMinConns > c.Storage.PostgresMaxConns {
			return fmt.Errorf("postgres min conns (%d) exceeds max conns (%d)",
				c.Storage.PostgresMinConns, c.Storage.PostgresMaxConns)
		}
	case storage.TypeBleve:
	default:
		return fmt.Errorf("invalid storage type: %s (must be %s or %s)",
			c.Storage.Type, storage.TypePostgres, storage.TypeBleve)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// source resolves one setting: environment first, then the config file,
// then the default
type source struct {
	k *koanf.Koanf
}

func (s source) has(path string) bool {
	return s.k != nil && s.k.Exists(path)
}

func (s source) str(path, env, def string) string {
	if s.has(path) {
		def = s.k.String(path)
	}
	return getEnv(env, def)
}

func (s source) bool(path, env string, def bool) bool {
	if s.has(path) {
		def = s.k.Bool(path)
	}
	return getEnvBool(env, def)
}

func (s source) int(path, env string, def int) int {
	if s.has(path) {
		def = s.k.Int(path)
	}
	return getEnvInt(env, def)
}

func (s source) float(path, env string, def float64) float64 {
	if s.has(path) {
		def = s.k.Float64(path)
	}
	return getEnvFloat(env, def)
}

func (s source) duration(path, env string, def time.Duration) time.Duration {
	if s.has(path) {
		def = s.k.Duration(path)
	}
	return getEnvDuration(env, def)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
