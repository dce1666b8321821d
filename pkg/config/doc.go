// Package config loads and validates application configuration.
//
// Settings are resolved in order: environment variable, then the optional
// YAML file named by ADVOCATES_CONFIG_FILE, then the built-in default.
//
// Server settings:
//
//	ADVOCATES_HOST="0.0.0.0"
//	ADVOCATES_PORT="3000"
//	ADVOCATES_HEALTH_PORT="9090"
//	ADVOCATES_READ_TIMEOUT="15s"
//	ADVOCATES_CORS_ORIGINS="http://localhost:3000"
//
// Storage settings:
//
//	ADVOCATES_STORE_TYPE="postgres"  # postgres, bleve
//	ADVOCATES_POSTGRES_URL="postgres://localhost:5432/advocates?sslmode=disable"
//	ADVOCATES_POSTGRES_MAX_CONNS="10"
//	ADVOCATES_SEED_FILE="/etc/advocates/fixtures.yaml"
//
// Observability settings:
//
//	ADVOCATES_LOG_LEVEL="info"
//	ADVOCATES_METRICS_ENABLED="true"
//	ADVOCATES_OTEL_ENABLED="false"
//	ADVOCATES_OTEL_ENDPOINT="localhost:4317"
//
// The same keys in YAML form:
//
//	server:
//	  port: 3000
//	storage:
//	  type: bleve
//	observability:
//	  log_level: debug
package config
