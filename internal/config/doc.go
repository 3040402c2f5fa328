// Package config manages application configuration for the Skirmish API.
//
// Configuration is read from environment variables. A .env file in the
// working directory is loaded first, without overriding variables that are
// already set:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, environment, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection settings
//   - LogConfig: slog level
//   - MetricsConfig: Prometheus endpoint toggle
//
// # Environment Variables
//
//	SERVER_PORT              - HTTP port (default: 8080)
//	SERVER_ENV               - development, production or test
//	SERVER_READ_TIMEOUT      - default 15s
//	SERVER_WRITE_TIMEOUT     - default 15s
//	SERVER_SHUTDOWN_TIMEOUT  - default 30s
//	CORS_ALLOWED_ORIGINS     - comma separated console origins
//	DB_HOST, DB_PORT         - SurrealDB address (localhost:8000)
//	DB_NAMESPACE, DB_DATABASE
//	DB_USER, DB_PASSWORD
//	DB_CONNECT_TIMEOUT       - default 10s
//	LOG_LEVEL                - debug, info, warn or error
//	METRICS_ENABLED          - serve /metrics (default: true)
package config
