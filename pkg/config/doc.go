// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	FEEDGATE_HOST="0.0.0.0"
//	FEEDGATE_PORT="8080"
//	FEEDGATE_READ_TIMEOUT="30s"
//	FEEDGATE_WRITE_TIMEOUT="30s"
//
// Auth settings:
//
//	FEEDGATE_ACCOUNTS_FILE="/etc/feedgate/accounts.yaml"
//	FEEDGATE_FEED_TOKEN_SECRET="..."      # required, >=32 bytes in production
//	FEEDGATE_PRODUCTION="true"
//	FEEDGATE_WATCH_ACCOUNTS="true"        # hot-reload the accounts file
//
// Feed engine settings:
//
//	FEEDGATE_ENGINE_URL="http://engine:9090/generate"
//	FEEDGATE_ENGINE_TIMEOUT="30s"
//	FEEDGATE_CACHE_SIZE="512"
//	FEEDGATE_CACHE_TTL="5m"
//
// Observability and limits:
//
//	FEEDGATE_LOG_LEVEL="info"   # debug, info, warn, error
//	FEEDGATE_METRICS_ENABLED="true"
//	FEEDGATE_RATELIMIT_ENABLED="true"
//	FEEDGATE_RATELIMIT_RPM="120"
//	FEEDGATE_RATELIMIT_BURST="20"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// # Related Packages
//
//   - cmd/feedgate: wires configuration into the running service
package config
