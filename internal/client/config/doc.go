// Package config loads runtime configuration for the trip tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, with an optional .env file: APP_HOST, API_GATEWAY_URL,
//     SESSION_DB, LOG_LEVEL.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-o string   origin host; "localhost" selects the local gateway
//	-u string   API base URL override
//	-d string   session database path
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "origin_host": "localhost",
//	  "api_base_url": "http://localhost:8080",
//	  "database_path": "triptracker.db",
//	  "log_level": "debug"
//	}
//
// When no explicit base URL is configured it is derived from the origin
// host with ResolveBaseURL.
package config
