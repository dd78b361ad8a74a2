// Package config loads runtime configuration for the HealthMate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-i int      health check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://healthmate.example.com",
//	  "request_timeout": "30s",
//	  "health_check_interval": "30s"
//	}
//
// The base URL is the only externally required setting; everything else has
// workable defaults. This package does not read environment variables; use
// the JSON file or flags to configure values.
package config
