// Package config provides configuration loading and validation for dirtar.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (DIRTAR_ prefix)
//  4. CLI flags
//
// Without explicit files, ./dirtar.yaml is read when present.
//
// # Usage
//
//	cfg, err := config.Load([]string{"dirtar.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with DIRTAR_ prefix:
//   - server.address → DIRTAR_SERVER_ADDRESS
//   - archive.root → DIRTAR_ARCHIVE_ROOT
//   - log.level → DIRTAR_LOG_LEVEL
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: listen address (default 127.0.0.1:0) and shutdown_timeout in seconds
//   - Archive: root directory, download prefix, and stream mode
//   - CORS: cross-origin resource sharing settings
//   - Log: level and format (text or json)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Address must be host:port; the host may be empty and the port may be 0
//   - Root must be set
//   - Prefix, when set, must be printable ASCII
//   - Log level must be debug, info, warn, or error
package config
