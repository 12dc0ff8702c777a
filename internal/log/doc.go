// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (keys, seeds, tokens)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - Wallet private keys and seed phrases
//   - RPC provider API keys and authentication tokens
//   - Secret values detected by pattern matching (mnemonics, PEM keys)
//
// Public on-chain data (addresses, transaction signatures) is never masked:
// scan targets and evidence must stay readable in logs, and base58 addresses
// are not secrets.
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("scan started",
//	    "api_key", "sk-abc123",  // Will be sanitized to "***REDACTED***"
//	    "target", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
