// Package config provides configuration management for solscan.
//
// Configuration flows from three sources, in increasing priority:
// built-in defaults, the optional .solscan YAML file, and CLI flags.
// The resulting Config is passed through the application via dependency
// injection rather than global state.
package config
