// Package config provides configuration management for distlint.
// It defines the command-line driven Config struct, the YAML rules file
// that tunes individual check suites, and validation for both.
package config
