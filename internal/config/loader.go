package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the default rules file name.
const DefaultRulesFile = ".distlint.yml"

// ErrRulesNotFound is returned when the rules file does not exist.
var ErrRulesNotFound = errors.New("rules file not found")

// LoadRulesFile loads check-suite rules from a YAML file.
// The file is decoded over a fully defaulted Rules value, so a partial
// file only overrides the keys it names.
// If the file does not exist, it returns ErrRulesNotFound. Callers should
// handle this error appropriately based on whether the rules file path
// was explicitly specified by the user.
func LoadRulesFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rules path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, err
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// FindRulesFile searches for the rules file in the following order:
// 1. If rulesPath is specified, use it directly
// 2. Look for .distlint.yml in the current directory
// 3. Look for .distlint.yml in the user's home directory
//
// Returns the path to the rules file if found, or empty string if not found.
func FindRulesFile(rulesPath string) string {
	// If explicit path is provided, use it
	if rulesPath != "" {
		if _, err := os.Stat(rulesPath); err == nil {
			return rulesPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdRules := filepath.Join(cwd, DefaultRulesFile)
		if _, err := os.Stat(cwdRules); err == nil {
			return cwdRules
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeRules := filepath.Join(home, DefaultRulesFile)
		if _, err := os.Stat(homeRules); err == nil {
			return homeRules
		}
	}

	return ""
}
