package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wydatki/internal/core"
)

// LoadDefaults reads input defaults from a YAML file such as
//
//	category: inne
//	description: "-"
//
// Keys that are missing or blank keep the built-in values. An empty path
// returns the built-in defaults.
func LoadDefaults(path string) (core.Defaults, error) {
	builtin := core.DefaultDefaults()
	if path == "" {
		return builtin, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return builtin, fmt.Errorf("read defaults file: %w", err)
	}

	var d core.Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return builtin, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return d.Merge(builtin), nil
}
