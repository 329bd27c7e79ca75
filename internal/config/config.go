// Copyright Zero-Trust Redactor Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration: scan defaults,
// redaction output settings, server settings and user-defined presets.
// Malformed configuration degrades rather than aborts: unknown values and
// broken user presets are skipped and reported as warnings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HersonAlmeida/Zero-Trust-Redactor/internal/patterns"
)

// Config is the application configuration.
type Config struct {
	Defaults struct {
		Format   string   `yaml:"format"`
		Presets  []string `yaml:"presets"`
		Keywords []string `yaml:"keywords"`
		NoColor  bool     `yaml:"no_color"`
		Debug    bool     `yaml:"debug"`
	} `yaml:"defaults"`

	Redaction struct {
		OutputDir string `yaml:"output_dir"`
		AuditLog  string `yaml:"audit_log"`
	} `yaml:"redaction"`

	Server struct {
		Addr    string `yaml:"addr"`
		TempDir string `yaml:"temp_dir"`
	} `yaml:"server"`

	// Presets are user-defined document profiles merged into the built-in
	// pattern library.
	Presets []patterns.PresetSpec `yaml:"presets_catalog"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.Defaults.Format = "text"
	cfg.Redaction.OutputDir = "redacted"
	cfg.Redaction.AuditLog = "audit.log"
	cfg.Server.Addr = "127.0.0.1:5000"
	cfg.Server.TempDir = os.TempDir()
	return cfg
}

// Load reads the configuration at path, falling back to defaults for any
// field the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile returns the first config file present among the standard
// locations, or "" when none exists.
func FindConfigFile() string {
	candidates := []string{".ztredactor.yaml", ".ztredactor.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "ztredactor", "config.yaml"),
			filepath.Join(home, ".ztredactor.yaml"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// MergePresets compiles the user-defined presets into lib. Malformed
// presets are skipped; the returned warnings describe each skip so the
// degradation is visible without being fatal.
func (c *Config) MergePresets(lib *patterns.Library) []string {
	var warnings []string
	for _, spec := range c.Presets {
		if err := lib.Merge(spec); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}
