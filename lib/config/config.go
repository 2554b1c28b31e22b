// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "EDGALMAP_CONFIG"

// Config is the edgalmap configuration.
type Config struct {
	// Data locates the lookup tables.
	Data DataConfig `yaml:"data"`

	// Clipboard configures where resolved names are copied.
	Clipboard ClipboardConfig `yaml:"clipboard"`

	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`

	// path is the file this config was loaded from, empty for defaults.
	path string
}

// DataConfig locates the lookup tables.
type DataConfig struct {
	// Dir is the data directory, available to the other paths as
	// ${EDGALMAP_DATA}.
	// Default: the directory containing the edgalmap executable.
	Dir string `yaml:"dir"`

	// Sectors is the sector name table (JSON or CBOR, optionally
	// compressed).
	// Default: ${EDGALMAP_DATA}/PGSectorNames.json
	Sectors string `yaml:"sectors"`

	// NamedSystems is the custom name table. Set to "" to disable
	// custom names.
	// Default: ${EDGALMAP_DATA}/NamedSystems.json.gz
	NamedSystems string `yaml:"named_systems"`
}

// ClipboardConfig configures the clipboard sink.
type ClipboardConfig struct {
	// Mode is one of auto, osc52, command, none.
	// Default: auto
	Mode string `yaml:"mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is one of auto (text on a terminal, JSON otherwise), text,
	// json.
	// Default: auto
	Format string `yaml:"format"`
}

var (
	clipboardModes = []string{"auto", "osc52", "command", "none"}
	logLevels      = []string{"debug", "info", "warn", "error"}
	logFormats     = []string{"auto", "text", "json"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          executableDir(),
			Sectors:      "${EDGALMAP_DATA}/PGSectorNames.json",
			NamedSystems: "${EDGALMAP_DATA}/NamedSystems.json.gz",
		},
		Clipboard: ClipboardConfig{Mode: "auto"},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

func executableDir() string {
	executable, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	return filepath.Dir(executable)
}

// Load resolves the configuration: from flagPath if non-empty, else from
// EDGALMAP_CONFIG if set, else the expanded defaults.
func Load(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if environmentPath := os.Getenv(EnvironmentVariable); environmentPath != "" {
		return LoadFile(environmentPath)
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path. Fields the
// file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.path = path

	cfg.expandVariables()
	cfg.anchorRelativePaths(filepath.Dir(path))

	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "" for
// defaults.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Data.Dir = expandVars(c.Data.Dir, vars)
	vars["EDGALMAP_DATA"] = c.Data.Dir

	c.Data.Sectors = expandVars(c.Data.Sectors, vars)
	c.Data.NamedSystems = expandVars(c.Data.NamedSystems, vars)
}

func (c *Config) anchorRelativePaths(base string) {
	for _, path := range []*string{&c.Data.Dir, &c.Data.Sectors, &c.Data.NamedSystems} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(base, *path)
		}
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Data.Sectors == "" {
		errs = append(errs, errors.New("data.sectors is required"))
	}
	if !slices.Contains(clipboardModes, c.Clipboard.Mode) {
		errs = append(errs, fmt.Errorf("clipboard.mode must be one of: %v", clipboardModes))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
