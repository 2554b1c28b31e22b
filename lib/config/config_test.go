// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Clipboard.Mode != "auto" {
		t.Errorf("expected clipboard.mode=auto, got %s", cfg.Clipboard.Mode)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "auto" {
		t.Errorf("expected log warn/auto, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Data.Dir == "" {
		t.Error("expected a default data directory")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_DefaultsBesideExecutable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("expected no config path, got %s", cfg.Path())
	}

	want := filepath.Join(executableDir(), "PGSectorNames.json")
	if filepath.Clean(cfg.Data.Sectors) != want {
		t.Errorf("expected sectors=%s, got %s", want, cfg.Data.Sectors)
	}
	if !strings.HasSuffix(cfg.Data.NamedSystems, "NamedSystems.json.gz") {
		t.Errorf("unexpected named_systems default %s", cfg.Data.NamedSystems)
	}
}

func TestLoad_EnvironmentVariable(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "edgalmap.yaml")

	configContent := `
data:
  dir: /srv/galaxy
clipboard:
  mode: none
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("expected path=%s, got %s", configPath, cfg.Path())
	}
	if cfg.Data.Sectors != "/srv/galaxy/PGSectorNames.json" {
		t.Errorf("expected sectors under data.dir, got %s", cfg.Data.Sectors)
	}
	if cfg.Clipboard.Mode != "none" {
		t.Errorf("expected clipboard.mode=none, got %s", cfg.Clipboard.Mode)
	}
}

func TestLoad_FlagBeatsEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	flagPath := filepath.Join(tmpDir, "flag.yaml")
	if err := os.WriteFile(flagPath, []byte("log:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvironmentVariable, filepath.Join(tmpDir, "does-not-exist.yaml"))

	cfg, err := Load(flagPath)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", flagPath, err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log.level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_RelativePaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "edgalmap.yaml")

	configContent := `
data:
  dir: tables
  sectors: ${EDGALMAP_DATA}/sectors.cbor.zst
  named_systems: custom/NamedSystems.json
log:
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Data.Dir != filepath.Join(tmpDir, "tables") {
		t.Errorf("expected dir relative to config file, got %s", cfg.Data.Dir)
	}
	if cfg.Data.Sectors != filepath.Join(tmpDir, "tables", "sectors.cbor.zst") {
		t.Errorf("unexpected sectors %s", cfg.Data.Sectors)
	}
	if cfg.Data.NamedSystems != filepath.Join(tmpDir, "custom", "NamedSystems.json") {
		t.Errorf("unexpected named_systems %s", cfg.Data.NamedSystems)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "warn" {
		t.Errorf("expected format from file and level default, got %s/%s", cfg.Log.Format, cfg.Log.Level)
	}
}

func TestLoadFile_DisableNamedSystems(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "edgalmap.yaml")
	if err := os.WriteFile(configPath, []byte("data:\n  named_systems: \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Data.NamedSystems != "" {
		t.Errorf("expected named systems disabled, got %s", cfg.Data.NamedSystems)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	broken := filepath.Join(tmpDir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("data: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(broken); err == nil || !strings.Contains(err.Error(), broken) {
		t.Errorf("expected parse error naming %s, got %v", broken, err)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/galaxy",
			vars:     map[string]string{"HOME": "/home/cmdr"},
			expected: "/home/cmdr/galaxy",
		},
		{
			input:    "${EDGALMAP_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:    "no sector table",
			modify:  func(c *Config) { c.Data.Sectors = "" },
			wantErr: "data.sectors",
		},
		{
			name:    "invalid clipboard mode",
			modify:  func(c *Config) { c.Clipboard.Mode = "fax" },
			wantErr: "clipboard.mode",
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
