// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/git-vanity/lib/padding"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "git-vanity.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Search.Padding != padding.DefaultSpace {
		t.Errorf("expected padding=%+v, got %+v", padding.DefaultSpace, cfg.Search.Padding)
	}
	if cfg.Search.PollInterval != 10_000 {
		t.Errorf("expected poll_interval=10000, got %d", cfg.Search.PollInterval)
	}
	if cfg.Store.Backend != BackendGit || cfg.Store.Ref != "HEAD" {
		t.Errorf("expected store git/HEAD, got %+v", cfg.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_WithoutEnvironment(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Search.Padding != padding.DefaultSpace {
		t.Errorf("expected defaults, got %+v", cfg.Search)
	}
}

func TestLoad_WithEnvironment(t *testing.T) {
	configPath := writeConfig(t, `
search:
  workers: 3
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Search.Workers != 3 {
		t.Errorf("expected workers=3, got %d", cfg.Search.Workers)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
search:
  workers: 8
  poll_interval: 500
  padding:
    width: 40
  allow_prefix: true
  nice: 10
  timeout: 90s

commit:
  timezone: "-0400"

store:
  backend: loose
  ref: refs/heads/vanity

log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Search.Workers != 8 || cfg.Search.PollInterval != 500 {
		t.Errorf("expected workers=8 poll_interval=500, got %+v", cfg.Search)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Search.Padding != (padding.Space{Width: 40, MaxLines: 4}) {
		t.Errorf("expected padding 40x4, got %+v", cfg.Search.Padding)
	}
	if !cfg.Search.AllowPrefix || cfg.Search.Nice != 10 {
		t.Errorf("expected allow_prefix nice=10, got %+v", cfg.Search)
	}
	if timeout, err := cfg.Search.TimeoutDuration(); err != nil || timeout != 90*time.Second {
		t.Errorf("TimeoutDuration = %v, %v, want 90s", timeout, err)
	}
	if cfg.Commit.Timezone != "-0400" {
		t.Errorf("expected timezone=-0400, got %s", cfg.Commit.Timezone)
	}
	if cfg.Store.Backend != BackendLoose || cfg.Store.Ref != "refs/heads/vanity" {
		t.Errorf("expected store loose/refs/heads/vanity, got %+v", cfg.Store)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("expected log debug/json, got %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile(empty) failed: %v", err)
	}
	if cfg.Store.Backend != BackendGit {
		t.Errorf("expected defaults from an empty file, got %+v", cfg.Store)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "search:\n  wokers: 4\n"))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "wokers") {
		t.Errorf("error = %v, want to name the unknown key", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestProfileOverrides(t *testing.T) {
	configPath := writeConfig(t, `
profile: battery

search:
  workers: 16
  nice: 0
  padding:
    width: 80
    max_lines: 4

profiles:
  battery:
    workers: 2
    nice: 19
    padding:
      width: 60
      max_lines: 3
  server:
    workers: 64
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Search.Workers != 2 || cfg.Search.Nice != 19 {
		t.Errorf("expected battery workers=2 nice=19, got %+v", cfg.Search)
	}
	if cfg.Search.Padding != (padding.Space{Width: 60, MaxLines: 3}) {
		t.Errorf("expected padding 60x3, got %+v", cfg.Search.Padding)
	}
	// Fields the profile leaves unset keep the base value.
	if cfg.Search.PollInterval != 10_000 {
		t.Errorf("expected poll_interval=10000, got %d", cfg.Search.PollInterval)
	}
}

func TestUseProfile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
search:
  workers: 16
profiles:
  server:
    workers: 64
    timeout: 1h
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.UseProfile(""); err != nil {
		t.Fatalf("UseProfile(\"\") = %v", err)
	}
	if cfg.Search.Workers != 16 {
		t.Errorf("empty profile changed workers to %d", cfg.Search.Workers)
	}

	if err := cfg.UseProfile("server"); err != nil {
		t.Fatalf("UseProfile(server) = %v", err)
	}
	if cfg.Profile != "server" || cfg.Search.Workers != 64 || cfg.Search.Timeout != "1h" {
		t.Errorf("expected server profile applied, got profile=%q %+v", cfg.Profile, cfg.Search)
	}

	if err := cfg.UseProfile("laptop"); err == nil {
		t.Error("UseProfile(laptop) = nil, want error for undefined profile")
	}
}

func TestProfileUndefined(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "profile: missing\n"))
	if err == nil || !strings.Contains(err.Error(), `profile "missing"`) {
		t.Errorf("expected undefined profile error, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("GIT_VANITY_TEST_DIR", "/reports")

	vars := map[string]string{"HOME": "/home/ada"}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/vanity.cbor", "/home/ada/vanity.cbor"},
		{"${GIT_VANITY_TEST_DIR}/last.cbor", "/reports/last.cbor"},
		{"${GIT_VANITY_TEST_UNSET:-/tmp}/last.cbor", "/tmp/last.cbor"},
		{"${GIT_VANITY_TEST_UNSET}/x", "/x"},
		{"plain/path", "plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFile_ExpandsReportPath(t *testing.T) {
	t.Setenv("HOME", "/home/ada")

	cfg, err := LoadFile(writeConfig(t, "report:\n  path: ${HOME}/.cache/vanity.cbor\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Report.Path != "/home/ada/.cache/vanity.cbor" {
		t.Errorf("expected expanded report path, got %s", cfg.Report.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"negative workers", func(c *Config) { c.Search.Workers = -1 }, "search.workers"},
		{"zero poll interval", func(c *Config) { c.Search.PollInterval = 0 }, "search.poll_interval"},
		{"bad padding", func(c *Config) { c.Search.Padding.Width = 0 }, "search.padding"},
		{"nice too high", func(c *Config) { c.Search.Nice = 20 }, "search.nice"},
		{"bad timeout", func(c *Config) { c.Search.Timeout = "soon" }, "search.timeout"},
		{"negative timeout", func(c *Config) { c.Search.Timeout = "-1s" }, "search.timeout"},
		{"bad timezone", func(c *Config) { c.Commit.Timezone = "EST" }, "commit.timezone"},
		{"bad backend", func(c *Config) { c.Store.Backend = "s3" }, "store.backend"},
		{"empty ref", func(c *Config) { c.Store.Ref = "" }, "store.ref"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("Validate() = %v, want mention of %s", err, test.want)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Search.Workers = -1
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "search.workers") || !strings.Contains(err.Error(), "log.format") {
		t.Errorf("Validate() = %v, want both problems reported", err)
	}
}
