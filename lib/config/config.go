// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/git-vanity/lib/padding"
)

// EnvironmentVariable names the configuration file used by [Load].
const EnvironmentVariable = "GIT_VANITY_CONFIG"

// Storage backends.
const (
	// BackendGit stores the commit with "git hash-object -w".
	BackendGit = "git"
	// BackendLoose writes the loose object directly.
	BackendLoose = "loose"
)

// Config is the complete git-vanity configuration.
type Config struct {
	// Profile selects an entry of Profiles to apply over Search.
	Profile string `yaml:"profile"`

	// Search configures the hash search.
	Search SearchConfig `yaml:"search"`

	// Commit configures the commit being created.
	Commit CommitConfig `yaml:"commit"`

	// Store configures where the finished commit is written.
	Store StoreConfig `yaml:"store"`

	// Report configures the optional search report file.
	Report ReportConfig `yaml:"report"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// Profiles are named search overrides, such as a "battery"
	// profile with fewer workers and a higher nice value.
	Profiles map[string]*SearchOverrides `yaml:"profiles,omitempty"`
}

// SearchConfig configures the hash search.
type SearchConfig struct {
	// Workers is the number of search goroutines. Zero means one per
	// CPU.
	Workers int `yaml:"workers"`

	// PollInterval is the number of candidates a worker tries between
	// cancellation checks.
	// Default: 10000
	PollInterval int `yaml:"poll_interval"`

	// Padding bounds the whitespace appended to the message per
	// timestamp.
	// Default: width 80, max_lines 4
	Padding padding.Space `yaml:"padding"`

	// AllowPrefix accepts digests that start with the pattern as well
	// as those that end with it.
	AllowPrefix bool `yaml:"allow_prefix"`

	// Nice is the scheduling priority applied to the process before
	// searching, from -20 to 19. Zero leaves the priority unchanged.
	Nice int `yaml:"nice"`

	// Timeout bounds the search, as a Go duration string. Empty means
	// no limit.
	Timeout string `yaml:"timeout"`
}

// SearchOverrides contains the search fields a profile can override.
// Nil fields keep the base value.
type SearchOverrides struct {
	Workers      *int           `yaml:"workers,omitempty"`
	PollInterval *int           `yaml:"poll_interval,omitempty"`
	Padding      *padding.Space `yaml:"padding,omitempty"`
	AllowPrefix  *bool          `yaml:"allow_prefix,omitempty"`
	Nice         *int           `yaml:"nice,omitempty"`
	Timeout      *string        `yaml:"timeout,omitempty"`
}

// CommitConfig configures the commit being created.
type CommitConfig struct {
	// Timezone is the "+HHMM" offset recorded for author and
	// committer. Empty uses the offset git reports for the committer.
	Timezone string `yaml:"timezone"`
}

// StoreConfig configures where the finished commit is written.
type StoreConfig struct {
	// Backend is "git" or "loose".
	// Default: git
	Backend string `yaml:"backend"`

	// Ref is the reference moved to the new commit.
	// Default: HEAD
	Ref string `yaml:"ref"`
}

// ReportConfig configures the optional search report file.
type ReportConfig struct {
	// Path is where a CBOR report of each search is written. Empty
	// disables reports. ${VAR} and ${VAR:-default} are expanded.
	Path string `yaml:"path"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is one of auto, text, json. Auto picks text on a
	// terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			PollInterval: 10_000,
			Padding:      padding.DefaultSpace,
		},
		Store: StoreConfig{
			Backend: BackendGit,
			Ref:     "HEAD",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by GIT_VANITY_CONFIG,
// or returns [Default] when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults, applies the selected profile, and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := cfg.applyProfile(); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF and leaves the defaults.
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// UseProfile applies the overrides of the named profile on top of the
// loaded configuration, as when --profile is given on the command
// line. An empty name is a no-op.
func (c *Config) UseProfile(name string) error {
	if name == "" {
		return nil
	}
	c.Profile = name
	return c.applyProfile()
}

// applyProfile applies the overrides of the selected profile.
func (c *Config) applyProfile() error {
	if c.Profile == "" {
		return nil
	}
	overrides, ok := c.Profiles[c.Profile]
	if !ok {
		return fmt.Errorf("profile %q is not defined", c.Profile)
	}
	if overrides == nil {
		return nil
	}

	if overrides.Workers != nil {
		c.Search.Workers = *overrides.Workers
	}
	if overrides.PollInterval != nil {
		c.Search.PollInterval = *overrides.PollInterval
	}
	if overrides.Padding != nil {
		c.Search.Padding = *overrides.Padding
	}
	if overrides.AllowPrefix != nil {
		c.Search.AllowPrefix = *overrides.AllowPrefix
	}
	if overrides.Nice != nil {
		c.Search.Nice = *overrides.Nice
	}
	if overrides.Timeout != nil {
		c.Search.Timeout = *overrides.Timeout
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Report.Path = expandVars(c.Report.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

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

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var timezonePattern = regexp.MustCompile(`^[+-][0-9]{4}$`)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers must not be negative"))
	}
	if c.Search.PollInterval < 1 {
		errs = append(errs, fmt.Errorf("search.poll_interval must be at least 1"))
	}
	if err := c.Search.Padding.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("search.padding: %w", err))
	}
	if c.Search.Nice < -20 || c.Search.Nice > 19 {
		errs = append(errs, fmt.Errorf("search.nice must be between -20 and 19"))
	}
	if _, err := c.Search.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}

	if c.Commit.Timezone != "" && !timezonePattern.MatchString(c.Commit.Timezone) {
		errs = append(errs, fmt.Errorf("commit.timezone %q must have the form +HHMM", c.Commit.Timezone))
	}

	backends := []string{BackendGit, BackendLoose}
	if !slices.Contains(backends, c.Store.Backend) {
		errs = append(errs, fmt.Errorf("store.backend must be one of: %v", backends))
	}
	if c.Store.Ref == "" {
		errs = append(errs, fmt.Errorf("store.ref is required"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TimeoutDuration parses Timeout. Zero means no limit.
func (s SearchConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("search.timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("search.timeout must not be negative")
	}
	return timeout, nil
}
