// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/config"
	"github.com/bureau-foundation/git-vanity/lib/git"
)

// repositoryParams locate the repository and configuration. Every
// command that touches a repository embeds them.
type repositoryParams struct {
	Directory  string `json:"directory"  flag:"directory,C" desc:"run as if started in this directory" default:"."`
	GitDir     string `json:"git_dir"    flag:"git-dir"     desc:"path to the git directory (default: discovered from --directory)"`
	ConfigPath string `json:"config"     flag:"config"      desc:"configuration file (default: $GIT_VANITY_CONFIG)"`
	Profile    string `json:"profile"    flag:"profile"     desc:"configuration profile to apply"`
	cli.LogFlags
}

// session is the resolved environment of one command invocation.
type session struct {
	config     *config.Config
	logger     *slog.Logger
	repository *git.Repository
}

// openSession loads configuration, applies the selected profile, and
// builds the logger and repository handle. apply lets the caller fold
// its flags into the configuration before it is validated.
func openSession(params *repositoryParams, stderr io.Writer, apply func(*config.Config)) (*session, error) {
	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.UseProfile(params.Profile); err != nil {
		return nil, err
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := params.Logger(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	repository := git.NewRepository(params.Directory)
	if params.GitDir != "" {
		repository = repository.WithGitDir(params.GitDir)
	}

	return &session{config: cfg, logger: logger, repository: repository}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}
