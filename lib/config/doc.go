// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for git-vanity.
//
// Configuration is loaded from a single file specified by either the
// GIT_VANITY_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. Without either, [Default] applies. Unknown
// keys are rejected so a typo cannot silently fall back to a default.
//
// The file may define named profiles of search overrides; the
// top-level profile key selects one, which is applied over the base
// search section after loading. Command-line flags override both.
//
// Variable expansion is performed on the report path after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Search, Commit, Store, Report, Log
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
