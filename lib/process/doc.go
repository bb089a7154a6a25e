// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint error handler for
// git-vanity. It centralizes the one raw write to stderr that happens
// outside the structured logger: reporting the error returned from
// run() in main(), where the logger may never have been built (for
// example when the configuration file fails to parse).
package process
