// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package main

import "errors"

func setPriority(nice int) error {
	return errors.New("--nice is not supported on this platform")
}
