// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"io"
	"log/slog"
	"sync"
)

// lockedWriter serializes writes from concurrent log calls.
type lockedWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (w *lockedWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Write(data)
}

func newBufferLogger(writer io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(&lockedWriter{writer: writer},
		&slog.HandlerOptions{Level: slog.LevelDebug}))
}
