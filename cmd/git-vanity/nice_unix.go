// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package main

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// setPriority sets the nice value of the process. On Linux the value
// is per thread, so every thread listed in /proc/self/task is updated;
// threads the runtime starts later inherit it from their creator.
func setPriority(nice int) error {
	tasks, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return unix.Setpriority(unix.PRIO_PROCESS, 0, nice)
	}
	for _, task := range tasks {
		tid, err := strconv.Atoi(task.Name())
		if err != nil {
			continue
		}
		if err := unix.Setpriority(unix.PRIO_PROCESS, tid, nice); err != nil {
			// The thread may have exited since the directory was read.
			if err == unix.ESRCH {
				continue
			}
			return err
		}
	}
	return nil
}
