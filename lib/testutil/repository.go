// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Identity pinned into every repository created by GitRepository.
const (
	GitUserName  = "Test"
	GitUserEmail = "test@test.local"
)

// GitRepository initializes a working tree in a temporary directory
// with user.name and user.email configured and one commit on main
// containing a README. Returns the working tree path. Skips the test
// when git is not installed.
func GitRepository(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet", "--initial-branch=main")
	runGit(t, dir, "config", "user.name", GitUserName)
	runGit(t, dir, "config", "user.email", GitUserEmail)
	runGit(t, dir, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("test\n"), 0644); err != nil {
		t.Fatalf("write README: %v", err)
	}
	runGit(t, dir, "add", "README")
	runGit(t, dir, "commit", "--quiet", "-m", "initial")
	return dir
}

// EmptyGitRepository is GitRepository without the initial commit:
// HEAD names an unborn branch.
func EmptyGitRepository(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet", "--initial-branch=main")
	runGit(t, dir, "config", "user.name", GitUserName)
	runGit(t, dir, "config", "user.email", GitUserEmail)
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	command := exec.Command("git", append([]string{"-C", dir}, args...)...)
	// Keep the user's global configuration and hooks out of the test.
	command.Env = append(os.Environ(),
		"GIT_CONFIG_GLOBAL=/dev/null",
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_AUTHOR_NAME="+GitUserName,
		"GIT_AUTHOR_EMAIL="+GitUserEmail,
		"GIT_COMMITTER_NAME="+GitUserName,
		"GIT_COMMITTER_EMAIL="+GitUserEmail,
	)
	if output, err := command.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, output)
	}
}
