// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI for the operations
// git-vanity needs from a repository: reading identity, snapshotting the index into a tree, resolving the
// parent commit, storing a finished commit object, and moving HEAD.
//
// All commands target a specific working directory via the -C flag,
// and optionally a specific git directory via --git-dir, both
// injected by every Repository method. Failures are returned as
// *CommandError carrying the arguments and captured stderr.
//
// [WriteLooseObject] and [ReadLooseObject] store and load objects
// directly in an objects directory without running git, using the
// same zlib-compressed loose format git itself writes.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
)

// Repository represents a git repository at a specific directory. All
// operations target this directory via "git -C <dir>". There is no
// default directory: callers must always specify which repository
// they mean.
type Repository struct {
	dir    string
	gitDir string
}

// NewRepository returns a Repository targeting the given working
// directory.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// WithGitDir returns a copy of r that passes --git-dir to every
// command. A relative gitDir is resolved against the working
// directory.
func (r *Repository) WithGitDir(gitDir string) *Repository {
	return &Repository{dir: r.dir, gitDir: gitDir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Command returns an *exec.Cmd for a git command without running it.
// The caller gets full control over Stdin, Stdout, and Stderr before
// starting the process. The -C flag (and --git-dir, when set) is
// automatically prepended.
func (r *Repository) Command(ctx context.Context, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "git", r.fullArgs(args)...)
}

func (r *Repository) fullArgs(args []string) []string {
	fullArgs := []string{"-C", r.dir}
	if r.gitDir != "" {
		fullArgs = append(fullArgs, "--git-dir="+r.gitDir)
	}
	return append(fullArgs, args...)
}

// Run executes a git command targeting this repository and returns
// stdout. Stderr is captured separately and carried in the
// *CommandError on failure.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	output, err := r.run(ctx, nil, args)
	return string(output), err
}

// RunWithInput is Run with stdin supplied from input.
func (r *Repository) RunWithInput(ctx context.Context, input []byte, args ...string) (string, error) {
	output, err := r.run(ctx, input, args)
	return string(output), err
}

func (r *Repository) run(ctx context.Context, input []byte, args []string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	command := r.Command(ctx, args...)
	if input != nil {
		command.Stdin = bytes.NewReader(input)
	}
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Dir:    r.dir,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// Role selects which identity Identity reads.
type Role string

const (
	Author    Role = "GIT_AUTHOR_IDENT"
	Committer Role = "GIT_COMMITTER_IDENT"
)

// Ident is an identity as git would record it right now.
type Ident struct {
	Signature commit.Signature

	// Timestamp is the time git would record, in seconds since the
	// epoch. It honors GIT_AUTHOR_DATE and GIT_COMMITTER_DATE.
	Timestamp int64

	// Timezone is the offset git would record, in "+HHMM" form.
	Timezone string
}

// Identity resolves the author or committer identity git would use
// for a new commit, honoring user.name, user.email, and the
// GIT_AUTHOR_* / GIT_COMMITTER_* environment.
func (r *Repository) Identity(ctx context.Context, role Role) (Ident, error) {
	output, err := r.Run(ctx, "var", string(role))
	if err != nil {
		return Ident{}, err
	}
	return parseIdent(strings.TrimSpace(output))
}

// parseIdent splits "Name <email> 1700000000 +0000".
func parseIdent(line string) (Ident, error) {
	closing := strings.LastIndexByte(line, '>')
	if closing < 0 {
		return Ident{}, fmt.Errorf("identity %q has no email", line)
	}
	signature, err := commit.ParseSignature(line[:closing+1])
	if err != nil {
		return Ident{}, err
	}
	fields := strings.Fields(line[closing+1:])
	if len(fields) != 2 {
		return Ident{}, fmt.Errorf("identity %q has no timestamp and timezone", line)
	}
	timestamp, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Ident{}, fmt.Errorf("identity %q has invalid timestamp: %w", line, err)
	}
	return Ident{Signature: signature, Timestamp: timestamp, Timezone: fields[1]}, nil
}

// WriteTree writes the current index as a tree object and returns its
// id.
func (r *Repository) WriteTree(ctx context.Context) (objectid.ID, error) {
	output, err := r.Run(ctx, "write-tree")
	if err != nil {
		return objectid.ID{}, err
	}
	return objectid.Parse(strings.TrimSpace(output))
}

// RevParse resolves a revision to an object id.
func (r *Repository) RevParse(ctx context.Context, revision string) (objectid.ID, error) {
	output, err := r.Run(ctx, "rev-parse", "--verify", "--end-of-options", revision)
	if err != nil {
		return objectid.ID{}, err
	}
	return objectid.Parse(strings.TrimSpace(output))
}

// ResolveCommit resolves revision to a commit id. The boolean is
// false, with a nil error, when revision names nothing: an unborn
// HEAD in a repository without commits, or a missing branch.
func (r *Repository) ResolveCommit(ctx context.Context, revision string) (objectid.ID, bool, error) {
	output, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", "--end-of-options", revision+"^{commit}")
	if err != nil {
		var commandError *CommandError
		if errors.As(err, &commandError) && commandError.ExitCode() == 1 {
			return objectid.ID{}, false, nil
		}
		return objectid.ID{}, false, err
	}
	id, err := objectid.Parse(strings.TrimSpace(output))
	if err != nil {
		return objectid.ID{}, false, err
	}
	return id, true, nil
}

// HashObject computes the id git assigns to content as an object of
// the given kind, storing it in the object database when write is
// true.
func (r *Repository) HashObject(ctx context.Context, kind string, content []byte, write bool) (objectid.ID, error) {
	args := []string{"hash-object", "-t", kind, "--stdin"}
	if write {
		args = append(args, "-w")
	}
	output, err := r.RunWithInput(ctx, content, args...)
	if err != nil {
		return objectid.ID{}, err
	}
	return objectid.Parse(strings.TrimSpace(output))
}

// CatFile returns the raw content of an object, which must be of the
// given kind.
func (r *Repository) CatFile(ctx context.Context, kind, revision string) ([]byte, error) {
	return r.run(ctx, nil, []string{"cat-file", kind, revision})
}

// UpdateRef points ref at id, recording message in the reflog.
func (r *Repository) UpdateRef(ctx context.Context, ref string, id objectid.ID, message string) error {
	args := []string{"update-ref"}
	if message != "" {
		args = append(args, "-m", message)
	}
	_, err := r.Run(ctx, append(args, ref, id.String())...)
	return err
}

// Add stages pathspec, including removals.
func (r *Repository) Add(ctx context.Context, pathspec string) error {
	_, err := r.Run(ctx, "add", "--all", "--", pathspec)
	return err
}

// ObjectsDir returns the path of the object database that new objects
// are written to.
func (r *Repository) ObjectsDir(ctx context.Context) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--git-path", "objects")
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(output)
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	return path, nil
}
