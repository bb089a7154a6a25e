// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/testutil"
)

const helloBlob = "ce013625030ba8dba906f756967f9e9ca394464a"

func TestWriteLooseObjectRoundTrip(t *testing.T) {
	t.Parallel()

	objectsDir := t.TempDir()
	id, err := WriteLooseObject(objectsDir, "blob", []byte("hello\n"))
	if err != nil {
		t.Fatalf("WriteLooseObject: %v", err)
	}
	if id.String() != helloBlob {
		t.Errorf("id = %s, want %s", id, helloBlob)
	}

	path := LoosePath(objectsDir, id)
	if path != filepath.Join(objectsDir, "ce", helloBlob[2:]) {
		t.Errorf("LoosePath = %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat object: %v", err)
	}
	if info.Mode().Perm() != 0444 {
		t.Errorf("object mode = %v, want 0444", info.Mode().Perm())
	}

	kind, content, err := ReadLooseObject(objectsDir, id)
	if err != nil {
		t.Fatalf("ReadLooseObject: %v", err)
	}
	if kind != "blob" || string(content) != "hello\n" {
		t.Errorf("ReadLooseObject = %q, %q", kind, content)
	}

	exists, err := HasLooseObject(objectsDir, id)
	if err != nil || !exists {
		t.Errorf("HasLooseObject = %v, %v, want true", exists, err)
	}
	missing, err := HasLooseObject(objectsDir, objectid.Hash("blob", nil))
	if err != nil || missing {
		t.Errorf("HasLooseObject(missing) = %v, %v, want false", missing, err)
	}
}

func TestWriteLooseObjectIdempotent(t *testing.T) {
	t.Parallel()

	objectsDir := t.TempDir()
	for range 3 {
		if _, err := WriteLooseObject(objectsDir, "blob", []byte("hello\n")); err != nil {
			t.Fatalf("WriteLooseObject: %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(objectsDir, "ce"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("fan-out directory holds %v, want only the object", names)
	}
}

func TestReadLooseObjectDetectsCorruption(t *testing.T) {
	t.Parallel()

	objectsDir := t.TempDir()
	claimed, err := objectid.Parse(helloBlob)
	if err != nil {
		t.Fatal(err)
	}

	// A well-formed object stored under someone else's id.
	var compressed bytes.Buffer
	writer := zlib.NewWriter(&compressed)
	writer.Write(objectid.Frame("blob", []byte("goodbye\n")))
	writer.Close()
	path := LoosePath(objectsDir, claimed)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, compressed.Bytes(), 0444); err != nil {
		t.Fatal(err)
	}

	_, _, err = ReadLooseObject(objectsDir, claimed)
	if err == nil || !strings.Contains(err.Error(), "corrupt") {
		t.Errorf("ReadLooseObject = %v, want corruption error", err)
	}

	if _, _, err := ReadLooseObject(objectsDir, objectid.Hash("blob", nil)); err == nil {
		t.Error("ReadLooseObject(missing) succeeded")
	}
}

func TestLooseObjectsInteroperateWithGit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(testutil.GitRepository(t))
	objectsDir, err := repo.ObjectsDir(ctx)
	if err != nil {
		t.Fatalf("ObjectsDir: %v", err)
	}

	// Written natively, read by git.
	id, err := WriteLooseObject(objectsDir, "blob", []byte("written natively\n"))
	if err != nil {
		t.Fatalf("WriteLooseObject: %v", err)
	}
	content, err := repo.CatFile(ctx, "blob", id.String())
	if err != nil {
		t.Fatalf("CatFile: %v", err)
	}
	if string(content) != "written natively\n" {
		t.Errorf("git read %q", content)
	}

	// Written by git, read natively.
	gitID, err := repo.HashObject(ctx, "blob", []byte("written by git\n"), true)
	if err != nil {
		t.Fatalf("HashObject: %v", err)
	}
	kind, content, err := ReadLooseObject(objectsDir, gitID)
	if err != nil {
		t.Fatalf("ReadLooseObject: %v", err)
	}
	if kind != "blob" || string(content) != "written by git\n" {
		t.Errorf("ReadLooseObject = %q, %q", kind, content)
	}
}
