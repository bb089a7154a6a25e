// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
)

// LoosePath returns where an object with the given id lives inside an
// objects directory: the first two hex digits name a fan-out
// directory and the remaining 38 name the file.
func LoosePath(objectsDir string, id objectid.ID) string {
	hexID := id.String()
	return filepath.Join(objectsDir, hexID[:2], hexID[2:])
}

// WriteLooseObject stores content as a loose object of the given kind
// and returns its id. The framed object is zlib-compressed into a
// temporary file in the fan-out directory, fsynced, made read-only,
// and renamed into place. Writing an object that already exists is a
// no-op.
func WriteLooseObject(objectsDir, kind string, content []byte) (objectid.ID, error) {
	object := objectid.Frame(kind, content)
	id := objectid.Sum(object)
	path := LoosePath(objectsDir, id)

	if _, err := os.Stat(path); err == nil {
		return id, nil
	}

	fanout := filepath.Dir(path)
	if err := os.MkdirAll(fanout, 0755); err != nil {
		return id, fmt.Errorf("creating object directory: %w", err)
	}

	file, err := os.CreateTemp(fanout, "tmp_obj_*")
	if err != nil {
		return id, fmt.Errorf("creating temporary object file: %w", err)
	}
	temporaryPath := file.Name()

	// Compress, sync, close, in that order. If any step fails, remove
	// the temporary file and report the first error.
	compressor := zlib.NewWriter(file)
	if _, err := compressor.Write(object); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return id, fmt.Errorf("compressing object %s: %w", id, err)
	}
	if err := compressor.Close(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return id, fmt.Errorf("compressing object %s: %w", id, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return id, fmt.Errorf("syncing object %s: %w", id, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return id, fmt.Errorf("closing object %s: %w", id, err)
	}
	if err := os.Chmod(temporaryPath, 0444); err != nil {
		os.Remove(temporaryPath)
		return id, fmt.Errorf("setting object %s read-only: %w", id, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return id, fmt.Errorf("renaming object %s into place: %w", id, err)
	}
	return id, nil
}

// ReadLooseObject loads the loose object with the given id and
// returns its kind and content. The object's digest is recomputed and
// must equal id.
func ReadLooseObject(objectsDir string, id objectid.ID) (string, []byte, error) {
	file, err := os.Open(LoosePath(objectsDir, id))
	if err != nil {
		return "", nil, fmt.Errorf("opening object %s: %w", id, err)
	}
	defer file.Close()

	decompressor, err := zlib.NewReader(file)
	if err != nil {
		return "", nil, fmt.Errorf("reading object %s: %w", id, err)
	}
	defer decompressor.Close()

	var object bytes.Buffer
	if _, err := io.Copy(&object, decompressor); err != nil {
		return "", nil, fmt.Errorf("decompressing object %s: %w", id, err)
	}

	if recomputed := objectid.Sum(object.Bytes()); recomputed != id {
		return "", nil, fmt.Errorf("object %s is corrupt: content hashes to %s", id, recomputed)
	}
	kind, content, err := objectid.SplitFrame(object.Bytes())
	if err != nil {
		return "", nil, fmt.Errorf("object %s: %w", id, err)
	}
	return kind, content, nil
}

// HasLooseObject reports whether a loose object with the given id
// exists.
func HasLooseObject(objectsDir string, id objectid.ID) (bool, error) {
	_, err := os.Stat(LoosePath(objectsDir, id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
