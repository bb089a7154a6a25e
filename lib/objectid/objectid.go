// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package objectid

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Size is the length of an object id in bytes.
const Size = sha1.Size

// HexLen is the length of an object id in hex characters.
const HexLen = 2 * Size

// ID is a SHA-1 git object id.
type ID [Size]byte

// Sum returns the id of an already framed object.
func Sum(object []byte) ID {
	return ID(sha1.Sum(object))
}

// Hash returns the id of content stored as an object of the given
// kind ("commit", "blob", "tree").
func Hash(kind string, content []byte) ID {
	hasher := sha1.New()
	var header [64]byte
	hasher.Write(AppendHeader(header[:0], kind, len(content)))
	hasher.Write(content)
	var id ID
	copy(id[:], hasher.Sum(nil))
	return id
}

// AppendHeader appends the object header "<kind> <length>\x00" to dst.
func AppendHeader(dst []byte, kind string, length int) []byte {
	dst = append(dst, kind...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(length), 10)
	return append(dst, 0)
}

// Frame returns header and content as one freshly allocated slice.
func Frame(kind string, content []byte) []byte {
	object := make([]byte, 0, len(kind)+24+len(content))
	object = AppendHeader(object, kind, len(content))
	return append(object, content...)
}

// LengthError reports a header whose declared length does not match
// the content that follows it.
type LengthError struct {
	Declared int
	Actual   int
}

func (err *LengthError) Error() string {
	return fmt.Sprintf("object header declares %d content bytes, found %d", err.Declared, err.Actual)
}

// SplitFrame parses a framed object into its kind and content. The
// returned content aliases object. Returns a *LengthError when the
// declared length is well formed but wrong.
func SplitFrame(object []byte) (string, []byte, error) {
	nul := bytes.IndexByte(object, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("object header has no NUL terminator")
	}
	header := object[:nul]
	space := bytes.IndexByte(header, ' ')
	if space <= 0 {
		return "", nil, fmt.Errorf("object header %q has no type", header)
	}
	declared, err := strconv.Atoi(string(header[space+1:]))
	if err != nil || declared < 0 {
		return "", nil, fmt.Errorf("object header %q has invalid length", header)
	}
	content := object[nul+1:]
	if declared != len(content) {
		return "", nil, &LengthError{Declared: declared, Actual: len(content)}
	}
	return string(header[:space]), content, nil
}

// Parse parses a 40-character hex object id. Uppercase hex is
// accepted.
func Parse(hexString string) (ID, error) {
	var id ID
	if len(hexString) != HexLen {
		return id, fmt.Errorf("object id %q is %d characters, want %d", hexString, len(hexString), HexLen)
	}
	if _, err := hex.Decode(id[:], []byte(hexString)); err != nil {
		return id, fmt.Errorf("parsing object id %q: %w", hexString, err)
	}
	return id, nil
}

// String returns the lowercase hex form.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is all zero bytes.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Nibble returns hex digit i of the id (0 is the most significant
// digit of the first byte), as a value in [0, 16).
func (id ID) Nibble(i int) byte {
	b := id[i>>1]
	if i&1 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	text := make([]byte, HexLen)
	hex.Encode(text, id[:])
	return text, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
