// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/padding"
	"github.com/bureau-foundation/git-vanity/lib/search"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// searchDomainKey keys the fingerprint hash. The bytes are the ASCII
// domain name, zero-padded to 32 bytes. Changing it invalidates every
// stored fingerprint.
var searchDomainKey = [32]byte{
	'g', 'i', 't', '-', 'v', 'a', 'n', 'i', 't', 'y', '.', 's', 'e', 'a', 'r', 'c',
	'h', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint identifies a search input: the commit template, the
// pattern, and the padding space. The template is hashed as rendered
// at timestamp zero, which covers every field but the time.
func Fingerprint(template *commit.Template, pattern search.Pattern, space padding.Space) Hash {
	// NewKeyed fails only for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(searchDomainKey[:])
	if err != nil {
		panic("report: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	writeField(hasher, template.Render(0))
	writeField(hasher, []byte(pattern.String()))
	var parameters [17]byte
	if pattern.AllowPrefix() {
		parameters[0] = 1
	}
	binary.BigEndian.PutUint64(parameters[1:9], uint64(space.Width))
	binary.BigEndian.PutUint64(parameters[9:17], uint64(space.MaxLines))
	hasher.Write(parameters[:])

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// writeField writes a length-prefixed field so adjacent fields cannot
// be confused.
func writeField(hasher *blake3.Hasher, data []byte) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	hasher.Write(length[:])
	hasher.Write(data)
}

// String returns the hash in hex.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex digits, for display.
func (h Hash) Short() string {
	return h.String()[:12]
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	if len(text) != 2*len(h) {
		return fmt.Errorf("fingerprint %q is %d characters, want %d", text, len(text), 2*len(h))
	}
	_, err := hex.Decode(h[:], text)
	if err != nil {
		return fmt.Errorf("fingerprint %q: %w", text, err)
	}
	return nil
}
