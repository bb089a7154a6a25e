// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
)

// Pattern is a literal hex string an object id must end with. When
// AllowPrefix is set, an id that begins with the pattern also matches.
type Pattern struct {
	text        string
	nibbles     []byte
	allowPrefix bool
}

// ParsePattern validates text as 1 to 40 hex digits. Uppercase digits
// are folded to lowercase.
func ParsePattern(text string, allowPrefix bool) (Pattern, error) {
	if text == "" {
		return Pattern{}, &ConfigurationError{Field: "pattern", Value: text, Reason: "must not be empty"}
	}
	if len(text) > objectid.HexLen {
		return Pattern{}, &ConfigurationError{Field: "pattern", Value: text,
			Reason: "longer than an object id"}
	}
	lower := strings.ToLower(text)
	nibbles := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		value, ok := hexValue(lower[i])
		if !ok {
			return Pattern{}, &ConfigurationError{Field: "pattern", Value: text,
				Reason: "contains non-hexadecimal characters"}
		}
		nibbles[i] = value
	}
	return Pattern{text: lower, nibbles: nibbles, allowPrefix: allowPrefix}, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// String returns the normalized pattern text.
func (p Pattern) String() string { return p.text }

// Len returns the number of hex digits in the pattern.
func (p Pattern) Len() int { return len(p.nibbles) }

// AllowPrefix reports whether a matching prefix is also accepted.
func (p Pattern) AllowPrefix() bool { return p.allowPrefix }

// Match reports whether id satisfies the pattern. It compares digits
// on the raw digest and does not allocate.
func (p Pattern) Match(id objectid.ID) bool {
	if p.hasSuffix(id) {
		return true
	}
	return p.allowPrefix && p.hasPrefix(id)
}

func (p Pattern) hasSuffix(id objectid.ID) bool {
	offset := objectid.HexLen - len(p.nibbles)
	for i, nibble := range p.nibbles {
		if id.Nibble(offset+i) != nibble {
			return false
		}
	}
	return true
}

func (p Pattern) hasPrefix(id objectid.ID) bool {
	for i, nibble := range p.nibbles {
		if id.Nibble(i) != nibble {
			return false
		}
	}
	return true
}

// ExpectedTries returns the mean number of trials needed to find a
// match, 16^len for suffix-only patterns and about half that when a
// prefix is also accepted.
func (p Pattern) ExpectedTries() float64 {
	expected := 1.0
	for range p.nibbles {
		expected *= 16
	}
	if p.allowPrefix {
		return expected / 2
	}
	return expected
}
