// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package padding

import (
	"fmt"
	"iter"
)

// Space bounds the tokens an [Enumerator] produces.
type Space struct {
	// Width is the exclusive upper bound on a line width. Each line
	// holds between 0 and Width-1 spaces.
	Width int `yaml:"width"`

	// MaxLines is the largest number of padding lines in a token.
	MaxLines int `yaml:"max_lines"`
}

// DefaultSpace is 80 columns by up to 4 lines.
var DefaultSpace = Space{Width: 80, MaxLines: 4}

// Validate reports whether the space can be enumerated.
func (s Space) Validate() error {
	if s.Width < 1 || s.Width > MaxWidthLimit {
		return fmt.Errorf("padding width %d out of range [1, %d]", s.Width, MaxWidthLimit)
	}
	if s.MaxLines < 0 || s.MaxLines > MaxLinesLimit {
		return fmt.Errorf("padding max lines %d out of range [0, %d]", s.MaxLines, MaxLinesLimit)
	}
	return nil
}

// Size returns the number of tokens in the space: the sum of
// Width^k for k from 0 through MaxLines. This is the number of trials
// a worker makes for one timestamp before advancing.
func (s Space) Size() uint64 {
	var total, power uint64 = 0, 1
	for length := 0; length <= s.MaxLines; length++ {
		total += power
		power *= uint64(s.Width)
	}
	return total
}

// Index returns the zero-based position of token in the enumeration
// order of s. The token must belong to s.
func (s Space) Index(token Token) uint64 {
	var offset, power uint64 = 0, 1
	for length := 0; length < token.Len(); length++ {
		offset += power
		power *= uint64(s.Width)
	}
	var rank uint64
	for i := 0; i < token.Len(); i++ {
		rank = rank*uint64(s.Width) + uint64(token.Line(i))
	}
	return offset + rank
}

// Contains reports whether token is a member of s.
func (s Space) Contains(token Token) bool {
	if token.Len() > s.MaxLines {
		return false
	}
	for i := 0; i < token.Len(); i++ {
		if token.Line(i) >= s.Width {
			return false
		}
	}
	return true
}

// All returns the tokens of s in enumeration order, paired with their
// position. Each call starts a fresh enumeration.
func (s Space) All() iter.Seq2[uint64, Token] {
	return func(yield func(uint64, Token) bool) {
		enumerator := NewEnumerator(s)
		for {
			token, ok := enumerator.Next()
			if !ok {
				return
			}
			if !yield(enumerator.Position(), token) {
				return
			}
		}
	}
}
