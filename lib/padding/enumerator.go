// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package padding

// Enumerator walks every token of a [Space] in order. It holds a
// single cursor and never allocates after construction. An
// Enumerator is not safe for concurrent use; each search worker owns
// its own.
type Enumerator struct {
	space    Space
	current  Token
	position uint64
	started  bool
	done     bool
}

// NewEnumerator returns an Enumerator positioned before the first
// token of space. The space must be valid (see [Space.Validate]).
func NewEnumerator(space Space) *Enumerator {
	return &Enumerator{space: space}
}

// Next returns the next token and true, or the zero Token and false
// once the space is exhausted.
func (e *Enumerator) Next() (Token, bool) {
	if e.done {
		return Token{}, false
	}
	if !e.started {
		e.started = true
		return e.current, true
	}
	if !e.advance() {
		e.done = true
		return Token{}, false
	}
	e.position++
	return e.current, true
}

// Position returns the index of the token most recently returned by
// Next. Meaningless before the first call to Next.
func (e *Enumerator) Position() uint64 {
	return e.position
}

// Reset rewinds the enumerator to before the first token.
func (e *Enumerator) Reset() {
	e.current = Token{}
	e.position = 0
	e.started = false
	e.done = false
}

// advance moves current to its successor. Lines at or past
// current.count are always zero, so growing the token by one line
// yields the all-zero token of the next length.
func (e *Enumerator) advance() bool {
	token := &e.current
	for i := int(token.count) - 1; i >= 0; i-- {
		if int(token.lines[i])+1 < e.space.Width {
			token.lines[i]++
			return true
		}
		token.lines[i] = 0
	}
	if int(token.count) >= e.space.MaxLines {
		return false
	}
	token.count++
	return true
}
