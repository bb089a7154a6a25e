// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package padding

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxLinesLimit is the largest MaxLines a [Space] may use. Tokens are
// fixed-size values so the search loop can copy them without
// allocating.
const MaxLinesLimit = 6

// MaxWidthLimit is the largest Width a [Space] may use. Line widths
// are stored as bytes.
const MaxWidthLimit = 256

// spaces backs every rendered line; slicing it avoids a per-line loop.
var spaces = [MaxWidthLimit]byte{}

func init() {
	for i := range spaces {
		spaces[i] = ' '
	}
}

// Token is one padding choice: the width of each padding line, in
// order. The zero Token has no lines.
type Token struct {
	lines [MaxLinesLimit]uint8
	count uint8
}

// TokenOf returns the Token with the given line widths. Panics if
// there are more than MaxLinesLimit lines or a width is outside
// [0, MaxWidthLimit). Intended for fixtures and tests; the search
// obtains tokens from an [Enumerator].
func TokenOf(widths ...int) Token {
	if len(widths) > MaxLinesLimit {
		panic(fmt.Sprintf("padding.TokenOf: %d lines exceeds limit %d", len(widths), MaxLinesLimit))
	}
	var token Token
	for i, width := range widths {
		if width < 0 || width >= MaxWidthLimit {
			panic(fmt.Sprintf("padding.TokenOf: line %d width %d out of range", i, width))
		}
		token.lines[i] = uint8(width)
	}
	token.count = uint8(len(widths))
	return token
}

// Len returns the number of padding lines.
func (t Token) Len() int { return int(t.count) }

// Line returns the width of line i.
func (t Token) Line(i int) int { return int(t.lines[i]) }

// Lines returns the line widths as a fresh slice.
func (t Token) Lines() []int {
	widths := make([]int, t.count)
	for i := range widths {
		widths[i] = int(t.lines[i])
	}
	return widths
}

// RenderedLen returns the number of bytes AppendTo writes.
func (t Token) RenderedLen() int {
	length := 1
	for i := 0; i < int(t.count); i++ {
		length += 1 + int(t.lines[i])
	}
	return length
}

// AppendTo appends the rendered padding to dst and returns the
// extended slice.
func (t Token) AppendTo(dst []byte) []byte {
	for i := 0; i < int(t.count); i++ {
		dst = append(dst, '\n')
		dst = append(dst, spaces[:t.lines[i]]...)
	}
	return append(dst, '\n')
}

// Render returns the rendered padding as a string.
func (t Token) Render() string {
	return string(t.AppendTo(make([]byte, 0, t.RenderedLen())))
}

// String formats the token as its line widths, e.g. "[3 0 79]".
func (t Token) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	for i := 0; i < int(t.count); i++ {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(strconv.Itoa(int(t.lines[i])))
	}
	builder.WriteByte(']')
	return builder.String()
}
