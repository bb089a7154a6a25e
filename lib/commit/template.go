// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commit renders git commit objects for the vanity search.
//
// A [Template] holds every field of a commit except its timestamp. It
// is split once, at construction, into three byte segments around the
// two places the timestamp appears (author and committer lines), so
// rendering a candidate for a new timestamp or padding token is a
// handful of appends with no formatting.
package commit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/padding"
)

// ObjectKind is the git object type name used in the header.
const ObjectKind = "commit"

// Signature identifies an author or committer.
type Signature struct {
	Name  string `cbor:"name"`
	Email string `cbor:"email"`
}

// ParseSignature parses "Name <email>".
func ParseSignature(text string) (Signature, error) {
	open := strings.LastIndexByte(text, '<')
	if open < 0 || !strings.HasSuffix(text, ">") {
		return Signature{}, fmt.Errorf("identity %q is not of the form \"Name <email>\"", text)
	}
	signature := Signature{
		Name:  strings.TrimSpace(text[:open]),
		Email: text[open+1 : len(text)-1],
	}
	if err := signature.Validate(); err != nil {
		return Signature{}, err
	}
	return signature, nil
}

// Validate rejects identities git would not round-trip: empty names,
// and names or emails containing angle brackets or newlines.
func (s Signature) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("identity name is empty")
	}
	for _, value := range []string{s.Name, s.Email} {
		if strings.ContainsAny(value, "<>\n\x00") {
			return fmt.Errorf("identity %q contains a reserved character", value)
		}
	}
	return nil
}

func (s Signature) String() string {
	return s.Name + " <" + s.Email + ">"
}

// Fields are the resolved inputs of a commit object.
type Fields struct {
	// Tree is the hex id of the root tree.
	Tree string

	// Parent is the hex id of the parent commit, or empty for a root
	// commit.
	Parent string

	Author    Signature
	Committer Signature

	// Timezone is the git offset string, e.g. "-0400". Used for both
	// the author and committer lines.
	Timezone string

	// Message is the commit message. Trailing newlines are normalized
	// to exactly one.
	Message string
}

var timezonePattern = regexp.MustCompile(`^[+-][0-9]{4}$`)

// Template is a commit with every field but the timestamp resolved.
// It is immutable and safe for concurrent use.
type Template struct {
	fields Fields
	head   []byte
	middle []byte
	tail   []byte
}

// NewTemplate validates fields and prepares the rendering segments.
func NewTemplate(fields Fields) (*Template, error) {
	if _, err := objectid.Parse(fields.Tree); err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}
	if fields.Parent != "" {
		if _, err := objectid.Parse(fields.Parent); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
	}
	if err := fields.Author.Validate(); err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	if err := fields.Committer.Validate(); err != nil {
		return nil, fmt.Errorf("committer: %w", err)
	}
	if !timezonePattern.MatchString(fields.Timezone) {
		return nil, fmt.Errorf("timezone %q is not of the form +HHMM or -HHMM", fields.Timezone)
	}
	fields.Tree = strings.ToLower(fields.Tree)
	fields.Parent = strings.ToLower(fields.Parent)
	fields.Message = strings.TrimRight(fields.Message, "\n") + "\n"

	var head strings.Builder
	head.WriteString("tree " + fields.Tree + "\n")
	if fields.Parent != "" {
		head.WriteString("parent " + fields.Parent + "\n")
	}
	head.WriteString("author " + fields.Author.String() + " ")

	return &Template{
		fields: fields,
		head:   []byte(head.String()),
		middle: []byte(" " + fields.Timezone + "\ncommitter " + fields.Committer.String() + " "),
		tail:   []byte(" " + fields.Timezone + "\n\n" + fields.Message),
	}, nil
}

// Fields returns the normalized fields.
func (t *Template) Fields() Fields {
	return t.fields
}

// RenderedLen returns the length of the content AppendContent writes
// for timestamp, computed without rendering.
func (t *Template) RenderedLen(timestamp int64) int {
	return len(t.head) + len(t.middle) + len(t.tail) + 2*decimalLen(timestamp)
}

// AppendContent appends the commit content for timestamp, without
// padding, to dst.
func (t *Template) AppendContent(dst []byte, timestamp int64) []byte {
	dst = append(dst, t.head...)
	dst = strconv.AppendInt(dst, timestamp, 10)
	dst = append(dst, t.middle...)
	dst = strconv.AppendInt(dst, timestamp, 10)
	return append(dst, t.tail...)
}

// Render returns the commit content for timestamp without padding.
func (t *Template) Render(timestamp int64) []byte {
	return t.AppendContent(make([]byte, 0, t.RenderedLen(timestamp)), timestamp)
}

// Content returns the full commit content: the rendered template
// followed by the rendered padding token. The result is freshly
// allocated.
func (t *Template) Content(timestamp int64, token padding.Token) []byte {
	content := make([]byte, 0, t.RenderedLen(timestamp)+token.RenderedLen())
	content = t.AppendContent(content, timestamp)
	return token.AppendTo(content)
}

// AppendCandidate appends the framed candidate object for base (the
// content rendered by AppendContent) and token to dst: the commit
// header, base, then the padding. The content length is computed once
// from base and the token and used for the header.
func AppendCandidate(dst, base []byte, token padding.Token) []byte {
	dst = objectid.AppendHeader(dst, ObjectKind, len(base)+token.RenderedLen())
	dst = append(dst, base...)
	return token.AppendTo(dst)
}

func decimalLen(value int64) int {
	length := 1
	if value < 0 {
		length++
		value = -value
	}
	for value >= 10 {
		value /= 10
		length++
	}
	return length
}
