// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package objectid computes and formats git object ids.
//
// A git object id is the SHA-1 digest of the framed object: the type
// name, a space, the decimal byte length of the content, a NUL byte,
// then the content verbatim. [AppendHeader] and [Frame] produce that
// framing, [SplitFrame] parses it back and rejects a header whose
// declared length disagrees with the content, and [Hash] computes the
// id of unframed content.
//
// [ID] is the 20-byte digest. Its canonical text form is 40 lowercase
// hex characters, the format git prints and accepts.
package objectid
