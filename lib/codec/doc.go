// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides git-vanity's standard CBOR encoding
// configuration.
//
// Search reports are stored as CBOR so that the same search always
// produces the same bytes and a report can be compared or hashed
// without canonicalizing it first. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// [Diagnose] renders encoded data in RFC 8949 diagnostic notation for
// "git-vanity report --raw".
//
// Types serialized only as CBOR carry `cbor` struct tags. Types that
// are also printed as JSON carry `json` tags, which fxamacker/cbor
// reads as a fallback. Never use both tags on the same field.
package codec
