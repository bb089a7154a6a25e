// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode  = mustMode(reportEncOptions().EncMode())
	decMode  = mustMode(reportDecOptions().DecMode())
	diagMode = mustMode(cbor.DiagOptions{ByteStringText: true}.DiagMode())
)

// reportEncOptions is Core Deterministic Encoding with object ids
// written as hex text through their MarshalText method.
func reportEncOptions() cbor.EncOptions {
	options := cbor.CoreDetEncOptions()
	options.TextMarshaler = cbor.TextMarshalerTextString
	return options
}

// reportDecOptions accepts only what reportEncOptions can produce in
// structure: definite lengths and unique map keys. Unknown fields are
// ignored so an older binary can read a newer report.
func reportDecOptions() cbor.DecOptions {
	return cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}
}

func mustMode[M any](mode M, err error) M {
	if err != nil {
		panic("codec: invalid CBOR options: " + err.Error())
	}
	return mode
}

// Marshal encodes v deterministically: equal values give equal bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes a single CBOR item from data into v. Trailing
// bytes, duplicate map keys, and indefinite-length items are errors.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose renders data in RFC 8949 diagnostic notation. Byte strings
// holding UTF-8, like a stored commit object, are shown as text.
func Diagnose(data []byte) (string, error) {
	return diagMode.Diagnose(data)
}
