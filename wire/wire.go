// Copyright 2026 The Protobluff-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wire holds the bit-exact protobuf wire format constants shared by
// every layer of the mutation engine: wire types, schema types, field
// labels, and tag encode/decode.
package wire

import "google.golang.org/protobuf/encoding/protowire"

// Type is a protobuf wire type, the 3-bit class tag bytes carry alongside
// the field number.
type Type = protowire.Type

// The four wire types the core dispatches on. Groups (3, 4) are never
// produced and are rejected wherever they would be read.
const (
	Varint Type = protowire.VarintType
	Fixed64 Type = protowire.Fixed64Type
	Bytes   Type = protowire.BytesType
	Fixed32 Type = protowire.Fixed32Type
)

// SchemaType is the subset of protobuf field types the core understands.
// Descriptors attach one of these to every field; it determines both the
// wire type used to encode the field and the native size of its in-memory
// representation.
type SchemaType uint8

const (
	Uint32 SchemaType = iota
	Uint64
	Int32
	Int64
	Sint32
	Sint64
	Bool
	Float
	Double
	Fixed32Type
	Sfixed32
	Fixed64Type
	Sfixed64
	String
	BytesType
	Enum
	Message
)

// WireType returns the wire type used to encode values of type t.
func (t SchemaType) WireType() Type {
	switch t {
	case Uint32, Uint64, Int32, Int64, Sint32, Sint64, Bool, Enum:
		return Varint
	case Float, Fixed32Type, Sfixed32:
		return Fixed32
	case Double, Fixed64Type, Sfixed64:
		return Fixed64
	case String, BytesType, Message:
		return Bytes
	default:
		panic("wire: unknown schema type")
	}
}

// NativeSize returns the in-memory byte width for fixed-width schema types.
// Varint-family and length-delimited types have no fixed width; NativeSize
// returns 0 for them, except BOOL, which is always one byte wide and
// returns 1.
func (t SchemaType) NativeSize() int {
	switch t.WireType() {
	case Fixed32:
		return 4
	case Fixed64:
		return 8
	case Varint:
		if t == Bool {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ZigZag reports whether values of this type are zig-zag encoded on the
// wire.
func (t SchemaType) ZigZag() bool {
	return t == Sint32 || t == Sint64
}

// String implements [fmt.Stringer].
func (t SchemaType) String() string {
	switch t {
	case Uint32:
		return "UINT32"
	case Uint64:
		return "UINT64"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Sint32:
		return "SINT32"
	case Sint64:
		return "SINT64"
	case Bool:
		return "BOOL"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case Fixed32Type:
		return "FIXED32"
	case Sfixed32:
		return "SFIXED32"
	case Fixed64Type:
		return "FIXED64"
	case Sfixed64:
		return "SFIXED64"
	case String:
		return "STRING"
	case BytesType:
		return "BYTES"
	case Enum:
		return "ENUM"
	case Message:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

// Label is a field's cardinality.
type Label uint8

const (
	Optional Label = iota
	Required
	Repeated
	Oneof
)

// Tag is a decoded protobuf field tag: a field number plus a wire type.
type Tag struct {
	Number protowire.Number
	Type   Type
}

// EncodeTag appends the varint-encoded tag for (number, t) to dst.
func EncodeTag(dst []byte, number protowire.Number, t Type) []byte {
	return protowire.AppendTag(dst, number, t)
}

// DecodeTag splits a raw tag value into its field number and wire type, as
// read off the wire by [internal/varint.Unpack].
func DecodeTag(raw uint64) Tag {
	n, t := protowire.DecodeTag(raw)
	return Tag{Number: n, Type: t}
}
