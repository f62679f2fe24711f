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

// Package descriptor defines the contract the mutation engine's core
// consumes for schema information (spec.md §6). Descriptors are static,
// read-only tables the caller builds once (typically generated from a
// .proto file by a separate compiler, out of scope for this module) and
// hands to [Field], [Message], and [Cursor] constructors; the core never
// allocates a descriptor itself.
package descriptor

import "github.com/squidfunk/protobluff-go/wire"

// Field describes one field of a message: its tag, schema type, label, and
// (for MESSAGE/ENUM fields) what it refers to.
type Field struct {
	Tag   uint32
	Name  string
	Type  wire.SchemaType
	Label wire.Label

	// Message is set when Type is MESSAGE; it names the sub-message's
	// descriptor.
	Message *Message

	// Enum is set when Type is ENUM.
	Enum *Enum

	// Default holds the wire-encoded default value for an OPTIONAL scalar
	// field. Nil means "no default" (protobluff's ABSENT error fires when
	// such a field is read but never written).
	Default []byte

	// Packed is only meaningful when Label is REPEATED and Type's wire
	// type is VARINT, 32BIT, or 64BIT: it marks the field as using the
	// packed encoding (spec.md §3's PACKED flag).
	Packed bool

	// Oneof is set when this field is part of a oneof.
	Oneof *Oneof
}

// Message describes the fields of one message type, plus any extension
// ranges chained onto it (spec.md §6).
type Message struct {
	Fields    []Field
	extension *Message
}

// FieldByTag returns the descriptor for tag, searching this message's own
// fields first and then any chained extensions. It returns nil if tag is
// unknown.
func (m *Message) FieldByTag(tag uint32) *Field {
	for i := range m.Fields {
		if m.Fields[i].Tag == tag {
			return &m.Fields[i]
		}
	}
	if m.extension != nil {
		return m.extension.FieldByTag(tag)
	}
	return nil
}

// Extend appends ext to the tail of this message's extension chain, unless
// it (by identity) is already present somewhere in the chain.
func Extend(m, ext *Message) {
	if m == ext {
		return
	}
	cur := m
	for {
		if cur.extension == ext {
			return
		}
		if cur.extension == nil {
			cur.extension = ext
			return
		}
		cur = cur.extension
	}
}

// EnumValue is one named value of an [Enum].
type EnumValue struct {
	Number int32
	Name   string
}

// Enum describes the legal values of an ENUM-typed field.
type Enum struct {
	Values []EnumValue
}

// Oneof describes a set of fields of which at most one may be set. Indices
// refers back into the owning [Message]'s Fields slice.
type Oneof struct {
	Message *Message
	Indices []int
}
