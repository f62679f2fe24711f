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

package protobluff

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/part"
	"github.com/squidfunk/protobluff-go/internal/varint"
	"github.com/squidfunk/protobluff-go/wire"
)

// FieldDescriptor describes one field of a message (spec.md §6).
type FieldDescriptor = descriptor.Field

// Field is a typed accessor bound to a single field occurrence: a part
// plus the descriptor that tells it how to interpret the bytes there
// (spec.md §4.6).
type Field struct {
	p    *part.Part // valid when !synthetic.
	msg  *Message   // owning message, used to insert a synthetic field on first Put.
	desc *FieldDescriptor

	// synthetic is set when this field was created over an absent tag: it
	// has never touched the buffer. useDefault distinguishes create
	// (reads fall back to the descriptor's default) from
	// create_without_default (an absent read fails with ErrorAbsent
	// regardless of whether the descriptor has one).
	synthetic  bool
	useDefault bool
}

func newField(p *part.Part, msg *Message, desc *FieldDescriptor) *Field {
	return &Field{p: p, msg: msg, desc: desc}
}

func newSyntheticField(msg *Message, desc *FieldDescriptor, useDefault bool) *Field {
	return &Field{msg: msg, desc: desc, synthetic: true, useDefault: useDefault}
}

// Valid reports whether this field's backing part is still reachable. A
// synthetic field is always valid until cleared.
func (f *Field) Valid() bool {
	if f.synthetic {
		return true
	}
	if f.p == nil {
		return false
	}
	return f.p.Valid()
}

// Descriptor returns this field's schema descriptor.
func (f *Field) Descriptor() *FieldDescriptor { return f.desc }

// Align realigns the field's part against the buffer's journal.
func (f *Field) Align() error {
	if f.synthetic {
		return nil
	}
	return f.p.Align()
}

// Clear deletes this field occurrence from the buffer.
func (f *Field) Clear() error {
	if f.synthetic {
		f.synthetic = false
		return nil
	}
	if err := f.p.Clear(); err != nil {
		return err
	}
	if f.msg != nil {
		return f.msg.resyncAncestors()
	}
	return nil
}

// Raw returns a view of the field's raw wire-encoded payload bytes, or
// nil if the field's wire type is not fixed-width (32BIT/64BIT) — the
// power-user escape hatch of spec.md §4.6. Its validity ends at the next
// mutation on the buffer.
func (f *Field) Raw() []byte {
	wt := f.desc.Type.WireType()
	if wt != wire.Fixed32 && wt != wire.Fixed64 {
		return nil
	}
	if f.synthetic {
		return nil
	}
	if err := f.p.Align(); err != nil {
		return nil
	}
	return f.p.Buf.Bytes()[f.p.Off.Start:f.p.Off.End]
}

// encode renders v (interpreted per desc's schema type) into its wire
// bytes: either a fixed-width/varint scalar encoding, or a raw byte
// slice for STRING/BYTES/MESSAGE.
func encode(desc *FieldDescriptor, v any) ([]byte, error) {
	switch desc.Type {
	case wire.String:
		s, ok := v.(string)
		if !ok {
			return nil, errs.ErrDescriptor
		}
		return []byte(s), nil
	case wire.BytesType, wire.Message:
		b, ok := v.([]byte)
		if !ok {
			return nil, errs.ErrDescriptor
		}
		return b, nil
	default:
		bits, ok := scalarBits(desc.Type, v)
		if !ok {
			return nil, errs.ErrDescriptor
		}
		out := make([]byte, varint.SizeFor(desc.Type, bits))
		varint.Pack(desc.Type, out, bits)
		return out, nil
	}
}

// decode parses a field's raw payload bytes into the Go value its
// schema type corresponds to.
func decode(desc *FieldDescriptor, raw []byte) (any, error) {
	switch desc.Type {
	case wire.String:
		return string(raw), nil
	case wire.BytesType, wire.Message:
		return raw, nil
	default:
		var bits uint64
		n := varint.Unpack(desc.Type, raw, &bits)
		if n <= 0 || n != len(raw) {
			if desc.Type.WireType() == wire.Varint {
				return nil, errs.ErrVarint
			}
			return nil, errs.ErrUnderrun
		}
		return bitsToScalar(desc.Type, bits), nil
	}
}

// scalarBits converts a Go value into the raw bit pattern [varint.Pack]
// expects for a scalar schema type.
func scalarBits(t wire.SchemaType, v any) (uint64, bool) {
	switch t {
	case wire.Uint32, wire.Fixed32Type:
		x, ok := v.(uint32)
		return uint64(x), ok
	case wire.Uint64, wire.Fixed64Type:
		x, ok := v.(uint64)
		return x, ok
	case wire.Int32, wire.Sint32, wire.Sfixed32:
		x, ok := v.(int32)
		return uint64(uint32(x)), ok
	case wire.Int64, wire.Sint64, wire.Sfixed64:
		x, ok := v.(int64)
		return uint64(x), ok
	case wire.Bool:
		x, ok := v.(bool)
		if !ok {
			return 0, false
		}
		if x {
			return 1, true
		}
		return 0, true
	case wire.Float:
		x, ok := v.(float32)
		return varint.Float32Bits(x), ok
	case wire.Double:
		x, ok := v.(float64)
		return varint.Float64Bits(x), ok
	case wire.Enum:
		x, ok := v.(int32)
		return uint64(uint32(x)), ok
	default:
		return 0, false
	}
}

// bitsToScalar is scalarBits' inverse.
func bitsToScalar(t wire.SchemaType, bits uint64) any {
	switch t {
	case wire.Uint32, wire.Fixed32Type:
		return uint32(bits)
	case wire.Uint64, wire.Fixed64Type:
		return bits
	case wire.Int32, wire.Sint32, wire.Sfixed32:
		return int32(uint32(bits))
	case wire.Int64, wire.Sint64, wire.Sfixed64:
		return int64(bits)
	case wire.Bool:
		return bits != 0
	case wire.Float:
		return math.Float32frombits(uint32(bits))
	case wire.Double:
		return math.Float64frombits(bits)
	case wire.Enum:
		return int32(uint32(bits))
	default:
		return nil
	}
}

// Get decodes the field's payload into a Go value of the type its schema
// type corresponds to. A synthetic field falls back to its descriptor's
// default when created with a default in mind; otherwise, or when
// neither a value nor a default exists, it fails with [ErrorAbsent].
func (f *Field) Get() (any, error) {
	if f.synthetic {
		if !f.useDefault || f.desc.Default == nil {
			return nil, errs.ErrAbsent
		}
		return decode(f.desc, f.desc.Default)
	}
	if err := f.p.Align(); err != nil {
		return nil, err
	}
	raw := f.p.Buf.Bytes()[f.p.Off.Start:f.p.Off.End]
	return decode(f.desc, raw)
}

// Put encodes v per the field's schema type and writes it into the
// buffer, materializing a synthetic field at the end of its owning
// message on first write.
func (f *Field) Put(v any) error {
	data, err := encode(f.desc, v)
	if err != nil {
		return err
	}
	lengthDelimited := f.desc.Type.WireType() == wire.Bytes
	if f.synthetic {
		p, err := insertField(f.msg, f.desc, data, lengthDelimited)
		if err != nil {
			return err
		}
		f.p = p
		f.synthetic = false
		return nil
	}
	if err := f.p.Write(data, lengthDelimited); err != nil {
		return err
	}
	if f.msg != nil {
		return f.msg.resyncAncestors()
	}
	return nil
}

// insertField appends a brand-new tag (and, for a length-delimited
// field, a length prefix) plus data at the end of msg's payload, grows
// msg and re-emits the length prefix of every enclosing message so the
// buffer stays wire-valid, and returns a part anchored on the freshly
// written value.
func insertField(msg *Message, desc *FieldDescriptor, data []byte, lengthDelimited bool) (*part.Part, error) {
	if err := msg.p.Align(); err != nil {
		return nil, err
	}
	insertAt := msg.p.Off.End

	tag := wire.EncodeTag(nil, protowire.Number(desc.Tag), desc.Type.WireType())
	full := append([]byte(nil), tag...)
	lenPos := insertAt
	valueStart := insertAt + len(tag)
	if lengthDelimited {
		lenPos = valueStart
		hdr := make([]byte, varint.MaxVarintLen)
		n := varint.PackVarint(hdr, uint64(len(data)))
		full = append(full, hdr[:n]...)
		valueStart += n
	}
	full = append(full, data...)

	if err := msg.p.Buf.Write(insertAt, insertAt, full); err != nil {
		return nil, err
	}
	if err := msg.p.Align(); err != nil {
		return nil, err
	}
	if err := msg.resyncAncestors(); err != nil {
		return nil, err
	}

	return part.New(msg.p.Buf, part.Offset{
		Start: valueStart, End: valueStart + len(data),
		DiffOrigin: insertAt - valueStart,
		DiffTag:    insertAt - valueStart,
		DiffLength: lenPos - valueStart,
	}), nil
}

// Match reports whether v, encoded the way Put would encode it, equals
// the field's current payload bytes.
func (f *Field) Match(v any) (bool, error) {
	data, err := encode(f.desc, v)
	if err != nil {
		return false, err
	}
	if f.synthetic {
		return false, nil
	}
	if err := f.p.Align(); err != nil {
		return false, err
	}
	raw := f.p.Buf.Bytes()[f.p.Off.Start:f.p.Off.End]
	if len(raw) != len(data) {
		return false, nil
	}
	for i := range raw {
		if raw[i] != data[i] {
			return false, nil
		}
	}
	return true, nil
}
