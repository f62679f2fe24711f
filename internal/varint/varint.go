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

// Package varint implements the core wire codec: sizing, packing, and
// unpacking of protobuf varints (base-128 little-endian, 7 data bits per
// byte) and the fixed-width 32/64-bit encodings, keyed off a
// [wire.SchemaType]. It is hand-rolled rather than built on
// protowire.Append/ConsumeVarint because it has to support exact
// size-for-value queries ahead of an allocation, which protowire does not
// expose.
package varint

import (
	"encoding/binary"
	"math"

	"github.com/squidfunk/protobluff-go/wire"
)

// MaxVarintLen is the maximum number of bytes a 64-bit varint may occupy
// on the wire. A tenth byte only ever carries a single extra data bit.
const MaxVarintLen = 10

// SizeFor returns the number of bytes needed to encode v as scalar type t.
// t must not be a length-delimited type (STRING, BYTES, MESSAGE); those are
// sized as SizeVarint(len(payload)) + len(payload) by the caller, since the
// payload itself is opaque to the codec.
//
// INT32 values always size to 10 bytes when negative, matching upstream
// protobuf's "negative int32 sign-extends to 64 bits" wire behavior.
func SizeFor(t wire.SchemaType, v uint64) int {
	switch t.WireType() {
	case wire.Fixed32:
		return 4
	case wire.Fixed64:
		return 8
	case wire.Bytes:
		panic("varint: SizeFor called on a length-delimited type")
	default: // Varint family.
		switch t {
		case wire.Int32:
			if int32(v) < 0 {
				return MaxVarintLen
			}
			return SizeVarint(v & 0xffffffff)
		case wire.Sint32:
			return SizeVarint(uint64(wire.ZigZagEncode32(int32(v))))
		case wire.Sint64:
			return SizeVarint(wire.ZigZagEncode64(int64(v)))
		default:
			return SizeVarint(v)
		}
	}
}

// SizeVarint returns the number of bytes needed to varint-encode the raw
// unsigned value v. It backs both SizeFor and the length-prefix sizing used
// for STRING/BYTES/MESSAGE fields and for packed-field headers.
func SizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Pack writes the encoded form of v (interpreted per t) to out, and returns
// the number of bytes written. The caller must guarantee
// len(out) >= SizeFor(t, v); Pack never grows out. t must not be a
// length-delimited type; see [SizeFor].
func Pack(t wire.SchemaType, out []byte, v uint64) int {
	switch t.WireType() {
	case wire.Fixed32:
		binary.LittleEndian.PutUint32(out, uint32(v))
		return 4
	case wire.Fixed64:
		binary.LittleEndian.PutUint64(out, v)
		return 8
	case wire.Bytes:
		panic("varint: Pack called on a length-delimited type")
	default: // Varint family.
		switch t {
		case wire.Int32:
			if int32(v) < 0 {
				return PackVarint(out, v|0xffffffff00000000)
			}
			return PackVarint(out, v&0xffffffff)
		case wire.Sint32:
			return PackVarint(out, uint64(wire.ZigZagEncode32(int32(v))))
		case wire.Sint64:
			return PackVarint(out, wire.ZigZagEncode64(int64(v)))
		default:
			return PackVarint(out, v)
		}
	}
}

// PackVarint writes the base-128 varint encoding of v to out and returns the
// byte count. It backs both Pack and length-prefix encoding.
func PackVarint(out []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		out[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	out[i] = byte(v)
	return i + 1
}

// Unpack decodes a value of type t from in, storing the raw bit pattern in
// *v (zig-zag and sign-extension already resolved the way Pack would
// expect to receive it back). It returns the number of bytes consumed, or
// 0 if in does not hold a complete, valid encoding of t (overlong varint or
// truncated input).
func Unpack(t wire.SchemaType, in []byte, v *uint64) int {
	switch t.WireType() {
	case wire.Fixed32:
		if len(in) < 4 {
			return 0
		}
		*v = uint64(binary.LittleEndian.Uint32(in))
		return 4
	case wire.Fixed64:
		if len(in) < 8 {
			return 0
		}
		*v = binary.LittleEndian.Uint64(in)
		return 8
	case wire.Bytes:
		panic("varint: Unpack called on a length-delimited type")
	default: // Varint family.
		raw, n := UnpackVarint(in)
		if n == 0 {
			return 0
		}
		switch t {
		case wire.Sint32:
			*v = uint64(uint32(wire.ZigZagDecode32(uint32(raw))))
		case wire.Sint64:
			*v = uint64(wire.ZigZagDecode64(raw))
		default:
			*v = raw
		}
		return n
	}
}

// UnpackVarint reads a single base-128 varint from the front of in. It
// returns 0 bytes consumed if in is exhausted before a terminating byte
// appears, or if the varint overflows its 10-byte budget. It backs both
// Unpack and length-prefix decoding.
func UnpackVarint(in []byte) (uint64, int) {
	var x uint64
	for i := 0; i < MaxVarintLen && i < len(in); i++ {
		b := in[i]
		if i == MaxVarintLen-1 && b > 1 {
			return 0, 0 // Overlong: the tenth byte may only carry one data bit.
		}
		x |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return x, i + 1
		}
	}
	return 0, 0
}

// Scan reports whether a valid varint (high bit clear within the 10-byte
// budget) terminates within in.
func Scan(in []byte) bool {
	for i := 0; i < MaxVarintLen && i < len(in); i++ {
		if in[i] < 0x80 {
			return true
		}
	}
	return false
}

// Float32Bits and Float64Bits convert native floating-point values to and
// from the bit patterns [Pack] and [Unpack] operate on for FLOAT/DOUBLE
// schema types.
func Float32Bits(f float32) uint64 { return uint64(math.Float32bits(f)) }
func Float64Bits(f float64) uint64 { return math.Float64bits(f) }
func BitsToFloat32(v uint64) float32 { return math.Float32frombits(uint32(v)) }
func BitsToFloat64(v uint64) float64 { return math.Float64frombits(v) }
