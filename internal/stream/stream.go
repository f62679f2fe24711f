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

// Package stream implements the forward-only, typed cursor over a byte
// slice that the wire codec uses to read and skip fields (spec.md §4.2).
// It never mutates the bytes it reads; mutation is [xbuf.Buffer]'s job.
package stream

import (
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/varint"
	"github.com/squidfunk/protobluff-go/wire"
)

// Stream reads tags and values out of a byte slice starting at some
// offset, advancing as it goes. It does not own its backing slice.
type Stream struct {
	data []byte
	pos  int
}

// New returns a Stream over data, positioned at offset pos.
func New(data []byte, pos int) *Stream {
	return &Stream{data: data, pos: pos}
}

// Pos returns the current read offset.
func (s *Stream) Pos() int { return s.pos }

// Len returns the number of bytes left to read.
func (s *Stream) Len() int { return len(s.data) - s.pos }

// Done reports whether the stream has been fully consumed.
func (s *Stream) Done() bool { return s.pos >= len(s.data) }

// Advance moves the read position forward by n bytes without interpreting
// them, failing with [errs.ErrOffset] if that would run past the end.
func (s *Stream) Advance(n int) error {
	if n < 0 || s.pos+n > len(s.data) {
		return errs.ErrOffset
	}
	s.pos += n
	return nil
}

// Tag decodes the tag at the current position and advances past it.
func (s *Stream) Tag() (wire.Tag, error) {
	if s.Done() {
		return wire.Tag{}, errs.ErrUnderrun
	}
	raw, n := varint.UnpackVarint(s.data[s.pos:])
	if n <= 0 {
		return wire.Tag{}, errs.ErrVarint
	}
	s.pos += n
	return wire.DecodeTag(raw), nil
}

// Scalar decodes a non-length-delimited value of the given schema type at
// the current position and advances past it.
func (s *Stream) Scalar(t wire.SchemaType) (uint64, error) {
	rest := s.data[s.pos:]
	var v uint64
	n := varint.Unpack(t, rest, &v)
	if n <= 0 {
		if t.WireType() == wire.Varint {
			return 0, errs.ErrVarint
		}
		return 0, errs.ErrUnderrun
	}
	s.pos += n
	return v, nil
}

// Bytes decodes a length-delimited payload (STRING/BYTES/MESSAGE) at the
// current position: a varint length prefix followed by that many raw
// bytes. It returns a slice aliasing the stream's own backing array.
func (s *Stream) Bytes() ([]byte, error) {
	rest := s.data[s.pos:]
	length, n := varint.UnpackVarint(rest)
	if n <= 0 {
		return nil, errs.ErrVarint
	}
	start := s.pos + n
	end := start + int(length)
	if length > uint64(len(s.data)-start) {
		return nil, errs.ErrUnderrun
	}
	s.pos = end
	return s.data[start:end], nil
}

// Skip advances past a value of the given wire type without decoding it,
// used to walk past fields the caller is not interested in.
func (s *Stream) Skip(t wire.Type) error {
	switch t {
	case wire.Varint:
		_, n := varint.UnpackVarint(s.data[s.pos:])
		if n <= 0 {
			return errs.ErrVarint
		}
		s.pos += n
	case wire.Fixed32:
		return s.Advance(4)
	case wire.Fixed64:
		return s.Advance(8)
	case wire.Bytes:
		_, err := s.Bytes()
		return err
	default:
		return errs.ErrInvalid
	}
	return nil
}
