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

package part

import (
	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/stream"
	"github.com/squidfunk/protobluff-go/internal/varint"
	"github.com/squidfunk/protobluff-go/wire"
)

// CursorConfig configures a [Cursor]'s traversal filter. The zero value
// visits every field.
type CursorConfig struct {
	// TagFilter, when non-empty, restricts traversal to these tags.
	TagFilter map[uint32]struct{}
}

// packedState tracks a Cursor's position inside a packed repeated field's
// concatenated values.
type packedState struct {
	active    bool
	elemSize  int // 0 selects the varint scan path.
	tagStart  int // absolute position of the packed field's own tag byte.
	lenStart  int // absolute position of its length-prefix byte.
	base      int // absolute position of the next inner value.
	end       int // absolute position just past the packed payload.
	remaining int
}

// Cursor walks the fields of a message region in buffer order, optionally
// restricted to a tag filter, expanding packed repeated fields into one
// stop per inner value (spec.md §4.8).
type Cursor struct {
	msg    *Part
	desc   *descriptor.Message
	filter map[uint32]struct{}

	ver    Version
	bufPos int

	pos      int
	current  Offset
	field    *descriptor.Field
	wireType wire.Type
	packed   packedState
	err      error
}

// NewCursor creates a cursor over msg's payload, restricted to cfg's tag
// filter, and advances it onto the first matching field.
func NewCursor(msg *Part, desc *descriptor.Message, cfg CursorConfig) *Cursor {
	c := &Cursor{msg: msg, desc: desc, filter: cfg.TagFilter}
	if err := msg.ensureValid(); err != nil {
		c.err = err
		return c
	}
	c.ver = Version{v: msg.Buf.Journal().Len()}
	c.bufPos = msg.Off.Start
	c.advance()
	return c
}

func (c *Cursor) matches(tag uint32) bool {
	if len(c.filter) == 0 {
		return true
	}
	_, ok := c.filter[tag]
	return ok
}

// Tag returns the field tag the cursor currently sits on, or 0 before the
// first successful advance or once exhausted.
func (c *Cursor) Tag() uint32 {
	if c.field == nil {
		return 0
	}
	return c.field.Tag
}

// Pos returns the number of values the cursor has visited so far,
// counting each inner value of a packed field separately.
func (c *Cursor) Pos() int { return c.pos }

// Err returns the cursor's terminal error, nil while it sits on a valid
// field.
func (c *Cursor) Err() error { return c.err }

// Valid reports whether the cursor currently sits on a field.
func (c *Cursor) Valid() bool { return c.err == nil && c.field != nil }

// Current returns the offset triple of the field or packed value the
// cursor currently sits on.
func (c *Cursor) Current() Offset { return c.current }

// Field returns the descriptor of the field the cursor currently sits
// on.
func (c *Cursor) Field() *descriptor.Field { return c.field }

// WireType returns the wire type the cursor read the current value as.
func (c *Cursor) WireType() wire.Type { return c.wireType }

// AsPart snapshots the cursor's current position into a standalone part,
// for field/part operations layered on top of cursor traversal.
func (c *Cursor) AsPart() *Part {
	return &Part{Buf: c.msg.Buf, Off: c.current, ver: Version{v: c.msg.Buf.Journal().Len()}}
}

// Next advances the cursor to the next matching field or packed value. It
// returns false once the cursor is exhausted or a decode error occurs;
// Err distinguishes the two (OFFSET for exhaustion, VARINT/UNDERRUN for a
// decode failure).
func (c *Cursor) Next() bool { return c.advance() }

func (c *Cursor) advance() bool {
	if c.err != nil {
		return false
	}
	if c.packed.active {
		return c.advancePacked()
	}
	return c.advanceField()
}

func (c *Cursor) advanceField() bool {
	data := c.msg.Buf.Bytes()
	for {
		if c.bufPos >= c.msg.Off.End {
			c.err = errs.ErrOffset
			c.field = nil
			return false
		}
		s := stream.New(data, c.bufPos)
		tagStart := s.Pos()
		tag, err := s.Tag()
		if err != nil {
			c.err = err
			c.field = nil
			return false
		}

		fieldTag := uint32(tag.Number)
		fd := c.desc.FieldByTag(fieldTag)
		packedRun := fd != nil && fd.Packed && tag.Type == wire.Bytes
		if fd == nil || (fd.Type.WireType() != tag.Type && !packedRun) || !c.matches(fieldTag) {
			if err := s.Skip(tag.Type); err != nil {
				c.err = err
				c.field = nil
				return false
			}
			c.bufPos = s.Pos()
			continue
		}

		if fd.Packed && tag.Type == wire.Bytes {
			lenStart := s.Pos()
			payload, err := s.Bytes()
			if err != nil {
				c.err = err
				c.field = nil
				return false
			}
			payloadStart := s.Pos() - len(payload)
			payloadEnd := s.Pos()
			elemSize := fd.Type.NativeSize()
			count := countPacked(payload, elemSize)

			c.bufPos = payloadEnd
			c.field = fd
			c.wireType = tag.Type
			c.packed = packedState{
				active: true, elemSize: elemSize,
				tagStart: tagStart, lenStart: lenStart,
				base: payloadStart, end: payloadEnd, remaining: count,
			}
			if count == 0 {
				c.packed.active = false
				continue
			}
			return c.advancePacked()
		}

		var valueStart, lenStart int
		if tag.Type == wire.Bytes {
			lenStart = s.Pos()
			payload, err := s.Bytes()
			if err != nil {
				c.err = err
				c.field = nil
				return false
			}
			valueStart = s.Pos() - len(payload)
		} else {
			lenStart = tagStart
			valueStart = s.Pos()
			if err := s.Skip(tag.Type); err != nil {
				c.err = err
				c.field = nil
				return false
			}
		}
		valueEnd := s.Pos()

		c.field = fd
		c.wireType = tag.Type
		c.current = Offset{
			Start: valueStart, End: valueEnd,
			DiffOrigin: tagStart - valueStart,
			DiffTag:    tagStart - valueStart,
			DiffLength: lenStart - valueStart,
		}
		c.bufPos = valueEnd
		c.pos++
		return true
	}
}

func (c *Cursor) advancePacked() bool {
	if c.packed.remaining == 0 {
		c.packed.active = false
		return c.advanceField()
	}
	data := c.msg.Buf.Bytes()
	start := c.packed.base
	var end int
	if c.packed.elemSize > 0 {
		end = start + c.packed.elemSize
	} else {
		_, n := varint.UnpackVarint(data[start:c.packed.end])
		if n <= 0 {
			c.err = errs.ErrVarint
			return false
		}
		end = start + n
	}
	c.current = Offset{
		Start: start, End: end,
		DiffOrigin: c.packed.tagStart - start,
		DiffTag:    c.packed.tagStart - start,
		DiffLength: c.packed.lenStart - start,
	}
	c.packed.base = end
	c.packed.remaining--
	c.pos++
	return true
}

func countPacked(payload []byte, elemSize int) int {
	if elemSize > 0 {
		return len(payload) / elemSize
	}
	n := 0
	for len(payload) > 0 {
		_, used := varint.UnpackVarint(payload)
		if used <= 0 {
			break
		}
		payload = payload[used:]
		n++
	}
	return n
}

// Rewind resets the cursor to its initial position and re-runs the first
// advance.
func (c *Cursor) Rewind() error {
	if err := c.msg.ensureValid(); err != nil {
		c.err = err
		return err
	}
	c.err = nil
	c.pos = 0
	c.field = nil
	c.packed = packedState{}
	c.bufPos = c.msg.Off.Start
	c.ver = Version{v: c.msg.Buf.Journal().Len()}
	c.advance()
	return c.err
}

// Align brings the cursor back in sync with the buffer's current journal
// version. A cursor position has no offset of its own to replay against
// the journal the way a Part does (it is re-derived from the message's
// payload start on every traversal step), so Align re-parses from the
// beginning up to the same ordinal position rather than attempting an
// incremental replay.
func (c *Cursor) Align() error {
	if err := c.msg.ensureValid(); err != nil {
		c.err = err
		return err
	}
	if c.ver.v == c.msg.Buf.Journal().Len() {
		return c.err
	}
	target := c.pos
	if target == 0 {
		return c.Rewind()
	}
	c.err = nil
	c.pos = 0
	c.field = nil
	c.packed = packedState{}
	c.bufPos = c.msg.Off.Start
	c.ver = Version{v: c.msg.Buf.Journal().Len()}
	c.advance()
	for c.pos < target && c.err == nil {
		c.advance()
	}
	return c.err
}

// Seek advances the cursor until the current value's encoding equals
// want, or the cursor is exhausted.
func (c *Cursor) Seek(want []byte) bool {
	for c.Valid() {
		if c.Match(want) {
			return true
		}
		if !c.Next() {
			return false
		}
	}
	return false
}

// Match reports whether the cursor's current raw payload bytes equal
// want.
func (c *Cursor) Match(want []byte) bool {
	if !c.Valid() {
		return false
	}
	got := c.msg.Buf.Bytes()[c.current.Start:c.current.End]
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// Raw returns the current value's raw encoded bytes, aliasing the
// buffer's backing array.
func (c *Cursor) Raw() []byte {
	if !c.Valid() {
		return nil
	}
	return c.msg.Buf.Bytes()[c.current.Start:c.current.End]
}

// Erase deletes the field (or, if the cursor is inside a packed run, the
// whole packed field) the cursor currently sits on, and repositions the
// cursor just before what follows it.
func (c *Cursor) Erase() error {
	if !c.Valid() {
		return errs.ErrInvalid
	}
	var origin, end int
	if c.packed.active || c.packed.remaining > 0 {
		origin = c.packed.tagStart
		end = c.packed.end
	} else {
		origin = c.current.Origin()
		end = c.current.End
	}
	if err := c.msg.Buf.Clear(origin, end); err != nil {
		return err
	}
	c.msg.Off.End -= end - origin
	c.bufPos = origin
	c.packed = packedState{}
	c.field = nil
	c.ver = Version{v: c.msg.Buf.Journal().Len()}
	c.msg.ver = c.ver
	return nil
}
