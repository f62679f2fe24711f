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
	"github.com/squidfunk/protobluff-go/internal/part"
	"github.com/squidfunk/protobluff-go/wire"
)

// Cursor walks the fields of a message in buffer order, optionally
// restricted by [WithTagFilter], expanding packed repeated fields into
// one stop per inner value (spec.md §4.8).
type Cursor struct {
	impl *part.Cursor
	msg  *Message
}

// NewCursor creates a cursor over m, positioned on the first matching
// field.
func NewCursor(m *Message, opts ...CursorOption) *Cursor {
	return &Cursor{impl: part.NewCursor(m.p, m.desc, cursorConfig(opts)), msg: m}
}

// Tag returns the field tag the cursor currently sits on, or 0 before the
// first successful advance or once exhausted.
func (c *Cursor) Tag() uint32 { return c.impl.Tag() }

// Pos returns the number of values the cursor has visited so far,
// counting each inner value of a packed field separately.
func (c *Cursor) Pos() int { return c.impl.Pos() }

// Valid reports whether the cursor currently sits on a field.
func (c *Cursor) Valid() bool { return c.impl.Valid() }

// Err returns the cursor's terminal error, nil while it sits on a valid
// field.
func (c *Cursor) Err() error { return c.impl.Err() }

// Field returns the descriptor of the field the cursor currently sits on.
func (c *Cursor) Field() *FieldDescriptor { return c.impl.Field() }

// WireType returns the wire type the cursor read the current value as.
func (c *Cursor) WireType() wire.Type { return c.impl.WireType() }

// Next advances the cursor to the next matching field or packed value.
func (c *Cursor) Next() bool { return c.impl.Next() }

// Rewind resets the cursor to its initial position.
func (c *Cursor) Rewind() error { return c.impl.Rewind() }

// Align realigns the cursor's internal offset against the journal.
func (c *Cursor) Align() error { return c.impl.Align() }

// Seek repeatedly advances the cursor until its current value's raw
// encoding equals want, or the cursor is exhausted.
func (c *Cursor) Seek(want []byte) bool { return c.impl.Seek(want) }

// Match reports whether the cursor's current raw payload bytes equal
// want.
func (c *Cursor) Match(want []byte) bool { return c.impl.Match(want) }

// Raw returns the current value's raw encoded bytes, aliasing the
// buffer's backing array.
func (c *Cursor) Raw() []byte { return c.impl.Raw() }

// Get decodes the current value per its descriptor's schema type.
func (c *Cursor) Get() (any, error) {
	return newField(c.impl.AsPart(), c.msg, c.impl.Field()).Get()
}

// Put overwrites the current value, re-encoding it per the descriptor's
// schema type. Writing through the cursor does not reposition it.
func (c *Cursor) Put(v any) error {
	return newField(c.impl.AsPart(), c.msg, c.impl.Field()).Put(v)
}

// Erase deletes the field (or, if positioned inside a packed run, the
// whole packed field) the cursor currently sits on.
func (c *Cursor) Erase() error { return c.impl.Erase() }
