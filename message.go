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
	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/part"
	"github.com/squidfunk/protobluff-go/internal/xbuf"
	"github.com/squidfunk/protobluff-go/wire"
)

// MessageDescriptor describes the fields of one message type (spec.md §6).
type MessageDescriptor = descriptor.Message

// Message is a part whose payload is a sequence of (tag, value) pairs
// (spec.md §4.7).
type Message struct {
	p      *part.Part
	desc   *MessageDescriptor
	parent *Message // nil for the root message and for cursor-derived snapshots.
	isRoot bool     // the root message has no tag/length header of its own.
}

func newRootMessage(buf *xbuf.Buffer, desc *MessageDescriptor) *Message {
	return &Message{p: part.Root(buf), desc: desc, isRoot: true}
}

func newMessage(p *part.Part, desc *MessageDescriptor) *Message {
	return &Message{p: p, desc: desc}
}

// resyncAncestors re-emits this message's own length prefix, if it has
// one, to match its current span, then recurses up the parent chain. A
// nested insert grows every enclosing message's Offset.End in memory via
// the normal align() case-2 resize path, but leaves the actual
// length-prefix bytes of each enclosing message's own header untouched;
// this walks back up and fixes those bytes so the buffer stays wire-valid
// after the insert. The root message has no header of its own and ends
// the recursion.
func (m *Message) resyncAncestors() error {
	if m.isRoot {
		return nil
	}
	p := m.p
	if err := p.Align(); err != nil {
		return err
	}
	if !p.Valid() {
		return errs.ErrInvalid
	}
	payload := append([]byte(nil), p.Buf.Bytes()[p.Off.Start:p.Off.End]...)
	if err := p.Write(payload, true); err != nil {
		return err
	}
	if m.parent == nil {
		return nil
	}
	return m.parent.resyncAncestors()
}

// Descriptor returns this message's schema descriptor.
func (m *Message) Descriptor() *MessageDescriptor { return m.desc }

// Valid reports whether this message's backing part is still reachable.
func (m *Message) Valid() bool { return m.p.Valid() }

// Align realigns the message's part against the buffer's journal.
func (m *Message) Align() error { return m.p.Align() }

// Clear deletes the whole message region from the buffer.
func (m *Message) Clear() error { return m.p.Clear() }

// AsPart exposes the message's underlying part, for callers operating
// below the typed Field/Message layer.
func (m *Message) AsPart() *part.Part { return m.p }

func (m *Message) cursor(tag uint32, opts ...CursorOption) *part.Cursor {
	cfg := cursorConfig(opts)
	if cfg.TagFilter == nil {
		cfg.TagFilter = map[uint32]struct{}{}
	}
	if tag != 0 {
		cfg.TagFilter[tag] = struct{}{}
	}
	return part.NewCursor(m.p, m.desc, cfg)
}

// Has reports whether at least one occurrence of tag exists.
func (m *Message) Has(tag uint32) bool {
	c := m.cursor(tag)
	return c.Valid()
}

// CreateField locates the field at tag, materializing a synthetic field
// carrying the descriptor's default if the field is absent and the
// descriptor has one (spec.md §4.6 create).
func (m *Message) CreateField(tag uint32) (*Field, error) {
	return m.createField(tag, true)
}

// CreateFieldWithoutDefault is CreateField without default materialization:
// an absent field stays empty, and Get on it fails with [ErrorAbsent] even
// if the descriptor carries a default.
func (m *Message) CreateFieldWithoutDefault(tag uint32) (*Field, error) {
	return m.createField(tag, false)
}

func (m *Message) createField(tag uint32, useDefault bool) (*Field, error) {
	if err := m.p.Align(); err != nil {
		return nil, err
	}
	if !m.p.Valid() {
		return nil, errs.ErrInvalid
	}
	fd := m.desc.FieldByTag(tag)
	if fd == nil {
		return nil, errs.ErrDescriptor
	}
	c := m.cursor(tag)
	if c.Valid() {
		return newField(c.AsPart(), m, fd), nil
	}
	if err := c.Err(); err != nil && err != errs.ErrOffset {
		return nil, err
	}
	return newSyntheticField(m, fd, useDefault), nil
}

// CreateNestedField descends through all but the last tag in tags,
// creating intermediate sub-messages as needed (they must be non-repeated
// per schema), and creates the terminal field at the leaf. If a step fails,
// the sub-messages created by earlier steps stay in the buffer; nothing
// is rolled back.
func (m *Message) CreateNestedField(tags ...uint32) (*Field, error) {
	if len(tags) == 0 {
		return nil, errs.ErrDescriptor
	}
	cur := m
	for _, tag := range tags[:len(tags)-1] {
		sub, err := cur.CreateSubMessage(tag)
		if err != nil {
			return nil, err
		}
		cur = sub
	}
	return cur.CreateField(tags[len(tags)-1])
}

// CreateSubMessage returns the sub-message at tag, creating an empty one
// at the message's end if absent. The descriptor at tag must be
// MESSAGE-typed.
func (m *Message) CreateSubMessage(tag uint32) (*Message, error) {
	if err := m.p.Align(); err != nil {
		return nil, err
	}
	fd := m.desc.FieldByTag(tag)
	if fd == nil || fd.Type != wire.Message || fd.Message == nil {
		return nil, errs.ErrDescriptor
	}
	c := m.cursor(tag)
	if c.Valid() {
		sub := newMessage(c.AsPart(), fd.Message)
		sub.parent = m
		return sub, nil
	}
	if err := c.Err(); err != nil && err != errs.ErrOffset {
		return nil, err
	}
	p, err := insertField(m, fd, nil, true)
	if err != nil {
		return nil, err
	}
	sub := newMessage(p, fd.Message)
	sub.parent = m
	return sub, nil
}

// Get fills out the decoded value of the single-occurrence field at tag,
// falling back to its schema default if absent. It fails with
// [ErrorInvalid] if the descriptor labels tag REPEATED — use a [Cursor]
// for repeated fields. For a non-repeated tag that occurs more than once,
// it returns the first occurrence.
func (m *Message) Get(tag uint32) (any, error) {
	fd := m.desc.FieldByTag(tag)
	if fd == nil {
		return nil, errs.ErrDescriptor
	}
	if fd.Label == wire.Repeated {
		return nil, errs.ErrInvalid
	}
	f, err := m.CreateField(tag)
	if err != nil {
		return nil, err
	}
	return f.Get()
}

// Put writes v as the single occurrence of the field at tag. For a
// MESSAGE-typed field, v is the serialized bytes of a sub-message. Put
// does not check where those bytes come from; bytes sourced from m's own
// buffer may be read after this call has shifted them. [Message.PutMessage]
// rejects a source buffer that is m's own with [ErrorDescriptor].
func (m *Message) Put(tag uint32, v any) error {
	fd := m.desc.FieldByTag(tag)
	if fd == nil {
		return errs.ErrDescriptor
	}
	f, err := m.CreateField(tag)
	if err != nil {
		return err
	}
	return f.Put(v)
}

// PutMessage writes the serialized bytes of a sub-message (built over a
// buffer distinct from m's own) as the occurrence of the MESSAGE-typed
// field at tag.
func (m *Message) PutMessage(tag uint32, srcBuf *Buffer, data []byte) error {
	fd := m.desc.FieldByTag(tag)
	if fd == nil || fd.Type != wire.Message {
		return errs.ErrDescriptor
	}
	if srcBuf != nil && srcBuf.impl == m.p.Buf {
		return errs.ErrDescriptor
	}
	f, err := m.CreateField(tag)
	if err != nil {
		return err
	}
	return f.Put(data)
}

// Erase deletes every occurrence of tag.
func (m *Message) Erase(tag uint32) error {
	c := m.cursor(tag)
	for c.Valid() {
		if err := c.Erase(); err != nil {
			return err
		}
		c.Next()
	}
	if err := c.Err(); err != nil && err != errs.ErrOffset && !errorIsInvalid(err) {
		return err
	}
	return nil
}

func errorIsInvalid(err error) bool {
	e, ok := err.(*errs.Error)
	return ok && e.Code == errs.Invalid
}

// Check performs recursive schema validation over this message: every
// OPTIONAL/REQUIRED tag occurs at most once, every REQUIRED tag occurs at
// least once, every sub-message is recursively valid, and unknown tags are
// skipped silently. It returns on the first failure.
func (m *Message) Check() error {
	seen := make(map[uint32]int, len(m.desc.Fields))
	c := m.cursor(0)
	for c.Valid() {
		fd := c.Field()
		seen[fd.Tag]++
		if fd.Label != wire.Repeated && seen[fd.Tag] > 1 {
			return errs.ErrInvalid
		}
		if fd.Type == wire.Message && fd.Message != nil {
			sub := newMessage(c.AsPart(), fd.Message)
			if err := sub.Check(); err != nil {
				return err
			}
		}
		if !c.Next() {
			break
		}
	}
	if err := c.Err(); err != nil && err != errs.ErrOffset {
		return err
	}
	for i := range m.desc.Fields {
		fd := &m.desc.Fields[i]
		if fd.Label == wire.Required && seen[fd.Tag] == 0 {
			return errs.ErrAbsent
		}
	}
	return nil
}
