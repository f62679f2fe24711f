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

package part_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/internal/part"
	"github.com/squidfunk/protobluff-go/internal/xbuf"
	"github.com/squidfunk/protobluff-go/wire"
)

// commonDescriptor mirrors spec.md §8's test schema: fields 1 UINT32 OPT,
// 2 UINT64 REPEATED (scenario 4 treats field 2 as repeated), 6 FLOAT
// REPEATED PACKED, 8 STRING OPT, 10 UINT64 REPEATED, 12 MESSAGE OPT.
func commonDescriptor() *descriptor.Message {
	return &descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "f1", Type: wire.Uint32, Label: wire.Optional},
		{Tag: 2, Name: "f2", Type: wire.Uint64, Label: wire.Repeated},
		{Tag: 6, Name: "f6", Type: wire.Float, Label: wire.Repeated, Packed: true},
		{Tag: 8, Name: "f8", Type: wire.String, Label: wire.Optional},
		{Tag: 10, Name: "f10", Type: wire.Uint64, Label: wire.Repeated},
		{Tag: 12, Name: "f12", Type: wire.Message, Label: wire.Optional},
	}}
}

func TestCursorVisitsRepeatedFieldInOrder(t *testing.T) {
	t.Parallel()

	buf := xbuf.New([]byte{0x10, 0x01, 0x10, 0x02, 0x10, 0x03, 0x10, 0x04})
	msg := part.Root(buf)
	c := part.NewCursor(msg, commonDescriptor(), part.CursorConfig{TagFilter: map[uint32]struct{}{2: {}}})

	var got []byte
	for c.Valid() {
		got = append(got, c.Raw()...)
		if !c.Next() {
			break
		}
	}
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, got)
}

func TestCursorShiftAfterInsert(t *testing.T) {
	t.Parallel()

	// spec.md §8 scenario 4.
	buf := xbuf.New([]byte{0x10, 0x01, 0x10, 0x02, 0x10, 0x03, 0x10, 0x04})
	msg := part.Root(buf)
	c := part.NewCursor(msg, commonDescriptor(), part.CursorConfig{TagFilter: map[uint32]struct{}{2: {}}})
	require.True(t, c.Valid())

	// Insert field 1 = 127 at the front, simulated as a direct buffer
	// write followed by the journal entry it would log.
	require.NoError(t, buf.Write(0, 0, []byte{0x08, 0x7f}))
	require.NoError(t, msg.Align())

	require.NoError(t, c.Align())
	var got []byte
	for c.Valid() {
		got = append(got, c.Raw()...)
		if !c.Next() {
			break
		}
	}
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, got)
}

func TestCursorPackedExpansion(t *testing.T) {
	t.Parallel()

	// spec.md §8 scenario 6.
	buf := xbuf.New([]byte{
		0x32, 0x08,
		0x00, 0xCA, 0x9A, 0x3B,
		0x00, 0xCA, 0x9A, 0x3B,
	})
	msg := part.Root(buf)
	c := part.NewCursor(msg, commonDescriptor(), part.CursorConfig{TagFilter: map[uint32]struct{}{6: {}}})

	require.True(t, c.Valid())
	assert.Equal(t, 0, c.Pos()-1)
	first := c.Raw()
	require.True(t, c.Next())
	assert.Equal(t, 1, c.Pos()-1)
	second := c.Raw()
	assert.Equal(t, first, second)
	assert.False(t, c.Next())
}

func TestCursorEraseThenContinue(t *testing.T) {
	t.Parallel()

	buf := xbuf.New([]byte{0x10, 0x01, 0x10, 0x02, 0x10, 0x03})
	msg := part.Root(buf)
	c := part.NewCursor(msg, commonDescriptor(), part.CursorConfig{TagFilter: map[uint32]struct{}{2: {}}})
	require.True(t, c.Valid())

	require.NoError(t, c.Erase())
	assert.Equal(t, []byte{0x10, 0x02, 0x10, 0x03}, buf.Bytes())

	var got []byte
	for c.Next() {
		got = append(got, c.Raw()...)
	}
	assert.Equal(t, []byte{0x02, 0x03}, got)
}
