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

package protobluff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protobluff "github.com/squidfunk/protobluff-go"
	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/wire"
)

// scoresDescriptor describes a single REPEATED UINT64 field 1, used to
// exercise packed traversal.
func scoresDescriptor() *protobluff.MessageDescriptor {
	return &descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "scores", Type: wire.Uint64, Label: wire.Repeated, Packed: true},
	}}
}

func TestCursorPackedTraversal(t *testing.T) {
	t.Parallel()

	// field 1, packed varint payload of length 4: values 1, 2, 300.
	buf := protobluff.NewBuffer([]byte{0x0A, 0x04, 0x01, 0x02, 0xAC, 0x02})
	msg := buf.Message(scoresDescriptor())

	c := protobluff.NewCursor(msg)
	require.True(t, c.Valid())

	var got []any
	for c.Valid() {
		v, err := c.Get()
		require.NoError(t, err)
		got = append(got, v)
		c.Next()
	}
	assert.Equal(t, []any{uint64(1), uint64(2), uint64(300)}, got)
	assert.Equal(t, 3, c.Pos())
}

func TestCursorTagFilterSkipsOthers(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x01, 0x10, 0x02, 0x08, 0x03})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Repeated},
		{Tag: 2, Name: "extra", Type: wire.Uint64, Label: wire.Optional},
	}})

	c := protobluff.NewCursor(msg, protobluff.WithTagFilter(1))

	var got []any
	for c.Valid() {
		v, err := c.Get()
		require.NoError(t, err)
		got = append(got, v)
		c.Next()
	}
	assert.Equal(t, []any{uint32(1), uint32(3)}, got)
}

func TestCursorPutOverwritesInPlace(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x05})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Optional},
	}})

	c := protobluff.NewCursor(msg)
	require.True(t, c.Valid())
	require.NoError(t, c.Put(uint32(9)))

	assert.Equal(t, []byte{0x08, 0x09}, buf.Bytes())
}

func TestCursorSeekFindsMatchingValue(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x01, 0x08, 0x02, 0x08, 0x03})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Repeated},
	}})

	c := protobluff.NewCursor(msg)
	require.True(t, c.Seek([]byte{0x02}))

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	assert.False(t, c.Seek([]byte{0x09}))
}

func TestCursorEraseRepositionsOnNext(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x01, 0x08, 0x02, 0x08, 0x03})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Repeated},
	}})

	c := protobluff.NewCursor(msg)
	require.True(t, c.Valid())
	require.True(t, c.Next()) // now on the second occurrence (value 2)

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	require.NoError(t, c.Erase())
	assert.Equal(t, []byte{0x08, 0x01, 0x08, 0x03}, buf.Bytes())

	require.True(t, c.Next())
	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v)
}

func TestCursorRewind(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x01, 0x08, 0x02})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Repeated},
	}})

	c := protobluff.NewCursor(msg)
	require.True(t, c.Next())
	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	require.NoError(t, c.Rewind())
	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
}
