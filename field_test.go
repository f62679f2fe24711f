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
	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/wire"
)

// personDescriptor mirrors a small schema used across this package's
// tests: field 1 UINT32 OPTIONAL with a default of 1, field 2 STRING
// OPTIONAL with no default, field 3 UINT64 REPEATED.
func personDescriptor() *protobluff.MessageDescriptor {
	return &descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Optional, Default: []byte{0x01}},
		{Tag: 2, Name: "name", Type: wire.String, Label: wire.Optional},
		{Tag: 3, Name: "scores", Type: wire.Uint64, Label: wire.Repeated},
	}}
}

func TestSyntheticFieldReadsDefault(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateField(1)
	require.NoError(t, err)
	assert.True(t, f.Valid())

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
}

func TestSyntheticFieldWithoutDefaultIsAbsent(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateFieldWithoutDefault(1)
	require.NoError(t, err)

	_, err = f.Get()
	assert.ErrorIs(t, err, errs.ErrAbsent)
}

func TestSyntheticFieldMaterializesOnPut(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x05}) // field 1 = 5
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateField(2)
	require.NoError(t, err)
	require.NoError(t, f.Put("hi"))

	assert.Equal(t, []byte{0x08, 0x05, 0x12, 0x02, 'h', 'i'}, buf.Bytes())

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestSyntheticFieldMatchIsAlwaysFalse(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateFieldWithoutDefault(2)
	require.NoError(t, err)

	ok, err := f.Match("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFieldPutThenMatch(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x05})
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateField(1)
	require.NoError(t, err)
	require.NoError(t, f.Put(uint32(300)))

	ok, err := f.Match(uint32(300))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(uint32(301))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFieldClear(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x05, 0x12, 0x02, 'h', 'i'})
	msg := buf.Message(personDescriptor())

	f, err := msg.CreateField(2)
	require.NoError(t, err)
	require.NoError(t, f.Clear())
	assert.Equal(t, []byte{0x08, 0x05}, buf.Bytes())
	assert.False(t, f.Valid())
}
