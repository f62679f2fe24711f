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

// addressBookDescriptor describes a root message with a nested MESSAGE
// field: field 1 UINT32 OPTIONAL REQUIRED-less id, field 2 STRING
// OPTIONAL name, field 4 MESSAGE OPTIONAL ("address") whose own schema
// has field 1 STRING REQUIRED ("city").
func addressDescriptor() *descriptor.Message {
	return &descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "city", Type: wire.String, Label: wire.Required},
	}}
}

func addressBookDescriptor() *protobluff.MessageDescriptor {
	return &descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Optional},
		{Tag: 2, Name: "name", Type: wire.String, Label: wire.Optional},
		{Tag: 4, Name: "address", Type: wire.Message, Label: wire.Optional, Message: addressDescriptor()},
	}}
}

func TestMessageHas(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x05})
	msg := buf.Message(addressBookDescriptor())

	assert.True(t, msg.Has(1))
	assert.False(t, msg.Has(2))
}

func TestMessageGetPutSingleValue(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(addressBookDescriptor())

	require.NoError(t, msg.Put(2, "ada"))
	v, err := msg.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "ada", v)
}

func TestMessageGetRepeatedFails(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "scores", Type: wire.Uint64, Label: wire.Repeated},
	}})

	_, err := msg.Get(1)
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestMessageCreateSubMessageThenField(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(addressBookDescriptor())

	f, err := msg.CreateNestedField(4, 1)
	require.NoError(t, err)
	require.NoError(t, f.Put("Zurich"))

	sub, err := msg.CreateSubMessage(4)
	require.NoError(t, err)
	v, err := sub.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Zurich", v)
}

func TestMessageEraseAllOccurrences(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x10, 0x01, 0x08, 0x02, 0x10, 0x03})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Optional},
		{Tag: 2, Name: "scores", Type: wire.Uint64, Label: wire.Repeated},
	}})

	require.NoError(t, msg.Erase(2))
	assert.Equal(t, []byte{0x08, 0x02}, buf.Bytes())
}

func TestMessageCheckMissingRequired(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer(nil)
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "city", Type: wire.String, Label: wire.Required},
	}})

	err := msg.Check()
	assert.Error(t, err)
}

func TestMessageCheckDuplicateSingular(t *testing.T) {
	t.Parallel()

	buf := protobluff.NewBuffer([]byte{0x08, 0x01, 0x08, 0x02})
	msg := buf.Message(&descriptor.Message{Fields: []descriptor.Field{
		{Tag: 1, Name: "id", Type: wire.Uint32, Label: wire.Optional},
	}})

	err := msg.Check()
	assert.Error(t, err)
}
