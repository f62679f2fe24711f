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

package xbuf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squidfunk/protobluff-go/internal/xbuf"
)

// failAfter is an [xbuf.Allocator] that fails every allocation whose
// requested size exceeds a budget, used to exercise the ALLOC error path.
type failAfter struct{ budget int }

func (f *failAfter) Alloc(size int) []byte {
	if size > f.budget {
		return nil
	}
	return make([]byte, size)
}

func TestWriteInPlaceNoJournalEntry(t *testing.T) {
	t.Parallel()

	b := xbuf.New([]byte{0x08, 0x7f})
	require.NoError(t, b.Write(1, 2, []byte{0x7f}))
	assert.Equal(t, 0, b.Journal().Len(), "same-size write must not journal")
}

func TestWriteGrowJournals(t *testing.T) {
	t.Parallel()

	// spec.md §8 scenario 3: tag 1 = 127 becomes tag 1 = 128.
	b := xbuf.New([]byte{0x08, 0x7f})
	require.NoError(t, b.Write(1, 2, []byte{0x80, 0x01}))
	assert.Equal(t, []byte{0x08, 0x80, 0x01}, b.Bytes())
	require.Equal(t, 1, b.Journal().Len())
	assert.Equal(t, xbuf.Entry{Origin: 1, Offset: 2, Delta: 1}, b.Journal().Since(0)[0])
}

func TestWriteShrink(t *testing.T) {
	t.Parallel()

	b := xbuf.New([]byte{0x08, 0x80, 0x01, 0x10, 0x02})
	require.NoError(t, b.Write(0, 3, []byte{0x08, 0x7f}))
	assert.Equal(t, []byte{0x08, 0x7f, 0x10, 0x02}, b.Bytes())
	require.Equal(t, 1, b.Journal().Len())
	assert.Equal(t, -1, b.Journal().Since(0)[0].Delta)
}

func TestZeroCopyGrowFails(t *testing.T) {
	t.Parallel()

	data := []byte{0x08, 0x7f}
	b := xbuf.NewZeroCopy(data)
	before := append([]byte(nil), b.Bytes()...)

	err := b.Write(1, 2, []byte{0x80, 0x01})
	assert.ErrorIs(t, err, xbuf.ErrAlloc)
	assert.Equal(t, before, b.Bytes(), "failed mutation must leave bytes unchanged")
}

func TestZeroCopyShrinkFails(t *testing.T) {
	t.Parallel()

	b := xbuf.NewZeroCopy([]byte{0x08, 0x80, 0x01})
	err := b.Write(0, 3, []byte{0x08})
	assert.ErrorIs(t, err, xbuf.ErrAlloc)
}

func TestGrowAllocFailureLeavesBufferUnchanged(t *testing.T) {
	t.Parallel()

	b := xbuf.New([]byte{0x08, 0x7f}, xbuf.WithAllocator(&failAfter{budget: 2}))
	before := append([]byte(nil), b.Bytes()...)

	err := b.Write(1, 2, []byte{0x80, 0x80, 0x01})
	assert.ErrorIs(t, err, xbuf.ErrAlloc)
	assert.True(t, bytes.Equal(before, b.Bytes()))
	assert.Equal(t, 0, b.Journal().Len(), "a failed write must not journal")
}

func TestAppendDoesNotJournal(t *testing.T) {
	t.Parallel()

	b := xbuf.NewEmpty()
	require.NoError(t, b.Append([]byte{0x08, 0x7f}))
	assert.Equal(t, []byte{0x08, 0x7f}, b.Bytes())
	assert.Equal(t, 0, b.Journal().Len())
}

func TestClearWholeBufferReleases(t *testing.T) {
	t.Parallel()

	b := xbuf.New([]byte{0x08, 0x7f})
	require.NoError(t, b.Clear(0, 2))
	assert.Equal(t, 0, b.Size())
	require.Equal(t, 1, b.Journal().Len())
	assert.Equal(t, -2, b.Journal().Since(0)[0].Delta)
}

func TestInvalidBuffer(t *testing.T) {
	t.Parallel()

	b := xbuf.NewInvalid("test")
	assert.False(t, b.Valid())
	assert.Error(t, b.Err())
	assert.ErrorIs(t, b.Write(0, 0, nil), xbuf.ErrInvalid)
}

func TestOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	b := xbuf.New([]byte{0x08, 0x7f})
	assert.ErrorIs(t, b.Write(0, 10, nil), xbuf.ErrOffset)
	assert.ErrorIs(t, b.Write(2, 1, nil), xbuf.ErrOffset)
}
