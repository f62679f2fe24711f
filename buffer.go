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
	"github.com/google/uuid"

	"github.com/squidfunk/protobluff-go/internal/xbuf"
)

// Allocator is the pluggable memory source an owned [Buffer] grows
// through. Shrinking never calls it.
type Allocator = xbuf.Allocator

// Buffer is a journaled byte region that every [Message], [Field], and
// [Cursor] in this package ultimately reads and writes through.
type Buffer struct{ impl *xbuf.Buffer }

// NewBuffer copies data into a freshly allocated, resizable buffer.
func NewBuffer(data []byte, opts ...BufferOption) *Buffer {
	return &Buffer{impl: xbuf.New(data, xbufOptions(opts)...)}
}

// NewEmptyBuffer allocates a zero-length resizable buffer.
func NewEmptyBuffer(opts ...BufferOption) *Buffer {
	return &Buffer{impl: xbuf.NewEmpty(xbufOptions(opts)...)}
}

// NewZeroCopyBuffer wraps data without copying it. The returned buffer
// can never grow or shrink; any mutation that would change its length
// fails with [ErrorAlloc].
func NewZeroCopyBuffer(data []byte) *Buffer {
	return &Buffer{impl: xbuf.NewZeroCopy(data)}
}

// NewInvalidBuffer returns a buffer that is never valid, carrying reason
// as its error. Useful for constructors elsewhere in this package that
// need to return a *Buffer rather than an error on failure.
func NewInvalidBuffer(reason string) *Buffer {
	return &Buffer{impl: xbuf.NewInvalid(reason)}
}

// ID returns a stable identity for this buffer, useful for correlating
// trace logs across parts derived from it.
func (b *Buffer) ID() uuid.UUID { return b.impl.ID() }

// Valid reports whether this buffer can be operated on.
func (b *Buffer) Valid() bool { return b.impl.Valid() }

// ZeroCopy reports whether this buffer is a borrowed, non-resizable
// region.
func (b *Buffer) ZeroCopy() bool { return b.impl.ZeroCopy() }

// Size returns the current length of the buffer in bytes.
func (b *Buffer) Size() int { return b.impl.Size() }

// Bytes returns the live backing slice. It is invalidated by the next
// mutating call on an owned buffer.
func (b *Buffer) Bytes() []byte { return b.impl.Bytes() }

// Message returns the root message over the whole buffer, described by
// desc.
func (b *Buffer) Message(desc *MessageDescriptor) *Message {
	return newRootMessage(b.impl, desc)
}
