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

// Package xbuf implements the resizable, journaled byte buffer that every
// Part/Field/Message/Cursor in the mutation engine is ultimately anchored
// to (spec.md §4.3, §4.4).
package xbuf

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/squidfunk/protobluff-go/errs"
	"github.com/squidfunk/protobluff-go/internal/debug"
)

// Re-exported for brevity within this package's methods.
var (
	ErrAlloc   = errs.ErrAlloc
	ErrInvalid = errs.ErrInvalid
	ErrOffset  = errs.ErrOffset
)

// Allocator is the pluggable memory source a [Buffer] grows through
// (spec.md §6's "Allocator contract"); shrinking reslices in place and
// never calls it. The default allocator wraps
// Go's own allocator/GC; callers needing to test allocator-failure paths
// (the ALLOC error) can supply one that returns nil past some budget.
type Allocator interface {
	// Alloc returns a new zeroed slice of the given length, or nil if the
	// allocation cannot be satisfied.
	Alloc(size int) []byte
}

// goAllocator is the default [Allocator], backed by Go's own allocator.
type goAllocator struct{}

func (goAllocator) Alloc(size int) []byte { return make([]byte, size) }

// DefaultAllocator is the process-wide default allocator used by [New]
// and [NewEmpty] unless [WithAllocator] overrides it. [NewZeroCopy]
// buffers never allocate and take no allocator.
var DefaultAllocator Allocator = goAllocator{}

// Kind distinguishes an owned, resizable buffer from a borrowed, fixed-size
// one.
type Kind uint8

const (
	Owned Kind = iota
	ZeroCopy
	Invalid
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Owned:
		return "owned"
	case ZeroCopy:
		return "zero-copy"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// bulkSize is the default initial journal capacity hint (spec.md §4.3:
// "initial journal of the configured bulk size, typically 8").
const bulkSize = 8

// Buffer is an owned, journaled byte region, or a borrowed, non-resizable
// (zero-copy) one, or an invalid placeholder produced by [NewInvalid].
//
// A Buffer is single-owner: in debug builds ([internal/debug]), the
// mutating methods (Write, Append, and Clear through Write) assert they
// are only ever called from the goroutine that first mutated it, per
// spec.md §5's single-threaded contract. Read-only accessors do not check.
type Buffer struct {
	kind  Kind
	id    uuid.UUID
	alloc Allocator
	data  []byte
	jrnl  *Journal // nil for ZeroCopy and Invalid.
	err   error    // non-nil only for Invalid.
	owner debug.Owner
}

// Option configures a Buffer constructor.
type Option struct{ apply func(*Buffer) }

// WithAllocator overrides the allocator an owned buffer grows through.
func WithAllocator(a Allocator) Option {
	return Option{func(b *Buffer) { b.alloc = a }}
}

// WithBulkSize overrides the initial journal capacity hint. It has no
// effect beyond a small up-front allocation; the journal always grows to
// fit however many edits are actually logged.
func WithBulkSize(n int) Option {
	return Option{func(b *Buffer) { b.jrnl = &Journal{entries: make([]Entry, 0, n)} }}
}

func newOwned(opts []Option) *Buffer {
	b := &Buffer{kind: Owned, id: uuid.New(), alloc: DefaultAllocator, jrnl: &Journal{entries: make([]Entry, 0, bulkSize)}}
	for _, o := range opts {
		o.apply(b)
	}
	return b
}

// New copies data into a freshly allocated owned buffer.
func New(data []byte, opts ...Option) *Buffer {
	b := newOwned(opts)
	b.data = append(make([]byte, 0, len(data)), data...)
	debug.Log("buffer.New", "%s: %d bytes", b.id, len(data))
	return b
}

// NewEmpty allocates a zero-length owned buffer.
func NewEmpty(opts ...Option) *Buffer {
	b := newOwned(opts)
	debug.Log("buffer.NewEmpty", "%s", b.id)
	return b
}

// NewZeroCopy wraps data without copying it. The returned buffer can never
// grow or shrink; any operation that would change its length fails with
// [ErrAlloc].
func NewZeroCopy(data []byte) *Buffer {
	b := &Buffer{kind: ZeroCopy, id: uuid.New(), data: data}
	debug.Log("buffer.NewZeroCopy", "%s: %d bytes", b.id, len(data))
	return b
}

// NewInvalid returns a buffer whose internal error is ALLOC; every
// operation on it fails with INVALID (spec.md §4.3).
func NewInvalid(reason string) *Buffer {
	return &Buffer{kind: Invalid, id: uuid.New(), err: fmt.Errorf("protobluff: invalid buffer: %s: %w", reason, ErrAlloc)}
}

// ID returns a debug-correlation identity for this buffer, stable for its
// lifetime, surfaced in trace logs and [Buffer.String].
func (b *Buffer) ID() uuid.UUID { return b.id }

// String implements [fmt.Stringer].
func (b *Buffer) String() string {
	return fmt.Sprintf("buffer{%s kind=%v size=%d}", b.id, b.kind, len(b.data))
}

// Valid reports whether this buffer can be operated on.
func (b *Buffer) Valid() bool { return b.kind != Invalid }

// Err returns the reason this buffer is invalid, or nil for a valid one.
func (b *Buffer) Err() error { return b.err }

// ZeroCopy reports whether this buffer is a borrowed, non-resizable
// region.
func (b *Buffer) ZeroCopy() bool { return b.kind == ZeroCopy }

// Size returns the current length of the buffer in bytes.
func (b *Buffer) Size() int { return len(b.data) }

// Bytes returns the live backing slice. For an owned buffer, this slice is
// invalidated by the next mutating call; for a zero-copy buffer, it is the
// caller's own slice, never reallocated.
func (b *Buffer) Bytes() []byte { return b.data }

// Journal returns the buffer's edit log, or nil for a zero-copy or invalid
// buffer.
func (b *Buffer) Journal() *Journal { return b.jrnl }

// Write replaces buf[start:end] with src, growing or shrinking the buffer
// by len(src) - (end-start) bytes as needed, and returns an error leaving
// the buffer byte-identical to its pre-call state on any failure.
func (b *Buffer) Write(start, end int, src []byte) error {
	b.owner.Check()
	if b.kind == Invalid {
		return ErrInvalid
	}
	if start < 0 || start > end || end > len(b.data) {
		return ErrOffset
	}
	delta := len(src) - (end - start)
	debug.Log("buffer.Write", "%s: [%d,%d) <- %d bytes (delta %+d)", b.id, start, end, len(src), delta)

	switch {
	case delta == 0:
		copy(b.data[start:end], src)
		return nil
	case delta > 0:
		if b.kind == ZeroCopy {
			return ErrAlloc
		}
		if err := b.grow(start, end, src, delta); err != nil {
			return err
		}
	default:
		if b.kind == ZeroCopy {
			return ErrAlloc
		}
		b.shrink(start, end, src, delta)
	}

	b.jrnl.log(start, end, delta)
	return nil
}

// grow implements the len(src) > end-start branch of Write. It always
// copies into a fresh backing array sized to the new length; a failed
// allocation leaves b.data untouched, satisfying "growth failures revert
// before returning" (spec.md §7).
func (b *Buffer) grow(start, end int, src []byte, delta int) error {
	newSize := len(b.data) + delta
	nb := b.alloc.Alloc(newSize)
	if nb == nil {
		return ErrAlloc
	}
	copy(nb, b.data[:start])
	copy(nb[start:], src)
	copy(nb[start+len(src):], b.data[end:])
	b.data = nb
	return nil
}

// shrink implements the len(src) < end-start branch of Write. It compacts
// in place (a pure reslice, which can never fail), so shrink failures are
// always tolerated per spec.md §4.3/§7 even though no real allocator call
// is attempted.
func (b *Buffer) shrink(start, end int, src []byte, delta int) {
	tail := b.data[end:]
	copy(b.data[start+len(src):], tail)
	copy(b.data[start:start+len(src)], src)
	b.data = b.data[:len(b.data)+delta]
}

// Append writes src at the end of the buffer without journaling: nothing
// downstream of the old end needs its offsets corrected.
func (b *Buffer) Append(src []byte) error {
	b.owner.Check()
	if b.kind == Invalid {
		return ErrInvalid
	}
	if len(src) == 0 {
		return nil
	}
	if b.kind == ZeroCopy {
		return ErrAlloc
	}
	newSize := len(b.data) + len(src)
	nb := b.alloc.Alloc(newSize)
	if nb == nil {
		return ErrAlloc
	}
	copy(nb, b.data)
	copy(nb[len(b.data):], src)
	b.data = nb
	debug.Log("buffer.Append", "%s: +%d bytes -> %d", b.id, len(src), newSize)
	return nil
}

// Clear deletes buf[start:end], journaling a deletion entry covering the
// whole removed region. Clearing the whole buffer releases its allocation.
func (b *Buffer) Clear(start, end int) error {
	if err := b.Write(start, end, nil); err != nil {
		return err
	}
	if start == 0 && len(b.data) == 0 {
		b.data = nil
	}
	return nil
}
