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
	"github.com/squidfunk/protobluff-go/internal/xbuf"
)

// BufferOption and CursorOption are not interfaces, for the same reason
// the struct-of-closure shape is used throughout this module: both sit on
// hot construction paths, and a closure field avoids the extra indirection
// an interface method call would need.

// BufferOption configures [NewBuffer] and [NewEmptyBuffer].
type BufferOption struct{ apply func(*xbuf.Buffer) }

func (o BufferOption) toXbuf() xbuf.Option { return xbuf.Option(o) }

// WithAllocator overrides the allocator an owned buffer grows through.
// The default wraps Go's own allocator.
func WithAllocator(a xbuf.Allocator) BufferOption {
	return BufferOption(xbuf.WithAllocator(a))
}

// WithBulkSize overrides the initial journal capacity hint for a newly
// created buffer (spec.md §4.3).
func WithBulkSize(n int) BufferOption {
	return BufferOption(xbuf.WithBulkSize(n))
}

func xbufOptions(opts []BufferOption) []xbuf.Option {
	out := make([]xbuf.Option, len(opts))
	for i, o := range opts {
		out[i] = o.toXbuf()
	}
	return out
}

// CursorOption configures [NewCursor].
type CursorOption struct{ apply func(*part.CursorConfig) }

// WithTagFilter restricts cursor traversal to the given set of field tags,
// skipping all others without re-encoding them. An empty or nil filter
// visits every field, which is the default.
func WithTagFilter(tags ...uint32) CursorOption {
	set := make(map[uint32]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return CursorOption{func(c *part.CursorConfig) { c.TagFilter = set }}
}

func cursorConfig(opts []CursorOption) part.CursorConfig {
	var cfg part.CursorConfig
	for _, o := range opts {
		o.apply(&cfg)
	}
	return cfg
}
