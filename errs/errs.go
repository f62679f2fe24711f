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

// Package errs holds the error taxonomy shared by every layer of the
// mutation engine (spec.md §6, §7). It is a standalone package, rather
// than living on the root API package, so that the low-level internal
// packages (xbuf, part, varint) can return these errors without the root
// package and its internals importing each other.
package errs

import "fmt"

// Code is one of the closed set of error kinds the engine reports. NONE
// never appears on a returned error; it exists so the zero Code is
// meaningful.
type Code uint8

const (
	None Code = iota
	Alloc
	Invalid
	Offset
	Varint
	Underrun
	Overflow
	Descriptor
	Absent
)

var strings = [...]string{
	None:       "no error",
	Alloc:      "allocator returned null, or the operation targeted an invalid buffer",
	Invalid:    "part, field, message, or cursor is unreachable",
	Offset:     "index out of range",
	Varint:     "malformed varint",
	Underrun:   "length-delimited value longer than remaining bytes",
	Overflow:   "fixed staging area overflowed",
	Descriptor: "schema mismatch",
	Absent:     "required value missing and no default available",
}

// String implements [fmt.Stringer].
func (c Code) String() string {
	if int(c) >= len(strings) {
		return "unknown error"
	}
	return strings[c]
}

// Error is the error type every core operation returns. It carries the
// [Code] plus, where relevant, the byte offset the failure was detected at,
// readable through [Error.Offset].
type Error struct {
	Code   Code
	offset int
	hasOff bool
}

// New constructs an Error with no associated offset.
func New(c Code) *Error { return &Error{Code: c} }

// At constructs an Error with an associated byte offset.
func At(c Code, offset int) *Error { return &Error{Code: c, offset: offset, hasOff: true} }

// Offset returns the offset at which the error occurred and whether one
// was recorded.
func (e *Error) Offset() (int, bool) { return e.offset, e.hasOff }

// Error implements [error].
func (e *Error) Error() string {
	if e.hasOff {
		return fmt.Sprintf("protobluff: %v at offset %d", e.Code, e.offset)
	}
	return fmt.Sprintf("protobluff: %v", e.Code)
}

// Is reports whether err is (or wraps) an Error with this code, so callers
// can write errors.Is(err, errs.New(errs.Offset)).
func (e *Error) Is(target error) bool {
	o, ok := target.(*Error)
	return ok && o.Code == e.Code
}

// Predefined singletons for the common zero-offset cases, used throughout
// internal packages that don't track a byte offset.
var (
	ErrAlloc      error = New(Alloc)
	ErrInvalid    error = New(Invalid)
	ErrOffset     error = New(Offset)
	ErrVarint     error = New(Varint)
	ErrUnderrun   error = New(Underrun)
	ErrOverflow   error = New(Overflow)
	ErrDescriptor error = New(Descriptor)
	ErrAbsent     error = New(Absent)
)
