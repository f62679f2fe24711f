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

// Package protobluff implements in-place mutation of protobuf-encoded byte
// sequences.
//
// Unlike generated-code libraries, which deserialize a whole message into
// language-native structures, this package exposes a cursor/field
// abstraction that reads, writes, appends, erases, and length-re-encodes
// individual fields directly on the wire-format byte buffer, leaving any
// unrelated bytes untouched. It is meant for systems that exchange a
// schema-described subset of fields with other protobuf peers while
// storing or forwarding the full opaque payload.
//
// # Support status
//
// This package implements the core described by its design document: the
// wire codec, the journaled buffer, the part/offset alignment layer, the
// cursor, and the field/message/part operations built on top of them. It
// does not implement a .proto schema compiler, reflection beyond
// descriptor lookup, or concurrent mutation of a single buffer from
// multiple goroutines — descriptors are consumed as static tables built by
// the caller, and every [Buffer] has a single owning goroutine.
package protobluff
