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

import "github.com/squidfunk/protobluff-go/errs"

// ErrorCode is one of the closed set of error kinds this package reports
// (spec.md §6, §7). It is an alias of [errs.Code] so that callers never
// have to import the errs package directly to compare against it.
type ErrorCode = errs.Code

// The error taxonomy. See errs.Code's doc comment on each value for the
// cause it corresponds to.
const (
	ErrorNone       = errs.None
	ErrorAlloc      = errs.Alloc
	ErrorInvalid    = errs.Invalid
	ErrorOffset     = errs.Offset
	ErrorVarint     = errs.Varint
	ErrorUnderrun   = errs.Underrun
	ErrorOverflow   = errs.Overflow
	ErrorDescriptor = errs.Descriptor
	ErrorAbsent     = errs.Absent
)

// Error is the error type every operation in this package returns.
type Error = errs.Error
