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

//go:build debug

// Package debug includes debugging helpers that only exist in binaries
// built with -tags debug: tracing of buffer/journal/part mutations, and a
// single-owner assertion backing the "single-threaded contract" of spec §5.
package debug

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled is true in debug builds.
const Enabled = true

// Log prints a trace line for a core operation to stderr, tagged with the
// caller's package, line, and goroutine id.
func Log(operation, format string, args ...any) {
	pc, _, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	pkg := fn[:strings.LastIndex(fn, ".")]
	pkg = pkg[strings.LastIndex(pkg, "/")+1:]

	var b strings.Builder
	fmt.Fprintf(&b, "protobluff/%s:%d [g%04d] %s: ", pkg, line, routine.Goid(), operation)
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	_, _ = os.Stderr.WriteString(b.String())
}

// Assert panics if cond is false. Only ever reached from debug builds, so
// the check itself costs nothing in production binaries.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("protobluff: internal assertion failed: "+format, args...))
	}
}

// Owner tracks the goroutine that first touched a buffer and asserts that
// every later access comes from the same one. A zero Owner is unclaimed.
type Owner struct {
	goid int64
	set  bool
}

// Check claims the owner on first use, and asserts the current goroutine
// matches the claim on every later call.
func (o *Owner) Check() {
	g := routine.Goid()
	if !o.set {
		o.goid, o.set = g, true
		return
	}
	Assert(o.goid == g, "buffer accessed from goroutine %d, but owned by %d", g, o.goid)
}
