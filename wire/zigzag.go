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

package wire

import "google.golang.org/protobuf/encoding/protowire"

// ZigZagEncode32 maps a signed 32-bit value to its zig-zag encoding.
func ZigZagEncode32(n int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(n)))
}

// ZigZagDecode32 reverses [ZigZagEncode32].
func ZigZagDecode32(u uint32) int32 {
	return int32(protowire.DecodeZigZag(uint64(u)))
}

// ZigZagEncode64 maps a signed 64-bit value to its zig-zag encoding.
func ZigZagEncode64(n int64) uint64 {
	return protowire.EncodeZigZag(n)
}

// ZigZagDecode64 reverses [ZigZagEncode64].
func ZigZagDecode64(u uint64) int64 {
	return protowire.DecodeZigZag(u)
}
