/*
 * Copyright 2023 ICON Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package eip712

// ValueStream supplies value buffers for codec walks in schema pre-order,
// one buffer per primitive value and one per array length marker.
// Next returns false when no buffer is left.
type ValueStream interface {
	Next() ([]byte, bool)
}

// BufferStream is a ValueStream over an in-memory buffer list. The buffers
// are not copied.
type BufferStream struct {
	buffers [][]byte
	offset  int
}

func NewBufferStream(buffers [][]byte) *BufferStream {
	return &BufferStream{buffers: buffers}
}

func (s *BufferStream) Next() ([]byte, bool) {
	if s.offset >= len(s.buffers) {
		return nil, false
	}
	v := s.buffers[s.offset]
	s.offset++
	return v, true
}

// Remaining returns the number of buffers not yet consumed.
func (s *BufferStream) Remaining() int {
	return len(s.buffers) - s.offset
}
