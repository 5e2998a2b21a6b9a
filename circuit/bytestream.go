package circuit

import (
	"fmt"
	"iter"
	"strings"
)

// ByteStream is an append-only instruction buffer. It assigns no meaning to
// the bytes it holds.
type ByteStream struct {
	bytes []byte
}

func NewByteStream() *ByteStream {
	return &ByteStream{}
}

func (s *ByteStream) Emit(b byte) {
	s.bytes = append(s.bytes, b)
}

func (s *ByteStream) Len() int {
	return len(s.bytes)
}

// Bytes returns a copy of the buffer.
func (s *ByteStream) Bytes() []byte {
	out := make([]byte, len(s.bytes))
	copy(out, s.bytes)
	return out
}

// All yields the buffered bytes in emission order.
func (s *ByteStream) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, b := range s.bytes {
			if !yield(b) {
				return
			}
		}
	}
}

func (s *ByteStream) String() string {
	parts := make([]string, len(s.bytes))
	for i, b := range s.bytes {
		parts[i] = fmt.Sprint(b)
	}
	return "ByteStream [" + strings.Join(parts, ", ") + "]"
}
