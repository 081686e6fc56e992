package binstream

import (
	"fmt"
	"math"
)

// SliceStream is a read-only Stream over a borrowed byte slice.
// The slice must not be modified while the stream is in use.
type SliceStream struct {
	B []byte // source slice
	N int    // current read position
}

var _ Stream = (*SliceStream)(nil)

// NewSliceStream creates a SliceStream reading b from offset 0.
func NewSliceStream(b []byte) *SliceStream {
	return &SliceStream{B: b}
}

// Seek implements Stream.
func (s *SliceStream) Seek(offset uint64) (uint64, error) {
	if offset > math.MaxInt {
		return uint64(s.N), ErrInvalidSeek
	}
	s.N = int(offset)
	return offset, nil
}

func (s *SliceStream) Position() (uint64, error) { return uint64(s.N), nil }
func (s *SliceStream) Len() (uint64, error)      { return uint64(len(s.B)), nil }
func (s *SliceStream) Flush() error              { return nil }

// ReadFull implements Stream.
func (s *SliceStream) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if s.N > len(s.B) || len(p) > len(s.B)-s.N {
		return fmt.Errorf("%w: need %d bytes at offset %d, length is %d", ErrUnexpectedEndOfData, len(p), s.N, len(s.B))
	}
	s.N += copy(p, s.B[s.N:])
	return nil
}

// Write always fails: a SliceStream has no write capability.
func (s *SliceStream) Write(p []byte) (int, error) {
	return 0, ErrReadOnly
}

// Available returns the number of bytes left to read.
func (s *SliceStream) Available() int {
	if s.N >= len(s.B) {
		return 0
	}
	return len(s.B) - s.N
}

// Reset rewinds to offset 0.
func (s *SliceStream) Reset() { s.N = 0 }
