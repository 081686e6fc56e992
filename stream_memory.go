package binstream

import (
	"fmt"
	"math"
)

// MemoryStream is a growable in-memory Stream. Writes past the end extend the
// buffer; writes inside it overwrite in place without changing its length.
type MemoryStream struct {
	B []byte // logical contents
	N int    // current position
}

var _ Stream = (*MemoryStream)(nil)

// NewMemoryStream creates a MemoryStream that takes ownership of b.
// The position starts at 0, so b can be read back or overwritten.
func NewMemoryStream(b []byte) *MemoryStream {
	return &MemoryStream{B: b}
}

// Seek implements Stream. Seeking past the end is allowed; a later write
// zero-fills the gap.
func (m *MemoryStream) Seek(offset uint64) (uint64, error) {
	if offset > math.MaxInt {
		return uint64(m.N), ErrInvalidSeek
	}
	m.N = int(offset)
	return offset, nil
}

func (m *MemoryStream) Position() (uint64, error) { return uint64(m.N), nil }
func (m *MemoryStream) Len() (uint64, error)      { return uint64(len(m.B)), nil }
func (m *MemoryStream) Flush() error              { return nil }

// ReadFull implements Stream. The check is against the logical length, never the
// capacity, so stale bytes beyond the end are unreachable. An empty read always
// succeeds, even past the end.
func (m *MemoryStream) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if m.N > len(m.B) || len(p) > len(m.B)-m.N {
		return fmt.Errorf("%w: need %d bytes at offset %d, length is %d", ErrUnexpectedEndOfData, len(p), m.N, len(m.B))
	}
	m.N += copy(p, m.B[m.N:])
	return nil
}

// Write implements Stream.
func (m *MemoryStream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > math.MaxInt-m.N {
		return 0, ErrInvalidWrite
	}
	end := m.N + len(p)
	if end > len(m.B) {
		m.grow(end)
	}
	n := copy(m.B[m.N:end], p)
	m.N = end
	return n, nil
}

// grow extends the logical length to end, zeroing any gap left by a seek past the end.
func (m *MemoryStream) grow(end int) {
	old := len(m.B)
	if end > cap(m.B) {
		b := make([]byte, old, max(end, 2*cap(m.B)))
		copy(b, m.B)
		m.B = b
	}
	m.B = m.B[:end]
	if m.N > old {
		clear(m.B[old:m.N])
	}
}

// Bytes returns the contents written so far.
func (m *MemoryStream) Bytes() []byte { return m.B }

// Available returns the number of bytes between the position and the end.
func (m *MemoryStream) Available() int {
	if m.N >= len(m.B) {
		return 0
	}
	return len(m.B) - m.N
}

// Reset truncates the stream to zero length, keeping the allocation.
func (m *MemoryStream) Reset() {
	m.B = m.B[:0]
	m.N = 0
}
