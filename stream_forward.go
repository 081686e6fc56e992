package binstream

import (
	"fmt"
	"io"
)

// ForwardStream adapts a non-seekable io.Reader and/or io.Writer, such as a
// socket or pipe, to Stream. It tracks the offset itself and simulates forward
// seeks: reading streams discard bytes, writing streams emit zeros. Backward
// seeks fail with ErrUnsupportedNegativeSeek, so the backpatch idiom reports an
// error instead of producing a corrupt length field, and Len fails with
// ErrLengthUnknown.
type ForwardStream struct {
	r      io.Reader
	w      io.Writer
	offset uint64
}

var _ Stream = (*ForwardStream)(nil)

// NewForwardReader creates a read-only ForwardStream. If r already provides
// random access use NewSeekerStream instead.
func NewForwardReader(r io.Reader) (*ForwardStream, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	return &ForwardStream{r: r}, nil
}

// NewForwardWriter creates a write-only ForwardStream.
func NewForwardWriter(w io.Writer) (*ForwardStream, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	return &ForwardStream{w: w}, nil
}

// Seek implements Stream with forward-only semantics.
func (s *ForwardStream) Seek(offset uint64) (uint64, error) {
	if offset < s.offset {
		return s.offset, fmt.Errorf("%w: cannot seek from %d back to %d", ErrUnsupportedNegativeSeek, s.offset, offset)
	}
	skip := offset - s.offset
	if skip == 0 {
		return s.offset, nil
	}
	if s.r != nil {
		if skip > uint64(1<<63-1) {
			return s.offset, ErrInvalidSeek
		}
		n, err := Discard(s.r, int64(skip))
		s.offset += uint64(n)
		return s.offset, err
	}
	if err := writeZeros(s, skip); err != nil {
		return s.offset, err
	}
	return s.offset, nil
}

func (s *ForwardStream) Position() (uint64, error) { return s.offset, nil }
func (s *ForwardStream) Len() (uint64, error)      { return 0, ErrLengthUnknown }

// ReadFull implements Stream.
func (s *ForwardStream) ReadFull(p []byte) error {
	if s.r == nil {
		return &IOError{Op: "read", Err: errNotReadable}
	}
	n, err := io.ReadFull(s.r, p)
	s.offset += uint64(n)
	return err
}

// Write implements Stream.
func (s *ForwardStream) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrReadOnly
	}
	n, err := s.w.Write(p)
	if n < 0 || n > len(p) {
		return 0, ErrInvalidWrite
	}
	s.offset += uint64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Flush implements Stream, forwarding to the writer if it can flush.
func (s *ForwardStream) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the underlying reader or writer if it implements io.Closer.
func (s *ForwardStream) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
