package binstream

import (
	"io"
	"math"
)

// SeekerStream adapts an io.ReadSeeker, io.WriteSeeker or io.ReadWriteSeeker to
// Stream. Capabilities the value lacks fail with ErrReadOnly or ErrIO.
type SeekerStream struct {
	S io.Seeker
}

var _ Stream = (*SeekerStream)(nil)

// NewSeekerStream wraps s, which should also implement io.Reader and/or io.Writer.
func NewSeekerStream(s io.Seeker) *SeekerStream {
	return &SeekerStream{S: s}
}

// Seek implements Stream.
func (s *SeekerStream) Seek(offset uint64) (uint64, error) {
	if offset > math.MaxInt64 {
		return 0, ErrInvalidSeek
	}
	pos, err := s.S.Seek(int64(offset), io.SeekStart)
	return uint64(pos), err
}

// Position implements Stream.
func (s *SeekerStream) Position() (uint64, error) {
	pos, err := s.S.Seek(0, io.SeekCurrent)
	return uint64(pos), err
}

// Len implements Stream by seeking to the end and back to the previous position,
// so repeated calls leave the position unchanged.
func (s *SeekerStream) Len() (uint64, error) {
	pos, err := s.S.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.S.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.S.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return uint64(end), nil
}

// ReadFull implements Stream. The medium has no known logical length, so a short
// read is detected from io.ReadFull and reported as ErrUnexpectedEndOfData.
func (s *SeekerStream) ReadFull(p []byte) error {
	r, ok := s.S.(io.Reader)
	if !ok {
		return &IOError{Op: "read", Err: errNotReadable}
	}
	_, err := io.ReadFull(r, p)
	return err
}

// Write implements Stream.
func (s *SeekerStream) Write(p []byte) (int, error) {
	w, ok := s.S.(io.Writer)
	if !ok {
		return 0, ErrReadOnly
	}
	n, err := w.Write(p)
	if n < 0 || n > len(p) {
		return 0, ErrInvalidWrite
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Flush implements Stream, forwarding to the wrapped value if it can flush.
func (s *SeekerStream) Flush() error {
	if f, ok := s.S.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the wrapped value if it implements io.Closer.
func (s *SeekerStream) Close() error {
	if c, ok := s.S.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
