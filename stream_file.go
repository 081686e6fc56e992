package binstream

import (
	"fmt"
	"io"
	"math"
	"os"
)

// FileStream is a Stream over an open file. Opening and closing the file is the
// caller's business; Close is provided for convenience.
type FileStream struct {
	F *os.File
}

var _ Stream = (*FileStream)(nil)

// NewFileStream wraps f. The stream starts at the file's current offset.
func NewFileStream(f *os.File) *FileStream {
	return &FileStream{F: f}
}

// Seek implements Stream.
func (s *FileStream) Seek(offset uint64) (uint64, error) {
	if offset > math.MaxInt64 {
		return 0, ErrInvalidSeek
	}
	pos, err := s.F.Seek(int64(offset), io.SeekStart)
	return uint64(pos), err
}

// Position implements Stream.
func (s *FileStream) Position() (uint64, error) {
	pos, err := s.F.Seek(0, io.SeekCurrent)
	return uint64(pos), err
}

// Len implements Stream using the file metadata, which leaves the offset alone.
func (s *FileStream) Len() (uint64, error) {
	info, err := s.F.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// ReadFull implements Stream. The remaining length is checked against the file
// size before reading.
func (s *FileStream) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	pos, err := s.Position()
	if err != nil {
		return err
	}
	size, err := s.Len()
	if err != nil {
		return err
	}
	if pos > size || uint64(len(p)) > size-pos {
		return fmt.Errorf("%w: need %d bytes at offset %d, length is %d", ErrUnexpectedEndOfData, len(p), pos, size)
	}
	_, err = io.ReadFull(s.F, p)
	return err
}

// Write implements Stream.
func (s *FileStream) Write(p []byte) (int, error) {
	return s.F.Write(p)
}

// Flush is a no-op: *os.File does not buffer. Use Sync on the file for durability.
func (s *FileStream) Flush() error { return nil }

// Close closes the underlying file.
func (s *FileStream) Close() error { return s.F.Close() }
