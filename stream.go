package binstream

import "context"

// Stream is the capability a backing store provides to a Reader or Writer.
//
// Offsets are absolute from the start of the medium; there is no relative seek.
// After every successful call the position equals the position before the call
// plus the number of bytes read or written.
type Stream interface {
	// Seek moves to an absolute offset and returns the new position.
	Seek(offset uint64) (uint64, error)

	// Position returns the current offset.
	Position() (uint64, error)

	// Len returns the total length of the data. It must not move the position.
	Len() (uint64, error)

	// ReadFull fills p completely or fails with ErrUnexpectedEndOfData. Backends
	// with a known logical length check it before touching the medium.
	ReadFull(p []byte) error

	// Write writes all of p or returns an error.
	Write(p []byte) (int, error)

	// Flush pushes buffered bytes to the medium. Unbuffered streams return nil.
	Flush() error
}

// AsyncStream is the suspending form of Stream: every operation may block the
// calling goroutine until the medium completes it or ctx is done.
//
// If ctx is done before an operation completes the operation returns ctx.Err().
// The stream position is then unspecified, and a write may have been applied in
// full or not at all; callers should seek to a known offset or abandon the stream.
type AsyncStream interface {
	Seek(ctx context.Context, offset uint64) (uint64, error)
	Position(ctx context.Context) (uint64, error)
	Len(ctx context.Context) (uint64, error)
	ReadFull(ctx context.Context, p []byte) error
	Write(ctx context.Context, p []byte) (int, error)
	Flush(ctx context.Context) error
}
