package binstream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNilIO indicates that a reader, writer or stream constructor was given a nil
	// stream, io.Reader or io.Writer.
	ErrNilIO = errors.New("binstream: constructor called with a nil stream")

	// ErrIO marks a failure of the underlying medium (disk, network, pipe).
	// Errors of this class are returned as *IOError and never retried.
	ErrIO = errors.New("binstream: i/o failure")

	// ErrUnexpectedEndOfData indicates that fewer bytes remained in the stream than a
	// fixed-width or length-prefixed read required. Short data is never padded.
	ErrUnexpectedEndOfData = errors.New("binstream: unexpected end of data")

	// ErrInvalidUTF8 indicates that string bytes do not form valid UTF-8.
	ErrInvalidUTF8 = errors.New("binstream: invalid utf-8")

	// ErrInvalidCharacter indicates that a 32-bit value is not a Unicode scalar value.
	ErrInvalidCharacter = errors.New("binstream: invalid character")

	// ErrBufferTooLarge indicates that a caller- or wire-controlled length exceeds the
	// configured ceiling. It is reported before anything is allocated, read or written.
	ErrBufferTooLarge = errors.New("binstream: buffer too large")

	// ErrReadOnly indicates a write was attempted on a stream without write capability.
	ErrReadOnly = errors.New("binstream: stream is read-only")

	errNotReadable = errors.New("stream has no read capability")

	// ErrInvalidSeek indicates a seek was attempted to a position the medium cannot address.
	ErrInvalidSeek = errors.New("binstream: seek to an invalid position")

	// ErrUnsupportedNegativeSeek indicates a backward seek was attempted on a forward-only stream.
	ErrUnsupportedNegativeSeek = errors.New("binstream: unsupported negative offset for forward-only stream")

	// ErrLengthUnknown indicates the stream cannot report its total length.
	ErrLengthUnknown = errors.New("binstream: stream length is unknown")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid count from Write.
	ErrInvalidWrite = errors.New("binstream: writer returned invalid count from Write")

	// ErrUnsupportedType indicates EncodeValue/DecodeValue received a value that is
	// neither a primitive nor an Encoder/Decoder.
	ErrUnsupportedType = errors.New("binstream: unsupported type")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the value was decoded.
	ErrTrailingData = errors.New("binstream: trailing data found after decoding")

	// ErrInvalidAlignment indicates an alignment that is negative or not a power of two.
	ErrInvalidAlignment = errors.New("binstream: alignment must be a power of two")

	// ErrSizeMismatch indicates a sized record body consumed more bytes than its length field declared.
	ErrSizeMismatch = errors.New("binstream: record body does not match its length field")
)

// IOError wraps a failure reported by the underlying medium.
type IOError struct {
	Op  string // seek, position, length, read, write or flush
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("binstream: %s: %v", e.Op, e.Err)
}

// Unwrap exposes both the ErrIO class and the medium's own error to errors.Is/As.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// BufferTooLargeError reports a length rejected by the size guard.
type BufferTooLargeError struct {
	Requested uint64
	Limit     uint64
}

func (e *BufferTooLargeError) Error() string {
	return fmt.Sprintf("%v: requested %d bytes, limit is %d", ErrBufferTooLarge, e.Requested, e.Limit)
}

func (e *BufferTooLargeError) Unwrap() error { return ErrBufferTooLarge }

// InvalidUTF8Error reports a string payload that failed UTF-8 validation.
type InvalidUTF8Error struct {
	Len    int // length of the offending payload
	Offset int // offset of the first invalid byte within the payload
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("%v: %d byte payload, first invalid byte at %d", ErrInvalidUTF8, e.Len, e.Offset)
}

func (e *InvalidUTF8Error) Unwrap() error { return ErrInvalidUTF8 }

// InvalidCharacterError reports a value that does not denote a Unicode scalar value.
type InvalidCharacterError struct {
	Value uint32
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%v: 0x%08x", ErrInvalidCharacter, e.Value)
}

func (e *InvalidCharacterError) Unwrap() error { return ErrInvalidCharacter }

// classify normalizes an error returned by a stream operation. Errors already in the
// taxonomy pass through, end-of-file conditions become ErrUnexpectedEndOfData and
// everything else is reported as an *IOError.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if errors.Is(err, ErrUnexpectedEndOfData) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrUnexpectedEndOfData, op, err)
	case errors.Is(err, ErrUnexpectedEndOfData),
		errors.Is(err, ErrBufferTooLarge),
		errors.Is(err, ErrReadOnly),
		errors.Is(err, ErrInvalidSeek),
		errors.Is(err, ErrUnsupportedNegativeSeek),
		errors.Is(err, ErrLengthUnknown),
		errors.Is(err, ErrIO),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return &IOError{Op: op, Err: err}
}
