package binstream

import (
	"errors"
	"fmt"
	"math"
)

// Reader decodes values from a Stream.
//
// A Reader holds no buffer of its own and is not safe for concurrent use; it
// exclusively uses its Stream for as long as it is in use. Every method returns
// its error directly: after a failed read the stream position is unspecified,
// but a rejected length (ErrBufferTooLarge) leaves it right after the prefix.
type Reader struct {
	s    Stream
	opts Options
}

// NewReader creates a Reader over s configured by opts.
func NewReader(s Stream, opts Options) (*Reader, error) {
	if s == nil {
		return nil, ErrNilIO
	}
	return &Reader{s: s, opts: opts}, nil
}

// Stream returns the underlying stream.
func (r *Reader) Stream() Stream { return r.s }

// Options returns the configuration the Reader was created with.
func (r *Reader) Options() Options { return r.opts }

// Seek moves to an absolute offset.
func (r *Reader) Seek(offset uint64) (uint64, error) {
	pos, err := r.s.Seek(offset)
	return pos, classify("seek", err)
}

// Position returns the current offset.
func (r *Reader) Position() (uint64, error) {
	pos, err := r.s.Position()
	return pos, classify("position", err)
}

// Len returns the total length of the stream without moving the position.
func (r *Reader) Len() (uint64, error) {
	n, err := r.s.Len()
	return n, classify("length", err)
}

// Skip advances the position by n bytes. Skipping past the end of a stream
// that knows its length fails with ErrUnexpectedEndOfData and leaves the
// position unchanged.
func (r *Reader) Skip(n uint64) error {
	if n == 0 {
		return nil
	}
	pos, err := r.Position()
	if err != nil {
		return err
	}
	end, err := skipEnd(pos, n, r.Len)
	if err != nil {
		return err
	}
	_, err = r.Seek(end)
	return err
}

// skipEnd returns pos+n after checking that it neither overflows nor lies past
// the end reported by length. Streams without a known length only get the
// overflow check; their seek reports a short stream itself.
func skipEnd(pos, n uint64, length func() (uint64, error)) (uint64, error) {
	if n > math.MaxUint64-pos {
		return 0, fmt.Errorf("%w: %d bytes at offset %d overflow the address space: %w", ErrUnexpectedEndOfData, n, pos, ErrInvalidSeek)
	}
	end := pos + n
	size, err := length()
	switch {
	case errors.Is(err, ErrLengthUnknown):
		return end, nil
	case err != nil:
		return 0, err
	case end > size:
		return 0, fmt.Errorf("%w: %d bytes at offset %d, length is %d", ErrUnexpectedEndOfData, n, pos, size)
	}
	return end, nil
}

// Align skips forward until the position is a multiple of n, which must be a
// power of two; any other n fails with ErrInvalidAlignment.
func (r *Reader) Align(n int) error {
	if err := checkAlignment(n); err != nil {
		return err
	}
	if n <= 1 {
		return nil
	}
	pos, err := r.Position()
	if err != nil {
		return err
	}
	return r.Skip(Roundup(pos, uint64(n)) - pos)
}

func (r *Reader) readFull(p []byte) error {
	return classify("read", r.s.ReadFull(p))
}

// ReadNumeric reads one fixed-width value of type T.
func ReadNumeric[T Numeric](r *Reader) (T, error) {
	var buf [8]byte
	b := buf[:SizeOf[T]()]
	if err := r.readFull(b); err != nil {
		var zero T
		return zero, err
	}
	return NumericFrom[T](r.opts.Endian, b), nil
}

// --- Primitive Read Operations ---

func (r *Reader) ReadUint8() (uint8, error)     { return ReadNumeric[uint8](r) }
func (r *Reader) ReadUint16() (uint16, error)   { return ReadNumeric[uint16](r) }
func (r *Reader) ReadUint32() (uint32, error)   { return ReadNumeric[uint32](r) }
func (r *Reader) ReadUint64() (uint64, error)   { return ReadNumeric[uint64](r) }
func (r *Reader) ReadInt8() (int8, error)       { return ReadNumeric[int8](r) }
func (r *Reader) ReadInt16() (int16, error)     { return ReadNumeric[int16](r) }
func (r *Reader) ReadInt32() (int32, error)     { return ReadNumeric[int32](r) }
func (r *Reader) ReadInt64() (int64, error)     { return ReadNumeric[int64](r) }
func (r *Reader) ReadFloat32() (float32, error) { return ReadNumeric[float32](r) }
func (r *Reader) ReadFloat64() (float64, error) { return ReadNumeric[float64](r) }

// ReadInt reads a platform word sized signed integer (4 or 8 bytes depending on
// GOARCH). Streams written on one word size cannot be read on the other; prefer
// ReadInt64 for data that leaves the machine.
func (r *Reader) ReadInt() (int, error) { return ReadNumeric[int](r) }

// ReadUint is the unsigned form of ReadInt and carries the same portability caveat.
func (r *Reader) ReadUint() (uint, error) { return ReadNumeric[uint](r) }

// ReadUint128 reads an unsigned 128-bit integer.
func (r *Reader) ReadUint128() (Uint128, error) {
	var buf [16]byte
	if err := r.readFull(buf[:]); err != nil {
		return Uint128{}, err
	}
	return uint128From(r.opts.Endian, buf[:]), nil
}

// ReadInt128 reads a signed 128-bit integer.
func (r *Reader) ReadInt128() (Int128, error) {
	u, err := r.ReadUint128()
	return Int128FromBits(u), err
}

// ReadBool reads one byte. Any nonzero byte is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadUint8()
	return decodeBool(b), err
}

// ReadChar reads a Unicode scalar value stored as a 32-bit integer. Surrogates
// and values above U+10FFFF fail with ErrInvalidCharacter.
func (r *Reader) ReadChar() (rune, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return decodeChar(v)
}

// ReadString reads a length-prefixed UTF-8 string. The prefix is checked
// against MaxBufferSize before anything is allocated.
func (r *Reader) ReadString() (string, error) {
	b, err := r.readPrefixed()
	if err != nil {
		return "", err
	}
	if err := checkUTF8(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBytes reads exactly n raw bytes. n is checked against MaxBufferSize
// before anything is allocated.
func (r *Reader) ReadBytes(n uint64) ([]byte, error) {
	if err := guard(n, r.opts.MaxBufferSize); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadBytesTo fills dest completely.
func (r *Reader) ReadBytesTo(dest []byte) error {
	if len(dest) == 0 {
		return nil
	}
	if err := guard(uint64(len(dest)), r.opts.MaxBufferSize); err != nil {
		return err
	}
	return r.readFull(dest)
}

// ReadLength reads a length prefix in the width of this build.
func (r *Reader) ReadLength() (uint64, error) {
	n, err := ReadNumeric[lengthPrefix](r)
	return uint64(n), err
}

func (r *Reader) readPrefixed() ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}
