package binstream

import "io"

// Writer encodes values to a Stream.
//
// A Writer holds no buffer of its own (wrap the stream in a BufferedStream for
// that) and is not safe for concurrent use. Seek, Position and Len make it
// possible to write a placeholder, encode a payload and come back to patch the
// placeholder; see WriteSized.
type Writer struct {
	s    Stream
	opts Options
}

// NewWriter creates a Writer over s configured by opts.
func NewWriter(s Stream, opts Options) (*Writer, error) {
	if s == nil {
		return nil, ErrNilIO
	}
	return &Writer{s: s, opts: opts}, nil
}

// Stream returns the underlying stream.
func (w *Writer) Stream() Stream { return w.s }

// Options returns the configuration the Writer was created with.
func (w *Writer) Options() Options { return w.opts }

// Seek moves to an absolute offset.
func (w *Writer) Seek(offset uint64) (uint64, error) {
	pos, err := w.s.Seek(offset)
	return pos, classify("seek", err)
}

// Position returns the current offset.
func (w *Writer) Position() (uint64, error) {
	pos, err := w.s.Position()
	return pos, classify("position", err)
}

// Len returns the total length of the stream without moving the position.
func (w *Writer) Len() (uint64, error) {
	n, err := w.s.Len()
	return n, classify("length", err)
}

// Flush writes any data buffered by the stream to the medium.
func (w *Writer) Flush() error {
	return classify("flush", w.s.Flush())
}

func (w *Writer) write(p []byte) error {
	n, err := w.s.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return classify("write", err)
}

// WriteNumeric writes one fixed-width value of type T.
func WriteNumeric[T Numeric](w *Writer, v T) error {
	var buf [8]byte
	b := buf[:SizeOf[T]()]
	PutNumeric(w.opts.Endian, b, v)
	return w.write(b)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteUint8(v uint8) error     { return WriteNumeric(w, v) }
func (w *Writer) WriteUint16(v uint16) error   { return WriteNumeric(w, v) }
func (w *Writer) WriteUint32(v uint32) error   { return WriteNumeric(w, v) }
func (w *Writer) WriteUint64(v uint64) error   { return WriteNumeric(w, v) }
func (w *Writer) WriteInt8(v int8) error       { return WriteNumeric(w, v) }
func (w *Writer) WriteInt16(v int16) error     { return WriteNumeric(w, v) }
func (w *Writer) WriteInt32(v int32) error     { return WriteNumeric(w, v) }
func (w *Writer) WriteInt64(v int64) error     { return WriteNumeric(w, v) }
func (w *Writer) WriteFloat32(v float32) error { return WriteNumeric(w, v) }
func (w *Writer) WriteFloat64(v float64) error { return WriteNumeric(w, v) }

// WriteInt writes a platform word sized signed integer. See Reader.ReadInt.
func (w *Writer) WriteInt(v int) error { return WriteNumeric(w, v) }

// WriteUint writes a platform word sized unsigned integer. See Reader.ReadInt.
func (w *Writer) WriteUint(v uint) error { return WriteNumeric(w, v) }

// WriteUint128 writes an unsigned 128-bit integer.
func (w *Writer) WriteUint128(v Uint128) error {
	var buf [16]byte
	putUint128(w.opts.Endian, buf[:], v)
	return w.write(buf[:])
}

// WriteInt128 writes a signed 128-bit integer.
func (w *Writer) WriteInt128(v Int128) error {
	return w.WriteUint128(v.Uint128())
}

// WriteBool writes 0x01 for true and 0x00 for false.
func (w *Writer) WriteBool(v bool) error {
	return w.WriteUint8(encodeBool(v))
}

// WriteChar writes a rune as a 32-bit code point. Runes that are not Unicode
// scalar values are rejected with ErrInvalidCharacter before anything is written.
func (w *Writer) WriteChar(v rune) error {
	u, err := encodeChar(v)
	if err != nil {
		return err
	}
	return w.WriteUint32(u)
}

// WriteString writes a length prefix followed by the UTF-8 bytes of s. The
// length is checked against MaxBufferSize, and s against UTF-8 validity, before
// anything is written.
func (w *Writer) WriteString(s string) error {
	n := uint64(len(s))
	if err := guard(n, w.opts.MaxBufferSize); err != nil {
		return err
	}
	if err := lengthPrefixFits(n); err != nil {
		return err
	}
	if err := checkUTF8String(s); err != nil {
		return err
	}
	if err := w.WriteLength(n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return w.write([]byte(s))
}

// WriteBytes writes p verbatim, without a length prefix.
func (w *Writer) WriteBytes(p []byte) error {
	if err := guard(uint64(len(p)), w.opts.MaxBufferSize); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return w.write(p)
}

// WriteLength writes a length prefix in the width of this build.
func (w *Writer) WriteLength(n uint64) error {
	if err := lengthPrefixFits(n); err != nil {
		return err
	}
	return WriteNumeric(w, lengthPrefix(n))
}

// WriteZeros writes n zero bytes, often for padding.
func (w *Writer) WriteZeros(n uint64) error {
	return classify("write", writeZeros(w.s, n))
}

// Align writes zero bytes until the position is a multiple of n, which must be
// a power of two; any other n fails with ErrInvalidAlignment.
func (w *Writer) Align(n int) error {
	if err := checkAlignment(n); err != nil {
		return err
	}
	if n <= 1 {
		return nil
	}
	pos, err := w.Position()
	if err != nil {
		return err
	}
	return w.WriteZeros(Roundup(pos, uint64(n)) - pos)
}
