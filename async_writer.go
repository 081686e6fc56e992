package binstream

import (
	"context"
	"io"
)

// AsyncWriter is the suspending form of Writer. Its output is byte-identical to
// a Writer configured with the same Options.
//
// Operations on one AsyncWriter must be issued sequentially; it carries no lock.
// After a cancelled write the stream may hold a partial value; seek to a known
// offset or abandon the stream.
type AsyncWriter struct {
	s    AsyncStream
	opts Options
}

// NewAsyncWriter creates an AsyncWriter over s configured by opts.
func NewAsyncWriter(s AsyncStream, opts Options) (*AsyncWriter, error) {
	if s == nil {
		return nil, ErrNilIO
	}
	return &AsyncWriter{s: s, opts: opts}, nil
}

func (w *AsyncWriter) Stream() AsyncStream { return w.s }
func (w *AsyncWriter) Options() Options    { return w.opts }

func (w *AsyncWriter) Seek(ctx context.Context, offset uint64) (uint64, error) {
	pos, err := w.s.Seek(ctx, offset)
	return pos, classify("seek", err)
}

func (w *AsyncWriter) Position(ctx context.Context) (uint64, error) {
	pos, err := w.s.Position(ctx)
	return pos, classify("position", err)
}

func (w *AsyncWriter) Len(ctx context.Context) (uint64, error) {
	n, err := w.s.Len(ctx)
	return n, classify("length", err)
}

func (w *AsyncWriter) Flush(ctx context.Context) error {
	return classify("flush", w.s.Flush(ctx))
}

func (w *AsyncWriter) write(ctx context.Context, p []byte) error {
	n, err := w.s.Write(ctx, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return classify("write", err)
}

// WriteNumericContext writes one fixed-width value of type T.
func WriteNumericContext[T Numeric](ctx context.Context, w *AsyncWriter, v T) error {
	var buf [8]byte
	b := buf[:SizeOf[T]()]
	PutNumeric(w.opts.Endian, b, v)
	return w.write(ctx, b)
}

func (w *AsyncWriter) WriteUint8(ctx context.Context, v uint8) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteUint16(ctx context.Context, v uint16) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteUint32(ctx context.Context, v uint32) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteUint64(ctx context.Context, v uint64) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteInt8(ctx context.Context, v int8) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteInt16(ctx context.Context, v int16) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteInt32(ctx context.Context, v int32) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteInt64(ctx context.Context, v int64) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteFloat32(ctx context.Context, v float32) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteFloat64(ctx context.Context, v float64) error {
	return WriteNumericContext(ctx, w, v)
}

// WriteInt writes a platform word sized signed integer. See Reader.ReadInt.
func (w *AsyncWriter) WriteInt(ctx context.Context, v int) error {
	return WriteNumericContext(ctx, w, v)
}

// WriteUint writes a platform word sized unsigned integer. See Reader.ReadInt.
func (w *AsyncWriter) WriteUint(ctx context.Context, v uint) error {
	return WriteNumericContext(ctx, w, v)
}

func (w *AsyncWriter) WriteUint128(ctx context.Context, v Uint128) error {
	var buf [16]byte
	putUint128(w.opts.Endian, buf[:], v)
	return w.write(ctx, buf[:])
}

func (w *AsyncWriter) WriteInt128(ctx context.Context, v Int128) error {
	return w.WriteUint128(ctx, v.Uint128())
}

func (w *AsyncWriter) WriteBool(ctx context.Context, v bool) error {
	return w.WriteUint8(ctx, encodeBool(v))
}

func (w *AsyncWriter) WriteChar(ctx context.Context, v rune) error {
	u, err := encodeChar(v)
	if err != nil {
		return err
	}
	return w.WriteUint32(ctx, u)
}

// WriteString writes a length prefix followed by the UTF-8 bytes of s. See
// Writer.WriteString.
func (w *AsyncWriter) WriteString(ctx context.Context, s string) error {
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
	if err := w.WriteLength(ctx, n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return w.write(ctx, []byte(s))
}

func (w *AsyncWriter) WriteBytes(ctx context.Context, p []byte) error {
	if err := guard(uint64(len(p)), w.opts.MaxBufferSize); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return w.write(ctx, p)
}

func (w *AsyncWriter) WriteLength(ctx context.Context, n uint64) error {
	if err := lengthPrefixFits(n); err != nil {
		return err
	}
	return WriteNumericContext(ctx, w, lengthPrefix(n))
}

// WriteZeros writes n zero bytes.
func (w *AsyncWriter) WriteZeros(ctx context.Context, n uint64) error {
	for n > 0 {
		chunk := min(n, BUFFER_SIZE)
		if err := w.write(ctx, empty[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Align writes zero bytes until the position is a multiple of n, which must be
// a power of two; any other n fails with ErrInvalidAlignment.
func (w *AsyncWriter) Align(ctx context.Context, n int) error {
	if err := checkAlignment(n); err != nil {
		return err
	}
	if n <= 1 {
		return nil
	}
	pos, err := w.Position(ctx)
	if err != nil {
		return err
	}
	return w.WriteZeros(ctx, Roundup(pos, uint64(n))-pos)
}
