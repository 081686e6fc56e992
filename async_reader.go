package binstream

import "context"

// AsyncReader is the suspending form of Reader. It decodes the same wire format
// through an AsyncStream, waiting on ctx at every I/O operation.
//
// Operations on one AsyncReader must be issued sequentially; it carries no lock.
type AsyncReader struct {
	s    AsyncStream
	opts Options
}

// NewAsyncReader creates an AsyncReader over s configured by opts.
func NewAsyncReader(s AsyncStream, opts Options) (*AsyncReader, error) {
	if s == nil {
		return nil, ErrNilIO
	}
	return &AsyncReader{s: s, opts: opts}, nil
}

func (r *AsyncReader) Stream() AsyncStream { return r.s }
func (r *AsyncReader) Options() Options    { return r.opts }

func (r *AsyncReader) Seek(ctx context.Context, offset uint64) (uint64, error) {
	pos, err := r.s.Seek(ctx, offset)
	return pos, classify("seek", err)
}

func (r *AsyncReader) Position(ctx context.Context) (uint64, error) {
	pos, err := r.s.Position(ctx)
	return pos, classify("position", err)
}

func (r *AsyncReader) Len(ctx context.Context) (uint64, error) {
	n, err := r.s.Len(ctx)
	return n, classify("length", err)
}

// Skip advances the position by n bytes, with the same bounds as Reader.Skip.
func (r *AsyncReader) Skip(ctx context.Context, n uint64) error {
	if n == 0 {
		return nil
	}
	pos, err := r.Position(ctx)
	if err != nil {
		return err
	}
	end, err := skipEnd(pos, n, func() (uint64, error) { return r.Len(ctx) })
	if err != nil {
		return err
	}
	_, err = r.Seek(ctx, end)
	return err
}

// Align skips forward until the position is a multiple of n, which must be a
// power of two; any other n fails with ErrInvalidAlignment.
func (r *AsyncReader) Align(ctx context.Context, n int) error {
	if err := checkAlignment(n); err != nil {
		return err
	}
	if n <= 1 {
		return nil
	}
	pos, err := r.Position(ctx)
	if err != nil {
		return err
	}
	return r.Skip(ctx, Roundup(pos, uint64(n))-pos)
}

func (r *AsyncReader) readFull(ctx context.Context, p []byte) error {
	return classify("read", r.s.ReadFull(ctx, p))
}

// ReadNumericContext reads one fixed-width value of type T.
func ReadNumericContext[T Numeric](ctx context.Context, r *AsyncReader) (T, error) {
	var buf [8]byte
	b := buf[:SizeOf[T]()]
	if err := r.readFull(ctx, b); err != nil {
		var zero T
		return zero, err
	}
	return NumericFrom[T](r.opts.Endian, b), nil
}

func (r *AsyncReader) ReadUint8(ctx context.Context) (uint8, error) {
	return ReadNumericContext[uint8](ctx, r)
}

func (r *AsyncReader) ReadUint16(ctx context.Context) (uint16, error) {
	return ReadNumericContext[uint16](ctx, r)
}

func (r *AsyncReader) ReadUint32(ctx context.Context) (uint32, error) {
	return ReadNumericContext[uint32](ctx, r)
}

func (r *AsyncReader) ReadUint64(ctx context.Context) (uint64, error) {
	return ReadNumericContext[uint64](ctx, r)
}

func (r *AsyncReader) ReadInt8(ctx context.Context) (int8, error) {
	return ReadNumericContext[int8](ctx, r)
}

func (r *AsyncReader) ReadInt16(ctx context.Context) (int16, error) {
	return ReadNumericContext[int16](ctx, r)
}

func (r *AsyncReader) ReadInt32(ctx context.Context) (int32, error) {
	return ReadNumericContext[int32](ctx, r)
}

func (r *AsyncReader) ReadInt64(ctx context.Context) (int64, error) {
	return ReadNumericContext[int64](ctx, r)
}

func (r *AsyncReader) ReadFloat32(ctx context.Context) (float32, error) {
	return ReadNumericContext[float32](ctx, r)
}

func (r *AsyncReader) ReadFloat64(ctx context.Context) (float64, error) {
	return ReadNumericContext[float64](ctx, r)
}

// ReadInt reads a platform word sized signed integer. See Reader.ReadInt.
func (r *AsyncReader) ReadInt(ctx context.Context) (int, error) {
	return ReadNumericContext[int](ctx, r)
}

// ReadUint reads a platform word sized unsigned integer. See Reader.ReadInt.
func (r *AsyncReader) ReadUint(ctx context.Context) (uint, error) {
	return ReadNumericContext[uint](ctx, r)
}

func (r *AsyncReader) ReadUint128(ctx context.Context) (Uint128, error) {
	var buf [16]byte
	if err := r.readFull(ctx, buf[:]); err != nil {
		return Uint128{}, err
	}
	return uint128From(r.opts.Endian, buf[:]), nil
}

func (r *AsyncReader) ReadInt128(ctx context.Context) (Int128, error) {
	u, err := r.ReadUint128(ctx)
	return Int128FromBits(u), err
}

// ReadBool reads one byte. Any nonzero byte is true.
func (r *AsyncReader) ReadBool(ctx context.Context) (bool, error) {
	b, err := r.ReadUint8(ctx)
	return decodeBool(b), err
}

func (r *AsyncReader) ReadChar(ctx context.Context) (rune, error) {
	v, err := r.ReadUint32(ctx)
	if err != nil {
		return 0, err
	}
	return decodeChar(v)
}

func (r *AsyncReader) ReadString(ctx context.Context) (string, error) {
	n, err := r.ReadLength(ctx)
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(ctx, n)
	if err != nil {
		return "", err
	}
	if err := checkUTF8(b); err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBytes reads exactly n raw bytes after checking n against MaxBufferSize.
func (r *AsyncReader) ReadBytes(ctx context.Context, n uint64) ([]byte, error) {
	if err := guard(n, r.opts.MaxBufferSize); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.readFull(ctx, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *AsyncReader) ReadBytesTo(ctx context.Context, dest []byte) error {
	if len(dest) == 0 {
		return nil
	}
	if err := guard(uint64(len(dest)), r.opts.MaxBufferSize); err != nil {
		return err
	}
	return r.readFull(ctx, dest)
}

func (r *AsyncReader) ReadLength(ctx context.Context) (uint64, error) {
	n, err := ReadNumericContext[lengthPrefix](ctx, r)
	return uint64(n), err
}
