package binstream

import (
	"context"
	"fmt"
)

// Length is the set of unsigned widths a record length field may use.
type Length interface {
	uint8 | uint16 | uint32 | uint64
}

func maxLength[L Length]() uint64 {
	return uint64(^L(0))
}

// WriteSized writes a record as a length field of type L followed by the bytes
// body produces. The length field is written as a zero placeholder, then
// patched once the body is done, so the stream must support backward seeks.
// On success the Writer is positioned right after the body.
func WriteSized[L Length](w *Writer, body func(*Writer) error) error {
	start, err := w.Position()
	if err != nil {
		return err
	}
	if err := WriteNumeric(w, L(0)); err != nil {
		return err
	}
	bodyStart := start + uint64(SizeOf[L]())
	if err := body(w); err != nil {
		return err
	}
	end, err := w.Position()
	if err != nil {
		return err
	}
	return patchLength[L](w.opts.Endian, start, bodyStart, end, func(field []byte) error {
		if _, err := w.Seek(start); err != nil {
			return err
		}
		if err := w.write(field); err != nil {
			return err
		}
		_, err := w.Seek(end)
		return err
	})
}

// patchLength encodes the body length and hands the field to write, which
// must place it at start and return to end.
func patchLength[L Length](e Endian, start, bodyStart, end uint64, write func([]byte) error) error {
	n := end - bodyStart
	if end < bodyStart || n > maxLength[L]() {
		return &BufferTooLargeError{Requested: n, Limit: maxLength[L]()}
	}
	var buf [8]byte
	field := buf[:SizeOf[L]()]
	PutNumeric(e, field, L(n))
	logger().Trace().Uint64("offset", start).Uint64("length", n).Msg("backpatching length field")
	return write(field)
}

// ReadSized reads a record written by WriteSized. body may consume fewer
// bytes than the length field declares, in which case the rest is skipped;
// consuming more fails with ErrSizeMismatch. A length field that runs past the
// end of the stream fails with ErrUnexpectedEndOfData before body is called.
// On success the Reader is positioned right after the record.
func ReadSized[L Length](r *Reader, body func(*Reader) error) error {
	n, err := ReadNumeric[L](r)
	if err != nil {
		return err
	}
	start, err := r.Position()
	if err != nil {
		return err
	}
	end, err := skipEnd(start, uint64(n), r.Len)
	if err != nil {
		return err
	}
	if err := body(r); err != nil {
		return err
	}
	pos, err := r.Position()
	if err != nil {
		return err
	}
	switch {
	case pos > end:
		return fmt.Errorf("%w: consumed %d bytes, length field is %d", ErrSizeMismatch, pos-start, n)
	case pos < end:
		_, err = r.Seek(end)
	}
	return err
}

// SkipSized skips over a record written by WriteSized and returns the length
// of its body.
func SkipSized[L Length](r *Reader) (uint64, error) {
	n, err := ReadNumeric[L](r)
	if err != nil {
		return 0, err
	}
	return uint64(n), r.Skip(uint64(n))
}

// WriteSizedContext is the suspending form of WriteSized.
func WriteSizedContext[L Length](ctx context.Context, w *AsyncWriter, body func(context.Context, *AsyncWriter) error) error {
	start, err := w.Position(ctx)
	if err != nil {
		return err
	}
	if err := WriteNumericContext(ctx, w, L(0)); err != nil {
		return err
	}
	bodyStart := start + uint64(SizeOf[L]())
	if err := body(ctx, w); err != nil {
		return err
	}
	end, err := w.Position(ctx)
	if err != nil {
		return err
	}
	return patchLength[L](w.opts.Endian, start, bodyStart, end, func(field []byte) error {
		if _, err := w.Seek(ctx, start); err != nil {
			return err
		}
		if err := w.write(ctx, field); err != nil {
			return err
		}
		_, err := w.Seek(ctx, end)
		return err
	})
}

// ReadSizedContext is the suspending form of ReadSized.
func ReadSizedContext[L Length](ctx context.Context, r *AsyncReader, body func(context.Context, *AsyncReader) error) error {
	n, err := ReadNumericContext[L](ctx, r)
	if err != nil {
		return err
	}
	start, err := r.Position(ctx)
	if err != nil {
		return err
	}
	end, err := skipEnd(start, uint64(n), func() (uint64, error) { return r.Len(ctx) })
	if err != nil {
		return err
	}
	if err := body(ctx, r); err != nil {
		return err
	}
	pos, err := r.Position(ctx)
	if err != nil {
		return err
	}
	switch {
	case pos > end:
		return fmt.Errorf("%w: consumed %d bytes, length field is %d", ErrSizeMismatch, pos-start, n)
	case pos < end:
		_, err = r.Seek(ctx, end)
	}
	return err
}

// SkipSizedContext is the suspending form of SkipSized.
func SkipSizedContext[L Length](ctx context.Context, r *AsyncReader) (uint64, error) {
	n, err := ReadNumericContext[L](ctx, r)
	if err != nil {
		return 0, err
	}
	return uint64(n), r.Skip(ctx, uint64(n))
}
