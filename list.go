package binstream

import "context"

// List is a length-prefixed sequence: an element count in the length-prefix
// width of the build, then each element in order.
//
// When Alignment is greater than 1 every element except the last is padded with
// zero bytes to a multiple of Alignment bytes. Alignment must be a power of two,
// otherwise Encode and Decode fail with ErrInvalidAlignment. It is not stored
// on the wire; both sides must agree on it.
type List[T any] struct {
	Items     []T
	Alignment int
}

var (
	_ Codec        = (*List[uint8])(nil)
	_ AsyncEncoder = (*List[uint8])(nil)
	_ AsyncDecoder = (*List[uint8])(nil)
)

// NewList creates a List with no padding between items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{Items: items}
}

// NewAlignedList creates a List whose items are padded to alignment bytes.
func NewAlignedList[T any](alignment int, items ...T) *List[T] {
	return &List[T]{Items: items, Alignment: alignment}
}

func (l *List[T]) Len() int { return len(l.Items) }

// listPrealloc caps the capacity reserved from a wire-supplied count, so a
// lying count costs no more than the elements actually present.
const listPrealloc = 1024

func (l *List[T]) padding(n uint64) uint64 {
	if l.Alignment <= 1 {
		return 0
	}
	return Roundup(n, uint64(l.Alignment)) - n
}

// Encode writes the count, checked against MaxBufferSize, then the items.
func (l *List[T]) Encode(w *Writer) error {
	if err := checkAlignment(l.Alignment); err != nil {
		return err
	}
	count := uint64(len(l.Items))
	if err := guard(count, w.opts.MaxBufferSize); err != nil {
		return err
	}
	if err := w.WriteLength(count); err != nil {
		return err
	}
	if l.Alignment <= 1 {
		for i := range l.Items {
			if err := encodeElem(w, &l.Items[i]); err != nil {
				return err
			}
		}
		return nil
	}
	last := len(l.Items) - 1
	for i := range l.Items {
		start, err := w.Position()
		if err != nil {
			return err
		}
		if err := encodeElem(w, &l.Items[i]); err != nil {
			return err
		}
		if i == last {
			break
		}
		end, err := w.Position()
		if err != nil {
			return err
		}
		if err := w.WriteZeros(l.padding(end - start)); err != nil {
			return err
		}
	}
	return nil
}

// Decode replaces Items with the decoded sequence. The count is checked
// against MaxBufferSize before anything is allocated.
func (l *List[T]) Decode(r *Reader) error {
	if err := checkAlignment(l.Alignment); err != nil {
		return err
	}
	count, err := r.ReadLength()
	if err != nil {
		return err
	}
	if err := guard(count, r.opts.MaxBufferSize); err != nil {
		return err
	}
	items := make([]T, 0, min(count, listPrealloc))
	aligned := l.Alignment > 1
	for i := uint64(0); i < count; i++ {
		var start uint64
		if aligned {
			if start, err = r.Position(); err != nil {
				return err
			}
		}
		var item T
		if err := DecodeValue(r, &item); err != nil {
			return err
		}
		items = append(items, item)
		if aligned && i+1 < count {
			end, err := r.Position()
			if err != nil {
				return err
			}
			if err := r.Skip(l.padding(end - start)); err != nil {
				return err
			}
		}
	}
	l.Items = items
	return nil
}

func (l *List[T]) EncodeContext(ctx context.Context, w *AsyncWriter) error {
	if err := checkAlignment(l.Alignment); err != nil {
		return err
	}
	count := uint64(len(l.Items))
	if err := guard(count, w.opts.MaxBufferSize); err != nil {
		return err
	}
	if err := w.WriteLength(ctx, count); err != nil {
		return err
	}
	if l.Alignment <= 1 {
		for i := range l.Items {
			if err := encodeElemContext(ctx, w, &l.Items[i]); err != nil {
				return err
			}
		}
		return nil
	}
	last := len(l.Items) - 1
	for i := range l.Items {
		start, err := w.Position(ctx)
		if err != nil {
			return err
		}
		if err := encodeElemContext(ctx, w, &l.Items[i]); err != nil {
			return err
		}
		if i == last {
			break
		}
		end, err := w.Position(ctx)
		if err != nil {
			return err
		}
		if err := w.WriteZeros(ctx, l.padding(end-start)); err != nil {
			return err
		}
	}
	return nil
}

func (l *List[T]) DecodeContext(ctx context.Context, r *AsyncReader) error {
	if err := checkAlignment(l.Alignment); err != nil {
		return err
	}
	count, err := r.ReadLength(ctx)
	if err != nil {
		return err
	}
	if err := guard(count, r.opts.MaxBufferSize); err != nil {
		return err
	}
	items := make([]T, 0, min(count, listPrealloc))
	aligned := l.Alignment > 1
	for i := uint64(0); i < count; i++ {
		var start uint64
		if aligned {
			if start, err = r.Position(ctx); err != nil {
				return err
			}
		}
		var item T
		if err := DecodeValueContext(ctx, r, &item); err != nil {
			return err
		}
		items = append(items, item)
		if aligned && i+1 < count {
			end, err := r.Position(ctx)
			if err != nil {
				return err
			}
			if err := r.Skip(ctx, l.padding(end-start)); err != nil {
				return err
			}
		}
	}
	l.Items = items
	return nil
}

func (l *List[T]) MarshalBinary() ([]byte, error) {
	return Marshal(l, DefaultOptions())
}

func (l *List[T]) UnmarshalBinary(data []byte) error {
	return Unmarshal(data, l, DefaultOptions())
}
