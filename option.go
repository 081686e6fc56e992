package binstream

import "context"

// Option is a value that may be absent. On the wire it is a presence bool
// followed by the value only when present.
//
// T must be a type EncodeValue/DecodeValue accept, or implement Encoder with
// *T implementing Decoder.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }

func (o Option[T]) Encode(w *Writer) error {
	if err := w.WriteBool(o.Valid); err != nil {
		return err
	}
	if !o.Valid {
		return nil
	}
	return encodeElem(w, &o.Value)
}

// Decode resets o to the absent state when the presence flag is false.
func (o *Option[T]) Decode(r *Reader) error {
	valid, err := r.ReadBool()
	if err != nil {
		return err
	}
	if !valid {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := DecodeValue(r, &v); err != nil {
		return err
	}
	*o = Option[T]{Value: v, Valid: true}
	return nil
}

func (o Option[T]) EncodeContext(ctx context.Context, w *AsyncWriter) error {
	if err := w.WriteBool(ctx, o.Valid); err != nil {
		return err
	}
	if !o.Valid {
		return nil
	}
	return encodeElemContext(ctx, w, &o.Value)
}

func (o *Option[T]) DecodeContext(ctx context.Context, r *AsyncReader) error {
	valid, err := r.ReadBool(ctx)
	if err != nil {
		return err
	}
	if !valid {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := DecodeValueContext(ctx, r, &v); err != nil {
		return err
	}
	*o = Option[T]{Value: v, Valid: true}
	return nil
}
