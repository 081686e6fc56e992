package binstream

import (
	"context"
	"fmt"
)

// Sizer is an interface for types that can report their encoded size.
// Marshal uses it to pre-allocate the output buffer.
type Sizer interface {
	// Size returns the number of bytes Encode will write.
	Size() int
}

// Encoder is implemented by types that write themselves through a Writer.
//
// Encode must leave the Writer positioned right after the bytes it produced,
// including when it seeks back to patch a length field.
type Encoder interface {
	Encode(w *Writer) error
}

// Decoder is implemented by types that read themselves from a Reader. Decode
// must consume exactly the bytes the matching Encode produces.
type Decoder interface {
	Decode(r *Reader) error
}

// AsyncEncoder is the suspending form of Encoder.
type AsyncEncoder interface {
	EncodeContext(ctx context.Context, w *AsyncWriter) error
}

// AsyncDecoder is the suspending form of Decoder.
type AsyncDecoder interface {
	DecodeContext(ctx context.Context, r *AsyncReader) error
}

// Codec aggregates both directions of the blocking protocol.
type Codec interface {
	Encoder
	Decoder
}

// EncodeValue writes v, which must be an Encoder or one of the primitive types
// bool, int8..int64, uint8..uint64, int, uint, float32, float64, string,
// Uint128 or Int128. A bare rune is an int32; wrap it in Char to encode a
// Unicode scalar value. Fields of a composite are encoded in call order; there
// is no type tag on the wire.
func EncodeValue(w *Writer, v any) error {
	switch x := v.(type) {
	case Encoder:
		return x.Encode(w)
	case bool:
		return w.WriteBool(x)
	case int8:
		return w.WriteInt8(x)
	case int16:
		return w.WriteInt16(x)
	case int32:
		return w.WriteInt32(x)
	case int64:
		return w.WriteInt64(x)
	case int:
		return w.WriteInt(x)
	case uint8:
		return w.WriteUint8(x)
	case uint16:
		return w.WriteUint16(x)
	case uint32:
		return w.WriteUint32(x)
	case uint64:
		return w.WriteUint64(x)
	case uint:
		return w.WriteUint(x)
	case float32:
		return w.WriteFloat32(x)
	case float64:
		return w.WriteFloat64(x)
	case string:
		return w.WriteString(x)
	case Uint128:
		return w.WriteUint128(x)
	case Int128:
		return w.WriteInt128(x)
	}
	return fmt.Errorf("%w: cannot encode %T", ErrUnsupportedType, v)
}

// DecodeValue reads into v, which must be a Decoder or a pointer to one of the
// types EncodeValue accepts. v is left unchanged when an error is returned.
func DecodeValue(r *Reader, v any) error {
	switch x := v.(type) {
	case Decoder:
		return x.Decode(r)
	case *bool:
		return into(x, r.ReadBool)
	case *int8:
		return into(x, r.ReadInt8)
	case *int16:
		return into(x, r.ReadInt16)
	case *int32:
		return into(x, r.ReadInt32)
	case *int64:
		return into(x, r.ReadInt64)
	case *int:
		return into(x, r.ReadInt)
	case *uint8:
		return into(x, r.ReadUint8)
	case *uint16:
		return into(x, r.ReadUint16)
	case *uint32:
		return into(x, r.ReadUint32)
	case *uint64:
		return into(x, r.ReadUint64)
	case *uint:
		return into(x, r.ReadUint)
	case *float32:
		return into(x, r.ReadFloat32)
	case *float64:
		return into(x, r.ReadFloat64)
	case *string:
		return into(x, r.ReadString)
	case *Uint128:
		return into(x, r.ReadUint128)
	case *Int128:
		return into(x, r.ReadInt128)
	}
	return fmt.Errorf("%w: cannot decode into %T", ErrUnsupportedType, v)
}

// EncodeValueContext is the suspending form of EncodeValue.
func EncodeValueContext(ctx context.Context, w *AsyncWriter, v any) error {
	switch x := v.(type) {
	case AsyncEncoder:
		return x.EncodeContext(ctx, w)
	case bool:
		return w.WriteBool(ctx, x)
	case int8:
		return w.WriteInt8(ctx, x)
	case int16:
		return w.WriteInt16(ctx, x)
	case int32:
		return w.WriteInt32(ctx, x)
	case int64:
		return w.WriteInt64(ctx, x)
	case int:
		return w.WriteInt(ctx, x)
	case uint8:
		return w.WriteUint8(ctx, x)
	case uint16:
		return w.WriteUint16(ctx, x)
	case uint32:
		return w.WriteUint32(ctx, x)
	case uint64:
		return w.WriteUint64(ctx, x)
	case uint:
		return w.WriteUint(ctx, x)
	case float32:
		return w.WriteFloat32(ctx, x)
	case float64:
		return w.WriteFloat64(ctx, x)
	case string:
		return w.WriteString(ctx, x)
	case Uint128:
		return w.WriteUint128(ctx, x)
	case Int128:
		return w.WriteInt128(ctx, x)
	}
	return fmt.Errorf("%w: cannot encode %T", ErrUnsupportedType, v)
}

// DecodeValueContext is the suspending form of DecodeValue.
func DecodeValueContext(ctx context.Context, r *AsyncReader, v any) error {
	switch x := v.(type) {
	case AsyncDecoder:
		return x.DecodeContext(ctx, r)
	case *bool:
		return intoContext(ctx, x, r.ReadBool)
	case *int8:
		return intoContext(ctx, x, r.ReadInt8)
	case *int16:
		return intoContext(ctx, x, r.ReadInt16)
	case *int32:
		return intoContext(ctx, x, r.ReadInt32)
	case *int64:
		return intoContext(ctx, x, r.ReadInt64)
	case *int:
		return intoContext(ctx, x, r.ReadInt)
	case *uint8:
		return intoContext(ctx, x, r.ReadUint8)
	case *uint16:
		return intoContext(ctx, x, r.ReadUint16)
	case *uint32:
		return intoContext(ctx, x, r.ReadUint32)
	case *uint64:
		return intoContext(ctx, x, r.ReadUint64)
	case *uint:
		return intoContext(ctx, x, r.ReadUint)
	case *float32:
		return intoContext(ctx, x, r.ReadFloat32)
	case *float64:
		return intoContext(ctx, x, r.ReadFloat64)
	case *string:
		return intoContext(ctx, x, r.ReadString)
	case *Uint128:
		return intoContext(ctx, x, r.ReadUint128)
	case *Int128:
		return intoContext(ctx, x, r.ReadInt128)
	}
	return fmt.Errorf("%w: cannot decode into %T", ErrUnsupportedType, v)
}

func into[T any](dst *T, read func() (T, error)) error {
	v, err := read()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func intoContext[T any](ctx context.Context, dst *T, read func(context.Context) (T, error)) error {
	v, err := read(ctx)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// encodeElem encodes *v, preferring an Encode method declared on the pointer.
func encodeElem[T any](w *Writer, v *T) error {
	if e, ok := any(v).(Encoder); ok {
		return e.Encode(w)
	}
	return EncodeValue(w, *v)
}

func encodeElemContext[T any](ctx context.Context, w *AsyncWriter, v *T) error {
	if e, ok := any(v).(AsyncEncoder); ok {
		return e.EncodeContext(ctx, w)
	}
	return EncodeValueContext(ctx, w, *v)
}

// Char is a rune that encodes as a Unicode scalar value (4 bytes). Decoding
// rejects surrogates and values above U+10FFFF.
type Char rune

var (
	_ Codec        = (*Char)(nil)
	_ AsyncEncoder = Char(0)
	_ AsyncDecoder = (*Char)(nil)
)

func (c Char) Size() int { return 4 }

func (c Char) Encode(w *Writer) error { return w.WriteChar(rune(c)) }

func (c *Char) Decode(r *Reader) error {
	v, err := r.ReadChar()
	if err != nil {
		return err
	}
	*c = Char(v)
	return nil
}

func (c Char) EncodeContext(ctx context.Context, w *AsyncWriter) error {
	return w.WriteChar(ctx, rune(c))
}

func (c *Char) DecodeContext(ctx context.Context, r *AsyncReader) error {
	v, err := r.ReadChar(ctx)
	if err != nil {
		return err
	}
	*c = Char(v)
	return nil
}
