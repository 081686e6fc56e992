package binstream

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the reflection cost of binary.Size on every call.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed provides a Codec for any struct composed of fixed-size fields,
// eliminating boilerplate for simple records. Fields are laid out in
// declaration order with the byte order of the Reader or Writer in use.
//
// Constraint: Payload MUST NOT contain variable-size fields like slices, maps,
// or strings; such payloads fail with ErrUnsupportedType.
type Fixed[Payload any] struct {
	Payload Payload
}

var (
	_ Codec        = (*Fixed[struct{}])(nil)
	_ Sizer        = (*Fixed[struct{}])(nil)
	_ AsyncEncoder = (*Fixed[struct{}])(nil)
	_ AsyncDecoder = (*Fixed[struct{}])(nil)
)

// Size returns the encoded size of Payload in bytes, or -1 when Payload has no
// fixed layout. The result is cached per type.
func (c *Fixed[Payload]) Size() int {
	payloadType := reflect.TypeOf((*Payload)(nil)).Elem()
	if size, ok := sizeCache.Load(payloadType); ok {
		return size
	}
	size := binary.Size(&c.Payload)
	sizeCache.Store(payloadType, size)
	return size
}

func (c *Fixed[Payload]) layout() (int, error) {
	size := c.Size()
	if size < 0 {
		return 0, fmt.Errorf("%w: %T has no fixed layout", ErrUnsupportedType, c.Payload)
	}
	return size, nil
}

func (c *Fixed[Payload]) marshal(order binary.ByteOrder) ([]byte, error) {
	size, err := c.layout()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, order, &c.Payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	return buf, nil
}

func (c *Fixed[Payload]) unmarshal(order binary.ByteOrder, data []byte) error {
	if _, err := binary.Decode(data, order, &c.Payload); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	return nil
}

func (c *Fixed[Payload]) Encode(w *Writer) error {
	buf, err := c.marshal(w.opts.Endian.ByteOrder())
	if err != nil {
		return err
	}
	return w.write(buf)
}

func (c *Fixed[Payload]) Decode(r *Reader) error {
	size, err := c.layout()
	if err != nil {
		return err
	}
	buf := make([]byte, size)
	if err := r.readFull(buf); err != nil {
		return err
	}
	return c.unmarshal(r.opts.Endian.ByteOrder(), buf)
}

func (c *Fixed[Payload]) EncodeContext(ctx context.Context, w *AsyncWriter) error {
	buf, err := c.marshal(w.opts.Endian.ByteOrder())
	if err != nil {
		return err
	}
	return w.write(ctx, buf)
}

func (c *Fixed[Payload]) DecodeContext(ctx context.Context, r *AsyncReader) error {
	size, err := c.layout()
	if err != nil {
		return err
	}
	buf := make([]byte, size)
	if err := r.readFull(ctx, buf); err != nil {
		return err
	}
	return c.unmarshal(r.opts.Endian.ByteOrder(), buf)
}

// MarshalBinary implements encoding.BinaryMarshaler with DefaultOptions.
func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	return Marshal(c, DefaultOptions())
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with DefaultOptions.
// Trailing bytes are rejected with ErrTrailingData.
func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error {
	return Unmarshal(data, c, DefaultOptions())
}
