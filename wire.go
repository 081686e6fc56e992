package binstream

import (
	"math"
	"unicode/utf8"
	"unsafe"
)

// The functions in this file hold the whole wire format. They operate on byte
// slices that a Reader, Writer, AsyncReader or AsyncWriter has already obtained,
// so the blocking and suspending shells cannot drift apart.

// Numeric is the set of fixed-width scalar types with a direct wire encoding.
// int and uint use the platform word size (see ReadInt).
type Numeric interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint |
		float32 | float64
}

// SizeOf reports the encoded width of T in bytes.
func SizeOf[T Numeric]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// PutNumeric encodes v into b, which must be exactly SizeOf[T]() bytes long.
// Floats are copied bit for bit, NaN payloads included.
func PutNumeric[T Numeric](e Endian, b []byte, v T) {
	var bits uint64
	switch x := any(v).(type) {
	case float32:
		bits = uint64(math.Float32bits(x))
	case float64:
		bits = math.Float64bits(x)
	default:
		bits = uint64(v)
	}
	putBits(e, b, bits)
}

// NumericFrom decodes a T from b, which must be exactly SizeOf[T]() bytes long.
func NumericFrom[T Numeric](e Endian, b []byte) T {
	bits := bitsFrom(e, b)
	var v T
	switch any(v).(type) {
	case float32:
		return any(math.Float32frombits(uint32(bits))).(T)
	case float64:
		return any(math.Float64frombits(bits)).(T)
	}
	return T(bits)
}

func putBits(e Endian, b []byte, bits uint64) {
	order := e.ByteOrder()
	switch len(b) {
	case 1:
		b[0] = byte(bits)
	case 2:
		order.PutUint16(b, uint16(bits))
	case 4:
		order.PutUint32(b, uint32(bits))
	case 8:
		order.PutUint64(b, bits)
	default:
		panic("binstream: unsupported numeric width")
	}
}

func bitsFrom(e Endian, b []byte) uint64 {
	order := e.ByteOrder()
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	default:
		panic("binstream: unsupported numeric width")
	}
}

// encodeBool always produces the canonical 0x00/0x01 byte.
func encodeBool(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// decodeBool accepts any nonzero byte as true.
func decodeBool(b uint8) bool {
	return b > 0
}

// decodeChar validates a code point read off the wire.
func decodeChar(v uint32) (rune, error) {
	if v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		logger().Debug().Uint32("value", v).Msg("rejecting invalid character")
		return 0, &InvalidCharacterError{Value: v}
	}
	return rune(v), nil
}

// encodeChar rejects runes that could not be decoded again.
func encodeChar(r rune) (uint32, error) {
	if !utf8.ValidRune(r) {
		return 0, &InvalidCharacterError{Value: uint32(r)}
	}
	return uint32(r), nil
}

// checkUTF8 reports the offset of the first invalid sequence in b.
func checkUTF8(b []byte) error {
	if utf8.Valid(b) {
		return nil
	}
	offset := 0
	for offset < len(b) {
		r, size := utf8.DecodeRune(b[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		offset += size
	}
	logger().Debug().Int("len", len(b)).Int("offset", offset).Msg("rejecting invalid utf-8")
	return &InvalidUTF8Error{Len: len(b), Offset: offset}
}

// checkUTF8String is checkUTF8 for strings without copying.
func checkUTF8String(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	return checkUTF8(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// lengthPrefixFits reports whether n can be carried by the length prefix of this build.
func lengthPrefixFits(n uint64) error {
	if n > maxLengthPrefix {
		return &BufferTooLargeError{Requested: n, Limit: maxLengthPrefix}
	}
	return nil
}
