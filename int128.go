package binstream

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 = uint128.Uint128

// Int128 is a signed 128-bit integer in two's complement form.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128FromInt64 sign-extends v to 128 bits.
func Int128FromInt64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// Uint128 reinterprets the two's complement bits of i as unsigned.
func (i Int128) Uint128() Uint128 {
	return uint128.New(i.Lo, uint64(i.Hi))
}

// Int128FromBits reinterprets u as a two's complement signed value.
func Int128FromBits(u Uint128) Int128 {
	return Int128{Hi: int64(u.Hi), Lo: u.Lo}
}

// Big returns i as a big.Int.
func (i Int128) Big() *big.Int {
	v := i.Uint128().Big()
	if i.Hi < 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return v
}

func (i Int128) String() string {
	return fmt.Sprint(i.Big())
}

// putUint128 writes v into b[:16] in the order selected by e.
func putUint128(e Endian, b []byte, v Uint128) {
	if e == LittleEndian {
		LE.PutUint64(b[0:8], v.Lo)
		LE.PutUint64(b[8:16], v.Hi)
		return
	}
	BE.PutUint64(b[0:8], v.Hi)
	BE.PutUint64(b[8:16], v.Lo)
}

func uint128From(e Endian, b []byte) Uint128 {
	if e == LittleEndian {
		return uint128.New(LE.Uint64(b[0:8]), LE.Uint64(b[8:16]))
	}
	return uint128.New(BE.Uint64(b[8:16]), BE.Uint64(b[0:8]))
}
