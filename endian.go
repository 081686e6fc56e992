package binstream

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Endian selects the byte order applied to multi-byte values.
// The zero value is BigEndian, which is the default of every Reader and Writer.
type Endian uint8

const (
	// BigEndian writes the most significant byte first.
	BigEndian Endian = iota
	// LittleEndian writes the least significant byte first.
	LittleEndian
)

// ByteOrder returns the encoding/binary order for e.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return LE
	}
	return BE
}

func (e Endian) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("Endian(%d)", uint8(e))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Endian) MarshalText() ([]byte, error) {
	if e != BigEndian && e != LittleEndian {
		return nil, fmt.Errorf("binstream: invalid endian %d", uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts "big", "little",
// and the short forms "be" and "le", case-insensitively.
func (e *Endian) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "big", "be":
		*e = BigEndian
	case "little", "le":
		*e = LittleEndian
	default:
		return fmt.Errorf("binstream: unknown endian %q", text)
	}
	return nil
}
