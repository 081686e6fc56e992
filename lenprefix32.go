//go:build binstream32

package binstream

import "math"

type lengthPrefix = uint32

// LengthPrefixSize is the width in bytes of string and list length prefixes.
const LengthPrefixSize = 4

const maxLengthPrefix = math.MaxUint32
