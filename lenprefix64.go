//go:build !binstream32

package binstream

import "math"

// lengthPrefix is the wire type of string and list length prefixes. Builds default
// to 64-bit prefixes; build with -tags binstream32 for 32-bit prefixes. Writers and
// readers must be built with the same choice, nothing on the wire tells them apart.
type lengthPrefix = uint64

// LengthPrefixSize is the width in bytes of string and list length prefixes.
const LengthPrefixSize = 8

const maxLengthPrefix = math.MaxUint64
