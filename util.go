package binstream

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
)

const BUFFER_SIZE = 4096

var (
	empty   [BUFFER_SIZE]byte
	discard [BUFFER_SIZE]byte
)

func Ptr[T any](v T) *T { return &v } // Ptr makes optional settings such as Options.MaxBufferSize easy to fill.

// Discard reads and drops exactly n bytes from r.
func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrUnsupportedNegativeSeek
	}
	if n <= BUFFER_SIZE {
		skip, err := io.ReadFull(r, discard[:n])
		return int64(skip), err
	}
	return io.CopyN(io.Discard, r, n)
}

// Roundup rounds n up to the nearest multiple of align. align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// checkAlignment accepts 0 and 1, which mean no alignment, and powers of two.
func checkAlignment(n int) error {
	if n < 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAlignment, n)
	}
	return nil
}

// writeZeros writes n zero bytes to w without allocating for small padding.
func writeZeros(w io.Writer, n uint64) error {
	for n > 0 {
		chunk := min(n, BUFFER_SIZE)
		written, err := w.Write(empty[:chunk])
		if err != nil {
			return err
		}
		if uint64(written) != chunk {
			return io.ErrShortWrite
		}
		n -= chunk
	}
	return nil
}
