package binstream

import (
	"math"
	"strconv"
)

// Options configures a Reader or Writer. It is copied at construction and never
// changes for the lifetime of the instance.
type Options struct {
	// Endian is the byte order of every multi-byte value. Defaults to BigEndian.
	Endian Endian `toml:"endian"`

	// MaxBufferSize bounds every caller- or wire-controlled length: string length
	// prefixes, explicit byte reads and writes, list counts. nil means unbounded,
	// which is only safe for trusted input.
	MaxBufferSize *uint64 `toml:"max_buffer_size"`
}

// DefaultOptions returns big-endian, unbounded options.
func DefaultOptions() Options {
	return Options{Endian: BigEndian}
}

// WithMaxBufferSize returns a copy of o with the size ceiling set to n.
func (o Options) WithMaxBufferSize(n uint64) Options {
	o.MaxBufferSize = Ptr(n)
	return o
}

func (o Options) String() string {
	limit := "unbounded"
	if o.MaxBufferSize != nil {
		limit = strconv.FormatUint(*o.MaxBufferSize, 10)
	}
	return "endian=" + o.Endian.String() + " max_buffer_size=" + limit
}

// Guard rejects n when it exceeds the configured ceiling.
func (o Options) Guard(n uint64) error {
	return guard(n, o.MaxBufferSize)
}

// guard must run before any allocation, read or write sized by n. Lengths that
// cannot be addressed as an int are rejected even when no ceiling is set.
func guard(n uint64, limit *uint64) error {
	if limit != nil && n > *limit {
		logger().Debug().Uint64("requested", n).Uint64("limit", *limit).Msg("length exceeds buffer ceiling")
		return &BufferTooLargeError{Requested: n, Limit: *limit}
	}
	if n > math.MaxInt {
		logger().Debug().Uint64("requested", n).Msg("length exceeds addressable memory")
		return &BufferTooLargeError{Requested: n, Limit: math.MaxInt}
	}
	return nil
}
