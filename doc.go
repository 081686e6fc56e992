// Package binstream translates between typed values and a byte-exact wire
// representation over any seekable byte stream.
//
// A Reader or Writer wraps a Stream (MemoryStream, SliceStream, FileStream,
// SeekerStream, ForwardStream or BufferedStream) together with Options that
// fix the byte order and the ceiling applied to every length taken from the
// caller or the wire. AsyncReader and AsyncWriter do the same over an
// AsyncStream and produce identical bytes.
//
// Wire format:
//
//	integers, floats   fixed width, two's complement / IEEE-754, Options.Endian order
//	int, uint          platform word size; not portable between 32 and 64-bit builds
//	bool               one byte, written 0x00/0x01, any nonzero byte reads as true
//	char               Unicode scalar value as a uint32
//	string             length prefix then UTF-8 bytes
//	bytes              raw, length agreed out of band
//
// The length prefix is 8 bytes by default and 4 bytes when built with the
// binstream32 tag. Both ends must be built the same way.
//
// Composite types implement Encoder and Decoder and call back into the Writer
// or Reader field by field; field order is the wire contract. WriteSized
// implements the backpatch idiom for nested variable-length records.
package binstream
