package binstream

// BufferedStream batches writes to an underlying Stream. Pending bytes are
// flushed before every seek, read and length query, so the stream keeps true
// random-access semantics and the backpatch idiom works unchanged. Position is
// answered from the buffer without touching the medium.
type BufferedStream struct {
	s    Stream
	buf  *[]byte
	base uint64 // offset of buf[0] in s
}

var _ Stream = (*BufferedStream)(nil)

// NewBufferedStream wraps s. Call Flush or Close when done writing.
func NewBufferedStream(s Stream) (*BufferedStream, error) {
	if s == nil {
		return nil, ErrNilIO
	}
	if b, ok := s.(*BufferedStream); ok {
		return b, nil
	}
	base, err := s.Position()
	if err != nil {
		return nil, err
	}
	return &BufferedStream{s: s, buf: bufPool.Get().(*[]byte), base: base}, nil
}

// Buffered returns the number of bytes waiting to be written.
func (b *BufferedStream) Buffered() int {
	if b.buf == nil {
		return 0
	}
	return len(*b.buf)
}

// Seek implements Stream.
func (b *BufferedStream) Seek(offset uint64) (uint64, error) {
	if err := b.drain(); err != nil {
		return 0, err
	}
	pos, err := b.s.Seek(offset)
	if err != nil {
		if cur, perr := b.s.Position(); perr == nil {
			b.base = cur
		}
		return pos, err
	}
	b.base = pos
	return pos, nil
}

// Position implements Stream.
func (b *BufferedStream) Position() (uint64, error) {
	return b.base + uint64(b.Buffered()), nil
}

// Len implements Stream.
func (b *BufferedStream) Len() (uint64, error) {
	if err := b.drain(); err != nil {
		return 0, err
	}
	return b.s.Len()
}

// ReadFull implements Stream.
func (b *BufferedStream) ReadFull(p []byte) error {
	if err := b.drain(); err != nil {
		return err
	}
	err := b.s.ReadFull(p)
	if pos, perr := b.s.Position(); perr == nil {
		b.base = pos
	}
	return err
}

// Write implements Stream. Writes larger than the buffer bypass it.
func (b *BufferedStream) Write(p []byte) (int, error) {
	if b.buf == nil {
		return 0, ErrNilIO
	}
	if len(*b.buf)+len(p) > cap(*b.buf) {
		if err := b.drain(); err != nil {
			return 0, err
		}
	}
	if len(p) >= cap(*b.buf) {
		n, err := b.s.Write(p)
		b.base += uint64(n)
		return n, err
	}
	*b.buf = append(*b.buf, p...)
	return len(p), nil
}

// Flush writes pending bytes and flushes the underlying stream.
func (b *BufferedStream) Flush() error {
	if err := b.drain(); err != nil {
		return err
	}
	return b.s.Flush()
}

// Close flushes and releases the buffer. The underlying stream stays open.
func (b *BufferedStream) Close() error {
	if b.buf == nil {
		return nil
	}
	err := b.Flush()
	*b.buf = (*b.buf)[:0]
	bufPool.Put(b.buf)
	b.buf = nil
	return err
}

// drain writes the buffered bytes without flushing the underlying stream.
func (b *BufferedStream) drain() error {
	if b.Buffered() == 0 {
		return nil
	}
	pending := *b.buf
	n, err := b.s.Write(pending)
	b.base += uint64(n)
	if n < len(pending) && err == nil {
		err = ErrInvalidWrite
	}
	*b.buf = append(pending[:0], pending[n:]...)
	return err
}
