package binstream

import "fmt"

// Marshal encodes v into a new byte slice. If v is a Sizer the buffer is
// allocated once up front.
func Marshal(v Encoder, opts Options) ([]byte, error) {
	var buf []byte
	if s, ok := v.(Sizer); ok {
		if size := s.Size(); size > 0 {
			buf = make([]byte, 0, size)
		}
	}
	m := NewMemoryStream(buf)
	w, err := NewWriter(m, opts)
	if err != nil {
		return nil, err
	}
	if err := v.Encode(w); err != nil {
		return nil, err
	}
	return m.Bytes(), nil
}

// Unmarshal decodes v from data. Bytes left over after v is decoded are
// rejected with ErrTrailingData, which prevents parsing ambiguous payloads.
func Unmarshal(data []byte, v Decoder, opts Options) error {
	s := NewSliceStream(data)
	r, err := NewReader(s, opts)
	if err != nil {
		return err
	}
	if err := v.Decode(r); err != nil {
		return err
	}
	if s.Available() > 0 {
		return fmt.Errorf("%w: %d of %d bytes unread", ErrTrailingData, s.Available(), len(data))
	}
	return nil
}

// AppendMarshal appends the encoding of v to dst and returns the extended slice.
func AppendMarshal(dst []byte, v Encoder, opts Options) ([]byte, error) {
	m := NewMemoryStream(dst)
	if _, err := m.Seek(uint64(len(dst))); err != nil {
		return dst, err
	}
	w, err := NewWriter(m, opts)
	if err != nil {
		return dst, err
	}
	if err := v.Encode(w); err != nil {
		return dst, err
	}
	return m.Bytes(), nil
}
