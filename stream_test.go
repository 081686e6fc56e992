package binstream

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StreamContractSuite checks the Stream contract against one backend. open
// returns an empty, writable stream.
type StreamContractSuite struct {
	suite.Suite
	open func(t *testing.T) Stream
}

func (s *StreamContractSuite) TestOverlappingFloatWrites() {
	w, err := NewWriter(s.open(s.T()), DefaultOptions())
	s.Require().NoError(err)

	for _, v := range []float32{1.25, 2.5, 5} {
		s.Require().NoError(w.WriteFloat32(v))
	}
	_, err = w.Seek(0)
	s.Require().NoError(err)
	for _, v := range []float32{-8, 16.5, 0} {
		s.Require().NoError(w.WriteFloat32(v))
	}
	s.Require().NoError(w.Flush())

	n, err := w.Len()
	s.Require().NoError(err)
	s.Assert().EqualValues(12, n)

	r, err := NewReader(w.Stream(), DefaultOptions())
	s.Require().NoError(err)
	_, err = r.Seek(0)
	s.Require().NoError(err)
	for _, want := range []float32{-8, 16.5, 0} {
		got, err := r.ReadFloat32()
		s.Require().NoError(err)
		s.Assert().Equal(want, got)
	}
	_, err = r.ReadFloat32()
	s.Assert().ErrorIs(err, ErrUnexpectedEndOfData)
}

func (s *StreamContractSuite) TestLenIsIdempotent() {
	st := s.open(s.T())
	_, err := st.Write([]byte{1, 2, 3, 4, 5})
	s.Require().NoError(err)
	_, err = st.Seek(2)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		n, err := st.Len()
		s.Require().NoError(err)
		s.Assert().EqualValues(5, n)
		pos, err := st.Position()
		s.Require().NoError(err)
		s.Assert().EqualValues(2, pos)
	}
}

func (s *StreamContractSuite) TestReadPastLogicalEnd() {
	st := s.open(s.T())
	_, err := st.Write(make([]byte, 8))
	s.Require().NoError(err)
	_, err = st.Seek(6)
	s.Require().NoError(err)

	err = st.ReadFull(make([]byte, 4))
	s.Assert().ErrorIs(classify("read", err), ErrUnexpectedEndOfData)
}

func (s *StreamContractSuite) TestBackpatch() {
	for _, size := range []int{0, 1024} {
		w, err := NewWriter(s.open(s.T()), DefaultOptions())
		s.Require().NoError(err)

		payload := bytes.Repeat([]byte{0xAB}, size)
		s.Require().NoError(w.WriteUint8(0x01))
		s.Require().NoError(WriteSized[uint32](w, func(w *Writer) error {
			return w.WriteBytes(payload)
		}))
		s.Require().NoError(w.WriteUint8(0x02))
		s.Require().NoError(w.Flush())

		r, err := NewReader(w.Stream(), DefaultOptions())
		s.Require().NoError(err)
		_, err = r.Seek(1)
		s.Require().NoError(err)
		n, err := r.ReadUint32()
		s.Require().NoError(err)
		s.Assert().EqualValues(size, n)
		body, err := r.ReadBytes(uint64(n))
		s.Require().NoError(err)
		s.Assert().Equal(payload, body)
		trailer, err := r.ReadUint8()
		s.Require().NoError(err)
		s.Assert().Equal(uint8(0x02), trailer)
	}
}

func TestMemoryStreamContract(t *testing.T) {
	suite.Run(t, &StreamContractSuite{open: func(t *testing.T) Stream {
		return NewMemoryStream(nil)
	}})
}

func TestFileStreamContract(t *testing.T) {
	suite.Run(t, &StreamContractSuite{open: func(t *testing.T) Stream {
		f, err := os.Create(filepath.Join(t.TempDir(), "stream.bin"))
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return NewFileStream(f)
	}})
}

func TestSeekerStreamContract(t *testing.T) {
	suite.Run(t, &StreamContractSuite{open: func(t *testing.T) Stream {
		f, err := os.Create(filepath.Join(t.TempDir(), "seeker.bin"))
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return NewSeekerStream(f)
	}})
}

func TestBufferedStreamContract(t *testing.T) {
	suite.Run(t, &StreamContractSuite{open: func(t *testing.T) Stream {
		b, err := NewBufferedStream(NewMemoryStream(nil))
		require.NoError(t, err)
		t.Cleanup(func() { b.Close() })
		return b
	}})
}

func TestMemoryStream(t *testing.T) {
	t.Run("SeekPastEndZeroFills", func(t *testing.T) {
		m := NewMemoryStream(nil)
		_, err := m.Seek(3)
		require.NoError(t, err)
		_, err = m.Write([]byte{9})
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 9}, m.Bytes())
	})

	t.Run("StaleCapacityUnreachable", func(t *testing.T) {
		backing := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		m := NewMemoryStream(backing[:2])
		err := m.ReadFull(make([]byte, 4))
		assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
	})

	t.Run("EmptyReadPastEnd", func(t *testing.T) {
		m := NewMemoryStream([]byte{1, 2})
		_, err := m.Seek(5)
		require.NoError(t, err)
		assert.NoError(t, m.ReadFull(nil))
		assert.ErrorIs(t, m.ReadFull(make([]byte, 1)), ErrUnexpectedEndOfData)
	})

	t.Run("Reset", func(t *testing.T) {
		m := NewMemoryStream(nil)
		_, err := m.Write([]byte{1, 2, 3})
		require.NoError(t, err)
		m.Reset()
		n, err := m.Len()
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, m.Available())
	})
}

func TestSliceStream(t *testing.T) {
	sl := NewSliceStream([]byte{1, 2, 3})
	_, err := sl.Write([]byte{4})
	assert.ErrorIs(t, err, ErrReadOnly)

	buf := make([]byte, 2)
	require.NoError(t, sl.ReadFull(buf))
	assert.Equal(t, []byte{1, 2}, buf)
	assert.Equal(t, 1, sl.Available())
	sl.Reset()
	assert.Equal(t, 3, sl.Available())

	_, err = sl.Seek(10)
	require.NoError(t, err)
	assert.NoError(t, sl.ReadFull([]byte{}))
	r, err := NewReader(sl, DefaultOptions())
	require.NoError(t, err)
	b, err := r.ReadBytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestSeekerStreamReadOnly(t *testing.T) {
	st := NewSeekerStream(bytes.NewReader([]byte{1, 2, 3, 4}))
	_, err := st.Write([]byte{1})
	assert.ErrorIs(t, err, ErrReadOnly)

	r, err := NewReader(st, DefaultOptions())
	require.NoError(t, err)
	n, err := r.Len()
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	v, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)
	_, err = r.ReadUint8()
	assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestForwardStream(t *testing.T) {
	t.Run("Reader", func(t *testing.T) {
		fs, err := NewForwardReader(bytes.NewBuffer([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
		require.NoError(t, err)
		r, err := NewReader(fs, DefaultOptions())
		require.NoError(t, err)

		_, err = r.Seek(5)
		require.NoError(t, err)
		v, err := r.ReadUint8()
		require.NoError(t, err)
		assert.Equal(t, uint8(5), v)

		_, err = r.Seek(2)
		assert.ErrorIs(t, err, ErrUnsupportedNegativeSeek)
		_, err = r.Len()
		assert.ErrorIs(t, err, ErrLengthUnknown)

		_, err = r.ReadUint64()
		assert.ErrorIs(t, err, ErrUnexpectedEndOfData)

		_, err = fs.Write([]byte{1})
		assert.ErrorIs(t, err, ErrReadOnly)
	})

	t.Run("Writer", func(t *testing.T) {
		var out bytes.Buffer
		fw, err := NewForwardWriter(&out)
		require.NoError(t, err)
		w, err := NewWriter(fw, DefaultOptions())
		require.NoError(t, err)

		require.NoError(t, w.WriteUint8(1))
		_, err = w.Seek(4)
		require.NoError(t, err)
		require.NoError(t, w.WriteUint8(2))
		assert.Equal(t, []byte{1, 0, 0, 0, 2}, out.Bytes())

		err = WriteSized[uint16](w, func(w *Writer) error { return w.WriteUint8(3) })
		assert.ErrorIs(t, err, ErrUnsupportedNegativeSeek, "backpatching needs a backward seek")

		err = w.Stream().ReadFull(make([]byte, 1))
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := NewForwardReader(nil)
		assert.ErrorIs(t, err, ErrNilIO)
		_, err = NewForwardWriter(nil)
		assert.ErrorIs(t, err, ErrNilIO)
	})
}

func TestBufferedStream(t *testing.T) {
	m := NewMemoryStream(nil)
	b, err := NewBufferedStream(m)
	require.NoError(t, err)

	w, err := NewWriter(b, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, w.WriteUint32(0xCAFEBABE))

	assert.Equal(t, 4, b.Buffered())
	assert.Empty(t, m.Bytes(), "writes stay in the buffer until a flush")
	pos, err := w.Position()
	require.NoError(t, err)
	assert.EqualValues(t, 4, pos)

	big := make([]byte, CHUNK_SIZE+1)
	require.NoError(t, w.WriteBytes(big))
	assert.Zero(t, b.Buffered(), "large writes bypass the buffer")
	assert.Len(t, m.Bytes(), 4+CHUNK_SIZE+1)

	require.NoError(t, w.WriteUint8(7))
	require.NoError(t, b.Close())
	assert.Len(t, m.Bytes(), 4+CHUNK_SIZE+2)
	assert.Zero(t, b.Buffered())

	same, err := NewBufferedStream(b)
	require.NoError(t, err)
	assert.Same(t, b, same)

	_, err = NewBufferedStream(nil)
	assert.ErrorIs(t, err, ErrNilIO)
}
