package binstream

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry is a record with a backpatched length: a name followed by a list of
// nested groups, each group itself sized. Decode keeps only the group IDs and
// relies on ReadSized to skip the payloads.
type entry struct {
	Name   string
	Groups []group
}

type group struct {
	ID   uint16
	Data []byte
}

func (e *entry) Encode(w *Writer) error {
	return WriteSized[uint32](w, func(w *Writer) error {
		if err := w.WriteString(e.Name); err != nil {
			return err
		}
		if err := w.WriteUint8(uint8(len(e.Groups))); err != nil {
			return err
		}
		for _, g := range e.Groups {
			err := WriteSized[uint16](w, func(w *Writer) error {
				if err := w.WriteUint16(g.ID); err != nil {
					return err
				}
				return w.WriteBytes(g.Data)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *entry) Decode(r *Reader) error {
	return ReadSized[uint32](r, func(r *Reader) error {
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		count, err := r.ReadUint8()
		if err != nil {
			return err
		}
		groups := make([]group, count)
		for i := range groups {
			err := ReadSized[uint16](r, func(r *Reader) error {
				id, err := r.ReadUint16()
				groups[i].ID = id
				return err
			})
			if err != nil {
				return err
			}
		}
		e.Name, e.Groups = name, groups
		return nil
	})
}

func TestWriteSizedLayout(t *testing.T) {
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, WriteSized[uint16](w, func(w *Writer) error {
		return w.WriteBytes([]byte{0xAA, 0xBB, 0xCC})
	}))
	require.NoError(t, w.WriteUint8(0xFF))
	assert.Equal(t, []byte{0x00, 0x03, 0xAA, 0xBB, 0xCC, 0xFF}, m.Bytes())

	le, lm := newTestWriter(t, Options{Endian: LittleEndian})
	require.NoError(t, WriteSized[uint32](le, func(w *Writer) error { return nil }))
	assert.Equal(t, []byte{0, 0, 0, 0}, lm.Bytes())
}

func TestNestedSizedRecords(t *testing.T) {
	in := &entry{
		Name: "root",
		Groups: []group{
			{ID: 1, Data: bytes.Repeat([]byte{1}, 1024)},
			{ID: 2},
		},
	}
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, in.Encode(w))
	require.NoError(t, w.WriteUint8(0x7E))

	end, err := w.Position()
	require.NoError(t, err)
	assert.EqualValues(t, len(m.Bytes()), end, "the writer must end up after the record")

	// Decode skips the group payloads it does not read.
	r := newTestReader(t, m.Bytes(), DefaultOptions())
	var out entry
	require.NoError(t, out.Decode(r))
	assert.Equal(t, "root", out.Name)
	require.Len(t, out.Groups, 2)
	assert.Equal(t, uint16(1), out.Groups[0].ID)
	assert.Equal(t, uint16(2), out.Groups[1].ID)

	trailer, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7E), trailer)

	// The outer length field covers exactly the bytes between it and the trailer.
	outer := newTestReader(t, m.Bytes(), DefaultOptions())
	n, err := SkipSized[uint32](outer)
	require.NoError(t, err)
	assert.EqualValues(t, len(m.Bytes())-4-1, n)
}

func TestReadSizedOverRead(t *testing.T) {
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, WriteSized[uint8](w, func(w *Writer) error { return w.WriteUint8(1) }))
	require.NoError(t, w.WriteUint32(0))

	r := newTestReader(t, m.Bytes(), DefaultOptions())
	err := ReadSized[uint8](r, func(r *Reader) error {
		_, err := r.ReadUint32()
		return err
	})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestWriteSizedOverflow(t *testing.T) {
	w, _ := newTestWriter(t, DefaultOptions())
	err := WriteSized[uint8](w, func(w *Writer) error {
		return w.WriteZeros(256)
	})
	assert.ErrorIs(t, err, ErrBufferTooLarge)
}

func TestWriteSizedBodyError(t *testing.T) {
	w, _ := newTestWriter(t, DefaultOptions().WithMaxBufferSize(4))
	err := WriteSized[uint32](w, func(w *Writer) error {
		return w.WriteBytes(make([]byte, 8))
	})
	assert.ErrorIs(t, err, ErrBufferTooLarge)
}

func TestSkipSizedHostileLength(t *testing.T) {
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, w.WriteUint64(0))
	require.NoError(t, w.WriteUint64(math.MaxUint64-15))

	r := newTestReader(t, m.Bytes(), DefaultOptions())
	_, err := r.Seek(8)
	require.NoError(t, err)
	_, err = SkipSized[uint64](r)
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)

	pos, err := r.Position()
	require.NoError(t, err)
	assert.EqualValues(t, 16, pos, "the reader must never move backwards")
}

func TestSkipSizedPastEnd(t *testing.T) {
	r := newTestReader(t, []byte{0, 5, 1, 2}, DefaultOptions())
	_, err := SkipSized[uint16](r)
	assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestReadSizedTruncated(t *testing.T) {
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, w.WriteUint32(100))
	require.NoError(t, w.WriteUint32(7))

	called := false
	r := newTestReader(t, m.Bytes(), DefaultOptions())
	err := ReadSized[uint32](r, func(r *Reader) error {
		called = true
		_, err := r.ReadUint32()
		return err
	})
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	assert.False(t, called, "a record longer than the stream is rejected before its body runs")

	pos, err := r.Position()
	require.NoError(t, err)
	assert.EqualValues(t, 4, pos)
}

func TestReadSizedUnknownLength(t *testing.T) {
	w, m := newTestWriter(t, DefaultOptions())
	require.NoError(t, WriteSized[uint8](w, func(w *Writer) error {
		return w.WriteBytes([]byte{1, 2, 3})
	}))
	require.NoError(t, w.WriteUint8(9))

	fs, err := NewForwardReader(bytes.NewReader(m.Bytes()))
	require.NoError(t, err)
	r, err := NewReader(fs, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, ReadSized[uint8](r, func(r *Reader) error {
		_, err := r.ReadUint8()
		return err
	}))
	trailer, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(9), trailer)
}
