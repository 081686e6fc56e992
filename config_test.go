package binstream

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndianText(t *testing.T) {
	for in, want := range map[string]Endian{
		"big":    BigEndian,
		"BE":     BigEndian,
		"little": LittleEndian,
		" le ":   LittleEndian,
	} {
		var e Endian
		require.NoError(t, e.UnmarshalText([]byte(in)), in)
		assert.Equal(t, want, e, in)
	}

	var e Endian
	assert.Error(t, e.UnmarshalText([]byte("middle")))

	text, err := LittleEndian.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "little", string(text))
	_, err = Endian(7).MarshalText()
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, BigEndian, opts.Endian)
	assert.Nil(t, opts.MaxBufferSize)
	assert.NoError(t, opts.Guard(1<<40))
	assert.Equal(t, "endian=big max_buffer_size=unbounded", opts.String())

	limited := opts.WithMaxBufferSize(1024)
	assert.Nil(t, opts.MaxBufferSize, "WithMaxBufferSize must not modify the receiver")
	assert.NoError(t, limited.Guard(1024))
	assert.ErrorIs(t, limited.Guard(1025), ErrBufferTooLarge)
	assert.Equal(t, "endian=big max_buffer_size=1024", limited.String())
}

func TestParseOptions(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		opts, err := ParseOptions("endian = \"little\"\nmax_buffer_size = 4096\n")
		require.NoError(t, err)
		assert.Equal(t, LittleEndian, opts.Endian)
		require.NotNil(t, opts.MaxBufferSize)
		assert.EqualValues(t, 4096, *opts.MaxBufferSize)
	})

	t.Run("Empty", func(t *testing.T) {
		opts, err := ParseOptions("")
		require.NoError(t, err)
		assert.Equal(t, DefaultOptions(), opts)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := ParseOptions("endian = \"big\"\nmax_size = 1\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_size")
	})

	t.Run("BadValues", func(t *testing.T) {
		_, err := ParseOptions("endian = \"sideways\"")
		assert.Error(t, err)
		_, err = ParseOptions("max_buffer_size = -1")
		assert.Error(t, err)
		_, err = ParseOptions("max_buffer_size = \"lots\"")
		assert.Error(t, err)
	})
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binstream.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_buffer_size = 0\n"), 0o600))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, BigEndian, opts.Endian)
	require.NotNil(t, opts.MaxBufferSize)
	assert.Zero(t, *opts.MaxBufferSize)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(EnvEndian, "le")
		t.Setenv(EnvMaxBufferSize, "512")
		opts, err := DefaultOptions().ApplyEnv()
		require.NoError(t, err)
		assert.Equal(t, LittleEndian, opts.Endian)
		require.NotNil(t, opts.MaxBufferSize)
		assert.EqualValues(t, 512, *opts.MaxBufferSize)
	})

	t.Run("Unbounded", func(t *testing.T) {
		env := map[string]string{EnvMaxBufferSize: "none"}
		opts, err := DefaultOptions().WithMaxBufferSize(8).applyEnv(func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.Nil(t, opts.MaxBufferSize)
	})

	t.Run("Unset", func(t *testing.T) {
		base := Options{Endian: LittleEndian}.WithMaxBufferSize(3)
		opts, err := base.applyEnv(func(string) string { return "" })
		require.NoError(t, err)
		assert.Equal(t, base, opts)
	})

	t.Run("Invalid", func(t *testing.T) {
		env := map[string]string{EnvMaxBufferSize: "-5"}
		_, err := DefaultOptions().applyEnv(func(k string) string { return env[k] })
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvMaxBufferSize)
	})
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { SetLogger(zerolog.Nop()) })

	w, _ := newTestWriter(t, DefaultOptions().WithMaxBufferSize(2))
	require.ErrorIs(t, w.WriteBytes(make([]byte, 3)), ErrBufferTooLarge)

	out := buf.String()
	assert.Contains(t, out, `"module":"binstream"`)
	assert.Contains(t, out, `"requested":3`)
	assert.Contains(t, out, `"limit":2`)
}
