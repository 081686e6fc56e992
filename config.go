package binstream

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvEndian        = "BINSTREAM_ENDIAN"
	EnvMaxBufferSize = "BINSTREAM_MAX_BUFFER_SIZE"
)

type fileOptions struct {
	Endian        string `toml:"endian"`
	MaxBufferSize int64  `toml:"max_buffer_size"`
}

// LoadOptions reads Options from a TOML file. Keys that are absent keep their
// DefaultOptions value; unknown keys are an error.
//
//	endian = "little"
//	max_buffer_size = 1048576
func LoadOptions(path string) (Options, error) {
	var raw fileOptions
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Options{}, fmt.Errorf("binstream: load options: %w", err)
	}
	return buildOptions(raw, meta)
}

// ParseOptions is LoadOptions for a TOML document held in memory.
func ParseOptions(doc string) (Options, error) {
	var raw fileOptions
	meta, err := toml.Decode(doc, &raw)
	if err != nil {
		return Options{}, fmt.Errorf("binstream: parse options: %w", err)
	}
	return buildOptions(raw, meta)
}

func buildOptions(raw fileOptions, meta toml.MetaData) (Options, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("binstream: unknown option %q", undecoded[0].String())
	}
	opts := DefaultOptions()
	if meta.IsDefined("endian") {
		if err := opts.Endian.UnmarshalText([]byte(raw.Endian)); err != nil {
			return Options{}, err
		}
	}
	if meta.IsDefined("max_buffer_size") {
		if raw.MaxBufferSize < 0 {
			return Options{}, fmt.Errorf("binstream: max_buffer_size must not be negative, got %d", raw.MaxBufferSize)
		}
		opts = opts.WithMaxBufferSize(uint64(raw.MaxBufferSize))
	}
	return opts, nil
}

// ApplyEnv overrides o from BINSTREAM_ENDIAN and BINSTREAM_MAX_BUFFER_SIZE.
// Unset or empty variables leave o unchanged. BINSTREAM_MAX_BUFFER_SIZE also
// accepts "none" or "unbounded" to clear the ceiling.
func (o Options) ApplyEnv() (Options, error) {
	return o.applyEnv(os.Getenv)
}

func (o Options) applyEnv(getenv func(string) string) (Options, error) {
	if raw := strings.TrimSpace(getenv(EnvEndian)); raw != "" {
		if err := o.Endian.UnmarshalText([]byte(raw)); err != nil {
			return o, fmt.Errorf("%s: %w", EnvEndian, err)
		}
	}
	switch raw := strings.ToLower(strings.TrimSpace(getenv(EnvMaxBufferSize))); raw {
	case "":
	case "none", "unbounded":
		o.MaxBufferSize = nil
	default:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return o, fmt.Errorf("%s: %w", EnvMaxBufferSize, err)
		}
		o = o.WithMaxBufferSize(n)
	}
	return o, nil
}
