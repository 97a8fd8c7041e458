// Package replay stores and replays recorded builder call streams.
//
// A stream stands in for the bitcode decoder: its ops are the generator
// calls the decoder would make, in stream order, with operands given as
// absolute symbol table indices. Streams are stored as msgpack (.irs) or
// written by hand as TOML.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
)

// Stream is one recorded module.
type Stream struct {
	Name  string       `msgpack:"name" toml:"name"`
	Types []TypeRecord `msgpack:"types" toml:"type"`
	Ops   []Op         `msgpack:"ops" toml:"op"`
}

// TypeRecord describes one entry of the type table. Element, field,
// parameter and return types refer to earlier entries by index.
type TypeRecord struct {
	Kind     string `msgpack:"kind" toml:"kind"`
	Name     string `msgpack:"name,omitempty" toml:"name"`
	Width    uint64 `msgpack:"width,omitempty" toml:"width"`
	Len      uint64 `msgpack:"len,omitempty" toml:"len"`
	Elem     int    `msgpack:"elem,omitempty" toml:"elem"`
	Fields   []int  `msgpack:"fields,omitempty" toml:"fields"`
	Packed   bool   `msgpack:"packed,omitempty" toml:"packed"`
	Ret      int    `msgpack:"ret,omitempty" toml:"ret"`
	Params   []int  `msgpack:"params,omitempty" toml:"params"`
	Variadic bool   `msgpack:"variadic,omitempty" toml:"variadic"`
}

// Op is one builder call.
type Op struct {
	Code  string   `msgpack:"code" toml:"code"`
	Type  int      `msgpack:"type,omitempty" toml:"type"`
	Args  []int64  `msgpack:"args,omitempty" toml:"args"`
	Text  []string `msgpack:"text,omitempty" toml:"text"`
	Float float64  `msgpack:"float,omitempty" toml:"float"`
}

// ErrEmptyStream is returned when a decoded stream has no ops.
var ErrEmptyStream = errors.New("replay: stream has no ops")

// Encode writes s as msgpack.
func Encode(w io.Writer, s *Stream) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// Decode reads a msgpack stream.
func Decode(r io.Reader) (*Stream, error) {
	var s Stream
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if len(s.Ops) == 0 {
		return nil, ErrEmptyStream
	}
	return &s, nil
}

// DecodeTOML reads a stream written as [[type]] and [[op]] tables.
func DecodeTOML(r io.Reader) (*Stream, error) {
	var s Stream
	meta, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("replay: decode toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("replay: unknown keys %v", undecoded)
	}
	if len(s.Ops) == 0 {
		return nil, ErrEmptyStream
	}
	return &s, nil
}

// Load reads the stream at path; .toml files are TOML, anything else msgpack.
// An unnamed stream is named after the file.
func Load(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s *Stream
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		s, err = DecodeTOML(f)
	} else {
		s, err = Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Save writes s to path as msgpack.
func Save(path string, s *Stream) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, s)
}
