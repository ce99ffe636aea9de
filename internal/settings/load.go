package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a settings file. Settings absent from the file keep their
// default values.
func Load(path string) (Values, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Values{}, &LoadError{Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return Values{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	v, err := Decode(f, format)
	if err != nil {
		return Values{}, &LoadError{Path: path, Err: err}
	}
	return v, nil
}

// Decode parses settings from r, starting from Defaults.
func Decode(r io.Reader, format Format) (Values, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Values{}, fmt.Errorf("reading settings: %w", err)
	}

	v := Defaults()
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&v)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) > 0 {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			err = dec.Decode(&v)
		}
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return Values{}, fmt.Errorf("parsing settings: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Values{}, err
	}
	return v, nil
}

// LoadInto reads path and applies it to s.
func LoadInto(s *Settings, path string) error {
	v, err := Load(path)
	if err != nil {
		return err
	}
	return s.Apply(v, path)
}
