package catalog

import (
	"bytes"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// File is the on-disk catalog format: [[raga]] tables in registration order
// plus an optional [aliases] table mapping alternate spellings to catalog
// names.
//
//	[aliases]
//	Shankarabharanam = "Dheerasankarabharanam"
//
//	[[raga]]
//	name = "Mohanam"
//	kind = "janya"
//	parent = "Harikambhoji"
//
//	  [[raga.variation]]
//	  arohanam = "S R2 G3 P D2 S"
//	  avarohanam = "S D2 P G3 R2 S"
type File struct {
	Aliases map[string]string `toml:"aliases,omitempty"`
	Ragas   []Entry           `toml:"raga"`
}

// ParseFile decodes a TOML catalog.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes a TOML catalog file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadAliases reads a TOML file holding only an [aliases] table.
func LoadAliases(path string) (map[string]string, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Aliases, nil
}

// MarshalFile encodes f as TOML.
func MarshalFile(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}
