package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed data/janya.toml
var janyaTOML []byte

// Builtin returns the catalog shipped with the binary: the 72 melakartas
// followed by the embedded janya table, plus its alias table.
func Builtin() (*File, error) {
	f, err := ParseFile(janyaTOML)
	if err != nil {
		return nil, fmt.Errorf("catalog: builtin janya table: %w", err)
	}
	return &File{
		Aliases: f.Aliases,
		Ragas:   append(Melakartas(), f.Ragas...),
	}, nil
}
