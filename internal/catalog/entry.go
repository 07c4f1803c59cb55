// Package catalog indexes a reference set of named scales: root
// (melakarta) scales and the derived (janya) scales affiliated with them.
package catalog

import (
	"fmt"
	"strings"
)

// Kind distinguishes root scales from derived ones.
type Kind string

const (
	// KindRoot is a full seven-family reference scale.
	KindRoot Kind = "root"
	// KindDerived is a named scale affiliated with a root.
	KindDerived Kind = "derived"
)

// UnmarshalText accepts the traditional names as well.
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "root", "melakarta", "janaka":
		*k = KindRoot
	case "derived", "janya":
		*k = KindDerived
	default:
		return fmt.Errorf("unknown raga kind %q", string(b))
	}
	return nil
}

// Variation is one named ascending/descending pair of a derived scale.
type Variation struct {
	Name       string `toml:"name,omitempty"`
	Ascending  string `toml:"arohanam"`
	Descending string `toml:"avarohanam,omitempty"`
}

// Entry is a named scale record.
type Entry struct {
	Name string `toml:"name"`
	Kind Kind   `toml:"kind"`

	// Root fields.
	Number     int      `toml:"number,omitempty"`
	Notes      string   `toml:"notes,omitempty"`
	Ascending  string   `toml:"arohanam,omitempty"`
	Descending string   `toml:"avarohanam,omitempty"`
	Children   []string `toml:"children,omitempty"`

	// Derived fields.
	Parent     string      `toml:"parent,omitempty"`
	Variations []Variation `toml:"variation,omitempty"`
}

// IsRoot reports whether e is a root scale.
func (e Entry) IsRoot() bool { return e.Kind == KindRoot }

// PrimaryForm returns the ascending and descending form used to represent
// the entry: a root's own form, or a derived entry's first variation.
func (e Entry) PrimaryForm() (asc, desc string, ok bool) {
	if e.IsRoot() {
		return e.Ascending, e.Descending, e.Ascending != ""
	}
	for _, v := range e.Variations {
		if v.Ascending != "" {
			return v.Ascending, v.Descending, true
		}
	}
	return "", "", false
}

// clone deep-copies the slices of e so the index never shares them with
// callers.
func (e Entry) clone() Entry {
	out := e
	out.Children = append([]string(nil), e.Children...)
	out.Variations = append([]Variation(nil), e.Variations...)
	return out
}
