package graha

import (
	"slices"

	"github.com/papapumpkin/graha/internal/swara"
)

// IsHeptatonic reports whether the scale has at least seven distinct degrees.
func IsHeptatonic(ls []swara.Label) bool {
	var seen [swara.Octave]bool
	n := 0
	for _, l := range ls {
		if !seen[l.Degree()] {
			seen[l.Degree()] = true
			n++
		}
	}
	return n >= 7
}

// HasAllFamilies reports whether every family appears at least once.
func HasAllFamilies(ls []swara.Label) bool {
	var seen [swara.NumFamilies]bool
	n := 0
	for _, l := range ls {
		if !seen[l.Family()] {
			seen[l.Family()] = true
			n++
		}
	}
	return n == swara.NumFamilies
}

// CoversFamiliesOnce reports whether the labels name each family exactly
// once. A trailing upper tonic is not counted twice.
func CoversFamiliesOnce(ls []swara.Label) bool {
	if len(ls) > 1 && ls[len(ls)-1] == swara.S && ls[0] == swara.S {
		ls = ls[:len(ls)-1]
	}
	var seen [swara.NumFamilies]int
	for _, l := range ls {
		seen[l.Family()]++
	}
	for _, n := range seen {
		if n != 1 {
			return false
		}
	}
	return true
}

// Bookend returns ls with S prepended and appended where missing.
func Bookend(ls []swara.Label) []swara.Label {
	if len(ls) == 0 {
		return []swara.Label{swara.S}
	}
	out := make([]swara.Label, 0, len(ls)+2)
	if ls[0] != swara.S {
		out = append(out, swara.S)
	}
	out = append(out, ls...)
	if out[len(out)-1] != swara.S {
		out = append(out, swara.S)
	}
	return out
}

// Descending synthesizes a descending form from an ascending one: the
// bookended ascending form reversed, still starting and ending on S.
// Descending(Descending(a)) == a for any bookended a with an interior note.
func Descending(asc []swara.Label) []swara.Label {
	rev := Bookend(asc)
	slices.Reverse(rev)
	for len(rev) > 1 && rev[0] == swara.S && rev[1] == swara.S {
		rev = rev[1:]
	}
	if rev[len(rev)-1] != swara.S {
		rev = append(rev, swara.S)
	}
	return rev
}

// Ascending returns the display form of the shift: full scales missing an
// upper tonic get one appended.
func (s Shift) Ascending() []swara.Label {
	out := slices.Clone(s.Labels)
	if HasAllFamilies(out) && out[len(out)-1] != swara.S {
		out = append(out, swara.S)
	}
	return out
}

// Descending is the synthesized descending form of the display ascent.
func (s Shift) Descending() []swara.Label {
	return Descending(s.Ascending())
}

// Mapping renders which input token became the new tonic, e.g. "S → R2".
func (s Shift) Mapping() string {
	return "S → " + s.From.String()
}
