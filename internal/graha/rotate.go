// Package graha derives graha bhedam (tonic shift) scales: for an input
// scale, every scale obtained by treating one of its degrees as the new
// tonic.
package graha

import (
	"github.com/papapumpkin/graha/internal/swara"
)

// Options controls which rotations Rotate keeps.
type Options struct {
	// RequireAllFamilies drops rotations whose labels do not cover each of
	// the seven families exactly once.
	RequireAllFamilies bool
	// Parent biases ambiguous labels towards the ones a parent scale uses.
	Parent swara.LabelSet
}

// AutoOptions keeps only full scales when pattern is itself heptatonic and
// every reachable subset scale otherwise.
func AutoOptions(pattern []swara.Label, parent swara.LabelSet) Options {
	return Options{
		RequireAllFamilies: IsHeptatonic(pattern),
		Parent:             parent,
	}
}

// Shift is one rotation of the input scale.
type Shift struct {
	Index  int           // position of the new tonic in the closed input
	From   swara.Label   // input token that became the new tonic
	Labels []swara.Label // ascending form relative to the new tonic
}

// Rotate computes every graha bhedam of pattern. The pattern is closed on
// its tonic first; shifts whose new tonic coincides with the original tonic
// are skipped.
func Rotate(pattern []swara.Label, opts Options) []Shift {
	if len(pattern) == 0 {
		return nil
	}

	tokens := make([]swara.Label, len(pattern), len(pattern)+1)
	copy(tokens, pattern)
	if tokens[len(tokens)-1].Degree() != 0 {
		tokens = append(tokens, swara.S)
	}
	base := swara.Degrees(tokens)
	n := len(base)
	origTonic := base[0]

	var shifts []Shift
	for shift := 1; shift < n; shift++ {
		newTonic := base[shift]
		if newTonic == origTonic {
			continue
		}

		rotated := make([]swara.Degree, 0, n)
		for i := range n {
			rotated = append(rotated, base[(shift+i)%n].Relative(newTonic))
		}

		unique := dedupe(rotated)
		if len(unique) < 7 && unique[len(unique)-1] != 0 {
			unique = append(unique, 0)
		}

		labels := swara.Resolve(unique, opts.Parent)
		if opts.RequireAllFamilies && !CoversFamiliesOnce(labels) {
			continue
		}

		shifts = append(shifts, Shift{
			Index:  shift,
			From:   tokens[shift],
			Labels: labels,
		})
	}
	return shifts
}

// RotateString parses pattern and rotates it. Parse failures are returned as
// *swara.InvalidSymbolError and no shifts are produced.
func RotateString(pattern string, opts Options) ([]Shift, error) {
	labels, err := swara.ParseScale(pattern)
	if err != nil {
		return nil, err
	}
	return Rotate(labels, opts), nil
}

// dedupe keeps the first occurrence of every degree.
func dedupe(seq []swara.Degree) []swara.Degree {
	var seen [swara.Octave]bool
	out := make([]swara.Degree, 0, len(seq))
	for _, d := range seq {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
