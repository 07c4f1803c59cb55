// Package swara maps scale-degree labels (S, R1 ... N3) onto the 12-point
// cyclic degree space and back. Four degrees admit two labels; choosing
// between them is the job of Resolve.
package swara

import (
	"strings"
)

// Octave is the number of degrees in one cycle.
const Octave = 12

// Degree is a position on the 12-point cyclic coordinate system.
type Degree int

// Mod reduces any integer onto [0, Octave).
func Mod(n int) Degree {
	return Degree(((n % Octave) + Octave) % Octave)
}

// Relative re-expresses d relative to tonic.
func (d Degree) Relative(tonic Degree) Degree {
	return Mod(int(d) - int(tonic))
}

// Ambiguous reports whether d admits two family labels.
func (d Degree) Ambiguous() bool {
	_, _, ok := Candidates(d)
	return ok
}

// Family is one of the seven canonical note families.
type Family uint8

// Families in canonical cyclic order.
const (
	FamilyS Family = iota
	FamilyR
	FamilyG
	FamilyM
	FamilyP
	FamilyD
	FamilyN
)

// NumFamilies is the length of the cyclic family order.
const NumFamilies = 7

var familyLetters = [NumFamilies]string{"S", "R", "G", "M", "P", "D", "N"}

// String returns the family letter.
func (f Family) String() string {
	if int(f) < NumFamilies {
		return familyLetters[f]
	}
	return "?"
}

// Next returns the family after f in cyclic order.
func (f Family) Next() Family {
	return Family((int(f) + 1) % NumFamilies)
}

// Label is a recognized degree label.
type Label uint8

// The complete label alphabet.
const (
	S Label = iota
	R1
	R2
	R3
	G1
	G2
	G3
	M1
	M2
	P
	D1
	D2
	D3
	N1
	N2
	N3
	numLabels
)

type labelInfo struct {
	text   string
	family Family
	degree Degree
}

var labels = [numLabels]labelInfo{
	S:  {"S", FamilyS, 0},
	R1: {"R1", FamilyR, 1},
	R2: {"R2", FamilyR, 2},
	R3: {"R3", FamilyR, 3},
	G1: {"G1", FamilyG, 2},
	G2: {"G2", FamilyG, 3},
	G3: {"G3", FamilyG, 4},
	M1: {"M1", FamilyM, 5},
	M2: {"M2", FamilyM, 6},
	P:  {"P", FamilyP, 7},
	D1: {"D1", FamilyD, 8},
	D2: {"D2", FamilyD, 9},
	D3: {"D3", FamilyD, 10},
	N1: {"N1", FamilyN, 9},
	N2: {"N2", FamilyN, 10},
	N3: {"N3", FamilyN, 11},
}

var byText = func() map[string]Label {
	m := make(map[string]Label, numLabels)
	for l := S; l < numLabels; l++ {
		m[labels[l].text] = l
	}
	return m
}()

// Alphabet returns every recognized label in declaration order.
func Alphabet() []Label {
	out := make([]Label, 0, numLabels)
	for l := S; l < numLabels; l++ {
		out = append(out, l)
	}
	return out
}

// String returns the family letter followed by the subscript.
func (l Label) String() string {
	if l < numLabels {
		return labels[l].text
	}
	return "?"
}

// Degree returns the degree l names.
func (l Label) Degree() Degree { return labels[l].degree }

// Family returns the family letter of l.
func (l Label) Family() Family { return labels[l].family }

// canonical holds the label for every fixed degree and the fallback label for
// the ambiguous ones.
var canonical = [Octave]Label{S, R1, R2, G2, G3, M1, M2, P, D1, D2, N2, N3}

// ambiguous lists the two valid families for each ambiguous degree, lower
// family first.
var ambiguous = map[Degree][2]Family{
	2:  {FamilyR, FamilyG},
	3:  {FamilyR, FamilyG},
	9:  {FamilyD, FamilyN},
	10: {FamilyD, FamilyN},
}

// Candidates returns the two valid families of an ambiguous degree.
func Candidates(d Degree) (Family, Family, bool) {
	fams, ok := ambiguous[Mod(int(d))]
	return fams[0], fams[1], ok
}

// Canonical returns the single label of a fixed degree, or the default label
// of an ambiguous one.
func Canonical(d Degree) Label {
	return canonical[Mod(int(d))]
}

// LabelFor names d, using hint to choose between the two labels of an
// ambiguous degree. A hint that is not valid for d selects the default label.
func LabelFor(d Degree, hint Family) Label {
	d = Mod(int(d))
	a, b, ok := Candidates(d)
	if !ok || (hint != a && hint != b) {
		return canonical[d]
	}
	for l := S; l < numLabels; l++ {
		if labels[l].degree == d && labels[l].family == hint {
			return l
		}
	}
	return canonical[d]
}

// ParseLabel decodes a single token.
func ParseLabel(token string) (Label, error) {
	l, ok := byText[token]
	if !ok {
		return 0, &InvalidSymbolError{Token: token, Position: -1}
	}
	return l, nil
}

// ParseScale splits s on whitespace and decodes every token. The first
// unrecognized token fails the whole call.
func ParseScale(s string) ([]Label, error) {
	fields := strings.Fields(s)
	out := make([]Label, 0, len(fields))
	for i, tok := range fields {
		l, ok := byText[tok]
		if !ok {
			return nil, &InvalidSymbolError{Token: tok, Position: i}
		}
		out = append(out, l)
	}
	return out, nil
}

// MustParseScale is ParseScale for static tables; it panics on bad input.
func MustParseScale(s string) []Label {
	out, err := ParseScale(s)
	if err != nil {
		panic(err)
	}
	return out
}

// Degrees maps labels onto degrees.
func Degrees(ls []Label) []Degree {
	out := make([]Degree, len(ls))
	for i, l := range ls {
		out[i] = l.Degree()
	}
	return out
}

// FormatLabels joins labels with single spaces.
func FormatLabels(ls []Label) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// LabelSet is an unordered set of labels.
type LabelSet map[Label]struct{}

// NewLabelSet builds a set from ls.
func NewLabelSet(ls ...Label) LabelSet {
	set := make(LabelSet, len(ls))
	for _, l := range ls {
		set[l] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set contains nothing.
func (s LabelSet) Has(l Label) bool {
	_, ok := s[l]
	return ok
}
