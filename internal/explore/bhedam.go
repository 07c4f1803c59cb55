package explore

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
	"github.com/papapumpkin/graha/internal/telemetry"
)

// MatchKind records how a rotated scale was named.
type MatchKind int

const (
	// MatchNone means no catalog entry has this scale.
	MatchNone MatchKind = iota
	// MatchExact means the ascending and descending forms match an entry.
	MatchExact
	// MatchAscending means only the ascending degrees match an entry; the
	// entry's own forms are shown instead of the synthesized ones.
	MatchAscending
)

func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchAscending:
		return "ascending"
	default:
		return "none"
	}
}

// Result is one named graha bhedam.
type Result struct {
	From       swara.Label // input token that became the new tonic
	Ascending  string
	Descending string
	Name       string // empty when unknown
	Match      MatchKind
}

// Known reports whether the catalog names this scale.
func (r Result) Known() bool { return r.Match != MatchNone }

// Mapping renders the tonic shift, e.g. "S → R2".
func (r Result) Mapping() string { return "S → " + r.From.String() }

// Label renders the result heading, e.g. "Kharaharapriya (S → R2)".
func (r Result) Label() string {
	name := r.Name
	if !r.Known() {
		name = "Unknown"
	}
	return name + " (" + r.Mapping() + ")"
}

// FromPattern rotates pattern and names every resulting scale. A malformed
// pattern returns a *swara.InvalidSymbolError and no results.
func (x *Explorer) FromPattern(pattern string, opts graha.Options) ([]Result, error) {
	shifts, err := graha.RotateString(pattern, opts)
	if err != nil {
		return nil, err
	}
	results := nameShifts(x.Catalog().Index, shifts)
	x.emitRotation("", pattern, results)
	return results, nil
}

func nameShifts(idx *catalog.Index, shifts []graha.Shift) []Result {
	out := make([]Result, 0, len(shifts))
	for _, s := range shifts {
		asc := s.Ascending()
		r := Result{
			From:       s.From,
			Ascending:  swara.FormatLabels(asc),
			Descending: swara.FormatLabels(s.Descending()),
		}
		if name, ok := idx.LookupExact(r.Ascending, r.Descending); ok {
			r.Name, r.Match = name, MatchExact
		} else if name, ok := idx.LookupAscending(swara.Degrees(asc)); ok {
			r.Name, r.Match = name, MatchAscending
			if e, ok := idx.Get(name); ok {
				if a, d, ok := formMatching(e, swara.Degrees(asc)); ok {
					r.Ascending, r.Descending = a, d
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// formMatching finds the form of e whose ascent visits degrees.
func formMatching(e catalog.Entry, degrees []swara.Degree) (string, string, bool) {
	for _, f := range forms(e) {
		ls, err := swara.ParseScale(f.Ascending)
		if err != nil {
			continue
		}
		if equalDegrees(swara.Degrees(ls), degrees) {
			return f.Ascending, f.Descending, true
		}
	}
	return "", "", false
}

func equalDegrees(a, b []swara.Degree) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (x *Explorer) emitRotation(raga, pattern string, results []Result) {
	known := 0
	for _, r := range results {
		if r.Known() {
			known++
		}
	}
	x.emit(telemetry.Event{
		Kind: telemetry.KindRotation,
		Raga: raga,
		Data: map[string]any{"pattern": pattern, "results": len(results), "known": known},
	})
}

// Report is the graha bhedam of a catalog raga.
type Report struct {
	Resolution Resolution
	Kind       catalog.Kind
	Parent     string
	Ascending  string
	Descending string
	Results    []Result
}

// GrahaBhedam resolves name, rotates its primary ascending form and names
// the results. Ambiguous labels follow the governing melakarta, and every
// reachable scale is kept, full or not.
func (x *Explorer) GrahaBhedam(name string) (Report, error) {
	c := x.Catalog()
	res := x.resolve(c, name)
	if !res.Found {
		return Report{Resolution: res}, fmt.Errorf("%w: %s", ErrUnknownRaga, res.Name)
	}
	idx := c.Index
	e, _ := idx.Get(res.Name)

	asc, desc, ok := e.PrimaryForm()
	if !ok {
		return Report{Resolution: res}, fmt.Errorf("%w: %s", ErrNoForm, res.Name)
	}
	labels, err := swara.ParseScale(asc)
	if err != nil {
		return Report{Resolution: res}, fmt.Errorf("%s: %w", res.Name, err)
	}

	rep := Report{
		Resolution: res,
		Kind:       e.Kind,
		Ascending:  asc,
		Descending: desc,
	}
	rep.Parent, _ = idx.ParentOf(res.Name)

	opts := graha.Options{Parent: idx.ParentLabels(res.Name)}
	rep.Results = nameShifts(idx, graha.Rotate(labels, opts))
	x.emitRotation(res.Name, asc, rep.Results)
	return rep, nil
}

// Form is one named ascending/descending pair.
type Form struct {
	Name       string
	Ascending  string
	Descending string
}

func forms(e catalog.Entry) []Form {
	if e.IsRoot() {
		if e.Ascending == "" {
			return nil
		}
		return []Form{{Name: e.Name, Ascending: e.Ascending, Descending: e.Descending}}
	}
	out := make([]Form, 0, len(e.Variations))
	for _, v := range e.Variations {
		out = append(out, Form{Name: v.Name, Ascending: v.Ascending, Descending: v.Descending})
	}
	return out
}

// Info describes a catalog entry.
type Info struct {
	Resolution Resolution
	Name       string
	Kind       catalog.Kind
	Number     int
	Notes      string
	Parent     string
	Forms      []Form
	Children   []string
}

// Describe returns the catalog card for name.
func (x *Explorer) Describe(name string) (Info, error) {
	c := x.Catalog()
	res := x.resolve(c, name)
	if !res.Found {
		return Info{Resolution: res}, fmt.Errorf("%w: %s", ErrUnknownRaga, res.Name)
	}
	idx := c.Index
	e, _ := idx.Get(res.Name)
	info := Info{
		Resolution: res,
		Name:       e.Name,
		Kind:       e.Kind,
		Number:     e.Number,
		Notes:      e.Notes,
		Forms:      forms(e),
		Children:   idx.ChildrenOf(e.Name),
	}
	info.Parent, _ = idx.ParentOf(e.Name)
	return info, nil
}

// Relations is a melakarta with its janyas.
type Relations struct {
	Resolution Resolution
	Root       Form
	Number     int
	Children   []Form // primary form of each janya
}

// Relations resolves name and lists the melakarta family it belongs to: a
// janya jumps to its parent first.
func (x *Explorer) Relations(name string) (Relations, error) {
	c := x.Catalog()
	res := x.resolve(c, name)
	if !res.Found {
		return Relations{Resolution: res}, fmt.Errorf("%w: %s", ErrUnknownRaga, res.Name)
	}
	idx := c.Index

	rootName := res.Name
	if e, _ := idx.Get(rootName); !e.IsRoot() {
		p, ok := idx.ParentOf(rootName)
		if !ok {
			return Relations{Resolution: res}, fmt.Errorf("%w: %s", ErrNoParent, rootName)
		}
		rootName = p
	}
	root, ok := idx.Get(rootName)
	if !ok || !root.IsRoot() {
		return Relations{Resolution: res}, fmt.Errorf("%w: %s", ErrNoParent, res.Name)
	}

	rel := Relations{
		Resolution: res,
		Root:       Form{Name: root.Name, Ascending: root.Ascending, Descending: root.Descending},
		Number:     root.Number,
	}
	for _, child := range idx.ChildrenOf(rootName) {
		f := Form{Name: child}
		if e, ok := idx.Get(child); ok {
			f.Ascending, f.Descending, _ = e.PrimaryForm()
		}
		rel.Children = append(rel.Children, f)
	}
	return rel, nil
}

// Text renders results as plain lines, for logs and MCP replies.
func Text(results []Result) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%s\n  %s\n  %s\n", r.Label(), r.Ascending, r.Descending)
	}
	return sb.String()
}
