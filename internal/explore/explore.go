// Package explore answers questions about a raga catalog: resolving typed
// names, deriving graha bhedam scales and naming them, and walking the
// melakarta/janya relation. It holds the current catalog snapshot and swaps
// it wholesale when the catalog is reloaded.
package explore

import (
	"strings"
	"sync/atomic"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/fuzzy"
	"github.com/papapumpkin/graha/internal/swara"
	"github.com/papapumpkin/graha/internal/telemetry"
)

// Catalog is an immutable snapshot: an index, the matcher over its names,
// and the issues found while building it.
type Catalog struct {
	Source  string
	Index   *catalog.Index
	Matcher *fuzzy.Matcher
	Issues  []catalog.Issue
}

// NewCatalog indexes f. source is a human-readable description used in
// events and status lines.
func NewCatalog(source string, f *catalog.File) *Catalog {
	idx, issues := catalog.Build(f.Ragas)
	return &Catalog{
		Source:  source,
		Index:   idx,
		Matcher: fuzzy.New(idx.Names(), f.Aliases),
		Issues:  issues,
	}
}

// Explorer serves queries against the current catalog snapshot. It is safe
// for concurrent use; Replace publishes a new snapshot atomically.
type Explorer struct {
	cur    atomic.Pointer[Catalog]
	events *telemetry.Emitter
}

// New returns an explorer over c. events may be nil.
func New(c *Catalog, events *telemetry.Emitter) *Explorer {
	x := &Explorer{events: events}
	x.cur.Store(c)
	x.announce(telemetry.KindCatalogLoaded, c)
	return x
}

// Catalog returns the current snapshot.
func (x *Explorer) Catalog() *Catalog { return x.cur.Load() }

// Replace swaps in a freshly built catalog.
func (x *Explorer) Replace(c *Catalog) {
	x.cur.Store(c)
	x.announce(telemetry.KindCatalogReloaded, c)
}

func (x *Explorer) announce(kind string, c *Catalog) {
	x.emit(telemetry.Event{
		Kind:   kind,
		Source: c.Source,
		Data: map[string]int{
			"entries": c.Index.Len(),
			"roots":   len(c.Index.Roots()),
			"issues":  len(c.Issues),
		},
	})
	for _, is := range c.Issues {
		x.emit(telemetry.Event{
			Kind:   telemetry.KindCatalogIssue,
			Source: c.Source,
			Raga:   is.Name,
			Data: map[string]string{
				"issue":  string(is.Kind),
				"other":  is.Other,
				"detail": is.Detail,
			},
		})
	}
}

// emit drops write errors; the event log never fails a query.
func (x *Explorer) emit(evt telemetry.Event) {
	_ = x.events.Emit(evt)
}

// Resolution is the outcome of resolving a typed name.
type Resolution struct {
	Query     string
	Name      string // catalog name, or the trimmed query when not Found
	Found     bool
	Corrected bool // Name differs from what was typed
	Tier      fuzzy.Tier
}

// Resolve maps typed to a catalog name: a case-insensitive exact name
// first, then the fuzzy matcher. When both miss, Name keeps the literal
// input and Found is false.
func (x *Explorer) Resolve(typed string) Resolution {
	return x.resolve(x.Catalog(), typed)
}

// resolve runs Resolve against one snapshot so that a query never mixes
// catalogs across a reload.
func (x *Explorer) resolve(c *Catalog, typed string) Resolution {
	q := strings.TrimSpace(typed)
	res := Resolution{Query: typed, Name: q}

	if name, ok := c.Index.Canonical(q); ok {
		res.Name, res.Found, res.Tier = name, true, fuzzy.TierExact
		res.Corrected = name != q
	} else if m, ok := c.Matcher.Match(q); ok {
		res.Name, res.Found, res.Tier = m.Name, true, m.Tier
		res.Corrected = true
	}

	if res.Found {
		x.emit(telemetry.Event{
			Kind: telemetry.KindNameResolved,
			Raga: res.Name,
			Data: map[string]any{"query": typed, "tier": res.Tier.String(), "corrected": res.Corrected},
		})
	}
	return res
}

// Suggest returns close catalog names for an unresolved query.
func (x *Explorer) Suggest(typed string, limit int) []string {
	return x.Catalog().Matcher.Suggest(typed, limit)
}

// ParentLabels resolves name and returns the labels of the melakarta that
// governs it, for biasing ambiguous labels. Unknown names yield nil.
func (x *Explorer) ParentLabels(name string) swara.LabelSet {
	c := x.Catalog()
	res := x.resolve(c, name)
	if !res.Found {
		return nil
	}
	return c.Index.ParentLabels(res.Name)
}

// List returns catalog names of the given kind in collated order; an empty
// kind lists everything.
func (x *Explorer) List(kind catalog.Kind) []string {
	idx := x.Catalog().Index
	names := idx.Names()
	if kind == "" {
		return names
	}
	out := names[:0]
	for _, n := range names {
		if e, ok := idx.Get(n); ok && e.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
