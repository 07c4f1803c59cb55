package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
)

// Index is the read-only lookup structure over a catalog. It is built once by
// Build and never modified; a changed catalog means a new Index.
type Index struct {
	entries  map[string]Entry
	lower    map[string]string // lower-cased name -> canonical name
	names    []string          // collated
	roots    []string          // registration order
	pairs    map[string]string // "asc|desc" -> first registered name
	ascents  map[string]string // ascending degrees -> first registered name
	parent   map[string]string // derived -> root
	children map[string][]string
}

// Build indexes entries. Construction order is part of the contract: every
// root entry is registered, in input order, before any derived entry. For
// names, exact pairs, and derived-to-root relations the first registration
// wins, so a root that lists a derived scale owns it even when the derived
// entry declares another parent. Everything discarded that way is returned
// as an Issue.
func Build(entries []Entry) (*Index, []Issue) {
	b := &builder{idx: &Index{
		entries:  make(map[string]Entry, len(entries)),
		lower:    make(map[string]string, len(entries)),
		pairs:    make(map[string]string),
		ascents:  make(map[string]string),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}}

	for _, e := range entries {
		switch e.Kind {
		case KindRoot:
			b.addRoot(e)
		case KindDerived:
			// second pass
		default:
			b.issue(IssueInvalidForm, e.Name, "", fmt.Sprintf("unknown kind %q", e.Kind))
		}
	}
	for _, e := range entries {
		if e.Kind == KindDerived {
			b.addDerived(e)
		}
	}

	b.finish()
	return b.idx, b.issues
}

type builder struct {
	idx    *Index
	issues []Issue
}

func (b *builder) issue(kind IssueKind, name, other, detail string) {
	b.issues = append(b.issues, Issue{Kind: kind, Name: name, Other: other, Detail: detail})
}

// claim checks that name is usable and not yet registered.
func (b *builder) claim(name string) bool {
	if strings.TrimSpace(name) == "" {
		b.issue(IssueInvalidForm, name, "", "empty name")
		return false
	}
	if _, dup := b.idx.entries[name]; dup {
		b.issue(IssueDuplicateName, name, name, "")
		return false
	}
	return true
}

func (b *builder) store(e Entry) {
	b.idx.entries[e.Name] = e
	key := strings.ToLower(e.Name)
	if _, ok := b.idx.lower[key]; !ok {
		b.idx.lower[key] = e.Name
	}
}

func (b *builder) addRoot(e Entry) {
	if !b.claim(e.Name) {
		return
	}
	e = e.clone()
	e.Notes = squash(e.Notes)
	if e.Notes != "" {
		if _, err := swara.ParseScale(e.Notes); err != nil {
			b.issue(IssueInvalidForm, e.Name, "", "notes: "+err.Error())
			e.Notes = ""
		}
	}

	if e.Ascending == "" && e.Notes != "" {
		e.Ascending = e.Notes
	}
	asc, desc, err := normalizeForm(e.Ascending, e.Descending)
	if err != nil {
		b.issue(IssueInvalidForm, e.Name, "", err.Error())
	} else {
		e.Ascending, e.Descending = asc, desc
	}

	b.store(e)
	b.idx.roots = append(b.idx.roots, e.Name)
	if err == nil {
		b.addPair(e.Name, asc, desc)
	}

	for _, child := range e.Children {
		if owner, ok := b.idx.parent[child]; ok {
			b.issue(IssueParentConflict, child, owner, "also listed by "+e.Name)
			continue
		}
		b.idx.parent[child] = e.Name
		b.addChild(e.Name, child)
	}
}

func (b *builder) addDerived(e Entry) {
	if !b.claim(e.Name) {
		return
	}
	e = e.clone()

	parent, claimed := b.idx.parent[e.Name]
	switch {
	case claimed && e.Parent != "" && e.Parent != parent:
		b.issue(IssueParentConflict, e.Name, parent, "declares parent "+e.Parent)
	case !claimed && e.Parent != "":
		// Only roots can be parents; a dangling name is reported, not linked.
		if root, ok := b.idx.entries[e.Parent]; ok && root.IsRoot() {
			parent = e.Parent
			b.idx.parent[e.Name] = parent
		} else {
			b.issue(IssueUnknownParent, e.Name, "", "parent "+e.Parent)
		}
	}

	var notes map[swara.Family]string
	if parent != "" {
		notes = familyLabels(b.idx.entries[parent])
		b.addChild(parent, e.Name)
	}

	valid := make([]bool, len(e.Variations))
	for i := range e.Variations {
		v := &e.Variations[i]
		if v.Name == "" {
			v.Name = fmt.Sprintf("%s%d", e.Name, i+1)
		}
		asc, desc, err := normalizeForm(twelveNote(v.Ascending, notes), twelveNote(v.Descending, notes))
		if err != nil {
			b.issue(IssueInvalidForm, e.Name, "", v.Name+": "+err.Error())
			continue
		}
		v.Ascending, v.Descending = asc, desc
		valid[i] = true
	}

	b.store(e)
	for i, v := range e.Variations {
		if valid[i] {
			b.addPair(e.Name, v.Ascending, v.Descending)
		}
	}
}

func (b *builder) addChild(root, child string) {
	if slices.Contains(b.idx.children[root], child) {
		return
	}
	b.idx.children[root] = append(b.idx.children[root], child)
}

func (b *builder) addPair(name, asc, desc string) {
	// Ascents are shared freely (Mohanam and Bilahari), so no issue here.
	if ls, err := swara.ParseScale(asc); err == nil {
		dk := degreeKey(swara.Degrees(ls))
		if _, ok := b.idx.ascents[dk]; !ok {
			b.idx.ascents[dk] = name
		}
	}

	key := pairKey(asc, desc)
	if owner, ok := b.idx.pairs[key]; ok {
		if owner != name {
			b.issue(IssuePairCollision, name, owner, asc+" / "+desc)
		}
		return
	}
	b.idx.pairs[key] = name
}

func (b *builder) finish() {
	names := make([]string, 0, len(b.idx.entries))
	for name := range b.idx.entries {
		names = append(names, name)
	}
	collate.New(language.English).SortStrings(names)
	b.idx.names = names
}

// normalizeForm squashes whitespace, bookends the ascending form on S, and
// synthesizes the descending form when it is missing.
func normalizeForm(asc, desc string) (string, string, error) {
	ascLabels, err := swara.ParseScale(asc)
	if err != nil {
		return "", "", fmt.Errorf("arohanam: %w", err)
	}
	if len(ascLabels) == 0 {
		return "", "", fmt.Errorf("arohanam: empty")
	}
	ascLabels = graha.Bookend(ascLabels)

	if strings.TrimSpace(desc) == "" {
		return swara.FormatLabels(ascLabels), swara.FormatLabels(graha.Descending(ascLabels)), nil
	}
	descLabels, err := swara.ParseScale(desc)
	if err != nil {
		return "", "", fmt.Errorf("avarohanam: %w", err)
	}
	return swara.FormatLabels(ascLabels), swara.FormatLabels(descLabels), nil
}

func pairKey(asc, desc string) string {
	return squash(asc) + "|" + squash(desc)
}

func degreeKey(ds []swara.Degree) string {
	var sb strings.Builder
	for i, d := range ds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(d)))
	}
	return sb.String()
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Len returns the number of named entries.
func (x *Index) Len() int { return len(x.entries) }

// Names returns every entry name in collated order.
func (x *Index) Names() []string { return slices.Clone(x.names) }

// Roots returns root names in registration order.
func (x *Index) Roots() []string { return slices.Clone(x.roots) }

// Get returns the normalized entry stored under name.
func (x *Index) Get(name string) (Entry, bool) {
	e, ok := x.entries[name]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Canonical resolves a case-insensitive name to its stored spelling.
func (x *Index) Canonical(name string) (string, bool) {
	n, ok := x.lower[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// LookupExact returns the first name registered for the exact
// ascending/descending pair. Whitespace differences are ignored.
func (x *Index) LookupExact(asc, desc string) (string, bool) {
	name, ok := x.pairs[pairKey(asc, desc)]
	return name, ok
}

// LookupAscending returns the first name whose ascending form visits the
// same degrees in the same order, whatever labels spell them. It is the
// fallback for vakra scales whose descent no synthesized form reproduces.
func (x *Index) LookupAscending(asc []swara.Degree) (string, bool) {
	name, ok := x.ascents[degreeKey(asc)]
	return name, ok
}

// ParentOf returns the root a derived entry belongs to. The returned name is
// always a root of the index.
func (x *Index) ParentOf(name string) (string, bool) {
	p, ok := x.parent[name]
	return p, ok
}

// ChildrenOf returns the derived entries of a root: those it lists first,
// then those naming it as parent, in registration order.
func (x *Index) ChildrenOf(name string) []string {
	return slices.Clone(x.children[name])
}

// ParentLabels returns the labels of the root scale governing name: the
// entry itself for a root, its parent for a derived entry. Resolve uses them
// to keep a parent's choice of ambiguous labels.
func (x *Index) ParentLabels(name string) swara.LabelSet {
	e, ok := x.entries[name]
	if !ok {
		return nil
	}
	if !e.IsRoot() {
		p, ok := x.parent[name]
		if !ok {
			return nil
		}
		if e, ok = x.entries[p]; !ok {
			return nil
		}
	}
	src := e.Notes
	if src == "" {
		src = e.Ascending
	}
	ls, err := swara.ParseScale(src)
	if err != nil {
		return nil
	}
	return swara.NewLabelSet(ls...)
}
