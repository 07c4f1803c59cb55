package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/graha/internal/swara"
)

func root(name, notes string, children ...string) Entry {
	return Entry{Name: name, Kind: KindRoot, Notes: notes, Children: children}
}

func derived(name, parent, asc, desc string) Entry {
	return Entry{
		Name:       name,
		Kind:       KindDerived,
		Parent:     parent,
		Variations: []Variation{{Ascending: asc, Descending: desc}},
	}
}

func issuesOf(issues []Issue, kind IssueKind) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestBuildRegistersRootsFirst(t *testing.T) {
	t.Parallel()

	// The derived entry comes first in the input but still sees its root.
	idx, issues := Build([]Entry{
		derived("Mohana", "Hari", "S R G P D S", ""),
		root("Hari", "S R2 G3 M1 P D2 N2"),
	})
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}

	got, ok := idx.Get("Mohana")
	if !ok {
		t.Fatal("Mohana not indexed")
	}
	want := Variation{Name: "Mohana1", Ascending: "S R2 G3 P D2 S", Descending: "S D2 P G3 R2 S"}
	if diff := cmp.Diff(want, got.Variations[0]); diff != "" {
		t.Errorf("variation mismatch (-want +got):\n%s", diff)
	}

	if p, ok := idx.ParentOf("Mohana"); !ok || p != "Hari" {
		t.Errorf("ParentOf(Mohana) = %q, %v; want Hari", p, ok)
	}
	if diff := cmp.Diff([]string{"Hari"}, idx.Roots()); diff != "" {
		t.Errorf("Roots mismatch (-want +got):\n%s", diff)
	}

	hari, _ := idx.Get("Hari")
	if hari.Ascending != "S R2 G3 M1 P D2 N2 S" {
		t.Errorf("Hari ascending = %q", hari.Ascending)
	}
	if hari.Descending != "S N2 D2 P M1 G3 R2 S" {
		t.Errorf("Hari descending = %q", hari.Descending)
	}
}

func TestBuildFirstWriteWins(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		idx, issues := Build([]Entry{
			root("A", "S R1 G1 M1 P D1 N1"),
			root("A", "S R2 G3 M1 P D2 N3"),
		})
		if idx.Len() != 1 {
			t.Errorf("Len = %d, want 1", idx.Len())
		}
		a, _ := idx.Get("A")
		if a.Notes != "S R1 G1 M1 P D1 N1" {
			t.Errorf("A notes = %q, want the first registration", a.Notes)
		}
		if got := issuesOf(issues, IssueDuplicateName); len(got) != 1 {
			t.Errorf("duplicate_name issues = %v, want 1", got)
		}
	})

	t.Run("pair collision", func(t *testing.T) {
		t.Parallel()
		idx, issues := Build([]Entry{
			root("R", "S R2 G2 M1 P D2 N2"),
			derived("First", "R", "S G2 M1 P N2 S", "S N2 P M1 G2 S"),
			derived("Second", "R", "S G2 M1 P N2 S", "S N2 P M1 G2 S"),
		})
		name, ok := idx.LookupExact("S G2 M1 P N2 S", "S N2 P M1 G2 S")
		if !ok || name != "First" {
			t.Errorf("LookupExact = %q, %v; want First", name, ok)
		}
		got := issuesOf(issues, IssuePairCollision)
		if len(got) != 1 || got[0].Name != "Second" || got[0].Other != "First" {
			t.Errorf("pair_collision issues = %v", got)
		}
		if _, ok := idx.Get("Second"); !ok {
			t.Error("losing entry should still be retrievable by name")
		}
	})

	t.Run("listing root owns the child", func(t *testing.T) {
		t.Parallel()
		idx, issues := Build([]Entry{
			root("X", "S R2 G3 M1 P D2 N3", "C"),
			root("Y", "S R2 G2 M1 P D2 N2"),
			derived("C", "Y", "S R2 M1 P S", ""),
		})
		if p, _ := idx.ParentOf("C"); p != "X" {
			t.Errorf("ParentOf(C) = %q, want X", p)
		}
		if got := idx.ChildrenOf("Y"); len(got) != 0 {
			t.Errorf("ChildrenOf(Y) = %v, want none", got)
		}
		if diff := cmp.Diff([]string{"C"}, idx.ChildrenOf("X")); diff != "" {
			t.Errorf("ChildrenOf(X) mismatch (-want +got):\n%s", diff)
		}
		got := issuesOf(issues, IssueParentConflict)
		if len(got) != 1 || got[0].Name != "C" || got[0].Other != "X" {
			t.Errorf("parent_conflict issues = %v", got)
		}
	})

	t.Run("two roots list the same child", func(t *testing.T) {
		t.Parallel()
		idx, issues := Build([]Entry{
			root("X", "S R2 G3 M1 P D2 N3", "C"),
			root("Y", "S R2 G2 M1 P D2 N2", "C"),
		})
		if p, _ := idx.ParentOf("C"); p != "X" {
			t.Errorf("ParentOf(C) = %q, want X", p)
		}
		if got := idx.ChildrenOf("Y"); len(got) != 0 {
			t.Errorf("ChildrenOf(Y) = %v, want none", got)
		}
		if got := issuesOf(issues, IssueParentConflict); len(got) != 1 {
			t.Errorf("parent_conflict issues = %v, want 1", got)
		}
	})
}

func TestBuildIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		want    IssueKind
	}{
		{
			name:    "unknown parent",
			entries: []Entry{derived("Lost", "Nowhere", "S R2 P S", "")},
			want:    IssueUnknownParent,
		},
		{
			name:    "invalid token",
			entries: []Entry{root("R", "S R2 G2 M1 P D2 N2"), derived("Bad", "R", "S X P S", "")},
			want:    IssueInvalidForm,
		},
		{
			name:    "invalid root notes",
			entries: []Entry{root("R", "S R4 G2 M1 P D2 N2")},
			want:    IssueInvalidForm,
		},
		{
			name:    "missing kind",
			entries: []Entry{{Name: "Kindless"}},
			want:    IssueInvalidForm,
		},
		{
			name:    "empty name",
			entries: []Entry{root(" ", "S R2 G2 M1 P D2 N2")},
			want:    IssueInvalidForm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, issues := Build(tt.entries)
			if got := issuesOf(issues, tt.want); len(got) == 0 {
				t.Errorf("issues = %v, want one of kind %s", issues, tt.want)
			}
		})
	}
}

func TestBuildUnknownParentNotLinked(t *testing.T) {
	t.Parallel()

	idx, issues := Build([]Entry{
		root("Root", "S R2 G2 M1 P D2 N2"),
		derived("Lost", "Nowhere", "S R2 P S", ""),
		derived("Nested", "Lost", "S R2 P S", ""),
	})
	if got := issuesOf(issues, IssueUnknownParent); len(got) != 2 {
		t.Errorf("unknown parent issues = %v, want 2", got)
	}
	for _, name := range []string{"Lost", "Nested"} {
		if p, ok := idx.ParentOf(name); ok {
			t.Errorf("ParentOf(%s) = %q, want none", name, p)
		}
	}
	if got := idx.ChildrenOf("Nowhere"); len(got) != 0 {
		t.Errorf("ChildrenOf(Nowhere) = %v, want none", got)
	}
	if got := idx.ChildrenOf("Lost"); len(got) != 0 {
		t.Errorf("ChildrenOf(Lost) = %v, want none", got)
	}
	if _, ok := idx.Get("Lost"); !ok {
		t.Error("Lost should still be registered")
	}
}

func TestIndexInvalidVariationNotPaired(t *testing.T) {
	t.Parallel()

	idx, _ := Build([]Entry{root("R", "S R2 G2 M1 P D2 N2"), derived("Bad", "R", "S X P S", "")})
	if _, ok := idx.Get("Bad"); !ok {
		t.Error("entry with an invalid variation should still be named")
	}
	if _, ok := idx.LookupExact("S X P S", ""); ok {
		t.Error("invalid variation should not be looked up")
	}
}

func TestIndexCanonical(t *testing.T) {
	t.Parallel()

	idx, _ := Build([]Entry{root("Kalyani", "S R2 G3 M2 P D2 N3")})
	for _, q := range []string{"Kalyani", "kalyani", "  KALYANI "} {
		got, ok := idx.Canonical(q)
		if !ok || got != "Kalyani" {
			t.Errorf("Canonical(%q) = %q, %v; want Kalyani", q, got, ok)
		}
	}
	if _, ok := idx.Canonical("Kalyan"); ok {
		t.Error("Canonical(Kalyan) should not match")
	}
}

func TestIndexNamesCollated(t *testing.T) {
	t.Parallel()

	idx, _ := Build([]Entry{
		root("cherry", "S R1 G1 M1 P D1 N1"),
		root("Apple", "S R1 G1 M1 P D1 N2"),
		root("banana", "S R1 G1 M1 P D1 N3"),
	})
	if diff := cmp.Diff([]string{"Apple", "banana", "cherry"}, idx.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexParentLabels(t *testing.T) {
	t.Parallel()

	idx, _ := Build([]Entry{
		root("Hari", "S R2 G3 M1 P D2 N2"),
		derived("Mohana", "Hari", "S R2 G3 P D2 S", ""),
	})

	for _, name := range []string{"Hari", "Mohana"} {
		ls := idx.ParentLabels(name)
		if !ls.Has(swara.N2) || !ls.Has(swara.G3) || ls.Has(swara.N3) {
			t.Errorf("ParentLabels(%s) = %v", name, ls)
		}
	}
	if ls := idx.ParentLabels("Missing"); ls != nil {
		t.Errorf("ParentLabels(Missing) = %v, want nil", ls)
	}
}

func TestBuiltinIndex(t *testing.T) {
	t.Parallel()

	f, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	idx, issues := Build(f.Ragas)

	if idx.Len() != 90 {
		t.Errorf("Len = %d, want 90", idx.Len())
	}
	if n := len(idx.Roots()); n != 72 {
		t.Errorf("roots = %d, want 72", n)
	}

	// Udayaravichandrika shares its exact form with Suddha Dhanyasi.
	if len(issues) != 1 || issues[0].Kind != IssuePairCollision ||
		issues[0].Name != "Udayaravichandrika" || issues[0].Other != "Suddha Dhanyasi" {
		t.Errorf("issues = %v, want the single Udayaravichandrika collision", issues)
	}

	lookups := []struct {
		asc, desc, want string
	}{
		{"S R2 G3 P D2 S", "S D2 P G3 R2 S", "Mohanam"},
		{"S  R2 G3 P  D2 S", " S D2 P G3 R2 S", "Mohanam"},
		{"S R2 G3 M1 P D2 N3 S", "S N3 D2 P M1 G3 R2 S", "Dheerasankarabharanam"},
		{"S G3 M1 P D2 S", "S D2 P M1 G3 S", "Nagaswaravali"},
		{"S G2 M1 P N2 S", "S N2 P M1 G2 S", "Suddha Dhanyasi"},
	}
	for _, tt := range lookups {
		got, ok := idx.LookupExact(tt.asc, tt.desc)
		if !ok || got != tt.want {
			t.Errorf("LookupExact(%q, %q) = %q, %v; want %s", tt.asc, tt.desc, got, ok, tt.want)
		}
	}

	want := []string{"Abhogi", "Sriranjani", "Madhyamavati", "Suddha Dhanyasi", "Udayaravichandrika", "Sri", "Reetigowla"}
	if diff := cmp.Diff(want, idx.ChildrenOf("Kharaharapriya")); diff != "" {
		t.Errorf("ChildrenOf(Kharaharapriya) mismatch (-want +got):\n%s", diff)
	}

	reeti, _ := idx.Get("Reetigowla")
	if got := reeti.Variations[0].Ascending; got != "S G2 R2 G2 M1 N2 D2 M1 N2 N2 S" {
		t.Errorf("Reetigowla arohanam = %q", got)
	}
}

func TestIndexLookupAscending(t *testing.T) {
	t.Parallel()

	f, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	idx, _ := Build(f.Ragas)

	tests := []struct {
		asc  string
		want string
	}{
		// Bilahari shares this ascent; Mohanam is registered first.
		{"S R2 G3 P D2 S", "Mohanam"},
		// N1 sits on the same degree as D2.
		{"S R2 G3 P N1 S", "Mohanam"},
		{"S R2 G3 M1 P D2 N3 S", "Dheerasankarabharanam"},
	}
	for _, tt := range tests {
		got, ok := idx.LookupAscending(swara.Degrees(swara.MustParseScale(tt.asc)))
		if !ok || got != tt.want {
			t.Errorf("LookupAscending(%q) = %q, %v; want %s", tt.asc, got, ok, tt.want)
		}
	}

	if _, ok := idx.LookupAscending(swara.Degrees(swara.MustParseScale("S R1 P S"))); ok {
		t.Error("LookupAscending(S R1 P S) should miss")
	}
}
