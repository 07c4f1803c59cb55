package fuzzy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Kalyani", "kalyani"},
		{"  Suddha  Dhanyasi ", "suddadanyasi"},
		{"Shankarabharanam", "sankarabharanam"},
		{"Kāmbhōji", "kambhoji"},
		{"THODI", "todi"},
		{"Khamas", "kamas"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	names := []string{"Abhogi", "Dheerasankarabharanam", "Hamsadhwani", "Kalyani", "Mohanam", "Mohanakalyani"}
	aliases := map[string]string{
		"Shankarabharanam": "Dheerasankarabharanam",
		"Hamsa":            "Hamsadhwani",
		"Ghost":            "Not In Catalog",
	}
	m := New(names, aliases)

	tests := []struct {
		query string
		want  Match
	}{
		{"shankarabharanam", Match{Name: "Dheerasankarabharanam", Tier: TierAlias}},
		{"HAMSA", Match{Name: "Hamsadhwani", Tier: TierAlias}},
		{"kalyani", Match{Name: "Kalyani", Tier: TierExact}},
		{"Mohana", Match{Name: "Mohanam", Tier: TierPrefix}},
		{"mohanak", Match{Name: "Mohanakalyani", Tier: TierPrefix}},
		{"sankara", Match{Name: "Dheerasankarabharanam", Tier: TierSubstring}},
		{"kalyan", Match{Name: "Kalyani", Tier: TierPrefix}},
		{"KalyXni", Match{Name: "Kalyani", Tier: TierEditDistance, Distance: 1}},
		{"Aboge", Match{Name: "Abhogi", Tier: TierEditDistance, Distance: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			got, ok := m.Match(tt.query)
			if !ok {
				t.Fatalf("Match(%q) found nothing", tt.query)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestMatchExactNameBeatsAlias(t *testing.T) {
	t.Parallel()

	m := New([]string{"Kalyani", "Mechakalyani"}, map[string]string{"Kalyani": "Mechakalyani"})

	got, ok := m.Match("kalyani")
	if !ok {
		t.Fatal("Match(kalyani) found nothing")
	}
	if diff := cmp.Diff(Match{Name: "Kalyani", Tier: TierExact}, got); diff != "" {
		t.Errorf("Match(kalyani) mismatch (-want +got):\n%s", diff)
	}

	// Without the name in the catalog the alias still applies.
	m = New([]string{"Mechakalyani"}, map[string]string{"Kalyani": "Mechakalyani"})
	got, _ = m.Match("kalyani")
	if diff := cmp.Diff(Match{Name: "Mechakalyani", Tier: TierAlias}, got); diff != "" {
		t.Errorf("Match(kalyani) mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchNoResult(t *testing.T) {
	t.Parallel()

	m := New([]string{"Kalyani", "Mohanam"}, map[string]string{"Ghost": "Missing"})
	for _, q := range []string{"", "   ", "Bhairavi", "Ghost", "Kxxyxni"} {
		if got, ok := m.Match(q); ok {
			t.Errorf("Match(%q) = %+v, want no result", q, got)
		}
	}
}

func TestMatchTiesFollowIndexOrder(t *testing.T) {
	t.Parallel()

	// Both names share the prefix; the earlier one wins.
	m := New([]string{"Kalyani", "Kalyanavasantam"}, nil)
	got, ok := m.Match("kalya")
	if !ok || got.Name != "Kalyani" {
		t.Errorf("Match(kalya) = %+v, %v; want Kalyani", got, ok)
	}

	m = New([]string{"Kalyanavasantam", "Kalyani"}, nil)
	got, _ = m.Match("kalya")
	if got.Name != "Kalyanavasantam" {
		t.Errorf("Match(kalya) = %+v; want Kalyanavasantam", got)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	m := New([]string{"Kalyani", "Kalyana", "Mohanam"}, nil)
	got := m.Suggest("Kalyanu", 5)
	if diff := cmp.Diff([]string{"Kalyani", "Kalyana"}, got); diff != "" {
		t.Errorf("Suggest mismatch (-want +got):\n%s", diff)
	}
	if got := m.Suggest("Kalyanu", 1); len(got) != 1 {
		t.Errorf("Suggest limit 1 = %v", got)
	}
}
