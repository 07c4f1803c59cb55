// Package fuzzy resolves loosely typed raga names against a catalog's name
// list.
package fuzzy

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxDistance is the largest edit distance the last tier accepts.
const MaxDistance = 2

// Tier identifies which rule produced a match. Lower tiers win.
type Tier int

const (
	TierExact Tier = iota
	TierAlias
	TierPrefix
	TierSubstring
	TierEditDistance
)

// String returns the tier name used in CLI and MCP output.
func (t Tier) String() string {
	switch t {
	case TierAlias:
		return "alias"
	case TierExact:
		return "exact"
	case TierPrefix:
		return "prefix"
	case TierSubstring:
		return "substring"
	case TierEditDistance:
		return "edit-distance"
	default:
		return "unknown"
	}
}

// Common transliteration variants folded to one spelling.
var digraphs = strings.NewReplacer("sh", "s", "th", "t", "kh", "k", "gh", "g", "dh", "d")

// Normalize folds a name for comparison: diacritics stripped, case folded,
// whitespace removed, and aspirated digraphs collapsed.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	// Casers are stateful, so one per call.
	folded := cases.Fold().String(stripped)
	folded = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
	return digraphs.Replace(folded)
}

// Match is a successful resolution.
type Match struct {
	Name     string
	Tier     Tier
	Distance int // edit distance; zero outside TierEditDistance
}

type candidate struct {
	name string
	norm string
}

// Matcher holds the normalized name index. It is immutable after New and
// safe for concurrent use.
type Matcher struct {
	names   []candidate
	aliases map[string]string // normalized alias -> catalog name
}

// New builds a matcher over names, which should already be in the order
// ties are broken by. Aliases whose target is not among names are dropped.
func New(names []string, aliases map[string]string) *Matcher {
	m := &Matcher{
		names:   make([]candidate, 0, len(names)),
		aliases: make(map[string]string, len(aliases)),
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
		m.names = append(m.names, candidate{name: n, norm: Normalize(n)})
	}
	for alias, target := range aliases {
		if known[target] {
			m.aliases[Normalize(alias)] = target
		}
	}
	return m
}

// Len returns the number of indexed names.
func (m *Matcher) Len() int { return len(m.names) }

// Match resolves query. The first tier with any hit wins; within a tier the
// earliest name in index order wins. ok is false when every tier misses and
// callers should keep the literal query.
func (m *Matcher) Match(query string) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{}, false
	}

	for _, c := range m.names {
		if c.norm == q {
			return Match{Name: c.name, Tier: TierExact}, true
		}
	}

	// An alias never shadows a real catalog name.
	if target, ok := m.aliases[q]; ok {
		return Match{Name: target, Tier: TierAlias}, true
	}

	for _, tier := range []struct {
		tier Tier
		fn   func(name, q string) bool
	}{
		{TierPrefix, strings.HasPrefix},
		{TierSubstring, strings.Contains},
	} {
		for _, c := range m.names {
			if tier.fn(c.norm, q) {
				return Match{Name: c.name, Tier: tier.tier}, true
			}
		}
	}

	best, bestDist := -1, MaxDistance+1
	for i, c := range m.names {
		if d := levenshtein.ComputeDistance(q, c.norm); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{Name: m.names[best].name, Tier: TierEditDistance, Distance: bestDist}, true
}

// Suggest returns up to limit names within MaxDistance of query, closest
// first, for "did you mean" hints.
func (m *Matcher) Suggest(query string, limit int) []string {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}
	var buckets [MaxDistance + 1][]string
	for _, c := range m.names {
		if d := levenshtein.ComputeDistance(q, c.norm); d <= MaxDistance {
			buckets[d] = append(buckets[d], c.name)
		}
	}
	var out []string
	for _, b := range buckets {
		for _, n := range b {
			if len(out) == limit {
				return out
			}
			out = append(out, n)
		}
	}
	return out
}
