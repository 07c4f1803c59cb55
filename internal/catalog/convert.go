package catalog

import (
	"strings"

	"github.com/papapumpkin/graha/internal/swara"
)

// familyLabels maps each family letter to the concrete label a root uses,
// e.g. R -> "R2" for Kharaharapriya.
func familyLabels(root Entry) map[swara.Family]string {
	src := root.Notes
	if src == "" {
		src = root.Ascending
	}
	ls, err := swara.ParseScale(src)
	if err != nil {
		return nil
	}
	out := make(map[swara.Family]string, swara.NumFamilies)
	for _, l := range ls {
		if _, ok := out[l.Family()]; !ok {
			out[l.Family()] = l.String()
		}
	}
	return out
}

var bareFamilies = map[string]swara.Family{
	"R": swara.FamilyR,
	"G": swara.FamilyG,
	"M": swara.FamilyM,
	"D": swara.FamilyD,
	"N": swara.FamilyN,
}

// twelveNote rewrites bare family letters in a seven-note form ("S R G M P
// S") into the concrete labels of the parent root. Tokens that already
// carry a subscript, and letters the root does not use, are left as they
// are.
func twelveNote(form string, notes map[swara.Family]string) string {
	if len(notes) == 0 {
		return form
	}
	fields := strings.Fields(form)
	for i, tok := range fields {
		fam, ok := bareFamilies[tok]
		if !ok {
			continue
		}
		if label, ok := notes[fam]; ok {
			fields[i] = label
		}
	}
	return strings.Join(fields, " ")
}
