package swara

// Resolve labels a sequence of unique degrees. Fixed degrees get their only
// label. Each ambiguous degree takes the candidate found in parent when
// exactly one of the two is there; otherwise it takes the first valid family
// after the previously emitted one in S R G M P D N order. The scan starts
// from S.
//
// With seven distinct degrees this assigns every family exactly once.
func Resolve(seq []Degree, parent LabelSet) []Label {
	out := make([]Label, 0, len(seq))
	prev := FamilyS

	for _, d := range seq {
		d = Mod(int(d))
		switch d {
		case 0:
			out = append(out, S)
			prev = FamilyS
			continue
		case 7:
			out = append(out, P)
			prev = FamilyP
			continue
		}

		a, b, ok := Candidates(d)
		if !ok {
			l := canonical[d]
			out = append(out, l)
			prev = l.Family()
			continue
		}

		if l, ok := fromParent(d, a, b, parent); ok {
			out = append(out, l)
			prev = l.Family()
			continue
		}

		fam := nextFamily(prev, a, b)
		out = append(out, LabelFor(d, fam))
		prev = fam
	}
	return out
}

// fromParent picks the candidate label present in parent. Both or neither
// present leaves the choice to the cyclic rule.
func fromParent(d Degree, a, b Family, parent LabelSet) (Label, bool) {
	if len(parent) == 0 {
		return 0, false
	}
	la, lb := LabelFor(d, a), LabelFor(d, b)
	hasA, hasB := parent.Has(la), parent.Has(lb)
	switch {
	case hasA && !hasB:
		return la, true
	case hasB && !hasA:
		return lb, true
	}
	return 0, false
}

// nextFamily scans cyclically from the family after prev and returns the
// first of a or b. One of them is always reached within a full cycle.
func nextFamily(prev, a, b Family) Family {
	f := prev
	for range NumFamilies {
		f = f.Next()
		if f == a || f == b {
			return f
		}
	}
	return a
}
