package catalog

import (
	"fmt"

	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
)

// melakartaNames lists the 72 root scales in canonical number order.
var melakartaNames = [72]string{
	"Kanakangi", "Ratnangi", "Ganamurti", "Vanaspati", "Manavati", "Tanarupi",
	"Senavati", "Hanumatodi", "Dhenuka", "Natakapriya", "Kokilapriya", "Rupavati",
	"Gayakapriya", "Vakulabharanam", "Mayamalavagowla", "Chakravakam", "Suryakantam", "Hatakambari",
	"Jhankaradhwani", "Natabhairavi", "Kiravani", "Kharaharapriya", "Gowrimanohari", "Varunapriya",
	"Mararanjani", "Charukesi", "Sarasangi", "Harikambhoji", "Dheerasankarabharanam", "Naganandini",
	"Yagapriya", "Ragavardhini", "Gangeyabhushani", "Vagadeeshwari", "Shulini", "Chalanata",
	"Salagam", "Jalarnavam", "Jhalavarali", "Navaneetam", "Pavani", "Raghupriya",
	"Gavambodhi", "Bhavapriya", "Shubhapantuvarali", "Shadvidhamargini", "Suvarnangi", "Divyamani",
	"Dhavalambari", "Namanarayani", "Kamavardhini", "Ramapriya", "Gamanashrama", "Vishwambhari",
	"Shyamalaangi", "Shanmukhapriya", "Simhendramadhyamam", "Hemavati", "Dharmavati", "Neetimati",
	"Kantamani", "Rishabhapriya", "Latangi", "Vachaspati", "Mechakalyani", "Chitrambari",
	"Sucharitra", "Jyotiswarupini", "Dhatuvardani", "Nasikabhushani", "Kosalam", "Rasikapriya",
}

// The six R/G pairs and six D/N pairs, in the order the numbering walks
// them. A melakarta number n (1-based) picks M by (n-1)/36, the R/G pair by
// ((n-1)%36)/6 (its chakra) and the D/N pair by (n-1)%6.
var (
	lowerPairs = [6][2]swara.Label{
		{swara.R1, swara.G1}, {swara.R1, swara.G2}, {swara.R1, swara.G3},
		{swara.R2, swara.G2}, {swara.R2, swara.G3}, {swara.R3, swara.G3},
	}
	upperPairs = [6][2]swara.Label{
		{swara.D1, swara.N1}, {swara.D1, swara.N2}, {swara.D1, swara.N3},
		{swara.D2, swara.N2}, {swara.D2, swara.N3}, {swara.D3, swara.N3},
	}
)

// MelakartaNotes returns the seven labels of melakarta number n.
func MelakartaNotes(n int) ([]swara.Label, error) {
	if n < 1 || n > len(melakartaNames) {
		return nil, fmt.Errorf("melakarta number %d out of range 1-72", n)
	}
	i := n - 1
	m := swara.M1
	if i >= 36 {
		m = swara.M2
	}
	lo := lowerPairs[(i%36)/6]
	hi := upperPairs[i%6]
	return []swara.Label{swara.S, lo[0], lo[1], m, swara.P, hi[0], hi[1]}, nil
}

// Melakartas returns the 72 root entries in number order. The ascending
// form is the notes closed on S; the descending form is its reverse.
func Melakartas() []Entry {
	out := make([]Entry, 0, len(melakartaNames))
	for i, name := range melakartaNames {
		notes, _ := MelakartaNotes(i + 1)
		asc := graha.Bookend(notes)
		out = append(out, Entry{
			Name:       name,
			Kind:       KindRoot,
			Number:     i + 1,
			Notes:      swara.FormatLabels(notes),
			Ascending:  swara.FormatLabels(asc),
			Descending: swara.FormatLabels(graha.Descending(asc)),
		})
	}
	return out
}
