package graha

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/graha/internal/swara"
)

func formatShifts(shifts []Shift) []string {
	out := make([]string, len(shifts))
	for i, s := range shifts {
		out[i] = s.From.String() + ": " + swara.FormatLabels(s.Labels)
	}
	return out
}

func TestRotateShankarabharanam(t *testing.T) {
	t.Parallel()

	shifts, err := RotateString("S R2 G3 M1 P D2 N3", Options{RequireAllFamilies: true})
	if err != nil {
		t.Fatalf("RotateString: %v", err)
	}

	// The rotation at N3 (S R1 G2 M1 M2 D1 N2) has no P and two Ms, so it
	// is filtered out.
	want := []string{
		"R2: S R2 G2 M1 P D2 N2",
		"G3: S R1 G2 M1 P D1 N2",
		"M1: S R2 G3 M2 P D2 N3",
		"P: S R2 G3 M1 P D2 N2",
		"D2: S R2 G2 M1 P D1 N2",
	}
	got := formatShifts(shifts)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rotations mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateHarikambhojiAtR2(t *testing.T) {
	t.Parallel()

	shifts, err := RotateString("S R2 G3 M1 P D2 N2", Options{})
	if err != nil {
		t.Fatalf("RotateString: %v", err)
	}
	var found bool
	for _, s := range shifts {
		if s.From == swara.R2 {
			found = true
			if got := swara.FormatLabels(s.Labels); got != "S R2 G2 M1 P D1 N2" {
				t.Errorf("rotation at R2 = %q, want %q", got, "S R2 G2 M1 P D1 N2")
			}
		}
	}
	if !found {
		t.Fatal("no rotation originating at R2")
	}
}

func TestRotateSubsetScale(t *testing.T) {
	t.Parallel()

	// Mohanam: its graha bhedams are the other pentatonic rotations.
	shifts, err := RotateString("S R2 G3 P D2 S", Options{})
	if err != nil {
		t.Fatalf("RotateString: %v", err)
	}
	want := []string{
		"R2: S R2 M1 P D3 S",
		"G3: S R3 M1 D1 N2 S",
		"P: S R2 M1 P D2 S",
		"D2: S R3 M1 P D3 S",
	}
	if diff := cmp.Diff(want, formatShifts(shifts)); diff != "" {
		t.Errorf("rotations mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateSkipsOriginalTonic(t *testing.T) {
	t.Parallel()

	// S appears in the middle as well as at the ends.
	pattern := swara.MustParseScale("S R2 S G3 P S")
	shifts := Rotate(pattern, Options{})
	for _, s := range shifts {
		if s.From.Degree() == pattern[0].Degree() {
			t.Errorf("shift %d pivots on the original tonic", s.Index)
		}
	}
	if len(shifts) != 3 {
		t.Errorf("got %d shifts, want 3", len(shifts))
	}
}

func TestRotateClosesOnTonic(t *testing.T) {
	t.Parallel()

	// A pattern that starts off the tonic: the appended S becomes a pivot.
	shifts := Rotate(swara.MustParseScale("R2 G3 P"), Options{})
	if len(shifts) == 0 {
		t.Fatal("expected shifts")
	}
	last := shifts[len(shifts)-1]
	if last.From != swara.S || last.Index != 3 {
		t.Errorf("last shift = %+v, want pivot on appended S at index 3", last)
	}
}

func TestRotateSingleToken(t *testing.T) {
	t.Parallel()

	shifts, err := RotateString("S", Options{})
	if err != nil {
		t.Fatalf("RotateString: %v", err)
	}
	if len(shifts) != 0 {
		t.Errorf("got %d shifts, want 0", len(shifts))
	}
	if got := Rotate(nil, Options{}); got != nil {
		t.Errorf("Rotate(nil) = %v, want nil", got)
	}
}

func TestRotateInvalidSymbol(t *testing.T) {
	t.Parallel()

	shifts, err := RotateString("S R2 Q P", Options{})
	if !errors.Is(err, swara.ErrInvalidSymbol) {
		t.Fatalf("error = %v, want ErrInvalidSymbol", err)
	}
	var ise *swara.InvalidSymbolError
	if !errors.As(err, &ise) || ise.Token != "Q" {
		t.Errorf("error payload = %+v", ise)
	}
	if shifts != nil {
		t.Errorf("shifts = %v, want nil on error", shifts)
	}
}

func TestRotateRequireAllFamiliesOutputs(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{
		"S R1 G1 M1 P D1 N1",
		"S R2 G2 M1 P D2 N2",
		"S R3 G3 M2 P D3 N3",
		"S R1 G3 M1 P D1 N3",
	} {
		shifts, err := RotateString(pattern, AutoOptions(swara.MustParseScale(pattern), nil))
		if err != nil {
			t.Fatalf("RotateString(%q): %v", pattern, err)
		}
		for _, s := range shifts {
			if !CoversFamiliesOnce(s.Labels) {
				t.Errorf("%q shift %s = %s does not cover families once", pattern, s.From, swara.FormatLabels(s.Labels))
			}
		}
	}
}

func TestRotateParentHint(t *testing.T) {
	t.Parallel()

	pattern := swara.MustParseScale("S R2 G3 P D2 S")
	plain := Rotate(pattern, Options{})
	hinted := Rotate(pattern, Options{Parent: swara.NewLabelSet(swara.G1, swara.N2)})
	if len(plain) != len(hinted) {
		t.Fatalf("hint changed the number of shifts: %d vs %d", len(plain), len(hinted))
	}
	// Rotation at R2 holds degrees 2 and 10; the hint picks G1 and N2.
	if got := swara.FormatLabels(hinted[0].Labels); got != "S G1 M1 P N2 S" {
		t.Errorf("hinted rotation = %q", got)
	}
}
