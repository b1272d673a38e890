package engine

import "testing"

func TestIndexToLabel(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{26, 1, "B27"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{999, 99, "CV1000"},
	}
	for _, c := range cases {
		if got := IndexToLabel(c.row, c.col); got != c.want {
			t.Errorf("IndexToLabel(%d,%d) = %q, want %q", c.row, c.col, got, c.want)
		}
	}
}

func TestParseLabelRoundTrip(t *testing.T) {
	for row := 0; row < 50; row++ {
		for col := 0; col < 50; col++ {
			label := IndexToLabel(row, col)
			gotRow, gotCol, err := ParseLabel(label)
			if err != nil {
				t.Fatalf("ParseLabel(%q) returned error: %v", label, err)
			}
			if gotRow != row || gotCol != col {
				t.Errorf("ParseLabel(%q) = (%d,%d), want (%d,%d)", label, gotRow, gotCol, row, col)
			}
		}
	}
}

func TestParseLabelMalformed(t *testing.T) {
	bad := []string{"", "1", "A", "A0", "1A", "A1 B2", "  "}
	for _, s := range bad {
		if _, _, err := ParseLabel(s); err == nil {
			t.Errorf("ParseLabel(%q) expected error, got none", s)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	r := Range{R0: 5, C0: 3, R1: 1, C1: 0}
	c := r.Canonicalize()
	if !c.IsCanonical() {
		t.Fatalf("Canonicalize() produced non-canonical range: %+v", c)
	}
	if c.R0 != 1 || c.R1 != 5 || c.C0 != 0 || c.C1 != 3 {
		t.Errorf("Canonicalize() = %+v, want {1 0 5 3}", c)
	}
	if c.Canonicalize() != c {
		t.Errorf("Canonicalize() is not idempotent")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("B2:A1")
	if err != nil {
		t.Fatalf("ParseRange returned error: %v", err)
	}
	if r.R0 != 0 || r.C0 != 0 || r.R1 != 1 || r.C1 != 1 {
		t.Errorf("ParseRange(\"B2:A1\") = %+v, want canonicalized {0 0 1 1}", r)
	}
}
