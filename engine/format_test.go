package engine

import "testing"

func TestDisplayValueGeneral(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, 3.1400)
	g.GetOrCreate(0, 0).Precision = 4
	if got := DisplayValue(g.Get(0, 0)); got != "3.14" {
		t.Errorf("general format of 3.14 = %q, want \"3.14\"", got)
	}
}

func TestDisplayValueGeneralStripsToInteger(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, 5)
	if got := DisplayValue(g.Get(0, 0)); got != "5" {
		t.Errorf("general format of 5 = %q, want \"5\"", got)
	}
}

// E4 — Percentage format preservation.
func TestE4PercentageFormatAndCopy(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, 0.1234)
	c := g.GetOrCreate(0, 0)
	c.Format = FormatPercentage
	c.Precision = 2
	if got := DisplayValue(g.Get(0, 0)); got != "12.34%" {
		t.Errorf("percentage display = %q, want \"12.34%%\"", got)
	}

	cb := &Clipboard{}
	cb.CopyCell(g, 0, 0)
	cb.PasteCell(g, 0, 1)
	if got := DisplayValue(g.Get(0, 1)); got != "12.34%" {
		t.Errorf("pasted percentage display = %q, want \"12.34%%\"", got)
	}
}

func TestDisplayValueCurrencyNegative(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, -9.5)
	g.GetOrCreate(0, 0).Format = FormatCurrency
	if got := DisplayValue(g.Get(0, 0)); got != "-$9.50" {
		t.Errorf("negative currency display = %q, want \"-$9.50\"", got)
	}
}

func TestDisplayValueErrorToken(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetFormula(0, 0, "1/0")
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 0)); got != "#DIV/0!" {
		t.Errorf("error display = %q, want \"#DIV/0!\"", got)
	}
}

func TestDisplayValueDateISO(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, 1) // excel serial day 1 == 1899-12-31 under the 1900 bug
	c := g.GetOrCreate(0, 0)
	c.Format = FormatDate
	c.FormatStyle.Date = DateISO
	got := DisplayValue(g.Get(0, 0))
	if len(got) != len("YYYY-MM-DD") {
		t.Errorf("ISO date display %q has unexpected length", got)
	}
}

func TestCycleDateTimeFormat(t *testing.T) {
	c := DefaultCell(0, 0)
	seen := map[Format]bool{}
	for i := 0; i < 64; i++ {
		seen[c.Format] = true
		CycleDateTimeFormat(c)
	}
	for _, f := range []Format{FormatGeneral, FormatNumber, FormatPercentage, FormatCurrency, FormatDate, FormatTime, FormatDateTime} {
		if !seen[f] {
			t.Errorf("CycleDateTimeFormat never visited format %v", f)
		}
	}
}
