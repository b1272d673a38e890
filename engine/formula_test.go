package engine

import "testing"

func evalFormula(t *testing.T, g *Grid, expr string) Value {
	t.Helper()
	node, err := ParseFormula(expr)
	if err != nil {
		t.Fatalf("ParseFormula(%q) error: %v", expr, err)
	}
	v, err := node.Eval(&evalContext{grid: g})
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", expr, err)
	}
	return v
}

func TestParserArithmeticPrecedence(t *testing.T) {
	g := NewGrid(5, 5)
	v := evalFormula(t, g, "=2+3*4")
	if v.Number != 14 {
		t.Errorf("2+3*4 = %v, want 14", v.Number)
	}
}

func TestParserParentheses(t *testing.T) {
	g := NewGrid(5, 5)
	v := evalFormula(t, g, "=(2+3)*4")
	if v.Number != 20 {
		t.Errorf("(2+3)*4 = %v, want 20", v.Number)
	}
}

func TestDivisionByZero(t *testing.T) {
	g := NewGrid(5, 5)
	node, _ := ParseFormula("=1/0")
	_, err := node.Eval(&evalContext{grid: g})
	fe, ok := AsFormulaError(err)
	if !ok || fe.Kind != ErrDivZero {
		t.Fatalf("1/0 error = %v, want ErrDivZero", err)
	}
}

func TestBareRangeSumsSkippingText(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetNumber(0, 0, 1)
	g.SetText(1, 0, "skip me")
	g.SetNumber(2, 0, 2)
	v := evalFormula(t, g, "=A1:A3")
	if v.Number != 3 {
		t.Errorf("A1:A3 (with a text cell) = %v, want 3", v.Number)
	}
}

func TestCellRefPropagatesFormulaError(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetFormula(0, 0, "1/0")
	g.Recalculate()
	node, _ := ParseFormula("=A1")
	_, err := node.Eval(&evalContext{grid: g})
	fe, ok := AsFormulaError(err)
	if !ok || fe.Kind != ErrDivZero {
		t.Fatalf("bare ref to errored formula = %v, want ErrDivZero", err)
	}
}

func TestComparisonStringVsCell(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetText(0, 0, "High")
	v := evalFormula(t, g, `=A1="High"`)
	if v.Number != 1 {
		t.Errorf(`A1="High" = %v, want 1`, v.Number)
	}
	v = evalFormula(t, g, `=A1="Low"`)
	if v.Number != 0 {
		t.Errorf(`A1="Low" = %v, want 0`, v.Number)
	}
}

func TestComparisonNumericTolerance(t *testing.T) {
	g := NewGrid(5, 5)
	v := evalFormula(t, g, "=0.1+0.2=0.3")
	if v.Number != 1 {
		t.Errorf("0.1+0.2=0.3 under tolerance = %v, want 1", v.Number)
	}
}

// E1 — SUM over a column.
func TestE1SumOverColumn(t *testing.T) {
	g := NewGrid(1000, 100)
	for i := 0; i < 6; i++ {
		g.SetNumber(i, 0, float64(i+1))
	}
	g.SetFormula(0, 1, "SUM(A1:A6)")
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 1)); got != "21" {
		t.Errorf("SUM(A1:A6) displayed %q, want \"21\"", got)
	}
}

// E2 — IF with string branches.
func TestE2IfStringBranches(t *testing.T) {
	g := NewGrid(1000, 100)
	g.SetNumber(0, 0, 10)
	g.SetFormula(0, 1, `IF(A1>5,"High","Low")`)
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 1)); got != "High" {
		t.Errorf("IF(A1>5,...) displayed %q, want \"High\"", got)
	}

	g.SetNumber(0, 0, 3)
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 1)); got != "Low" {
		t.Errorf("IF(A1>5,...) after A1=3 displayed %q, want \"Low\"", got)
	}
}

// E3 — VLOOKUP exact-match string.
func TestE3VlookupExactMatchString(t *testing.T) {
	g := NewGrid(1000, 100)
	g.SetText(0, 0, "Apple")
	g.SetText(1, 0, "Orange")
	g.SetText(2, 0, "Banana")
	g.SetNumber(0, 1, 0.5)
	g.SetNumber(1, 1, 0.75)
	g.SetNumber(2, 1, 0.30)
	g.SetFormula(0, 2, `VLOOKUP("Orange",A1:B3,2,1)`)
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 2)); got != "0.75" {
		t.Errorf("VLOOKUP(Orange) displayed %q, want \"0.75\"", got)
	}

	g.SetFormula(0, 2, `VLOOKUP("Grape",A1:B3,2,1)`)
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 2)); got != "#N/A!" {
		t.Errorf("VLOOKUP(Grape) displayed %q, want \"#N/A!\"", got)
	}
}

func TestVlookupApproximateMatch(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetNumber(0, 0, 0)
	g.SetText(0, 1, "F")
	g.SetNumber(1, 0, 60)
	g.SetText(1, 1, "D")
	g.SetNumber(2, 0, 70)
	g.SetText(2, 1, "C")
	g.SetNumber(3, 0, 80)
	g.SetText(3, 1, "B")
	g.SetFormula(0, 2, "VLOOKUP(75,A1:B4,2)")
	g.Recalculate()
	if got := DisplayValue(g.Get(0, 2)); got != "C" {
		t.Errorf("approximate VLOOKUP(75) displayed %q, want \"C\"", got)
	}
}

func TestAggregates(t *testing.T) {
	g := NewGrid(10, 10)
	vals := []float64{3, 1, 4, 1, 5}
	for i, v := range vals {
		g.SetNumber(i, 0, v)
	}
	cases := []struct {
		formula string
		want    float64
	}{
		{"AVG(A1:A5)", 2.8},
		{"MAX(A1:A5)", 5},
		{"MIN(A1:A5)", 1},
		{"MEDIAN(A1:A5)", 3},
		{"MODE(A1:A5)", 1},
		{"POWER(2,10)", 1024},
	}
	for _, c := range cases {
		node, err := ParseFormula("=" + c.formula)
		if err != nil {
			t.Fatalf("ParseFormula(%q): %v", c.formula, err)
		}
		v, err := node.Eval(&evalContext{grid: g})
		if err != nil {
			t.Fatalf("Eval(%q): %v", c.formula, err)
		}
		if v.Number != c.want {
			t.Errorf("%s = %v, want %v", c.formula, v.Number, c.want)
		}
	}
}

func TestMedianEvenCount(t *testing.T) {
	g := NewGrid(10, 10)
	for i, v := range []float64{1, 2, 3, 4} {
		g.SetNumber(i, 0, v)
	}
	node, _ := ParseFormula("=MEDIAN(A1:A4)")
	v, err := node.Eval(&evalContext{grid: g})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Number != 2.5 {
		t.Errorf("MEDIAN(1,2,3,4) = %v, want 2.5", v.Number)
	}
}

func TestMedianModePermutationInvariant(t *testing.T) {
	g1 := NewGrid(10, 10)
	g2 := NewGrid(10, 10)
	for i, v := range []float64{5, 1, 1, 3, 2} {
		g1.SetNumber(i, 0, v)
	}
	for i, v := range []float64{1, 1, 2, 3, 5} {
		g2.SetNumber(i, 0, v)
	}
	for _, fn := range []string{"MEDIAN", "MODE"} {
		n1, _ := ParseFormula("=" + fn + "(A1:A5)")
		n2, _ := ParseFormula("=" + fn + "(A1:A5)")
		v1, _ := n1.Eval(&evalContext{grid: g1})
		v2, _ := n2.Eval(&evalContext{grid: g2})
		if v1.Number != v2.Number {
			t.Errorf("%s differs across permutations: %v vs %v", fn, v1.Number, v2.Number)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	bad := []string{"=", "=SUM(", "=1+", "=\"unterminated"}
	for _, f := range bad {
		if _, err := ParseFormula(f); err == nil {
			t.Errorf("ParseFormula(%q) expected error, got none", f)
		}
	}
}
