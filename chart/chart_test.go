package chart

import (
	"strings"
	"testing"

	"github.com/BitEU/WinSpread/engine"
)

func buildSampleGrid() *engine.Grid {
	g := engine.NewGrid(10, 10)
	g.SetText(0, 0, "Month")
	g.SetText(0, 1, "Revenue")
	months := []string{"Jan", "Feb", "Mar", "Apr"}
	values := []float64{10, 25, 15, 30}
	for i, m := range months {
		g.SetText(i+1, 0, m)
		g.SetNumber(i+1, 1, values[i])
	}
	return g
}

func TestSamplesFromRangeHeadersAndLabels(t *testing.T) {
	g := buildSampleGrid()
	series, err := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 4, C1: 1})
	if err != nil {
		t.Fatalf("SamplesFromRange: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("got %d series, want 1", len(series))
	}
	s := series[0]
	if s.Name != "Revenue" {
		t.Errorf("series name = %q, want %q (from header row)", s.Name, "Revenue")
	}
	if len(s.Samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(s.Samples))
	}
	if s.Samples[0].Label != "Jan" || s.Samples[0].Y != 10 {
		t.Errorf("samples[0] = %+v, want label Jan, y 10", s.Samples[0])
	}
}

func TestSamplesFromRangeSkipsNonNumericY(t *testing.T) {
	g := engine.NewGrid(5, 5)
	g.SetNumber(0, 0, 1)
	g.SetNumber(0, 1, 5)
	g.SetNumber(1, 0, 2)
	g.SetText(1, 1, "n/a")
	g.SetNumber(2, 0, 3)
	g.SetNumber(2, 1, 9)

	series, err := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 2, C1: 1})
	if err != nil {
		t.Fatalf("SamplesFromRange: %v", err)
	}
	if len(series[0].Samples) != 2 {
		t.Fatalf("got %d samples, want 2 (text cell should be skipped)", len(series[0].Samples))
	}
}

func TestSamplesFromRangeRequiresTwoColumns(t *testing.T) {
	g := engine.NewGrid(5, 5)
	if _, err := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 2, C1: 0}); err == nil {
		t.Error("expected an error for a single-column range")
	}
}

func TestRenderLineProducesAxes(t *testing.T) {
	g := buildSampleGrid()
	series, _ := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 4, C1: 1})
	lines := Render(DefaultConfig(Line), series)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "=") {
		t.Error("rendered line chart has no X axis ('=' characters)")
	}
	if !strings.Contains(joined, "|") {
		t.Error("rendered line chart has no Y axis ('|' characters)")
	}
}

func TestRenderBarIncludesBarBorders(t *testing.T) {
	g := buildSampleGrid()
	series, _ := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 4, C1: 1})
	lines := Render(DefaultConfig(Bar), series)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[") || !strings.Contains(joined, "]") {
		t.Error("rendered bar chart is missing bar border characters")
	}
}

func TestRenderPieWithAllNonPositiveIsEmpty(t *testing.T) {
	g := engine.NewGrid(5, 5)
	g.SetText(0, 0, "cat")
	g.SetNumber(1, 0, -1)
	g.SetNumber(1, 1, -1)
	series, _ := SamplesFromRange(g, engine.Range{R0: 0, C0: 0, R1: 1, C1: 1})
	lines := Render(DefaultConfig(Pie), series)
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			t.Fatalf("pie chart with no positive slice should render blank, got line %q", l)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"line": Line, "BAR": Bar, "Pie": Pie, "scatter": Scatter}
	for s, want := range cases {
		got, ok := ParseKind(s)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = (%v, %v), want (%v, true)", s, got, ok, want)
		}
	}
	if _, ok := ParseKind("nonsense"); ok {
		t.Error("ParseKind(nonsense) should report ok=false")
	}
}

func TestConfigClampsSize(t *testing.T) {
	cfg := Config{Kind: Line, Width: 1000, Height: 1}.clamped()
	if cfg.Width != maxWidth {
		t.Errorf("width = %d, want clamp to %d", cfg.Width, maxWidth)
	}
	if cfg.Height != minHeight {
		t.Errorf("height = %d, want clamp to %d", cfg.Height, minHeight)
	}
}
