// Package chart turns a rectangle of cells into one of four ASCII charts:
// line, bar, pie, scatter. It is grounded on original_source/charts.h's
// Chart/ChartSeries/ChartPoint model, carried over as a modest renderer
// rather than a faithful port -- the original's canvas bookkeeping,
// legend placement, and bar borders are reproduced; its Windows console
// color table and popup framing are cmd/winsheet's concern, not this
// package's.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BitEU/WinSpread/engine"
)

// Kind selects the plotting algorithm.
type Kind int

const (
	Line Kind = iota
	Bar
	Pie
	Scatter
)

// ParseKind maps a command-bar token to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "line":
		return Line, true
	case "bar":
		return Bar, true
	case "pie":
		return Pie, true
	case "scatter":
		return Scatter, true
	default:
		return Line, false
	}
}

// Sample is one (x, y) point, optionally carrying a text label taken from
// the range's label column instead of a numeric X.
type Sample struct {
	Label string
	X, Y  float64
}

// Series is one column's worth of samples, plotted with its own symbol.
type Series struct {
	Name    string
	Symbol  rune
	Samples []Sample
}

// seriesSymbols mirrors charts.h's "*+ox#@$%&" cycle.
var seriesSymbols = []rune("*+ox#@$%&")

// SamplesFromRange extracts one Series per column of r beyond the first:
// the first column supplies X values, or labels when its cells are text;
// when the first row's cell in that first column is text, the first row is
// a header row and each series takes its name from its header cell if that
// cell is text, else "Series N" (charts.h's chart_add_data_from_range). Only
// numeric cells (plain numbers, or formulas that resolved to a number)
// contribute a sample; everything else is skipped rather than erroring,
// matching the engine's skip-don't-propagate range semantics.
func SamplesFromRange(g *engine.Grid, r engine.Range) ([]Series, error) {
	r = r.Canonicalize()
	if r.Cols() < 2 {
		return nil, fmt.Errorf("chart: range needs at least 2 columns, got %d", r.Cols())
	}

	hasHeaders := cellIsText(g.Get(r.R0, r.C0))
	dataStart := r.R0
	if hasHeaders {
		dataStart = r.R0 + 1
	}

	n := r.Cols() - 1
	series := make([]Series, n)
	for s := 0; s < n; s++ {
		col := r.C0 + s + 1
		series[s].Symbol = seriesSymbols[s%len(seriesSymbols)]
		series[s].Name = "Series " + strconv.Itoa(s+1)
		if hasHeaders {
			if h := g.Get(r.R0, col); cellIsText(h) {
				series[s].Name = h.Text
			}
		}
		for row := dataStart; row <= r.R1; row++ {
			yv, ok := numericValue(g.Get(row, col))
			if !ok {
				continue
			}
			sample := Sample{X: float64(len(series[s].Samples)), Y: yv}
			if xc := g.Get(row, r.C0); xc != nil {
				switch {
				case xc.Type == engine.ContentNumber:
					sample.X = xc.Number
				case xc.Type == engine.ContentFormula && xc.Cache.Err == engine.ErrNone && !xc.Cache.IsStringResult:
					sample.X = xc.Cache.Number
				case cellIsText(xc):
					sample.Label = xc.Text
				}
			}
			series[s].Samples = append(series[s].Samples, sample)
		}
	}
	return series, nil
}

func cellIsText(c *engine.Cell) bool {
	return c != nil && c.Type == engine.ContentText
}

func numericValue(c *engine.Cell) (float64, bool) {
	if c == nil {
		return 0, false
	}
	switch c.Type {
	case engine.ContentNumber:
		return c.Number, true
	case engine.ContentFormula:
		if c.Cache.Err == engine.ErrNone && !c.Cache.IsStringResult {
			return c.Cache.Number, true
		}
	}
	return 0, false
}

// Config bounds a chart's canvas and captions. Width/Height are clamped
// to the same ranges charts.h enforces, scaled down to fit a terminal
// cell grid rather than a full-screen console buffer.
type Config struct {
	Kind           Kind
	Title          string
	XLabel, YLabel string
	Width, Height  int
	ShowGrid       bool
	ShowLegend     bool
}

const (
	minWidth, maxWidth   = 20, 120
	minHeight, maxHeight = 8, 40
)

// DefaultConfig returns a Config with charts.h's default axis labels and a
// size sized for a typical terminal pane rather than a full screen.
func DefaultConfig(kind Kind) Config {
	return Config{Kind: kind, XLabel: "X", YLabel: "Y", Width: 60, Height: 20, ShowGrid: true, ShowLegend: true}
}

func (c Config) clamped() Config {
	if c.Width < minWidth {
		c.Width = minWidth
	}
	if c.Width > maxWidth {
		c.Width = maxWidth
	}
	if c.Height < minHeight {
		c.Height = minHeight
	}
	if c.Height > maxHeight {
		c.Height = maxHeight
	}
	if c.XLabel == "" {
		c.XLabel = "X"
	}
	if c.YLabel == "" {
		c.YLabel = "Y"
	}
	return c
}

// canvas is a fixed grid of runes, charts.h's char** canvas.
type canvas struct {
	cells [][]rune
	w, h  int
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{cells: cells, w: w, h: h}
}

func (cv *canvas) set(x, y int, r rune) {
	if x >= 0 && x < cv.w && y >= 0 && y < cv.h {
		cv.cells[y][x] = r
	}
}

func (cv *canvas) get(x, y int) rune {
	if x >= 0 && x < cv.w && y >= 0 && y < cv.h {
		return cv.cells[y][x]
	}
	return ' '
}

func (cv *canvas) line(x1, y1, x2, y2 int, r rune) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		cv.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (cv *canvas) lines() []string {
	out := make([]string, cv.h)
	for i, row := range cv.cells {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// bounds is the x/y extent across all series, padded 10% per charts.h's
// chart_add_data_from_range, with a fallback +/-1 window when the data is
// a single point (or all points share one coordinate).
type bounds struct {
	xMin, xMax, yMin, yMax float64
}

func computeBounds(series []Series, zeroFloor bool) bounds {
	b := bounds{xMin: math.MaxFloat64, xMax: -math.MaxFloat64, yMin: math.MaxFloat64, yMax: -math.MaxFloat64}
	for _, s := range series {
		for _, p := range s.Samples {
			b.xMin = math.Min(b.xMin, p.X)
			b.xMax = math.Max(b.xMax, p.X)
			b.yMin = math.Min(b.yMin, p.Y)
			b.yMax = math.Max(b.yMax, p.Y)
		}
	}
	if b.xMax < b.xMin {
		b = bounds{}
	}
	xr, yr := b.xMax-b.xMin, b.yMax-b.yMin
	if xr < 1e-9 {
		b.xMin--
		b.xMax++
	} else {
		b.xMin -= xr * 0.1
		b.xMax += xr * 0.1
	}
	if yr < 1e-9 {
		b.yMin--
		b.yMax++
	} else {
		b.yMin -= yr * 0.1
		b.yMax += yr * 0.1
	}
	if zeroFloor {
		if b.yMin > 0 {
			b.yMin = 0
		}
		if b.yMax < 0 {
			b.yMax = 0
		}
	}
	return b
}

const axisX = 8 // columns reserved for the Y-axis label gutter, charts.h's y_axis_x

func (b bounds) scaleX(v float64, plotWidth int) int {
	if b.xMax == b.xMin {
		return axisX + 2
	}
	return axisX + 2 + int((v-b.xMin)/(b.xMax-b.xMin)*float64(plotWidth-1))
}

func (b bounds) scaleY(v float64, plotHeight int) int {
	if b.yMax == b.yMin {
		return plotHeight / 2
	}
	return plotHeight - 1 - int((v-b.yMin)/(b.yMax-b.yMin)*float64(plotHeight-1))
}

// Render draws series onto a canvas sized by cfg and returns it as lines
// ready to print, one per terminal row. Unknown cfg.Kind values fall back
// to Line, mirroring charts.h's scatter-reuses-line-chart shortcut.
func Render(cfg Config, series []Series) []string {
	cfg = cfg.clamped()
	plotW, plotH := cfg.Width, cfg.Height
	legendW := 0
	if cfg.ShowLegend {
		legendW = 25
	}
	cv := newCanvas(axisX+plotW+legendW+2, plotH+6)

	switch cfg.Kind {
	case Bar:
		plotBar(cv, cfg, series)
	case Pie:
		plotPie(cv, cfg, series)
	default:
		plotLine(cv, cfg, series)
	}

	return cv.lines()
}

func drawAxes(cv *canvas, cfg Config, b bounds, plotW, plotH int) {
	axisY := b.scaleY(0, plotH)
	for y := 0; y < plotH; y++ {
		cv.set(axisX, y, '|')
	}
	for x := axisX; x < axisX+plotW+2; x++ {
		cv.set(x, axisY, '=')
	}
	cv.set(axisX, axisY, '#')

	for i := 0; i <= 5; i++ {
		y := (plotH - 1) * i / 5
		v := b.yMin + (b.yMax-b.yMin)*float64(5-i)/5
		label := fmt.Sprintf("%6.1f", v)
		for j := 0; j < len(label) && j < axisX; j++ {
			cv.set(j, y, rune(label[j]))
		}
	}
	for i := 0; i <= 4; i++ {
		x := axisX + 2 + (plotW-2)*i/4
		v := b.xMin + (b.xMax-b.xMin)*float64(i)/4
		label := fmt.Sprintf("%.1f", v)
		lx := x - len(label)/2
		for j := 0; j < len(label); j++ {
			cv.set(lx+j, plotH+1, rune(label[j]))
		}
		cv.set(x, plotH, '|')
	}

	xPos := axisX + 2 + plotW/2 - len(cfg.XLabel)/2
	for i, r := range cfg.XLabel {
		cv.set(xPos+i, plotH+3, r)
	}
	yPos := plotH/2 - len(cfg.YLabel)/2
	for i, r := range cfg.YLabel {
		cv.set(0, yPos+i, r)
	}
}

func drawLegend(cv *canvas, series []Series, x, y int) {
	for i, ch := range "Legend:" {
		cv.set(x+i, y-1, ch)
	}
	for i, s := range series {
		row := y + i
		cv.set(x, row, s.Symbol)
		cv.set(x+1, row, '=')
		for j, ch := range s.Name {
			cv.set(x+3+j, row, ch)
		}
	}
}

func plotLine(cv *canvas, cfg Config, series []Series) {
	plotW, plotH := cfg.Width, cfg.Height
	b := computeBounds(series, false)
	drawAxes(cv, cfg, b, plotW, plotH)

	if cfg.ShowGrid {
		for i := 1; i < 6; i++ {
			x := axisX + 2 + (plotW-1)*i/6
			for y := 0; y < plotH; y++ {
				if cv.get(x, y) == ' ' {
					cv.set(x, y, '.')
				}
			}
		}
	}

	connectors := []rune{'*', '+', 'x', '.'}
	for si, s := range series {
		var prevX, prevY int
		for i, p := range s.Samples {
			x, y := b.scaleX(p.X, plotW), b.scaleY(p.Y, plotH)
			cv.set(x, y, s.Symbol)
			if i > 0 && cfg.Kind != Scatter {
				cv.line(prevX, prevY, x, y, connectors[si%len(connectors)])
				cv.set(x, y, s.Symbol)
			}
			prevX, prevY = x, y
		}
	}

	if cfg.ShowLegend && len(series) > 0 {
		drawLegend(cv, series, axisX+plotW+3, 2)
	}
}

func plotBar(cv *canvas, cfg Config, series []Series) {
	plotW, plotH := cfg.Width, cfg.Height
	b := computeBounds(series, true)
	drawAxes(cv, cfg, b, plotW, plotH)

	if len(series) == 0 || len(series[0].Samples) == 0 {
		return
	}
	s := series[0]
	n := len(s.Samples)
	barWidth := plotW/n - 2
	if barWidth < 3 {
		barWidth = 3
	}
	if barWidth > 10 {
		barWidth = 10
	}
	spacing := 2

	for i, p := range s.Samples {
		barX := axisX + 4 + i*(barWidth+spacing)
		top := b.scaleY(p.Y, plotH)
		bottom := b.scaleY(0, plotH)
		if top > bottom {
			top, bottom = bottom, top
		}
		for y := top; y <= bottom && y < plotH; y++ {
			for x := 0; x < barWidth; x++ {
				ch := '#'
				switch {
				case x == 0:
					ch = '['
				case x == barWidth-1:
					ch = ']'
				case y == top:
					ch = '='
				}
				cv.set(barX+x, y, ch)
			}
		}
		value := fmt.Sprintf("%.1f", p.Y)
		cv.set(barX+(barWidth-len(value))/2, top-1, ' ')
		for j, ch := range value {
			cv.set(barX+(barWidth-len(value))/2+j, top-1, ch)
		}
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if len(label) > barWidth {
			cut := barWidth - 1
			if cut < 1 {
				cut = 1
			}
			label = label[:cut]
		}
		for j, ch := range label {
			cv.set(barX+j, plotH+2, ch)
		}
	}
}

func plotPie(cv *canvas, cfg Config, series []Series) {
	if len(series) == 0 || len(series[0].Samples) == 0 {
		return
	}
	s := series[0]
	var total float64
	for _, p := range s.Samples {
		if p.Y > 0 {
			total += p.Y
		}
	}
	if total == 0 {
		return
	}

	radius := cfg.Height/2 - 2
	if radius > 15 {
		radius = 15
	}
	if radius < 2 {
		radius = 2
	}
	centerX := axisX + cfg.Width/2
	centerY := cfg.Height / 2
	sliceChars := []rune("@#$%&*+=~-:.|o")

	for y := -radius; y <= radius; y++ {
		for x := -radius * 2; x <= radius*2; x++ {
			dx, dy := float64(x)/2, float64(y)
			dist := math.Hypot(dx, dy)
			if dist > float64(radius) {
				continue
			}
			angle := math.Atan2(dy, dx)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			cumulative := 0.0
			sliceIdx := -1
			for i, p := range s.Samples {
				if p.Y <= 0 {
					continue
				}
				sliceAngle := (p.Y / total) * 2 * math.Pi
				if angle >= cumulative && angle < cumulative+sliceAngle {
					sliceIdx = i
					break
				}
				cumulative += sliceAngle
			}
			if sliceIdx < 0 {
				continue
			}
			ch := sliceChars[sliceIdx%len(sliceChars)]
			if dist > float64(radius)-1 {
				ch = '*'
			}
			cv.set(centerX+x, centerY+y, ch)
		}
	}

	legendX, legendY := 0, 2
	for i, ch := range "Legend:" {
		cv.set(legendX+i, legendY-1, ch)
	}
	for i, p := range s.Samples {
		if p.Y <= 0 {
			continue
		}
		pct := p.Y / total * 100
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("Item %d", i+1)
		}
		row := legendY + i
		cv.set(legendX, row, sliceChars[i%len(sliceChars)])
		cv.set(legendX+2, row, '-')
		text := fmt.Sprintf("%s: %.1f (%.1f%%)", label, p.Y, pct)
		for j, ch := range text {
			cv.set(legendX+4+j, row, ch)
		}
	}
}
