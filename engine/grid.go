package engine

const (
	// DefaultRows and DefaultCols match §3.1's default 1000x100 grid.
	DefaultRows = 1000
	DefaultCols = 100

	minColWidth, maxColWidth = 1, 50
	minRowHeight, maxRowHeight = 1, 10
	defaultColWidth            = 10
	defaultRowHeight           = 1
)

// Grid is the dense 2D container of optional cells, with per-column widths
// and per-row heights. Cells are created lazily on first write.
type Grid struct {
	rows, cols int
	cells      [][]*Cell // nil entry == absent cell
	colWidths  []int
	rowHeights []int

	needsRecalc bool
}

// NewGrid creates a rows x cols grid with every cell absent and default
// column widths / row heights.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	g := &Grid{
		rows:       rows,
		cols:       cols,
		cells:      make([][]*Cell, rows),
		colWidths:  make([]int, cols),
		rowHeights: make([]int, rows),
	}
	for i := range g.cells {
		g.cells[i] = make([]*Cell, cols)
	}
	for i := range g.colWidths {
		g.colWidths[i] = defaultColWidth
	}
	for i := range g.rowHeights {
		g.rowHeights[i] = defaultRowHeight
	}
	return g
}

// Rows and Cols report the grid's fixed dimensions.
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a slot in the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the cell at (row, col), or nil if absent or out of bounds.
func (g *Grid) Get(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// GetOrCreate returns a mutable handle to the cell at (row, col), lazily
// allocating a default cell if none exists yet. Returns nil if out of
// bounds.
func (g *Grid) GetOrCreate(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	c := g.cells[row][col]
	if c == nil {
		c = DefaultCell(row, col)
		g.cells[row][col] = c
	}
	return c
}

// SetNumber replaces a cell's content with a numeric value, preserving its
// formatting, colors, and sizing. Text alignment is untouched (numbers
// default to right alignment only when the cell was freshly created).
func (g *Grid) SetNumber(row, col int, v float64) bool {
	c := g.GetOrCreate(row, col)
	if c == nil {
		return false
	}
	c.Type = ContentNumber
	c.Number = v
	c.Text = ""
	c.Formula = ""
	c.Cache = FormulaCache{}
	g.needsRecalc = true
	return true
}

// SetText replaces a cell's content with a string value, preserving
// formatting except that alignment defaults to left (§4.2).
func (g *Grid) SetText(row, col int, s string) bool {
	c := g.GetOrCreate(row, col)
	if c == nil {
		return false
	}
	c.Type = ContentText
	c.Text = s
	c.Number = 0
	c.Formula = ""
	c.Cache = FormulaCache{}
	c.Align = AlignLeft
	g.needsRecalc = true
	return true
}

// SetFormula replaces a cell's content with a formula expression,
// preserving formatting. The cache is reset to value=0, error=None,
// string=absent until the next recalculation.
func (g *Grid) SetFormula(row, col int, expr string) bool {
	c := g.GetOrCreate(row, col)
	if c == nil {
		return false
	}
	c.Type = ContentFormula
	c.Formula = expr
	c.Number = 0
	c.Text = ""
	c.Cache = FormulaCache{}
	g.needsRecalc = true
	return true
}

// Clear resets a cell's content to Empty, preserving formatting. Out of
// range or already-absent cells are a silent no-op.
func (g *Grid) Clear(row, col int) bool {
	c := g.Get(row, col)
	if c == nil {
		return g.InBounds(row, col)
	}
	c.Type = ContentEmpty
	c.Number = 0
	c.Text = ""
	c.Formula = ""
	c.Cache = FormulaCache{}
	c.Err = ErrNone
	g.needsRecalc = true
	return true
}

// CloneContent copies content, formatting, width, precision, and alignment
// from src into dst (used by single-cell paste). Background/text color and
// format style are copied too (row heights belong to the grid, not the
// cell, and are not touched), matching §4.2's "preserve formatting" wording
// for a full single-cell clone (as opposed to clear, which preserves the
// destination's own formatting).
func (g *Grid) CloneContent(srcRow, srcCol, dstRow, dstCol int) bool {
	src := g.Get(srcRow, srcCol)
	dst := g.GetOrCreate(dstRow, dstCol)
	if dst == nil {
		return false
	}
	if src == nil {
		return g.Clear(dstRow, dstCol)
	}
	row, col := dst.Row, dst.Col
	*dst = *src
	dst.Row, dst.Col = row, col
	g.needsRecalc = true
	return true
}

// CopyCell is a sheet-level clone by indices: when the source is absent,
// the destination is cleared rather than left untouched.
func (g *Grid) CopyCell(srcRow, srcCol, dstRow, dstCol int) bool {
	return g.CloneContent(srcRow, srcCol, dstRow, dstCol)
}

// ColWidth returns the display width of column c, clamped into [1, 50].
func (g *Grid) ColWidth(c int) int {
	if c < 0 || c >= len(g.colWidths) {
		return defaultColWidth
	}
	return g.colWidths[c]
}

// RowHeight returns the display height of row r, clamped into [1, 10].
func (g *Grid) RowHeight(r int) int {
	if r < 0 || r >= len(g.rowHeights) {
		return defaultRowHeight
	}
	return g.rowHeights[r]
}

// ResizeColumns adjusts the width of columns [c0, c1] by delta, clamping
// each into [1, 50]. Out-of-range indices are clamped into the legal
// column range rather than rejected.
func (g *Grid) ResizeColumns(c0, c1, delta int) {
	c0, c1 = clampRange(c0, c1, 0, g.cols-1)
	for c := c0; c <= c1; c++ {
		g.colWidths[c] = clamp(g.colWidths[c]+delta, minColWidth, maxColWidth)
	}
}

// ResizeRows adjusts the height of rows [r0, r1] by delta, clamping each
// into [1, 10].
func (g *Grid) ResizeRows(r0, r1, delta int) {
	r0, r1 = clampRange(r0, r1, 0, g.rows-1)
	for r := r0; r <= r1; r++ {
		g.rowHeights[r] = clamp(g.rowHeights[r]+delta, minRowHeight, maxRowHeight)
	}
}

// NeedsRecalc reports whether a content-affecting mutation happened since
// the last recalculation.
func (g *Grid) NeedsRecalc() bool { return g.needsRecalc }

// MarkRecalculated clears the needs-recalc flag; called by the driver after
// a full pass.
func (g *Grid) MarkRecalculated() { g.needsRecalc = false }

// MarkDirty sets the needs-recalc flag directly, for mutation paths (undo,
// paste) that bypass SetNumber/SetText/SetFormula/Clear.
func (g *Grid) MarkDirty() { g.needsRecalc = true }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampRange(a, b, lo, hi int) (int, int) {
	if a > b {
		a, b = b, a
	}
	return clamp(a, lo, hi), clamp(b, lo, hi)
}
