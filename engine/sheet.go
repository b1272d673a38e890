package engine

// Sheet composes the grid, selection, clipboards, and undo log into the
// single object the presenter and other collaborators drive, exposing the
// Read/Write API described in §6. It owns the ordering guarantee in §5:
// within one call, undo is recorded before the mutation, the mutation
// applies, the grid is marked dirty, and a recalculation pass runs if the
// mutation is content-affecting.
type Sheet struct {
	Grid      *Grid
	Selection Selection
	Clipboard Clipboard
	UndoLog   UndoLog
}

// NewSheet creates a sheet over a rows x cols grid (defaults applied by
// NewGrid when either is <= 0, per §3.1's 1000x100 default).
func NewSheet(rows, cols int) *Sheet {
	return &Sheet{Grid: NewGrid(rows, cols)}
}

// CellInfo is the small getter bundle the status line decorates a cursor
// position with (§6: "cell_kind... for status-line decoration").
type CellInfo struct {
	Type            ContentType
	Format          Format
	FormatStyle     FormatStyle
	TextColor       Color
	BackgroundColor Color
	Align           Align
}

// --- Read API ---

// DisplayValue returns the formatted display string for (r, c).
func (s *Sheet) DisplayValue(r, c int) string {
	return DisplayValue(s.Grid.Get(r, c))
}

// CellInfo returns the cell's type/format/style/color metadata, zero value
// for an absent or out-of-range cell.
func (s *Sheet) CellInfo(r, c int) CellInfo {
	c0 := s.Grid.Get(r, c)
	if c0 == nil {
		return CellInfo{}
	}
	return CellInfo{
		Type:            c0.Type,
		Format:          c0.Format,
		FormatStyle:     c0.FormatStyle,
		TextColor:       c0.TextColor,
		BackgroundColor: c0.BackgroundColor,
		Align:           c0.Align,
	}
}

// IsInSelection reports whether (r, c) falls within the active selection.
func (s *Sheet) IsInSelection(r, c int) bool { return s.Selection.Contains(r, c) }

// ColumnWidth and RowHeight expose the grid's sizing metrics.
func (s *Sheet) ColumnWidth(c int) int { return s.Grid.ColWidth(c) }
func (s *Sheet) RowHeight(r int) int   { return s.Grid.RowHeight(r) }

// --- Write API: content ---

// SetNumber records undo, writes a numeric value to (r, c), and
// recalculates.
func (s *Sheet) SetNumber(r, c int, v float64) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	ok := s.Grid.SetNumber(r, c, v)
	s.Grid.Recalculate()
	return ok
}

// SetText records undo, writes a text value to (r, c), and recalculates.
func (s *Sheet) SetText(r, c int, v string) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	ok := s.Grid.SetText(r, c, v)
	s.Grid.Recalculate()
	return ok
}

// SetFormula records undo, writes a formula expression to (r, c), and
// recalculates.
func (s *Sheet) SetFormula(r, c int, expr string) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	ok := s.Grid.SetFormula(r, c, expr)
	s.Grid.Recalculate()
	return ok
}

// ClearCell records undo, clears (r, c)'s content, and recalculates.
func (s *Sheet) ClearCell(r, c int) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	ok := s.Grid.Clear(r, c)
	s.Grid.Recalculate()
	return ok
}

// CopyCell records undo over the destination, then clones src onto dst and
// recalculates (§4.2's sheet-level copy_cell).
func (s *Sheet) CopyCell(srcRow, srcCol, dstRow, dstCol int) bool {
	if !s.Grid.InBounds(dstRow, dstCol) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, dstRow, dstCol)
	ok := s.Grid.CopyCell(srcRow, srcCol, dstRow, dstCol)
	s.Grid.Recalculate()
	return ok
}

// --- Write API: selection ---

func (s *Sheet) StartSelection(r, c int)  { s.Selection.Start(r, c) }
func (s *Sheet) ExtendSelection(r, c int) { s.Selection.Extend(r, c) }
func (s *Sheet) ClearSelection()          { s.Selection.Clear() }

// --- Write API: clipboards ---

// CopyRangeSelection snapshots the active selection into the range
// clipboard. Returns false if no selection is active.
func (s *Sheet) CopyRangeSelection() bool {
	r, ok := s.Selection.Range()
	if !ok {
		return false
	}
	s.Clipboard.CopyRange(s.Grid, r)
	return true
}

// PasteRange records undo over the destination rectangle, pastes the range
// clipboard at (atRow, atCol), and recalculates.
func (s *Sheet) PasteRange(atRow, atCol int) bool {
	if !s.Clipboard.HasRange() {
		return false
	}
	dest := Range{R0: atRow, C0: atCol, R1: atRow + s.Clipboard.rangeRows - 1, C1: atCol + s.Clipboard.rangeCols - 1}
	s.UndoLog.RecordRange(s.Grid, dest.Canonicalize())
	ok := s.Clipboard.PasteRange(s.Grid, atRow, atCol)
	s.Grid.Recalculate()
	return ok
}

// PasteCell records undo over the destination, pastes the single-cell
// clipboard at (r, c), and recalculates.
func (s *Sheet) PasteCell(r, c int) bool {
	if !s.Clipboard.HasCell() {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	ok := s.Clipboard.PasteCell(s.Grid, r, c)
	s.Grid.Recalculate()
	return ok
}

// --- Write API: formatting (not content-affecting; no recalculation) ---

// SetFormat applies format/style to (r, c), recording undo first.
func (s *Sheet) SetFormat(r, c int, format Format, style FormatStyle) bool {
	cell := s.Grid.Get(r, c)
	if cell == nil {
		if !s.Grid.InBounds(r, c) {
			return false
		}
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	dst := s.Grid.GetOrCreate(r, c)
	dst.Format = format
	dst.FormatStyle = style
	return true
}

// SetFormatRange applies format/style to every cell in the active
// selection. Returns false if no selection is active.
func (s *Sheet) SetFormatRange(format Format, style FormatStyle) bool {
	r, ok := s.Selection.Range()
	if !ok {
		return false
	}
	s.UndoLog.RecordRange(s.Grid, r)
	for row := r.R0; row <= r.R1; row++ {
		for col := r.C0; col <= r.C1; col++ {
			dst := s.Grid.GetOrCreate(row, col)
			dst.Format = format
			dst.FormatStyle = style
		}
	}
	return true
}

// CycleDateTimeFormat advances (r, c)'s date/time/number format cycle.
func (s *Sheet) CycleDateTimeFormat(r, c int) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	CycleDateTimeFormat(s.Grid.GetOrCreate(r, c))
	return true
}

// SetTextColor and SetBackgroundColor apply a color to a single cell,
// recording undo first.
func (s *Sheet) SetTextColor(r, c int, col Color) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	s.Grid.GetOrCreate(r, c).TextColor = col
	return true
}

func (s *Sheet) SetBackgroundColor(r, c int, col Color) bool {
	if !s.Grid.InBounds(r, c) {
		return false
	}
	s.UndoLog.RecordCell(s.Grid, r, c)
	s.Grid.GetOrCreate(r, c).BackgroundColor = col
	return true
}

// SetTextColorRange and SetBackgroundColorRange apply a color across the
// active selection.
func (s *Sheet) SetTextColorRange(col Color) bool {
	r, ok := s.Selection.Range()
	if !ok {
		return false
	}
	s.UndoLog.RecordRange(s.Grid, r)
	for row := r.R0; row <= r.R1; row++ {
		for c := r.C0; c <= r.C1; c++ {
			s.Grid.GetOrCreate(row, c).TextColor = col
		}
	}
	return true
}

func (s *Sheet) SetBackgroundColorRange(col Color) bool {
	r, ok := s.Selection.Range()
	if !ok {
		return false
	}
	s.UndoLog.RecordRange(s.Grid, r)
	for row := r.R0; row <= r.R1; row++ {
		for c := r.C0; c <= r.C1; c++ {
			s.Grid.GetOrCreate(row, c).BackgroundColor = col
		}
	}
	return true
}

// --- Write API: sizing ---

// ResizeColumns and ResizeRows adjust sizes by delta over [i0, i1],
// recording undo first. Indices and results are clamped by Grid.
func (s *Sheet) ResizeColumns(c0, c1, delta int) {
	c0, c1 = clampRange(c0, c1, 0, s.Grid.cols-1)
	s.UndoLog.RecordResize(s.Grid, false, c0, c1)
	s.Grid.ResizeColumns(c0, c1, delta)
}

func (s *Sheet) ResizeRows(r0, r1, delta int) {
	r0, r1 = clampRange(r0, r1, 0, s.Grid.rows-1)
	s.UndoLog.RecordResize(s.Grid, true, r0, r1)
	s.Grid.ResizeRows(r0, r1, delta)
}

// --- Write API: history and recalculation ---

// Undo reverts the most recent unreverted mutation and recalculates.
func (s *Sheet) Undo() bool {
	ok := s.UndoLog.Undo(s.Grid)
	if ok {
		s.Grid.Recalculate()
	}
	return ok
}

// Redo reapplies the next undone mutation and recalculates.
func (s *Sheet) Redo() bool {
	ok := s.UndoLog.Redo(s.Grid)
	if ok {
		s.Grid.Recalculate()
	}
	return ok
}

// Recalculate runs an explicit recalculation pass.
func (s *Sheet) Recalculate() { s.Grid.Recalculate() }
