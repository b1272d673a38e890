package engine

// undoCapacity is the ring buffer's fixed capacity (§3.1): at most 100
// records; recording at capacity evicts the oldest entry.
const undoCapacity = 100

type recordKind uint8

const (
	recordCell recordKind = iota
	recordRange
	recordResize
)

// undoRecord is a single entry in the log: exactly one of its kind-specific
// fields is meaningful, selected by kind. The "after" state is nil/empty
// until the first Undo() call against this record captures it, per §4.6
// ("once undo executes, the after state").
type undoRecord struct {
	kind recordKind

	// recordCell
	row, col           int
	cellBefore         *Cell
	cellAfter          *Cell
	cellAfterCaptured  bool

	// recordRange
	rng                Range
	rangeBefore        [][]*Cell
	rangeAfter         [][]*Cell
	rangeAfterCaptured bool

	// recordResize
	resizeRows         bool // true: row heights, false: column widths
	idx0, idx1         int
	sizesBefore        []int
	sizesAfter         []int
	resizeAfterCapture bool
}

// UndoLog is the bounded ring of undo/redo records described in §3.1 and
// §4.6, with a cursor marking the next write position.
type UndoLog struct {
	records []*undoRecord
	cursor  int
}

// push appends rec as the newest record, first discarding any redo tail
// (records at or past the cursor) and then evicting the oldest record if
// the ring is already at capacity.
func (u *UndoLog) push(rec *undoRecord) {
	u.records = u.records[:u.cursor]
	u.records = append(u.records, rec)
	if len(u.records) > undoCapacity {
		u.records = u.records[1:]
	}
	u.cursor = len(u.records)
}

// RecordCell captures (row, col)'s current state as the "before" half of a
// new undo record. Call this before mutating the cell.
func (u *UndoLog) RecordCell(g *Grid, row, col int) {
	u.push(&undoRecord{
		kind:       recordCell,
		row:        row,
		col:        col,
		cellBefore: g.Get(row, col).clone(),
	})
}

// RecordRange captures every cell inside r (canonicalized) as the "before"
// half of a new undo record. Call this before mutating any cell in r.
func (u *UndoLog) RecordRange(g *Grid, r Range) {
	r = r.Canonicalize()
	before := snapshotRange(g, r)
	u.push(&undoRecord{kind: recordRange, rng: r, rangeBefore: before})
}

// RecordResize captures the current widths (isRows=false) or heights
// (isRows=true) over [idx0, idx1] as the "before" half of a new undo
// record. Call this before mutating sizes.
func (u *UndoLog) RecordResize(g *Grid, isRows bool, idx0, idx1 int) {
	if idx0 > idx1 {
		idx0, idx1 = idx1, idx0
	}
	sizes := make([]int, idx1-idx0+1)
	for i := range sizes {
		if isRows {
			sizes[i] = g.RowHeight(idx0 + i)
		} else {
			sizes[i] = g.ColWidth(idx0 + i)
		}
	}
	u.push(&undoRecord{
		kind:        recordResize,
		resizeRows:  isRows,
		idx0:        idx0,
		idx1:        idx1,
		sizesBefore: sizes,
	})
}

func snapshotRange(g *Grid, r Range) [][]*Cell {
	rows, cols := r.Rows(), r.Cols()
	snap := make([][]*Cell, rows)
	for i := range snap {
		snap[i] = make([]*Cell, cols)
		for j := range snap[i] {
			snap[i][j] = g.Get(r.R0+i, r.C0+j).clone()
		}
	}
	return snap
}

func applyRangeSnapshot(g *Grid, r Range, snap [][]*Cell) {
	for i := 0; i < r.Rows(); i++ {
		for j := 0; j < r.Cols(); j++ {
			row, col := r.R0+i, r.C0+j
			src := snap[i][j]
			if src == nil {
				g.Clear(row, col)
				continue
			}
			dst := g.GetOrCreate(row, col)
			*dst = *src
			dst.Row, dst.Col = row, col
		}
	}
}

func applyCellSnapshot(g *Grid, row, col int, src *Cell) {
	if src == nil {
		g.Clear(row, col)
		return
	}
	dst := g.GetOrCreate(row, col)
	*dst = *src
	dst.Row, dst.Col = row, col
}

// Undo restores the most recent unreverted record's before-state, first
// capturing its after-state (the current grid content) if this is the
// first time this record has been undone. Returns false if there is
// nothing to undo.
func (u *UndoLog) Undo(g *Grid) bool {
	if u.cursor == 0 {
		return false
	}
	rec := u.records[u.cursor-1]
	switch rec.kind {
	case recordCell:
		if !rec.cellAfterCaptured {
			rec.cellAfter = g.Get(rec.row, rec.col).clone()
			rec.cellAfterCaptured = true
		}
		applyCellSnapshot(g, rec.row, rec.col, rec.cellBefore)
	case recordRange:
		if !rec.rangeAfterCaptured {
			rec.rangeAfter = snapshotRange(g, rec.rng)
			rec.rangeAfterCaptured = true
		}
		applyRangeSnapshot(g, rec.rng, rec.rangeBefore)
	case recordResize:
		if !rec.resizeAfterCapture {
			rec.sizesAfter = captureSizes(g, rec.resizeRows, rec.idx0, rec.idx1)
			rec.resizeAfterCapture = true
		}
		applySizes(g, rec.resizeRows, rec.idx0, rec.sizesBefore)
	}
	u.cursor--
	g.MarkDirty()
	return true
}

// Redo restores the next record's after-state. Returns false if there is
// nothing to redo.
func (u *UndoLog) Redo(g *Grid) bool {
	if u.cursor >= len(u.records) {
		return false
	}
	rec := u.records[u.cursor]
	switch rec.kind {
	case recordCell:
		applyCellSnapshot(g, rec.row, rec.col, rec.cellAfter)
	case recordRange:
		applyRangeSnapshot(g, rec.rng, rec.rangeAfter)
	case recordResize:
		applySizes(g, rec.resizeRows, rec.idx0, rec.sizesAfter)
	}
	u.cursor++
	g.MarkDirty()
	return true
}

func captureSizes(g *Grid, isRows bool, idx0, idx1 int) []int {
	sizes := make([]int, idx1-idx0+1)
	for i := range sizes {
		if isRows {
			sizes[i] = g.RowHeight(idx0 + i)
		} else {
			sizes[i] = g.ColWidth(idx0 + i)
		}
	}
	return sizes
}

func applySizes(g *Grid, isRows bool, idx0 int, sizes []int) {
	for i, v := range sizes {
		if isRows {
			g.rowHeights[idx0+i] = v
		} else {
			g.colWidths[idx0+i] = v
		}
	}
}

// Len reports the number of records currently in the log.
func (u *UndoLog) Len() int { return len(u.records) }

// Cursor reports the log's current write position.
func (u *UndoLog) Cursor() int { return u.cursor }
