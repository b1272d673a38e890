package engine

// Clipboard holds the single-cell clipboard and the range clipboard
// described in §4.6. Each is replaced atomically by the next copy of its
// kind; the two clipboards are independent (a range copy does not disturb
// the single-cell clipboard and vice versa).
type Clipboard struct {
	cell *Cell // nil when empty

	rangeRows, rangeCols int
	rangeCells           [][]*Cell // nil entry == absent source cell
}

// CopyCell deep-clones the cell at (r, c) into the single-cell clipboard. An
// absent source cell results in a nil clone, which empties the clipboard;
// PasteCell then reports false and leaves the destination unchanged.
func (cb *Clipboard) CopyCell(g *Grid, r, c int) {
	src := g.Get(r, c)
	cb.cell = src.clone()
}

// PasteCell clones the single-cell clipboard into (r, c) and marks the grid
// dirty. Returns false if there is nothing to paste or the destination is
// out of bounds.
func (cb *Clipboard) PasteCell(g *Grid, r, c int) bool {
	if cb.cell == nil {
		return false
	}
	if !g.InBounds(r, c) {
		return false
	}
	dst := g.GetOrCreate(r, c)
	*dst = *cb.cell
	dst.Row, dst.Col = r, c
	g.MarkDirty()
	return true
}

// HasCell reports whether the single-cell clipboard holds a clone.
func (cb *Clipboard) HasCell() bool { return cb.cell != nil }

// CopyRange deep-clones every cell inside r into the range clipboard, laid
// out in a rectangle of r's exact dimensions.
func (cb *Clipboard) CopyRange(g *Grid, r Range) {
	r = r.Canonicalize()
	rows, cols := r.Rows(), r.Cols()
	cells := make([][]*Cell, rows)
	for i := range cells {
		cells[i] = make([]*Cell, cols)
		for j := range cells[i] {
			cells[i][j] = g.Get(r.R0+i, r.C0+j).clone()
		}
	}
	cb.rangeRows, cb.rangeCols = rows, cols
	cb.rangeCells = cells
}

// HasRange reports whether the range clipboard holds a snapshot.
func (cb *Clipboard) HasRange() bool { return cb.rangeCells != nil }

// PasteRange copies the range clipboard's rectangle onto the grid with its
// top-left corner at (atRow, atCol). Destination cells that overflow the
// grid are silently skipped rather than rejecting the whole paste (§4.6,
// §7). Returns false only if there is nothing to paste.
func (cb *Clipboard) PasteRange(g *Grid, atRow, atCol int) bool {
	if cb.rangeCells == nil {
		return false
	}
	for i := 0; i < cb.rangeRows; i++ {
		for j := 0; j < cb.rangeCols; j++ {
			dstRow, dstCol := atRow+i, atCol+j
			if !g.InBounds(dstRow, dstCol) {
				continue
			}
			src := cb.rangeCells[i][j]
			if src == nil {
				g.Clear(dstRow, dstCol)
				continue
			}
			dst := g.GetOrCreate(dstRow, dstCol)
			*dst = *src
			dst.Row, dst.Col = dstRow, dstCol
		}
	}
	g.MarkDirty()
	return true
}
