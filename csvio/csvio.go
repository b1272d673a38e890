// Package csvio implements the CSV load/save contract the engine requires
// of its "out of scope" CSV collaborator (spec §1, §6): a loader that
// supplies cell values to (row, col), and a saver that drains cells to a
// line stream. Quoted-field lexing itself uses the standard library's
// encoding/csv, which already implements the exact quoting rule the
// contract calls for (RFC 4180-style: quote fields containing a comma,
// quote, or newline; double internal quotes) — the pack's only CSV-shaped
// library, domonda-go-retable's csvtable, is built around reflecting
// arbitrary Go structs through a generic table view, which does not fit a
// fixed (row, col) grid of typed cells and would add an unused abstraction
// layer rather than simplify anything here.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BitEU/WinSpread/engine"
)

// Mode selects how Save renders formula cells and how Load interprets a
// leading '='.
type Mode int

const (
	// Flatten renders every cell via its display value, including formula
	// cells (their computed result, not their source expression).
	Flatten Mode = iota
	// Preserve renders formula cells as their source expression (with the
	// leading '=') so a round-trip load reconstructs the formula.
	Preserve
)

// ParseMode maps the command-bar mode token ("flatten"/"preserve") to a
// Mode, defaulting to Flatten on anything else.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, "preserve") {
		return Preserve
	}
	return Flatten
}

// Save writes the minimal rectangle covering every non-empty cell in g,
// row-major, one CSV record per row (§6).
func Save(w io.Writer, g *engine.Grid, mode Mode) error {
	r0, c0, r1, c1, ok := boundingBox(g)
	cw := csv.NewWriter(w)
	if !ok {
		return cw.Error()
	}
	for row := r0; row <= r1; row++ {
		record := make([]string, c1-c0+1)
		for col := c0; col <= c1; col++ {
			record[col-c0] = cellField(g, row, col, mode)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellField(g *engine.Grid, row, col int, mode Mode) string {
	c := g.Get(row, col)
	if c == nil {
		return ""
	}
	if mode == Preserve && c.Type == engine.ContentFormula {
		return "=" + c.Formula
	}
	return engine.DisplayValue(c)
}

// boundingBox finds the smallest rectangle covering every non-empty cell.
// ok is false when the grid has no non-empty cell at all.
func boundingBox(g *engine.Grid) (r0, c0, r1, c1 int, ok bool) {
	r0, c0 = g.Rows(), g.Cols()
	r1, c1 = -1, -1
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := g.Get(row, col)
			if c == nil || c.Type == engine.ContentEmpty {
				continue
			}
			ok = true
			if row < r0 {
				r0 = row
			}
			if row > r1 {
				r1 = row
			}
			if col < c0 {
				c0 = col
			}
			if col > c1 {
				c1 = col
			}
		}
	}
	return r0, c0, r1, c1, ok
}

// Load clears g, then reads rows/cols from r according to the CSV field
// grammar, writing each non-empty field at its (row, col) position (§6).
// For each field: a leading '=' under Preserve mode becomes a formula; else
// a successful numeric parse becomes a number; else the field becomes text.
func Load(r io.Reader, g *engine.Grid, mode Mode) error {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			g.Clear(row, col)
		}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("csvio: load: %w", err)
		}
		if row >= g.Rows() {
			break
		}
		for col, field := range record {
			if col >= g.Cols() || field == "" {
				continue
			}
			writeField(g, row, col, field, mode)
		}
		row++
	}
	return nil
}

func writeField(g *engine.Grid, row, col int, field string, mode Mode) {
	if mode == Preserve && strings.HasPrefix(field, "=") {
		g.SetFormula(row, col, strings.TrimPrefix(field, "="))
		return
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		g.SetNumber(row, col, n)
		return
	}
	g.SetText(row, col, field)
}
