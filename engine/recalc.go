package engine

// Recalculate scans every cell in row-major order and, for each Formula
// cell, parses and evaluates its expression, refreshing its cache.
//
// This is a single pass per call, not a fixpoint loop: a formula that
// reads a later-in-scan formula sees that cell's previous-cycle cached
// value, and a multi-level formula chain may need several mutate-then-
// recalculate cycles to settle (§4.5, §9). This spec tolerates either a
// row-major scan or a topological dependency-graph evaluator; this
// implementation takes the simpler row-major scan, matching the original
// C source, and does not attempt cycle detection.
func (g *Grid) Recalculate() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := g.cells[row][col]
			if c == nil || c.Type != ContentFormula {
				continue
			}
			g.recalcCell(c)
		}
	}
	g.needsRecalc = false
}

func (g *Grid) recalcCell(c *Cell) {
	c.Cache = FormulaCache{}

	node, err := ParseFormula(c.Formula)
	if err != nil {
		c.Cache.Err = kindOf(err)
		return
	}

	ctx := &evalContext{grid: g, target: c}
	val, err := node.Eval(ctx)
	if err != nil {
		c.Cache.Err = kindOf(err)
		c.Cache.IsStringResult = false
		c.Cache.String = ""
		return
	}

	switch val.Kind {
	case KindString:
		c.Cache.IsStringResult = true
		c.Cache.String = val.String
	default:
		if !c.Cache.IsStringResult {
			c.Cache.Number = val.Number
		}
	}
}

func kindOf(err error) ErrorKind {
	if fe, ok := AsFormulaError(err); ok {
		return fe.Kind
	}
	return ErrParse
}
