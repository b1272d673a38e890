package engine

// evalContext carries what a Node needs to evaluate itself: grid access
// and, while recalculating a formula cell, that cell's own cache so IF can
// write a string result into it (§4.4.4, §9). The C ancestor threads this
// through a process-wide "currently evaluating cell" variable; passing it
// explicitly here is the redesign §9 calls for — no global state, and
// sub-evaluations (e.g. a VLOOKUP probing a cell) can't accidentally stomp
// on an unrelated cell's cache.
type evalContext struct {
	grid   *Grid
	target *Cell // the formula cell being recalculated; nil outside recalculation
}

// markStringResult records that the formula being evaluated produced a
// string result, per IF's string-branch wiring. No-op if there is no
// target (e.g. evaluating a standalone expression outside recalculation).
func (ctx *evalContext) markStringResult(s string) {
	if ctx.target == nil {
		return
	}
	ctx.target.Cache.IsStringResult = true
	ctx.target.Cache.String = s
}

// readCell resolves a bare cell reference to a Value: Empty -> 0, Number ->
// its value, Formula -> its cached result (propagating a cached error),
// Text -> *Value error (§4.4).
func (ctx *evalContext) readCell(row, col int) (Value, error) {
	if !ctx.grid.InBounds(row, col) {
		return Value{}, NewFormulaError(ErrRef, "cell reference out of bounds")
	}
	c := ctx.grid.Get(row, col)
	if c == nil {
		return EmptyValue(), nil
	}
	switch c.Type {
	case ContentEmpty:
		return EmptyValue(), nil
	case ContentNumber:
		return NumberValue(c.Number), nil
	case ContentText:
		return Value{}, NewFormulaError(ErrValue, "text cell used as number")
	case ContentFormula:
		if c.Cache.Err != ErrNone {
			return Value{}, NewFormulaError(c.Cache.Err, "propagated from "+IndexToLabel(row, col))
		}
		if c.Cache.IsStringResult {
			return Value{}, NewFormulaError(ErrValue, "string-result formula used as number")
		}
		return NumberValue(c.Cache.Number), nil
	case ContentError:
		return Value{}, NewFormulaError(c.Err, "error cell")
	default:
		return EmptyValue(), nil
	}
}

// readCellText returns a cell's stored text for the §4.4.1 string-sided
// comparison: Text cells contribute their string, string-result Formula
// cells contribute their cached string, everything else (including
// absent/Empty/Number cells) contributes "" via Value.AsText.
func (ctx *evalContext) readCellText(row, col int) string {
	return ctx.readCellTextValue(row, col).AsText()
}

func (ctx *evalContext) readCellTextValue(row, col int) Value {
	if !ctx.grid.InBounds(row, col) {
		return EmptyValue()
	}
	c := ctx.grid.Get(row, col)
	if c == nil {
		return EmptyValue()
	}
	switch c.Type {
	case ContentText:
		return StringValue(c.Text)
	case ContentFormula:
		if c.Cache.Err == ErrNone && c.Cache.IsStringResult {
			return StringValue(c.Cache.String)
		}
		return EmptyValue()
	default:
		return EmptyValue()
	}
}
