package engine

import (
	"math"
	"sort"
)

// rangeValues collects every cell's contribution from r for an aggregate
// builtin: Empty contributes 0, Text is silently skipped, an errored or
// string-result Formula cell is silently skipped (aggregates do not
// propagate a dependency's error — only a bare single-cell reference does,
// per §4.4.5's "skipped or propagate depending on function").
func rangeValues(ctx *evalContext, r Range) []float64 {
	var out []float64
	for row := r.R0; row <= r.R1; row++ {
		for col := r.C0; col <= r.C1; col++ {
			c := ctx.grid.Get(row, col)
			if c == nil {
				out = append(out, 0)
				continue
			}
			switch c.Type {
			case ContentEmpty:
				out = append(out, 0)
			case ContentNumber:
				out = append(out, c.Number)
			case ContentFormula:
				if c.Cache.Err == ErrNone && !c.Cache.IsStringResult {
					out = append(out, c.Cache.Number)
				}
			}
		}
	}
	return out
}

// argRange extracts the Range from an argument node, which is either a
// literal RangeNode or (rarely) a single cell reference treated as a
// degenerate 1x1 range.
func argRange(n Node) (Range, bool) {
	switch v := n.(type) {
	case *RangeNode:
		return v.R, true
	case *CellRefNode:
		return Range{R0: v.Row, C0: v.Col, R1: v.Row, C1: v.Col}, true
	default:
		return Range{}, false
	}
}

// aggregateInputs gathers numeric contributions across all arguments of an
// aggregate call: range arguments expand via rangeValues, scalar
// arguments evaluate individually (SUM permits "range or single scalar").
func aggregateInputs(ctx *evalContext, args []Node) ([]float64, error) {
	var out []float64
	for _, a := range args {
		if r, ok := argRange(a); ok {
			out = append(out, rangeValues(ctx, r)...)
			continue
		}
		v, err := a.Eval(ctx)
		if err != nil {
			return nil, err
		}
		if v.Kind == KindNumber {
			out = append(out, v.Number)
		}
	}
	return out, nil
}

func callBuiltin(ctx *evalContext, name string, args []Node) (Value, error) {
	switch name {
	case "SUM":
		return builtinSum(ctx, args)
	case "AVG":
		return builtinAvg(ctx, args)
	case "MAX":
		return builtinMax(ctx, args)
	case "MIN":
		return builtinMin(ctx, args)
	case "MEDIAN":
		return builtinMedian(ctx, args)
	case "MODE":
		return builtinMode(ctx, args)
	case "POWER":
		return builtinPower(ctx, args)
	case "IF":
		return builtinIf(ctx, args)
	case "VLOOKUP":
		return builtinVlookup(ctx, args)
	default:
		return Value{}, NewFormulaError(ErrParse, "unknown function: "+name)
	}
}

func builtinSum(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return NumberValue(sum), nil
}

func builtinAvg(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	if len(vals) == 0 {
		return NumberValue(0), nil
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return NumberValue(sum / float64(len(vals))), nil
}

func builtinMax(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	if len(vals) == 0 {
		return NumberValue(0), nil
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return NumberValue(max), nil
}

func builtinMin(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	if len(vals) == 0 {
		return NumberValue(0), nil
	}
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return NumberValue(min), nil
}

func builtinMedian(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	if len(vals) == 0 {
		return NumberValue(0), nil
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return NumberValue(sorted[n/2]), nil
	}
	return NumberValue((sorted[n/2-1] + sorted[n/2]) / 2), nil
}

// builtinMode returns the first value (in input order) whose frequency is
// maximal, with equality compared at tolerance 1e-10. Over a range of all
// distinct values this returns the first element — the source does not
// treat that as "no mode", and neither do we (§9).
func builtinMode(ctx *evalContext, args []Node) (Value, error) {
	vals, err := aggregateInputs(ctx, args)
	if err != nil {
		return Value{}, err
	}
	if len(vals) == 0 {
		return NumberValue(0), nil
	}
	const eps = 1e-10
	bestVal := vals[0]
	bestCount := 0
	for _, v := range vals {
		count := 0
		for _, w := range vals {
			if absFloat(v-w) < eps {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestVal = v
		}
	}
	return NumberValue(bestVal), nil
}

func builtinPower(ctx *evalContext, args []Node) (Value, error) {
	if len(args) != 2 {
		return Value{}, NewFormulaError(ErrParse, "POWER expects 2 arguments")
	}
	base, err := evalNumber(ctx, args[0])
	if err != nil {
		return Value{}, err
	}
	exp, err := evalNumber(ctx, args[1])
	if err != nil {
		return Value{}, err
	}
	return NumberValue(math.Pow(base, exp)), nil
}

func evalNumber(ctx *evalContext, n Node) (float64, error) {
	v, err := n.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return v.AsNumber()
}

// builtinIf evaluates the condition and takes the corresponding branch. If
// the taken branch is a string literal, the containing formula is flagged
// as a string result and the cached string is the literal (§4.4.4, §9).
func builtinIf(ctx *evalContext, args []Node) (Value, error) {
	if len(args) != 3 {
		return Value{}, NewFormulaError(ErrParse, "IF expects 3 arguments")
	}
	cond, err := evalNumber(ctx, args[0])
	if err != nil {
		return Value{}, err
	}
	branch := args[1]
	if cond == 0 {
		branch = args[2]
	}
	if lit, ok := branch.(*StringNode); ok {
		ctx.markStringResult(lit.Value)
		return StringValue(lit.Value), nil
	}
	return branch.Eval(ctx)
}

// builtinVlookup implements §4.4.4's VLOOKUP over the first column of a
// range.
func builtinVlookup(ctx *evalContext, args []Node) (Value, error) {
	if len(args) < 3 || len(args) > 4 {
		return Value{}, NewFormulaError(ErrParse, "VLOOKUP expects 3 or 4 arguments")
	}
	table, ok := argRange(args[1])
	if !ok {
		return Value{}, NewFormulaError(ErrRef, "VLOOKUP table must be a range")
	}
	table = table.Canonicalize()

	colIndex := 1.0
	colIndexVal, err := evalNumber(ctx, args[2])
	if err != nil {
		return Value{}, err
	}
	colIndex = colIndexVal
	targetCol := table.C0 + int(colIndex) - 1
	if targetCol < table.C0 || targetCol > table.C1 {
		return Value{}, NewFormulaError(ErrRef, "VLOOKUP column index out of range")
	}

	exact := false
	if len(args) == 4 {
		exactVal, err := evalNumber(ctx, args[3])
		if err != nil {
			return Value{}, err
		}
		exact = exactVal != 0
	}

	if lit, ok := args[0].(*StringNode); ok {
		return vlookupString(ctx, table, targetCol, lit.Value)
	}

	key, err := evalNumber(ctx, args[0])
	if err != nil {
		return Value{}, err
	}
	return vlookupNumber(ctx, table, targetCol, key, exact)
}

func vlookupString(ctx *evalContext, table Range, targetCol int, key string) (Value, error) {
	for row := table.R0; row <= table.R1; row++ {
		c := ctx.grid.Get(row, table.C0)
		if c == nil {
			continue
		}
		var text string
		switch {
		case c.Type == ContentText:
			text = c.Text
		case c.Type == ContentFormula && c.Cache.Err == ErrNone && c.Cache.IsStringResult:
			text = c.Cache.String
		default:
			continue
		}
		if text == key {
			return lookupResult(ctx, row, targetCol)
		}
	}
	return Value{}, NewFormulaError(ErrNA, "VLOOKUP key not found")
}

func vlookupNumber(ctx *evalContext, table Range, targetCol int, key float64, exact bool) (Value, error) {
	const eps = 1e-10
	if exact {
		for row := table.R0; row <= table.R1; row++ {
			v, ok := numericCell(ctx, row, table.C0)
			if ok && absFloat(v-key) < eps {
				return lookupResult(ctx, row, targetCol)
			}
		}
		return Value{}, NewFormulaError(ErrNA, "VLOOKUP key not found")
	}

	// Approximate: largest first-column value <= key, assuming the column
	// is sorted ascending (§4.4.4); scan linearly and track the best
	// candidate rather than trust-and-binary-search the ordering.
	bestRow := -1
	var bestVal float64
	for row := table.R0; row <= table.R1; row++ {
		v, ok := numericCell(ctx, row, table.C0)
		if !ok || v > key {
			continue
		}
		if bestRow == -1 || v > bestVal {
			bestRow, bestVal = row, v
		}
	}
	if bestRow == -1 {
		return Value{}, NewFormulaError(ErrNA, "VLOOKUP key not found")
	}
	return lookupResult(ctx, bestRow, targetCol)
}

func numericCell(ctx *evalContext, row, col int) (float64, bool) {
	c := ctx.grid.Get(row, col)
	if c == nil {
		return 0, false
	}
	switch c.Type {
	case ContentNumber:
		return c.Number, true
	case ContentFormula:
		if c.Cache.Err == ErrNone && !c.Cache.IsStringResult {
			return c.Cache.Number, true
		}
	}
	return 0, false
}

// lookupResult reads the cell at (row, col) as a typed Value without
// requiring it to be numeric — unlike a bare arithmetic reference,
// VLOOKUP's result column may legitimately be text.
func lookupResult(ctx *evalContext, row, col int) (Value, error) {
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
		return StringValue(c.Text), nil
	case ContentFormula:
		if c.Cache.Err != ErrNone {
			return Value{}, NewFormulaError(c.Cache.Err, "propagated from "+IndexToLabel(row, col))
		}
		if c.Cache.IsStringResult {
			return StringValue(c.Cache.String), nil
		}
		return NumberValue(c.Cache.Number), nil
	case ContentError:
		return Value{}, NewFormulaError(c.Err, "error cell")
	default:
		return EmptyValue(), nil
	}
}
