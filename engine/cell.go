package engine

// ContentType tags the union of what a cell's content can be.
type ContentType uint8

const (
	ContentEmpty ContentType = iota
	ContentNumber
	ContentText
	ContentFormula
	// ContentError is reserved for direct error injection; no write path
	// in this package produces it, but the Formatter must still be able
	// to render a cell a caller constructed this way.
	ContentError
)

// Align is the cell's text alignment.
type Align uint8

const (
	AlignRight Align = iota
	AlignLeft
	AlignCenter
)

// Format selects how a numeric cell value is rendered.
type Format uint8

const (
	FormatGeneral Format = iota
	FormatNumber
	FormatPercentage
	FormatCurrency
	FormatDate
	FormatTime
	FormatDateTime
)

// DateStyle enumerates the date rendering styles from §4.3.
type DateStyle uint8

const (
	DateMDY DateStyle = iota // MM/DD/YYYY
	DateDMY                 // DD/MM/YYYY
	DateISO                 // YYYY-MM-DD
	DateMDYShortYear        // MM/DD/YY
	DateMonDDYYYY           // Mon DD, YYYY
	DateDDMonYYYY           // DD Mon YYYY
	DateYYYYMonDD           // YYYY Mon DD
	dateStyleCount
)

// TimeStyle enumerates the time rendering styles from §4.3.
type TimeStyle uint8

const (
	Time12Hr TimeStyle = iota
	Time24Hr
	Time24HrWithSeconds
	Time12HrWithSeconds
	timeStyleCount
)

// DateTimeStyle enumerates the combined date+time rendering styles.
type DateTimeStyle uint8

const (
	DateTimeShort DateTimeStyle = iota // M/D/YY h:MM AM/PM
	DateTimeLong                       // Mon DD, YYYY h:MM:SS AM/PM
	DateTimeISO                        // YYYY-MM-DDTHH:MM:SS
	dateTimeStyleCount
)

// FormatStyle bundles the style enum relevant to whichever Format a cell
// currently carries. Only the field matching Format is meaningful.
type FormatStyle struct {
	Date     DateStyle
	Time     TimeStyle
	DateTime DateTimeStyle
}

// Color is a console color index (0-15: 8 base colors plus a bright bit)
// or the sentinel ColorDefault meaning "use the terminal's default".
type Color int16

const ColorDefault Color = -1

// FormulaCache holds a formula cell's last evaluated result: either a
// number or a string, never both, plus an error kind when evaluation
// failed. IsStringResult says which of Number/String is authoritative.
type FormulaCache struct {
	Number         float64
	String         string
	IsStringResult bool
	Err            ErrorKind
}

// Cell is a tagged union of Empty/Number/Text/Formula/Error content, plus
// formatting and sizing metadata that mutation preserves across
// clear-content, copy/paste, and undo/redo (§3.2).
type Cell struct {
	Row, Col int

	Type    ContentType
	Number  float64 // valid when Type == ContentNumber
	Text    string  // valid when Type == ContentText
	Formula string  // source expression (without leading '='), valid when Type == ContentFormula
	Cache   FormulaCache
	Err     ErrorKind // valid when Type == ContentError

	Width            int
	Precision        int
	Align            Align
	Format           Format
	FormatStyle      FormatStyle
	TextColor        Color
	BackgroundColor  Color
}

// DefaultCell returns a new cell at (row, col) with default formatting:
// width 10, precision 2, right-aligned, general format, default colors.
func DefaultCell(row, col int) *Cell {
	return &Cell{
		Row:             row,
		Col:             col,
		Type:            ContentEmpty,
		Width:           10,
		Precision:       2,
		Align:           AlignRight,
		Format:          FormatGeneral,
		TextColor:       ColorDefault,
		BackgroundColor: ColorDefault,
	}
}

// clone returns a deep copy of c (there are no pointer fields inside Cell
// besides the receiver itself, so a value copy is already a deep copy; the
// method exists so call sites read as intentional clones rather than
// accidental aliasing).
func (c *Cell) clone() *Cell {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// cloneFormatting copies only the formatting/sizing fields of src onto dst,
// leaving dst's content and position untouched.
func cloneFormatting(dst, src *Cell) {
	dst.Width = src.Width
	dst.Precision = src.Precision
	dst.Align = src.Align
	dst.Format = src.Format
	dst.FormatStyle = src.FormatStyle
	dst.TextColor = src.TextColor
	dst.BackgroundColor = src.BackgroundColor
}

// cloneContent copies only the content fields of src onto dst (type,
// number, text, formula, cache, error), leaving formatting untouched.
func cloneContent(dst, src *Cell) {
	dst.Type = src.Type
	dst.Number = src.Number
	dst.Text = src.Text
	dst.Formula = src.Formula
	dst.Cache = src.Cache
	dst.Err = src.Err
}
