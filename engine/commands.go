package engine

import "strings"

// CommandKind tags the command-bar directives in §6. A command bar is a
// single-line `:`-prefixed input mode distinct from cell-edit mode,
// mirrored here as the in-app hand-rolled tokenizer (as opposed to the
// OS-level flag parsing cmd/winsheet does with cobra).
type CommandKind uint8

const (
	CmdUnknown CommandKind = iota
	CmdQuit
	CmdSaveCSV
	CmdLoadCSV
	CmdFormat
	CmdClearTextColor
	CmdClearBackgroundColor
	CmdCycleFormat
	CmdChart
)

// Command is the parsed form of one command-bar line. Fields are populated
// only for the kind they're relevant to.
type Command struct {
	Kind CommandKind

	Path string // savecsv/loadcsv
	Mode string // "flatten" or "preserve"

	Format      Format
	FormatStyle FormatStyle

	Color string // raw token, for CmdClearTextColor/CmdClearBackgroundColor

	ChartKind string // "line" | "bar" | "pie" | "scatter"

	RangeVariant bool // explicit "range ..." prefix
}

var chartKinds = map[string]bool{"line": true, "bar": true, "pie": true, "scatter": true}

// ParseCommand tokenizes a command-bar line (without its leading ':') into
// a Command. Unrecognized input yields CmdUnknown rather than an error;
// engine invariant violations are for mutation APIs, not for command text
// a user might simply mistype (§7).
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdUnknown}
	}
	head := strings.ToLower(fields[0])
	rest := fields[1:]

	rangeVariant := false
	if head == "range" && len(rest) > 0 {
		rangeVariant = true
		head = strings.ToLower(rest[0])
		rest = rest[1:]
	}

	switch head {
	case "q", "quit":
		return Command{Kind: CmdQuit}
	case "savecsv", "loadcsv":
		cmd := Command{Mode: "flatten"}
		if head == "savecsv" {
			cmd.Kind = CmdSaveCSV
		} else {
			cmd.Kind = CmdLoadCSV
		}
		if len(rest) > 0 {
			cmd.Path = rest[0]
		}
		if len(rest) > 1 {
			cmd.Mode = strings.ToLower(rest[1])
		}
		return cmd
	case "format":
		if len(rest) == 0 {
			return Command{Kind: CmdUnknown}
		}
		format, style, ok := parseFormatToken(rest)
		if !ok {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdFormat, Format: format, FormatStyle: style, RangeVariant: rangeVariant}
	case "cycle":
		return Command{Kind: CmdCycleFormat, RangeVariant: rangeVariant}
	case "clrtx":
		if len(rest) == 0 {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdClearTextColor, Color: rest[0], RangeVariant: rangeVariant}
	case "clrbg":
		if len(rest) == 0 {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdClearBackgroundColor, Color: rest[0], RangeVariant: rangeVariant}
	default:
		if chartKinds[head] {
			return Command{Kind: CmdChart, ChartKind: head}
		}
		return Command{Kind: CmdUnknown}
	}
}

// parseFormatToken resolves "format <type> [style]"'s type/style tokens.
func parseFormatToken(tokens []string) (Format, FormatStyle, bool) {
	var style FormatStyle
	switch strings.ToLower(tokens[0]) {
	case "general":
		return FormatGeneral, style, true
	case "number":
		return FormatNumber, style, true
	case "percentage", "percent":
		return FormatPercentage, style, true
	case "currency":
		return FormatCurrency, style, true
	case "date":
		s, ok := parseDateStyle(tokens[1:])
		style.Date = s
		return FormatDate, style, ok
	case "time":
		s, ok := parseTimeStyle(tokens[1:])
		style.Time = s
		return FormatTime, style, ok
	case "datetime":
		s, ok := parseDateTimeStyle(tokens[1:])
		style.DateTime = s
		return FormatDateTime, style, ok
	default:
		return FormatGeneral, style, false
	}
}

func parseDateStyle(tokens []string) (DateStyle, bool) {
	if len(tokens) == 0 {
		return DateMDY, true
	}
	switch strings.ToLower(tokens[0]) {
	case "mdy":
		return DateMDY, true
	case "dmy":
		return DateDMY, true
	case "iso":
		return DateISO, true
	case "mdy2":
		return DateMDYShortYear, true
	case "mon-dd-yyyy":
		return DateMonDDYYYY, true
	case "dd-mon-yyyy":
		return DateDDMonYYYY, true
	case "yyyy-mon-dd":
		return DateYYYYMonDD, true
	default:
		return DateMDY, false
	}
}

func parseTimeStyle(tokens []string) (TimeStyle, bool) {
	if len(tokens) == 0 {
		return Time12Hr, true
	}
	switch strings.ToLower(tokens[0]) {
	case "12hr":
		return Time12Hr, true
	case "24hr":
		return Time24Hr, true
	case "24hrsec":
		return Time24HrWithSeconds, true
	case "12hrsec":
		return Time12HrWithSeconds, true
	default:
		return Time12Hr, false
	}
}

func parseDateTimeStyle(tokens []string) (DateTimeStyle, bool) {
	if len(tokens) == 0 {
		return DateTimeShort, true
	}
	switch strings.ToLower(tokens[0]) {
	case "short":
		return DateTimeShort, true
	case "long":
		return DateTimeLong, true
	case "iso":
		return DateTimeISO, true
	default:
		return DateTimeShort, false
	}
}

// Dispatch executes the engine-internal commands (format, cycle, clrtx,
// clrbg) against the current cell or, when RangeVariant is set or a
// selection is active, the active selection. Commands whose execution
// belongs to an external collaborator (quit, CSV I/O, charting) are left
// unhandled for the caller to act on by inspecting cmd.Kind directly —
// the engine only parses and validates them.
//
// Returns a status-line notice (possibly empty) and whether Dispatch fully
// handled the command itself.
func Dispatch(s *Sheet, curRow, curCol int, cmd Command) (string, bool) {
	useRange := cmd.RangeVariant || s.Selection.Active

	switch cmd.Kind {
	case CmdFormat:
		if useRange {
			if !s.SetFormatRange(cmd.Format, cmd.FormatStyle) {
				return "no range selected", true
			}
			return "", true
		}
		s.SetFormat(curRow, curCol, cmd.Format, cmd.FormatStyle)
		return "", true
	case CmdCycleFormat:
		if useRange {
			r, ok := s.Selection.Range()
			if !ok {
				return "no range selected", true
			}
			s.UndoLog.RecordRange(s.Grid, r)
			for row := r.R0; row <= r.R1; row++ {
				for col := r.C0; col <= r.C1; col++ {
					CycleDateTimeFormat(s.Grid.GetOrCreate(row, col))
				}
			}
			return "", true
		}
		s.CycleDateTimeFormat(curRow, curCol)
		return "", true
	case CmdClearTextColor:
		col, err := ParseColor(cmd.Color)
		if err != nil {
			return "invalid color: " + cmd.Color, true
		}
		if useRange {
			if !s.SetTextColorRange(col) {
				return "no range selected", true
			}
			return "", true
		}
		s.SetTextColor(curRow, curCol, col)
		return "", true
	case CmdClearBackgroundColor:
		col, err := ParseColor(cmd.Color)
		if err != nil {
			return "invalid color: " + cmd.Color, true
		}
		if useRange {
			if !s.SetBackgroundColorRange(col) {
				return "no range selected", true
			}
			return "", true
		}
		s.SetBackgroundColor(curRow, curCol, col)
		return "", true
	case CmdUnknown:
		return "unknown command", true
	default:
		return "", false
	}
}
