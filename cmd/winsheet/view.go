package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/BitEU/WinSpread/engine"
)

// Styles follow surprisetalk-scrapsheets' tui/main.go convention: a small
// fixed palette of lipgloss styles rather than a theme object, keyed by
// role (header, cursor, dim status text, error).
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	selStyle    = lipgloss.NewStyle().Background(lipgloss.Color("8"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	switch m.mode {
	case modeChart:
		return m.viewChart()
	default:
		return m.viewGrid()
	}
}

func (m model) viewChart() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" chart "))
	b.WriteString("\n")
	for _, l := range m.chartLines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(" any key to close "))
	return b.String()
}

func (m model) viewGrid() string {
	var b strings.Builder

	visRows, visCols := m.gridViewport()
	endRow := m.scrollRow + visRows
	if rows := m.sheet.Grid.Rows(); endRow > rows {
		endRow = rows
	}
	endCol := m.scrollCol + visCols
	if cols := m.sheet.Grid.Cols(); endCol > cols {
		endCol = cols
	}

	// header row: column labels
	var hdr strings.Builder
	hdr.WriteString(padCell("", 4))
	for c := m.scrollCol; c < endCol; c++ {
		w := m.sheet.ColumnWidth(c)
		hdr.WriteString(headerStyle.Render(padCell(columnLabel(c), w)))
	}
	b.WriteString(hdr.String())
	b.WriteString("\n")

	for r := m.scrollRow; r < endRow; r++ {
		b.WriteString(dimStyle.Render(padCell(strconv.Itoa(r+1), 4)))
		for c := m.scrollCol; c < endCol; c++ {
			w := m.sheet.ColumnWidth(c)
			var text string
			if m.mode == modeEdit && r == m.cursorRow && c == m.cursorCol {
				text = m.editBuf + "_"
			} else {
				text = m.sheet.DisplayValue(r, c)
			}
			cell := padCell(text, w)

			switch {
			case r == m.cursorRow && c == m.cursorCol:
				b.WriteString(cursorStyle.Render(cell))
			case m.sheet.IsInSelection(r, c):
				b.WriteString(selStyle.Render(cell))
			default:
				b.WriteString(cellStyle(m.sheet.CellInfo(r, c)).Render(cell))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatusLine())
	return b.String()
}

func (m model) viewStatusLine() string {
	if m.mode == modeCommand {
		return m.cmdInput.View()
	}
	label := engine.IndexToLabel(m.cursorRow, m.cursorCol)
	info := m.sheet.CellInfo(m.cursorRow, m.cursorCol)
	status := label + "  " + formatKind(info.Type)
	if m.statusMsg != "" {
		status += "  " + m.statusMsg
	}
	return statusStyle.Render(" " + status + " ")
}

func formatKind(t engine.ContentType) string {
	switch t {
	case engine.ContentNumber:
		return "number"
	case engine.ContentText:
		return "text"
	case engine.ContentFormula:
		return "formula"
	case engine.ContentError:
		return "error"
	default:
		return ""
	}
}

// cellStyle maps a cell's console-order colors (§6) to lipgloss ANSI
// colors via engine.ANSIIndex; the stored Cell colors stay in console
// order, only the render path translates.
func cellStyle(info engine.CellInfo) lipgloss.Style {
	style := lipgloss.NewStyle()
	if info.TextColor != engine.ColorDefault {
		style = style.Foreground(lipgloss.Color(strconv.Itoa(engine.ANSIIndex(info.TextColor))))
	}
	if info.BackgroundColor != engine.ColorDefault {
		style = style.Background(lipgloss.Color(strconv.Itoa(engine.ANSIIndex(info.BackgroundColor))))
	}
	return style
}

// padCell pads or truncates s to display width w, accounting for
// wide/combining runes via go-runewidth rather than assuming one column
// per byte (grounded on iw2rmb-flourish's rune-width-aware rendering).
func padCell(s string, w int) string {
	dw := runewidth.StringWidth(s)
	if dw > w {
		return runewidth.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-dw)
}

func columnLabel(col int) string {
	label := engine.IndexToLabel(0, col)
	return strings.TrimRight(label, "0123456789")
}
