package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BitEU/WinSpread/chart"
	"github.com/BitEU/WinSpread/csvio"
	"github.com/BitEU/WinSpread/engine"
)

// uiMode mirrors the modal structure of surprisetalk-scrapsheets' tui
// model (modeNormal/modeEdit), extended with a command-bar mode for the
// ':' status line and a read-only chart overlay.
type uiMode int

const (
	modeNormal uiMode = iota
	modeEdit
	modeCommand
	modeChart
)

type model struct {
	sheet *engine.Sheet

	cursorRow, cursorCol int
	scrollRow, scrollCol int
	width, height        int

	mode     uiMode
	editBuf  string
	cmdInput textinput.Model

	statusMsg string
	filePath  string
	csvMode   csvio.Mode

	chartLines []string
}

func newModel(rows, cols int) model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 256

	return model{
		sheet:    engine.NewSheet(rows, cols),
		cmdInput: ti,
		csvMode:  csvio.Flatten,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeCommand:
			return m.updateCommand(msg)
		case modeChart:
			return m.updateChart(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows, cols := m.sheet.Grid.Rows(), m.sheet.Grid.Cols()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case ":":
		m.mode = modeCommand
		m.cmdInput.SetValue("")
		m.cmdInput.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.moveCursor(-1, 0, rows, cols, false)
	case "down", "j":
		m.moveCursor(1, 0, rows, cols, false)
	case "left", "h":
		m.moveCursor(0, -1, rows, cols, false)
	case "right", "l":
		m.moveCursor(0, 1, rows, cols, false)
	case "shift+up":
		m.moveCursor(-1, 0, rows, cols, true)
	case "shift+down":
		m.moveCursor(1, 0, rows, cols, true)
	case "shift+left":
		m.moveCursor(0, -1, rows, cols, true)
	case "shift+right":
		m.moveCursor(0, 1, rows, cols, true)
	case "alt+left":
		m.sheet.ResizeColumns(m.cursorCol, m.cursorCol, -1)
	case "alt+right":
		m.sheet.ResizeColumns(m.cursorCol, m.cursorCol, 1)
	case "alt+up":
		m.sheet.ResizeRows(m.cursorRow, m.cursorRow, -1)
	case "alt+down":
		m.sheet.ResizeRows(m.cursorRow, m.cursorRow, 1)
	case "esc":
		m.sheet.ClearSelection()
	case "enter":
		m.beginEdit()
		return m, nil
	case "backspace", "delete":
		m.sheet.ClearCell(m.cursorRow, m.cursorCol)
	case "y":
		if m.sheet.Selection.Active {
			m.sheet.CopyRangeSelection()
			m.statusMsg = "copied range"
		} else {
			m.sheet.Clipboard.CopyCell(m.sheet.Grid, m.cursorRow, m.cursorCol)
			m.statusMsg = "copied cell"
		}
	case "p":
		if m.sheet.Clipboard.HasRange() {
			m.sheet.PasteRange(m.cursorRow, m.cursorCol)
		} else {
			m.sheet.PasteCell(m.cursorRow, m.cursorCol)
		}
	case "u", "ctrl+z":
		if m.sheet.Undo() {
			m.statusMsg = "undo"
		}
	case "ctrl+r":
		if m.sheet.Redo() {
			m.statusMsg = "redo"
		}
	}
	return m, nil
}

func (m *model) moveCursor(dr, dc, rows, cols int, extend bool) {
	r, c := m.cursorRow+dr, m.cursorCol+dc
	if r < 0 {
		r = 0
	}
	if r >= rows {
		r = rows - 1
	}
	if c < 0 {
		c = 0
	}
	if c >= cols {
		c = cols - 1
	}
	m.cursorRow, m.cursorCol = r, c
	if extend {
		if !m.sheet.Selection.Active {
			m.sheet.StartSelection(r-dr, c-dc)
		}
		m.sheet.ExtendSelection(r, c)
	} else {
		m.sheet.ClearSelection()
	}
	m.ensureVisible()
}

func (m *model) ensureVisible() {
	visRows, visCols := m.gridViewport()
	if m.cursorRow < m.scrollRow {
		m.scrollRow = m.cursorRow
	}
	if m.cursorRow >= m.scrollRow+visRows {
		m.scrollRow = m.cursorRow - visRows + 1
	}
	if m.cursorCol < m.scrollCol {
		m.scrollCol = m.cursorCol
	}
	if m.cursorCol >= m.scrollCol+visCols {
		m.scrollCol = m.cursorCol - visCols + 1
	}
}

func (m *model) beginEdit() {
	cell := m.sheet.Grid.Get(m.cursorRow, m.cursorCol)
	m.editBuf = ""
	if cell != nil {
		switch cell.Type {
		case engine.ContentFormula:
			m.editBuf = "=" + cell.Formula
		case engine.ContentNumber:
			m.editBuf = strconv.FormatFloat(cell.Number, 'g', -1, 64)
		case engine.ContentText:
			m.editBuf = cell.Text
		}
	}
	m.mode = modeEdit
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		m.mode = modeNormal
	case "esc":
		m.mode = modeNormal
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 || s == " " {
			m.editBuf += s
		}
	}
	return m, nil
}

func (m *model) commitEdit() {
	text := m.editBuf
	switch {
	case strings.HasPrefix(text, "="):
		m.sheet.SetFormula(m.cursorRow, m.cursorCol, strings.TrimPrefix(text, "="))
	case text == "":
		m.sheet.ClearCell(m.cursorRow, m.cursorCol)
	default:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			m.sheet.SetNumber(m.cursorRow, m.cursorCol, v)
		} else {
			m.sheet.SetText(m.cursorRow, m.cursorCol, text)
		}
	}
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		return m, nil
	case "enter":
		line := m.cmdInput.Value()
		m.mode = modeNormal
		return m.runCommand(line)
	}
	var cmd tea.Cmd
	m.cmdInput, cmd = m.cmdInput.Update(msg)
	return m, cmd
}

// runCommand parses and executes a command-bar line. engine.Dispatch
// handles the engine-internal directives (format/cycle/clrtx/clrbg);
// anything it leaves unhandled (quit, CSV I/O, charting) is this
// presenter's own responsibility, per engine/commands.go's doc comment.
func (m model) runCommand(line string) (tea.Model, tea.Cmd) {
	cmd := engine.ParseCommand(line)

	if msg, handled := engine.Dispatch(m.sheet, m.cursorRow, m.cursorCol, cmd); handled {
		m.statusMsg = msg
		return m, nil
	}

	switch cmd.Kind {
	case engine.CmdQuit:
		return m, tea.Quit
	case engine.CmdSaveCSV:
		mode := csvio.ParseMode(cmd.Mode)
		if err := m.saveFile(cmd.Path, mode); err != nil {
			m.statusMsg = "save failed: " + err.Error()
		} else {
			m.statusMsg = "saved " + cmd.Path
		}
	case engine.CmdLoadCSV:
		mode := csvio.ParseMode(cmd.Mode)
		m.csvMode = mode
		if err := m.loadFile(cmd.Path); err != nil {
			m.statusMsg = "load failed: " + err.Error()
		} else {
			m.statusMsg = "loaded " + cmd.Path
		}
	case engine.CmdChart:
		m.showChart(cmd.ChartKind)
	default:
		m.statusMsg = "unknown command"
	}
	return m, nil
}

func (m *model) showChart(kind string) {
	r, ok := m.sheet.Selection.Range()
	if !ok {
		m.statusMsg = "chart needs an active range selection"
		return
	}
	series, err := chart.SamplesFromRange(m.sheet.Grid, r)
	if err != nil {
		m.statusMsg = "chart: " + err.Error()
		return
	}
	k, ok := chart.ParseKind(kind)
	if !ok {
		k = chart.Line
	}
	cfg := chart.DefaultConfig(k)
	cfg.Width, cfg.Height = m.width-10, m.height-10
	m.chartLines = chart.Render(cfg, series)
	m.mode = modeChart
}

func (m model) updateChart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	return m, nil
}

func (m *model) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	m.filePath = path
	if err := csvio.Load(f, m.sheet.Grid, m.csvMode); err != nil {
		return err
	}
	m.sheet.Grid.MarkDirty()
	m.sheet.Recalculate()
	return nil
}

func (m *model) saveFile(path string, mode csvio.Mode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	m.filePath = path
	return csvio.Save(f, m.sheet.Grid, mode)
}

func (m model) gridViewport() (rows, cols int) {
	rows = m.height - 4
	if rows < 1 {
		rows = 1
	}
	cols = (m.width - 6) / 11
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}
