// Command winsheet is the terminal presenter for the WinSpread engine: a
// bubbletea program that renders an engine.Sheet as a scrollable grid, maps
// keys to the engine's Read/Write API, and drives the `:` command bar
// through engine.ParseCommand/Dispatch. Flag parsing is cobra, grounded on
// other_examples/witanlabs-witan-cli's xlsx command (a persistent root
// command taking the operation's parameters as flags) -- kept separate from
// the in-app command-bar tokenizer in engine/commands.go, which is its own
// hand-rolled lexer, matching the teacher's habit of hand-rolling rather
// than reaching for a grammar library for small line grammars.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/BitEU/WinSpread/csvio"
)

var (
	flagRows int
	flagCols int
	flagFile string
	flagMode string
)

var rootCmd = &cobra.Command{
	Use:   "winsheet",
	Short: "A terminal spreadsheet",
	Long: `winsheet is a terminal spreadsheet: arrow keys move the cursor,
enter edits a cell, and a leading ':' opens the command bar for
save/load/format/chart directives.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&flagRows, "rows", 1000, "grid row count")
	rootCmd.Flags().IntVar(&flagCols, "cols", 100, "grid column count")
	rootCmd.Flags().StringVar(&flagFile, "file", "", "CSV file to load on startup")
	rootCmd.Flags().StringVar(&flagMode, "mode", "flatten", "CSV mode for --file: flatten|preserve")
}

func run(cmd *cobra.Command, args []string) error {
	if termenv.ColorProfile() == termenv.Ascii {
		return fmt.Errorf("winsheet: terminal does not report ANSI color support")
	}

	m := newModel(flagRows, flagCols)
	if flagFile != "" {
		m.csvMode = csvio.ParseMode(flagMode)
		if err := m.loadFile(flagFile); err != nil {
			log.Printf("winsheet: could not load %s: %v", flagFile, err)
			m.statusMsg = fmt.Sprintf("could not load %s: %v", flagFile, err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
