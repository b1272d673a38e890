package engine

import "testing"

func TestParseCommandQuit(t *testing.T) {
	for _, s := range []string{"q", "quit", "QUIT"} {
		if cmd := ParseCommand(s); cmd.Kind != CmdQuit {
			t.Errorf("ParseCommand(%q).Kind = %v, want CmdQuit", s, cmd.Kind)
		}
	}
}

func TestParseCommandSaveCSV(t *testing.T) {
	cmd := ParseCommand("savecsv out.csv preserve")
	if cmd.Kind != CmdSaveCSV || cmd.Path != "out.csv" || cmd.Mode != "preserve" {
		t.Errorf("ParseCommand(savecsv) = %+v", cmd)
	}
}

func TestParseCommandFormat(t *testing.T) {
	cmd := ParseCommand("format currency")
	if cmd.Kind != CmdFormat || cmd.Format != FormatCurrency {
		t.Errorf("ParseCommand(format currency) = %+v", cmd)
	}
}

func TestParseCommandRangeFormat(t *testing.T) {
	cmd := ParseCommand("range format date iso")
	if cmd.Kind != CmdFormat || !cmd.RangeVariant || cmd.Format != FormatDate || cmd.FormatStyle.Date != DateISO {
		t.Errorf("ParseCommand(range format date iso) = %+v", cmd)
	}
}

func TestParseCommandChart(t *testing.T) {
	cmd := ParseCommand("bar")
	if cmd.Kind != CmdChart || cmd.ChartKind != "bar" {
		t.Errorf("ParseCommand(bar) = %+v", cmd)
	}
}

func TestParseCommandUnknown(t *testing.T) {
	cmd := ParseCommand("nonsense")
	if cmd.Kind != CmdUnknown {
		t.Errorf("ParseCommand(nonsense) = %+v, want CmdUnknown", cmd)
	}
}

func TestDispatchFormatAndColor(t *testing.T) {
	s := NewSheet(5, 5)
	s.SetNumber(0, 0, 3)

	_, handled := Dispatch(s, 0, 0, ParseCommand("format percentage"))
	if !handled {
		t.Fatalf("Dispatch should handle \"format\"")
	}
	if s.Grid.Get(0, 0).Format != FormatPercentage {
		t.Errorf("Dispatch(format percentage) did not apply format")
	}

	msg, handled := Dispatch(s, 0, 0, ParseCommand("clrtx blue"))
	if !handled || msg != "" {
		t.Fatalf("Dispatch(clrtx blue) = (%q, %v)", msg, handled)
	}
	if s.Grid.Get(0, 0).TextColor != 1 {
		t.Errorf("Dispatch(clrtx blue) did not apply color")
	}

	msg, handled = Dispatch(s, 0, 0, ParseCommand("clrtx not-a-color"))
	if !handled || msg == "" {
		t.Fatalf("Dispatch(clrtx not-a-color) should report an invalid-color notice")
	}
}

func TestDispatchLeavesExternalCommandsUnhandled(t *testing.T) {
	s := NewSheet(5, 5)
	_, handled := Dispatch(s, 0, 0, ParseCommand("savecsv out.csv"))
	if handled {
		t.Errorf("Dispatch should not claim to handle savecsv -- that's cmd/winsheet's job")
	}
}

func TestDispatchFormatRangeVariant(t *testing.T) {
	s := NewSheet(5, 5)
	s.Selection.Start(0, 0)
	s.Selection.Extend(1, 1)

	_, handled := Dispatch(s, 0, 0, ParseCommand("format currency"))
	if !handled {
		t.Fatalf("Dispatch should handle format")
	}
	for r := 0; r <= 1; r++ {
		for c := 0; c <= 1; c++ {
			if s.Grid.Get(r, c).Format != FormatCurrency {
				t.Errorf("active selection should cause format to apply across the range, missed (%d,%d)", r, c)
			}
		}
	}
}
