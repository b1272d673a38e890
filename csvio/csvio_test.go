package csvio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BitEU/WinSpread/csvio"
	"github.com/BitEU/WinSpread/engine"
)

func TestSaveFlattenBoundingBox(t *testing.T) {
	g := engine.NewGrid(10, 10)
	g.SetNumber(1, 1, 5)
	g.SetText(2, 2, "hi, there")
	g.SetFormula(3, 3, "A1")
	g.Recalculate()

	var buf strings.Builder
	require.NoError(t, csvio.Save(&buf, g, csvio.Flatten))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3) // rows 1..3 is the minimal bounding box
	assert.Contains(t, lines[1], `"hi, there"`)
}

func TestSavePreserveEmitsFormulaSource(t *testing.T) {
	g := engine.NewGrid(5, 5)
	g.SetNumber(0, 0, 1)
	g.SetFormula(0, 1, "A1+1")
	g.Recalculate()

	var buf strings.Builder
	require.NoError(t, csvio.Save(&buf, g, csvio.Preserve))
	assert.Contains(t, buf.String(), "=A1+1")
}

func TestLoadRoundTrip(t *testing.T) {
	src := engine.NewGrid(5, 5)
	src.SetNumber(0, 0, 3.5)
	src.SetText(0, 1, "hello")
	src.SetFormula(0, 2, "A1*2")
	src.Recalculate()

	var buf strings.Builder
	require.NoError(t, csvio.Save(&buf, src, csvio.Preserve))

	dst := engine.NewGrid(5, 5)
	require.NoError(t, csvio.Load(strings.NewReader(buf.String()), dst, csvio.Preserve))
	dst.Recalculate()

	assert.Equal(t, "3.5", engine.DisplayValue(dst.Get(0, 0)))
	assert.Equal(t, "hello", engine.DisplayValue(dst.Get(0, 1)))
	assert.Equal(t, "7", engine.DisplayValue(dst.Get(0, 2)))
}

func TestLoadQuotedFieldWithEmbeddedComma(t *testing.T) {
	g := engine.NewGrid(5, 5)
	require.NoError(t, csvio.Load(strings.NewReader(`"a,b",3`+"\r\n"), g, csvio.Flatten))
	assert.Equal(t, "a,b", engine.DisplayValue(g.Get(0, 0)))
	assert.Equal(t, "3", engine.DisplayValue(g.Get(0, 1)))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, csvio.Preserve, csvio.ParseMode("preserve"))
	assert.Equal(t, csvio.Flatten, csvio.ParseMode("flatten"))
	assert.Equal(t, csvio.Flatten, csvio.ParseMode(""))
}
