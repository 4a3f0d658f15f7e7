package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/boxtable/pkg/glyph"
	"github.com/oakwood-commons/boxtable/pkg/shaper"
)

// exampleColumns is the three-column layout used throughout these tests.
var exampleColumns = []ColumnSpec{
	{Width: 8},
	{Width: 32, Align: AlignRight},
	{Align: AlignCenter},
}

func newExampleTable(t *testing.T, mutate func(*Config)) *Table {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	tbl, err := New(cfg, WithColumns(exampleColumns...))
	require.NoError(t, err)
	return tbl
}

func sp(n int) string { return strings.Repeat(" ", n) }

func TestNew(t *testing.T) {
	t.Run("default width", func(t *testing.T) {
		tbl := newExampleTable(t, nil)
		cols := tbl.Columns()
		require.Len(t, cols, 3)
		assert.Equal(t, 8, cols[0].Width())
		assert.Equal(t, 32, cols[1].Width())
		assert.Equal(t, DefaultWidth, cols[2].Width())
		assert.Equal(t, AlignCenter, cols[2].Align())
	})

	t.Run("negative width", func(t *testing.T) {
		_, err := New(DefaultConfig(), WithColumns(ColumnSpec{Width: 4}, ColumnSpec{Width: -1}))
		require.ErrorIs(t, err, ErrInvalidWidth)
		assert.Contains(t, err.Error(), "column 2")
	})

	t.Run("bad alignment", func(t *testing.T) {
		_, err := New(DefaultConfig(), WithColumns(ColumnSpec{Align: Alignment(7)}))
		require.ErrorIs(t, err, shaper.ErrInvalidAlignment)
	})

	t.Run("bad config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Border = BorderPolicy(8)
		cfg.Threshold = -1
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "border policy")
		assert.Contains(t, err.Error(), "threshold")
	})

	t.Run("incomplete glyph source", func(t *testing.T) {
		_, err := New(DefaultConfig(), WithGlyphs(partialGlyphs{}))
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.ErrorIs(t, err, glyph.ErrUnknownGlyph)
	})

	t.Run("columns are append only copies", func(t *testing.T) {
		tbl := newExampleTable(t, nil)
		cols := tbl.Columns()
		cols[0] = nil
		assert.NotNil(t, tbl.Columns()[0])

		_, err := tbl.AddColumn(ColumnSpec{Width: 3})
		require.NoError(t, err)
		assert.Len(t, tbl.Columns(), 4)
	})
}

type partialGlyphs struct{}

func (partialGlyphs) Resolve(name glyph.Name) (rune, error) {
	if name == glyph.TopLeft {
		return '+', nil
	}
	return 0, glyph.ErrUnknownGlyph
}

func TestPageCount(t *testing.T) {
	tbl, err := New(DefaultConfig(), WithColumns(ColumnSpec{Width: 5}))
	require.NoError(t, err)
	col := tbl.Columns()[0]

	assert.Equal(t, 3, col.PageCount("Hello world"))
	assert.Equal(t, 1, col.PageCount("Hello"))
	assert.Equal(t, 2, col.PageCount("Hello!"))
	assert.Equal(t, 1, col.PageCount(""))
	assert.Equal(t, 2, col.PageCount("ünïcödé"))
}

func TestRenderPage(t *testing.T) {
	tbl := newExampleTable(t, nil)
	col := tbl.Columns()[0]

	assert.Equal(t, "Hello w~", col.RenderPage("Hello world", 1, true))
	assert.Equal(t, "Hello wo", col.RenderPage("Hello world", 1, false))
	assert.Equal(t, "rld     ", col.RenderPage("Hello world", 2, false))
	assert.Equal(t, sp(8), col.RenderPage("Hello world", 3, false))
	assert.Equal(t, "Hello w~", col.RenderPage("Hello world", 0, true))

	for page := 1; page <= 4; page++ {
		for _, c := range tbl.Columns() {
			assert.Equal(t, c.Width(), shaper.Len(c.RenderPage("It's the end of the", page, page == 1)))
		}
	}
}

func TestRenderPageMiddleTruncation(t *testing.T) {
	tbl, err := New(Config{Join: "..", Threshold: 2}, WithColumns(ColumnSpec{Width: 12}))
	require.NoError(t, err)
	col := tbl.Columns()[0]

	// half = 12/2 - (1+2) = 3
	assert.Equal(t, "/us..txt    ", col.RenderPage("/usr/share/doc/boxtable/README.txt", 1, true))
	// Paging ignores the join.
	assert.Equal(t, "/usr/share/d", col.RenderPage("/usr/share/doc/boxtable/README.txt", 1, false))
}

func TestBorder(t *testing.T) {
	tbl := newExampleTable(t, nil)

	top := "╔" + strings.Repeat("═", 10) + "╤" + strings.Repeat("═", 34) + "╤" + strings.Repeat("═", 18) + "╗\n"
	middle := "╟" + strings.Repeat("─", 10) + "┼" + strings.Repeat("─", 34) + "┼" + strings.Repeat("─", 18) + "╢\n"
	bottom := "╚" + strings.Repeat("═", 10) + "╧" + strings.Repeat("═", 34) + "╧" + strings.Repeat("═", 18) + "╝\n"

	assert.Equal(t, top, tbl.Top())
	assert.Equal(t, middle, tbl.Border(PositionMiddle))
	assert.Equal(t, bottom, tbl.Bottom())
}

func TestBorderGeometry(t *testing.T) {
	tbl, err := New(DefaultConfig(), WithColumns(ColumnSpec{Width: 8}, ColumnSpec{Width: 32}, ColumnSpec{Width: 10}))
	require.NoError(t, err)

	for _, pos := range []Position{PositionTop, PositionMiddle, PositionBottom} {
		t.Run(pos.String(), func(t *testing.T) {
			line := strings.TrimSuffix(tbl.Border(pos), "\n")
			runes := []rune(line)
			require.Len(t, runes, 2+(8+2)+1+(32+2)+1+(10+2))
			inner := runes[1 : len(runes)-1]
			assert.Len(t, inner, (8+2)+1+(32+2)+1+(10+2))
		})
	}
}

func TestBorderTerminatorAndGlyphs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Terminator = "\r\n"
	tbl, err := New(cfg, WithGlyphs(glyph.ASCII()), WithColumns(ColumnSpec{Width: 2}, ColumnSpec{Width: 1}))
	require.NoError(t, err)

	assert.Equal(t, "+====+===+\r\n", tbl.Top())
	assert.Equal(t, "+----+---+\r\n", tbl.Border(PositionMiddle))
}

func TestRowSingleLine(t *testing.T) {
	tbl := newExampleTable(t, nil)

	got, err := tbl.Row([]string{"Hello world", "First one", "Foo bar"})
	require.NoError(t, err)
	want := "║ Hello w~ │ " + sp(23) + "First one │ " + sp(4) + "Foo bar" + sp(5) + " ║\n"
	assert.Equal(t, want, got)
}

func TestRowArity(t *testing.T) {
	tbl := newExampleTable(t, nil)

	_, err := tbl.Row([]string{"only", "two"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowArity)

	var arity *RowArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 2, arity.Got)
	assert.Equal(t, 3, arity.Want)

	// The table is still usable afterwards.
	_, err = tbl.Row([]string{"a", "b", "c"})
	assert.NoError(t, err)
}

func TestRowMultiline(t *testing.T) {
	tbl := newExampleTable(t, func(c *Config) { c.Multiline = true })

	got, err := tbl.Row([]string{"It's the end of the", "world as we know", "it, and I feel fine."})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "║ It's the │ "+sp(16)+"world as we know │ it, and I feel f ║", lines[0])
	assert.Equal(t, "║  end of  │ "+sp(32)+" │ "+sp(6)+"ine."+sp(6)+" ║", lines[1])
	assert.Equal(t, "║ the      │ "+sp(32)+" │ "+sp(16)+" ║", lines[2])
}

func TestRowMultilineShortRowIsOneLine(t *testing.T) {
	tbl := newExampleTable(t, func(c *Config) { c.Multiline = true })

	got, err := tbl.Row([]string{"", "", ""})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(got, "\n"))
}

func TestRowBorders(t *testing.T) {
	tbl := newExampleTable(t, func(c *Config) { c.Border = BorderBefore })
	middle := tbl.Border(PositionMiddle)
	cells := []string{"a", "b", "c"}

	got, err := tbl.Row(cells)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, middle))
	assert.False(t, strings.HasSuffix(got, middle))

	got, err = tbl.Row(cells, WithBorder(BorderAfter))
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(got, middle))
	assert.True(t, strings.HasSuffix(got, middle))

	got, err = tbl.Row(cells, WithBorder(BorderBoth))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(got, middle))

	got, err = tbl.Row(cells, WithBorder(BorderNone))
	require.NoError(t, err)
	assert.NotContains(t, got, "─")
}

func TestRowColorWrapsPaddingSpaces(t *testing.T) {
	tbl := newExampleTable(t, func(c *Config) { c.NormalColor = "<n>" })

	got, err := tbl.Row([]string{"a", "b", "c"}, WithColor("<c>"))
	require.NoError(t, err)
	want := "║<c> a" + sp(7) + " <n>│<c> " + sp(31) + "b <n>│<c> " + sp(7) + "c" + sp(8) + " <n>║\n"
	assert.Equal(t, want, got)

	plain, err := tbl.Row([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.NotContains(t, plain, "<c>")
	assert.NotContains(t, plain, "<n>")
}

func TestRowIsIdempotent(t *testing.T) {
	for _, multiline := range []bool{false, true} {
		tbl := newExampleTable(t, func(c *Config) { c.Multiline = multiline; c.Border = BorderAfter })
		cells := []string{"It's the end of the", "world as we know", "it, and I feel fine."}
		first, err := tbl.Row(cells)
		require.NoError(t, err)
		second, err := tbl.Row(cells)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestHeader(t *testing.T) {
	tbl := newExampleTable(t, func(c *Config) {
		c.HeaderColor = "<h>"
		c.NormalColor = "<n>"
	})
	cells := []string{"One", "Two", "Three"}

	got, err := tbl.Header(cells, true, true)
	require.NoError(t, err)
	lines := strings.SplitAfter(got, "\n")
	require.Len(t, lines, 4) // top, header, separator, trailing ""
	assert.Equal(t, tbl.Top(), lines[0])
	assert.Equal(t, "║<h> One      <n>│<h> "+sp(29)+"Two <n>│<h>      Three       <n>║\n", lines[1])
	assert.Equal(t, tbl.Border(PositionMiddle), lines[2])

	got, err = tbl.Header(cells, false, false)
	require.NoError(t, err)
	assert.Equal(t, lines[1], got)

	_, err = tbl.Header([]string{"One"}, true, false)
	require.ErrorIs(t, err, ErrRowArity)
}

func TestSingleLineScenario(t *testing.T) {
	tbl := newExampleTable(t, nil)
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf, []string{"One", "Two", "Three"}, [][]string{{"Hello world", "First one", "Foo bar"}}))

	want := tbl.Top() +
		"║ One      │ " + sp(29) + "Two │ " + sp(5) + "Three" + sp(6) + " ║\n" +
		tbl.Border(PositionMiddle) +
		"║ Hello w~ │ " + sp(23) + "First one │ " + sp(4) + "Foo bar" + sp(5) + " ║\n" +
		tbl.Bottom()
	assert.Equal(t, want, buf.String())
}

func TestRenderBorderPolicies(t *testing.T) {
	header := []string{"One", "Two", "Three"}
	rows := [][]string{
		{"Hello world", "First one", "Foo bar"},
		{"Goodbye", "Another one", "Bar foo"},
		{"It's the end of the", "world as we know", "it, and I feel fine."},
	}

	tests := []struct {
		name       string
		border     BorderPolicy
		header     []string
		separators int
	}{
		{name: "none with header", border: BorderNone, header: header, separators: 1},
		{name: "before with header", border: BorderBefore, header: header, separators: 3},
		{name: "after with header", border: BorderAfter, header: header, separators: 3},
		{name: "before without header", border: BorderBefore, separators: 2},
		{name: "after without header", border: BorderAfter, separators: 2},
		{name: "none without header", border: BorderNone, separators: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newExampleTable(t, func(c *Config) { c.Border = tt.border })
			var buf bytes.Buffer
			require.NoError(t, tbl.Render(&buf, tt.header, rows))
			out := buf.String()
			assert.Equal(t, tt.separators, strings.Count(out, tbl.Border(PositionMiddle)))
			assert.True(t, strings.HasPrefix(out, tbl.Top()))
			assert.True(t, strings.HasSuffix(out, tbl.Bottom()))
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tbl := newExampleTable(t, nil)

	err := tbl.Render(&bytes.Buffer{}, []string{"One"}, nil)
	require.ErrorIs(t, err, ErrRowArity)
	assert.Contains(t, err.Error(), "header")

	err = tbl.Render(&bytes.Buffer{}, nil, [][]string{{"a", "b", "c"}, {"a"}})
	require.ErrorIs(t, err, ErrRowArity)
	assert.Contains(t, err.Error(), "row 2")

	err = tbl.Render(failingWriter{}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write table")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSetConfig(t *testing.T) {
	tbl := newExampleTable(t, nil)
	cfg := tbl.Config()
	cfg.Marker = ">"
	cfg.Pad = 0
	require.NoError(t, tbl.SetConfig(cfg))
	assert.Equal(t, ' ', tbl.Config().Pad)

	got, err := tbl.Row([]string{"Hello world", "", ""})
	require.NoError(t, err)
	assert.Contains(t, got, "Hello w>")

	tbl.SetMultiline(true)
	got, err = tbl.Row([]string{"Hello world", "", ""})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(got, "\n"))

	cfg.Threshold = -3
	require.ErrorIs(t, tbl.SetConfig(cfg), ErrInvalidConfig)
	assert.Equal(t, ">", tbl.Config().Marker)
}

func TestParseBorderPolicy(t *testing.T) {
	for _, b := range []BorderPolicy{BorderNone, BorderBefore, BorderAfter, BorderBoth} {
		got, err := ParseBorderPolicy(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := ParseBorderPolicy("sometimes")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
