package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/boxtable/pkg/color"
	"github.com/oakwood-commons/boxtable/pkg/glyph"
	"github.com/oakwood-commons/boxtable/pkg/settings"
	"github.com/oakwood-commons/boxtable/pkg/table"
)

var (
	demoHeader = []string{"One", "Two", "Three"}
	demoRows   = [][]string{
		{"Hello world", "First one", "Foo bar"},
		{"Goodbye", "Another one", "Bar foo"},
		{"It's the end of the", "world as we know", "it, and I feel fine."},
	}
)

func newDemoCommand(run *settings.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Draw a sample table, single-line and then multiline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src color.Source = color.NewPalette(nil)
			if run.NoColor {
				src = color.None()
			}
			headerColor, err := src.Code("light-yellow")
			if err != nil {
				return err
			}
			set, err := glyph.Lookup(run.Glyphs)
			if err != nil {
				return err
			}

			cfg := table.DefaultConfig()
			cfg.Border = table.BorderBefore
			cfg.HeaderColor = headerColor
			cfg.NormalColor = src.Reset()
			tbl, err := table.New(cfg,
				table.WithGlyphs(set),
				table.WithColumns(
					table.ColumnSpec{Width: 8},
					table.ColumnSpec{Width: 32, Align: table.AlignRight},
					table.ColumnSpec{Align: table.AlignCenter},
				),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := drawDemo(out, tbl); err != nil {
				return err
			}
			tbl.SetMultiline(true)
			return drawDemo(out, tbl)
		},
	}
}

// drawDemo assembles the table piece by piece rather than through Render.
func drawDemo(w io.Writer, tbl *table.Table) error {
	text, err := tbl.Header(demoHeader, true, false)
	if err != nil {
		return err
	}
	for _, r := range demoRows {
		row, err := tbl.Row(r)
		if err != nil {
			return err
		}
		text += row
	}
	text += tbl.Bottom()
	_, err = fmt.Fprint(w, text)
	return err
}
