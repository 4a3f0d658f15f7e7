package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/boxtable/internal/cel"
	"github.com/oakwood-commons/boxtable/internal/formatter"
	"github.com/oakwood-commons/boxtable/pkg/color"
	"github.com/oakwood-commons/boxtable/pkg/config"
	"github.com/oakwood-commons/boxtable/pkg/glyph"
	"github.com/oakwood-commons/boxtable/pkg/settings"
	"github.com/oakwood-commons/boxtable/pkg/table"
)

// listTable builds the two- or three-column tables used by the listing
// commands.
func listTable(run *settings.Run, specs ...table.ColumnSpec) (*table.Table, error) {
	set, err := glyph.Lookup(run.Glyphs)
	if err != nil {
		return nil, err
	}
	cfg := table.DefaultConfig()
	if !run.NoColor {
		if cfg.HeaderColor, err = color.NewPalette(nil).Code(run.HeaderColor); err != nil {
			return nil, err
		}
	}
	return table.New(cfg, table.WithGlyphs(set), table.WithColumns(specs...))
}

func newGlyphsCommand(run *settings.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "glyphs [set]",
		Short: "List the characters of a glyph set",
		Long:  "List the characters of a glyph set. Available sets: " + strings.Join(glyph.SetNames(), ", ") + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := run.Glyphs
			if len(args) == 1 {
				name = args[0]
			}
			set, err := glyph.Lookup(name)
			if err != nil {
				return err
			}
			tbl, err := listTable(run,
				table.ColumnSpec{Width: 16},
				table.ColumnSpec{Width: 5, Align: table.AlignCenter},
				table.ColumnSpec{Width: 6},
			)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(glyph.Names()))
			for _, n := range glyph.Names() {
				r, err := set.Resolve(n)
				if err != nil {
					return err
				}
				rows = append(rows, []string{string(n), string(r), fmt.Sprintf("%U", r)})
			}
			return tbl.Render(cmd.OutOrStdout(), []string{"NAME", "GLYPH", "CODE"}, rows)
		},
	}
}

func newColorsCommand(run *settings.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the named colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			palette := color.NewPalette(nil)
			tbl, err := listTable(run, table.ColumnSpec{Width: 14}, table.ColumnSpec{Width: 14})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(palette.Names()))
			for _, name := range palette.Names() {
				rows = append(rows, []string{name, "sample"})
			}
			header := []string{"NAME", "SAMPLE"}
			out := tbl.Top()
			h, err := tbl.Header(header, false, true)
			if err != nil {
				return err
			}
			out += h
			for _, r := range rows {
				code := ""
				if !run.NoColor {
					if code, err = palette.Code(r[0]); err != nil {
						return err
					}
				}
				row, err := tbl.Row(r, table.WithColor(code))
				if err != nil {
					return err
				}
				out += row
			}
			out += tbl.Bottom()
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newFunctionsCommand(run *settings.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions available to --where expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			funcs, err := cel.Functions()
			if err != nil {
				return err
			}
			tbl, err := listTable(run, table.ColumnSpec{Width: 16}, table.ColumnSpec{Width: 48})
			if err != nil {
				return err
			}
			tbl.SetMultiline(true)
			rows := make([][]string, len(funcs))
			for i, fn := range funcs {
				rows[i] = []string{fn.Name, fn.Usage}
			}
			return tbl.Render(cmd.OutOrStdout(), []string{"NAME", "USAGE"}, rows)
		},
	}
}

func newConfigCommand(run *settings.Run) *cobra.Command {
	var (
		output   string
		flowRows bool
	)
	c := &cobra.Command{
		Use:   "config <file>",
		Short: "Validate a table document and print it normalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			normalizeDocument(doc)

			format, err := formatter.ParseFormat(output)
			if err != nil {
				return err
			}
			data, err := formatter.Encode(doc, format, formatter.Options{FlowRows: flowRows})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|toml|json")
	c.Flags().BoolVar(&flowRows, "flow", false, "write YAML header and rows one per line")
	return c
}

// normalizeDocument fills in column defaults so the printed document shows
// what will actually be rendered.
func normalizeDocument(doc *config.Document) {
	for i := range doc.Columns {
		if doc.Columns[i].Width == nil {
			w := table.DefaultWidth
			doc.Columns[i].Width = &w
		}
		if doc.Columns[i].Align == "" {
			doc.Columns[i].Align = table.AlignLeft.String()
		}
	}
	if doc.Table.Border == "" {
		doc.Table.Border = table.BorderNone.String()
	}
	if doc.Table.Glyphs == "" {
		doc.Table.Glyphs = "default"
	}
}
