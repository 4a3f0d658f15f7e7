package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/boxtable/internal/cel"
	"github.com/oakwood-commons/boxtable/internal/limiter"
	"github.com/oakwood-commons/boxtable/pkg/color"
	"github.com/oakwood-commons/boxtable/pkg/config"
	"github.com/oakwood-commons/boxtable/pkg/logger"
	"github.com/oakwood-commons/boxtable/pkg/settings"
)

// runRender loads the input named by args, applies flag overrides and
// writes the rendered table to the command's output.
func runRender(cmd *cobra.Command, args []string, run *settings.Run) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	limits := limiter.Config{Limit: run.Limit, Offset: run.Offset, Tail: run.Tail}
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("row limiting: %w", err)
	}
	if cmd.Flags().Changed("marker") {
		m, _ := cmd.Flags().GetString("marker")
		run.Marker = &m
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := loadDocument(ctx, cmd.InOrStdin(), path, run)
	if err != nil {
		return err
	}
	if run.Defaults != "" {
		base, err := config.Load(ctx, run.Defaults)
		if err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
		doc.Table = base.Table.Merge(doc.Table)
	}
	applyOverrides(doc, run, cmd.Flags().Changed)
	if run.Where != "" {
		if err := filterRows(doc, run.Where); err != nil {
			return err
		}
		lgr.V(1).Info("filtered rows", "where", run.Where, "kept", len(doc.Rows))
	}
	if limits.IsActive() {
		lgr.V(1).Info("limiting rows", "selection", limits.Summary(len(doc.Rows)))
		doc.Rows = limiter.Apply(limits, doc.Rows)
	}

	tbl, err := doc.Build(colorSource(doc, run))
	if err != nil {
		lgr.Error(err, "invalid table", "input", path)
		return err
	}
	lgr.V(1).Info("rendering table", "input", path, "columns", len(doc.Columns), "rows", len(doc.Rows), "multiline", doc.Table.Multiline)
	return tbl.Render(cmd.OutOrStdout(), doc.Header, doc.Rows)
}

// loadDocument reads a table document from path, or CSV or Markdown when
// the matching flag is set. "-" reads stdin.
func loadDocument(ctx context.Context, stdin io.Reader, path string, run *settings.Run) (*config.Document, error) {
	if run.CSV && run.Markdown {
		return nil, fmt.Errorf("--csv and --markdown are mutually exclusive")
	}
	if run.CSV || run.Markdown {
		r := stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}
		doc, err := readRecords(r, run)
		if err != nil {
			return nil, err
		}
		doc.Table.HeaderColor = run.HeaderColor
		return doc, nil
	}

	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return config.Parse(data, config.DetectFormat(data))
	}
	return config.Load(ctx, path)
}

func readRecords(r io.Reader, run *settings.Run) (*config.Document, error) {
	if run.Markdown {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read markdown: %w", err)
		}
		return config.ReadMarkdown(data)
	}
	head, rows, err := config.ReadCSV(r, !run.NoHeader)
	if err != nil {
		return nil, err
	}
	return config.FromRecords(head, rows), nil
}

func filterRows(doc *config.Document, expr string) error {
	f, err := cel.NewFilter(expr)
	if err != nil {
		return err
	}
	if err := f.CheckColumns(doc.Header); err != nil {
		return err
	}
	rows, err := f.Apply(doc.Header, doc.Rows)
	if err != nil {
		return err
	}
	doc.Rows = rows
	return nil
}

// applyOverrides copies the flags the user actually set onto the document.
func applyOverrides(doc *config.Document, run *settings.Run, changed func(string) bool) {
	s := &doc.Table
	if changed("multiline") {
		s.Multiline = run.Multiline
	}
	if changed("border") {
		s.Border = run.Border
	}
	if changed("join") {
		s.Join = run.Join
	}
	if changed("header-color") {
		s.HeaderColor = run.HeaderColor
	}
	if changed("glyphs") {
		s.Glyphs = run.Glyphs
	}
	if run.Marker != nil {
		s.Marker = run.Marker
	}
	for i, w := range run.Widths {
		if i >= len(doc.Columns) {
			break
		}
		doc.Columns[i].Width = &w
	}
	for i, a := range run.Aligns {
		if i >= len(doc.Columns) {
			break
		}
		doc.Columns[i].Align = a
	}
}

func colorSource(doc *config.Document, run *settings.Run) color.Source {
	if run.NoColor {
		return color.None()
	}
	return doc.Palette()
}
