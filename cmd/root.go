package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/boxtable/pkg/logger"
	"github.com/oakwood-commons/boxtable/pkg/settings"
)

const longHelp = `boxtable renders tables as fixed-width text with box-drawing borders.

A table document (YAML, TOML or JSON) declares the columns, the table
settings and optionally the header and rows. CSV input renders with one
default column per field; Markdown input uses the first pipe table, sized
to fit. Rows can be filtered with a CEL expression (--where) and windowed
with --limit, --offset or --tail.`

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own flag state.
func NewRootCommand() *cobra.Command {
	run := settings.NewCliParams()
	var debug bool

	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Render tables with box-drawing borders",
		Long:  longHelp,
		Example: "  boxtable table.yaml\n" +
			"  boxtable --multiline --glyphs light table.toml\n" +
			"  cat data.csv | boxtable --csv --widths 12,30 -\n" +
			"  boxtable --markdown README.md --where 'cell[\"status\"] != \"done\"'\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// --debug maps to zap.DebugLevel (-1); otherwise info (0).
			if debug {
				run.MinLogLevel = -1
			}
			lgr := logger.Get(run.MinLogLevel)
			lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			cmd.SetContext(settings.IntoContext(ctx, run))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !run.CSV && !run.Markdown {
				return cmd.Help()
			}
			return runRender(cmd, args, run)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug information to stderr")
	root.PersistentFlags().BoolVar(&run.NoColor, "no-color", false, "disable color output")
	root.PersistentFlags().StringVar(&run.Glyphs, "glyphs", "", "glyph set: default|light|ascii (default from document)")
	root.Flags().StringVar(&run.Defaults, "defaults", "", "document whose table settings apply under the input's own")
	addRenderFlags(root.Flags(), run)

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(newDemoCommand(run))
	root.AddCommand(newGlyphsCommand(run))
	root.AddCommand(newColorsCommand(run))
	root.AddCommand(newConfigCommand(run))
	root.AddCommand(newFunctionsCommand(run))
	root.AddCommand(newVersionCommand())
	return root
}

func addRenderFlags(fs *pflag.FlagSet, run *settings.Run) {
	fs.BoolVarP(&run.Multiline, "multiline", "m", false, "page long cells over several lines instead of truncating")
	fs.StringVar(&run.Border, "border", "", "separator lines between rows: none|before|after|both")
	fs.StringVar(&run.Join, "join", "", "enable middle truncation with this join text")
	fs.StringVar(&run.HeaderColor, "header-color", run.HeaderColor, "header color name or ansi style (none to disable)")
	fs.BoolVar(&run.CSV, "csv", false, "read CSV instead of a table document ('-' or no file reads stdin)")
	fs.BoolVar(&run.NoHeader, "no-header", false, "CSV input has no header record")
	fs.BoolVar(&run.Markdown, "markdown", false, "read the first pipe table of a Markdown document")
	fs.StringVarP(&run.Where, "where", "w", "", "keep only rows matching this CEL expression (see 'boxtable functions')")
	fs.IntSliceVar(&run.Widths, "widths", nil, "column widths, in order (overrides the document)")
	fs.StringSliceVar(&run.Aligns, "align", nil, "column alignments, in order: left|right|center")
	fs.String("marker", "", "truncation marker (default from document, \"~\" otherwise)")
	fs.IntVar(&run.Limit, "limit", 0, "render only the first N rows")
	fs.IntVar(&run.Offset, "offset", 0, "skip the first N rows")
	fs.IntVar(&run.Tail, "tail", 0, "render only the last N rows (mutually exclusive with --limit; ignores --offset)")
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print boxtable version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
