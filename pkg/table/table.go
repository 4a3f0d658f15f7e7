// Package table draws fixed-width text tables with box-drawing borders.
//
// A Table owns an ordered set of Columns and the settings shared by every
// render call. Rendering functions return strings and never write anywhere
// themselves, except Render which streams a whole table to an io.Writer.
//
// A Table may be reconfigured between render calls but must not be changed
// while another goroutine is rendering with it.
package table

import (
	"errors"
	"fmt"

	"github.com/mgutz/ansi"

	"github.com/oakwood-commons/boxtable/pkg/glyph"
	"github.com/oakwood-commons/boxtable/pkg/shaper"
)

// Re-export alignment so callers can describe columns without importing
// the shaper package.
type Alignment = shaper.Alignment

const (
	AlignLeft   = shaper.AlignLeft
	AlignRight  = shaper.AlignRight
	AlignCenter = shaper.AlignCenter
)

const (
	// DefaultWidth is used for columns that do not set a width.
	DefaultWidth = 16
	// DefaultMarker is appended to cells cut short in single-line mode.
	DefaultMarker = "~"
	// DefaultTerminator ends every rendered line.
	DefaultTerminator = "\n"
)

var (
	// ErrInvalidWidth is returned for negative column widths.
	ErrInvalidWidth = errors.New("invalid column width")
	// ErrInvalidConfig is returned for unusable table settings.
	ErrInvalidConfig = errors.New("invalid table config")
)

// Config holds the settings shared by all columns of a table.
type Config struct {
	// Pad fills cells shorter than their column. Zero means a space.
	Pad rune
	// Marker is appended to truncated cells in single-line mode.
	Marker string
	// Terminator ends every line, borders included.
	Terminator string
	// Border is the default separator policy for Row.
	Border BorderPolicy
	// Multiline pages long cells over several lines instead of truncating.
	Multiline bool
	// HeaderColor is the escape code used by Header. Empty disables it.
	HeaderColor string
	// NormalColor is written after every colored cell.
	NormalColor string
	// Join enables middle-of-string truncation in single-line mode.
	Join string
	// Threshold is how many characters a cell may overflow before Join is
	// used. Zero means shaper.DefaultThreshold.
	Threshold int
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Pad:         ' ',
		Marker:      DefaultMarker,
		Terminator:  DefaultTerminator,
		Border:      BorderNone,
		NormalColor: ansi.Reset,
		Threshold:   shaper.DefaultThreshold,
	}
}

// Validate reports settings that cannot be rendered.
func (c Config) Validate() error {
	var errs []error
	if c.Pad < 0 || c.Pad == '\n' || c.Pad == '\r' {
		errs = append(errs, fmt.Errorf("pad character %q cannot be used", c.Pad))
	}
	if c.Border&^BorderBoth != 0 {
		errs = append(errs, fmt.Errorf("border policy %d is not one of none, before, after, both", int(c.Border)))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold %d must not be negative", c.Threshold))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Pad == 0 {
		c.Pad = ' '
	}
	return c
}

// ColumnSpec describes one column.
type ColumnSpec struct {
	// Width is the number of characters of cell content. Zero means
	// DefaultWidth.
	Width int
	Align Alignment
}

// Option customizes a Table at construction.
type Option func(*Table)

// WithGlyphs draws borders with src instead of glyph.Default.
func WithGlyphs(src glyph.Source) Option {
	return func(t *Table) {
		t.source = src
	}
}

// WithColumns adds columns in order.
func WithColumns(specs ...ColumnSpec) Option {
	return func(t *Table) {
		t.pending = append(t.pending, specs...)
	}
}

// Table renders rows and borders for a fixed set of columns.
type Table struct {
	cfg     Config
	source  glyph.Source
	glyphs  glyphs
	columns []*Column
	pending []ColumnSpec
}

// New validates cfg, resolves every glyph and adds the columns given with
// WithColumns.
func New(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(t)
	}
	if t.source == nil {
		t.source = glyph.Default()
	}
	g, err := resolveGlyphs(t.source)
	if err != nil {
		return nil, err
	}
	t.glyphs = g

	specs := t.pending
	t.pending = nil
	for i, spec := range specs {
		if _, err := t.AddColumn(spec); err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
	}
	return t, nil
}

// AddColumn appends a column. Columns cannot be removed.
func (t *Table) AddColumn(spec ColumnSpec) (*Column, error) {
	c, err := newColumn(t, spec)
	if err != nil {
		return nil, err
	}
	t.columns = append(t.columns, c)
	return c, nil
}

// Columns returns the table's columns in order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Config returns a copy of the current settings.
func (t *Table) Config() Config {
	return t.cfg
}

// SetConfig replaces the settings after validating them.
func (t *Table) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.cfg = cfg.withDefaults()
	return nil
}

// SetMultiline switches between truncating and paging long cells.
func (t *Table) SetMultiline(on bool) {
	t.cfg.Multiline = on
}
