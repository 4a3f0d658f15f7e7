package table

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrRowArity is matched by RowArityError.
var ErrRowArity = errors.New("row has the wrong number of columns")

// RowArityError reports a row whose cell count differs from the column count.
type RowArityError struct {
	Got  int
	Want int
}

func (e *RowArityError) Error() string {
	return fmt.Sprintf("%v: got %d cells, table has %d columns", ErrRowArity, e.Got, e.Want)
}

func (e *RowArityError) Is(target error) bool {
	return target == ErrRowArity
}

type rowOptions struct {
	border BorderPolicy
	color  string
}

// RowOption customizes a single Row call.
type RowOption func(*rowOptions)

// WithBorder overrides the table's border policy for one row.
func WithBorder(b BorderPolicy) RowOption {
	return func(o *rowOptions) {
		o.border = b
	}
}

// WithColor colors every cell of the row with code. The table's NormalColor
// is written after each cell.
func WithColor(code string) RowOption {
	return func(o *rowOptions) {
		o.color = code
	}
}

// Row renders cells as one line, or as several lines in multiline mode.
//
// In single-line mode over-long cells are truncated with the table's marker.
// In multiline mode the row is as tall as its longest cell needs; shorter
// cells are blank on the extra lines.
func (t *Table) Row(cells []string, opts ...RowOption) (string, error) {
	if len(cells) != len(t.columns) {
		return "", &RowArityError{Got: len(cells), Want: len(t.columns)}
	}
	o := rowOptions{border: t.cfg.Border}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	if o.border&BorderBefore != 0 {
		b.WriteString(t.Border(PositionMiddle))
	}

	if t.cfg.Multiline {
		pages := 1
		for i, col := range t.columns {
			if n := col.PageCount(cells[i]); n > pages {
				pages = n
			}
		}
		for page := 1; page <= pages; page++ {
			t.writeLine(&b, cells, page, false, o.color)
		}
	} else {
		t.writeLine(&b, cells, 1, true, o.color)
	}

	if o.border&BorderAfter != 0 {
		b.WriteString(t.Border(PositionMiddle))
	}
	return b.String(), nil
}

// writeLine writes one physical line. The color wraps the padding spaces as
// well as the cell content.
func (t *Table) writeLine(b *strings.Builder, cells []string, page int, withMarker bool, color string) {
	last := len(t.columns) - 1
	for i, col := range t.columns {
		if i == 0 {
			b.WriteString(t.glyphs.vHeavy)
		} else {
			b.WriteString(t.glyphs.vLight)
		}
		if color != "" {
			b.WriteString(color)
		}
		b.WriteByte(' ')
		b.WriteString(col.RenderPage(cells[i], page, withMarker))
		b.WriteByte(' ')
		if color != "" {
			b.WriteString(t.cfg.NormalColor)
		}
		if i == last {
			b.WriteString(t.glyphs.vHeavy)
		}
	}
	b.WriteString(t.cfg.Terminator)
}

// Header renders cells in the header color, optionally preceded by the top
// border and followed by a middle border.
func (t *Table) Header(cells []string, addTop, addBottom bool) (string, error) {
	border := BorderNone
	if addBottom {
		border = BorderAfter
	}
	row, err := t.Row(cells, WithBorder(border), WithColor(t.cfg.HeaderColor))
	if err != nil {
		return "", err
	}
	if addTop {
		return t.Top() + row, nil
	}
	return row, nil
}

// Render writes a complete table: top border, header with a separator below
// it, every row using the table's border policy, and the bottom border. A
// nil header skips the header and its separator.
func (t *Table) Render(w io.Writer, header []string, rows [][]string) error {
	var b strings.Builder
	if header != nil {
		h, err := t.Header(header, true, len(rows) > 0 && t.cfg.Border&BorderBefore == 0)
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
		b.WriteString(h)
	} else {
		b.WriteString(t.Top())
	}
	for i, cells := range rows {
		var opts []RowOption
		if i == 0 && header == nil {
			// No separator directly under the top border.
			opts = append(opts, WithBorder(t.cfg.Border&^BorderBefore))
		}
		if i == len(rows)-1 {
			opts = append(opts, WithBorder(t.lastRowBorder(i == 0 && header == nil)))
		}
		r, err := t.Row(cells, opts...)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		b.WriteString(r)
	}
	b.WriteString(t.Bottom())

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// lastRowBorder drops the separator after the final row, which would sit
// directly on the bottom border.
func (t *Table) lastRowBorder(first bool) BorderPolicy {
	b := t.cfg.Border &^ BorderAfter
	if first {
		b &^= BorderBefore
	}
	return b
}
