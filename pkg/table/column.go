package table

import (
	"fmt"

	"github.com/oakwood-commons/boxtable/pkg/shaper"
)

// Column renders cell text at a fixed width.
type Column struct {
	table *Table
	width int
	align Alignment
}

func newColumn(t *Table, spec ColumnSpec) (*Column, error) {
	width := spec.Width
	if width == 0 {
		width = DefaultWidth
	}
	if width < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, spec.Width)
	}
	switch spec.Align {
	case AlignLeft, AlignRight, AlignCenter:
	default:
		return nil, fmt.Errorf("%w: %s", shaper.ErrInvalidAlignment, spec.Align)
	}
	return &Column{table: t, width: width, align: spec.Align}, nil
}

// Width returns the number of content characters in every cell.
func (c *Column) Width() int {
	return c.width
}

// Align returns the column's alignment.
func (c *Column) Align() Alignment {
	return c.align
}

// PageCount returns how many lines text needs when paged at the column
// width. Empty text still takes one line.
func (c *Column) PageCount(text string) int {
	n := shaper.Len(text)
	pages := (n + c.width - 1) / c.width
	if pages < 1 {
		return 1
	}
	return pages
}

// RenderPage returns the given 1-based page of text padded to the column
// width. With withMarker set, text cut short ends in the table's marker and
// may be middle-truncated when the table has a join configured.
func (c *Column) RenderPage(text string, page int, withMarker bool) string {
	if page < 1 {
		page = 1
	}
	cfg := c.table.cfg
	opts := shaper.Options{
		Offset: c.width * (page - 1),
		Align:  c.align,
		Pad:    cfg.Pad,
	}
	if withMarker {
		opts.Append = cfg.Marker
		opts.Join = cfg.Join
		opts.Threshold = cfg.Threshold
	}
	return shaper.Pad(text, c.width, opts)
}
